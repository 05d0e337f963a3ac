// Package classify decides whether a user input is a remote video
// reference or a local file, before the pipeline touches the network or
// the disk.
package classify

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"video2md/internal/app/model"
	"video2md/internal/app/util/files"
)

// InvalidInputError names an input that is neither a known video URL nor
// an existing video file.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// remoteHosts are the video platforms the downloader knows how to fetch.
var remoteHosts = []string{
	"youtube.com",
	"youtu.be",
	"m.youtube.com",
	"www.youtube.com",
}

// VideoExtensions is the local-file allow-list.
var VideoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mkv": true, ".mov": true,
	".wmv": true, ".flv": true, ".webm": true, ".m4v": true,
	".3gp": true, ".ogv": true, ".ts": true, ".mts": true,
}

// Input is the tagged classification result.
type Input struct {
	Raw  string
	Kind model.InputKind
}

// Classify resolves a raw input string. URL-shaped strings matching a
// known video host are remote; existing paths with an allowed video
// extension are local; everything else fails.
func Classify(raw string) (Input, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Input{}, &InvalidInputError{Input: raw, Reason: "empty input"}
	}

	if isRemoteURL(trimmed) {
		return Input{Raw: trimmed, Kind: model.InputRemote}, nil
	}

	if files.Exists(trimmed) {
		ext := strings.ToLower(filepath.Ext(trimmed))
		if !VideoExtensions[ext] {
			return Input{}, &InvalidInputError{Input: raw, Reason: fmt.Sprintf("unsupported file extension %q", ext)}
		}
		return Input{Raw: trimmed, Kind: model.InputLocal}, nil
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return Input{}, &InvalidInputError{Input: raw, Reason: "URL does not match a supported video host"}
	}
	return Input{}, &InvalidInputError{Input: raw, Reason: "not a supported URL and no such file on disk"}
}

func isRemoteURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range remoteHosts {
		if host == h {
			return true
		}
	}
	return false
}
