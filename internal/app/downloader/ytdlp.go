// Package downloader wraps the yt-dlp binary for fetching remote videos
// and their metadata.
package downloader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"video2md/internal/app/util/files"
)

// DownloadError wraps any failure while fetching a remote input: network
// errors, unavailable videos, or a missing yt-dlp binary.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed for %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Result describes a finished download.
type Result struct {
	Title    string
	Duration float64
	Path     string
	URL      string
}

// Metadata is the subset of `yt-dlp -J` output we consume.
type Metadata struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

// YtDlp invokes the yt-dlp binary. One instance per configured output
// directory and format selector.
type YtDlp struct {
	binary    string
	outputDir string
	format    string
	log       *zap.SugaredLogger
}

func NewYtDlp(outputDir, format string, log *zap.SugaredLogger) *YtDlp {
	return &YtDlp{
		binary:    "yt-dlp",
		outputDir: outputDir,
		format:    format,
		log:       log,
	}
}

// Metadata fetches title and duration without downloading anything.
func (d *YtDlp) Metadata(ctx context.Context, url string) (*Metadata, error) {
	out, err := d.run(ctx, "-J", "--no-playlist", url)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	var meta Metadata
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, &DownloadError{URL: url, Err: fmt.Errorf("parse metadata: %w", err)}
	}
	if meta.Title == "" {
		meta.Title = "untitled"
	}
	return &meta, nil
}

// DownloadVideo fetches the video file for url into the output directory
// and returns its final path plus basic metadata.
func (d *YtDlp) DownloadVideo(ctx context.Context, url string) (*Result, error) {
	meta, err := d.Metadata(ctx, url)
	if err != nil {
		return nil, err
	}
	d.log.Infow("downloading video", "title", meta.Title, "duration", meta.Duration)

	if err := files.EnsureDir(d.outputDir); err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	out, err := d.run(ctx,
		"-f", d.format,
		"-o", d.outputTemplate(),
		"--no-playlist",
		"--no-simulate",
		"--print", "after_move:filepath",
		url,
	)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	path := lastLine(out)
	if path == "" || !files.Exists(path) {
		return nil, &DownloadError{URL: url, Err: fmt.Errorf("downloaded file not found")}
	}

	d.log.Infow("video download completed", "path", path)
	return &Result{Title: meta.Title, Duration: meta.Duration, Path: path, URL: url}, nil
}

// DownloadAudio fetches the best audio track only, extracted to mp3. Used
// by the audio-only mode where no video artifact is wanted.
func (d *YtDlp) DownloadAudio(ctx context.Context, url string) (*Result, error) {
	meta, err := d.Metadata(ctx, url)
	if err != nil {
		return nil, err
	}
	d.log.Infow("downloading audio", "title", meta.Title)

	if err := files.EnsureDir(d.outputDir); err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	out, err := d.run(ctx,
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", d.outputTemplate(),
		"--no-playlist",
		"--no-simulate",
		"--print", "after_move:filepath",
		url,
	)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	path := lastLine(out)
	// -x rewrites the extension after the print hook in some yt-dlp
	// versions, so fall back to the mp3 sibling.
	if !files.Exists(path) {
		mp3 := strings.TrimSuffix(path, filepath.Ext(path)) + ".mp3"
		if !files.Exists(mp3) {
			return nil, &DownloadError{URL: url, Err: fmt.Errorf("downloaded audio file not found")}
		}
		path = mp3
	}

	d.log.Infow("audio download completed", "path", path)
	return &Result{Title: meta.Title, Duration: meta.Duration, Path: path, URL: url}, nil
}

func (d *YtDlp) outputTemplate() string {
	return filepath.Join(d.outputDir, "%(title)s.%(ext)s")
}

func (d *YtDlp) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, d.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	d.log.Debugw("running yt-dlp", "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
