// Package localfile ingests videos that already exist on disk, taking the
// place of the downloader for local inputs.
package localfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"video2md/internal/app/classify"
	"video2md/internal/app/util/files"
)

// FileNotFoundError reports a local input path that does not exist or is
// not a regular file.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("video file not found: %s", e.Path)
}

// UnsupportedFormatError reports a file extension outside the allow-list.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported video format %q for %s", e.Ext, e.Path)
}

// Result describes an ingested local video.
type Result struct {
	Title        string
	Path         string // path downstream stages read from
	OriginalPath string
	SizeBytes    int64
	Copied       bool
}

// Handler validates local inputs and, when copy is enabled, mirrors them
// into the output tree.
type Handler struct {
	outputDir string
	copyFiles bool
	log       *zap.SugaredLogger
}

func NewHandler(outputDir string, copyFiles bool, log *zap.SugaredLogger) *Handler {
	return &Handler{
		outputDir: outputDir,
		copyFiles: copyFiles,
		log:       log,
	}
}

// Process validates the file and returns the path the rest of the pipeline
// should read. With copying disabled the original is referenced in place,
// so reprocessing never duplicates files.
func (h *Handler) Process(videoPath string) (*Result, error) {
	info, err := os.Stat(videoPath)
	if err != nil || info.IsDir() {
		return nil, &FileNotFoundError{Path: videoPath}
	}

	ext := strings.ToLower(filepath.Ext(videoPath))
	if !classify.VideoExtensions[ext] {
		return nil, &UnsupportedFormatError{Path: videoPath, Ext: ext}
	}

	result := &Result{
		Title:        files.Stem(videoPath),
		Path:         videoPath,
		OriginalPath: videoPath,
		SizeBytes:    info.Size(),
	}

	if h.copyFiles {
		dst := filepath.Join(h.outputDir, filepath.Base(videoPath))
		if err := files.CopyFile(videoPath, dst); err != nil {
			return nil, fmt.Errorf("copy local video: %w", err)
		}
		result.Path = dst
		result.Copied = true
		h.log.Infow("local video copied into output tree", "src", videoPath, "dst", dst)
	} else {
		h.log.Infow("using local video in place", "path", videoPath)
	}

	return result, nil
}
