package localfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeVideo(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("fake video bytes"), 0o644))
	return path
}

func TestProcessInPlace(t *testing.T) {
	dir := t.TempDir()
	videoPath := writeVideo(t, dir, "lecture.mp4")

	h := NewHandler(filepath.Join(dir, "out"), false, zap.NewNop().Sugar())
	result, err := h.Process(videoPath)
	require.NoError(t, err)

	assert.Equal(t, "lecture", result.Title)
	assert.Equal(t, videoPath, result.Path)
	assert.False(t, result.Copied)
	assert.Equal(t, int64(16), result.SizeBytes)
}

func TestProcessCopiesIntoOutputTree(t *testing.T) {
	dir := t.TempDir()
	videoPath := writeVideo(t, dir, "talk.mkv")
	outDir := filepath.Join(dir, "out")

	h := NewHandler(outDir, true, zap.NewNop().Sugar())
	result, err := h.Process(videoPath)
	require.NoError(t, err)

	assert.True(t, result.Copied)
	assert.Equal(t, filepath.Join(outDir, "talk.mkv"), result.Path)
	assert.Equal(t, videoPath, result.OriginalPath)
	assert.FileExists(t, result.Path)
}

func TestProcessMissingFile(t *testing.T) {
	h := NewHandler(t.TempDir(), false, zap.NewNop().Sugar())

	_, err := h.Process(filepath.Join(t.TempDir(), "missing.mp4"))
	var notFound *FileNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestProcessDirectoryIsNotAFile(t *testing.T) {
	h := NewHandler(t.TempDir(), false, zap.NewNop().Sugar())

	_, err := h.Process(t.TempDir())
	var notFound *FileNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestProcessUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audio.mp3")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	h := NewHandler(dir, false, zap.NewNop().Sugar())
	_, err := h.Process(path)
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".mp3", unsupported.Ext)
}
