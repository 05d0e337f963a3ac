package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain english", "My Great Video", "My_Great_Video"},
		{"punctuation stripped", "What?! A Video: Part 1", "What_A_Video_Part_1"},
		{"chinese kept", "深度学习 入门教程", "深度学习_入门教程"},
		{"hyphen kept", "intro-to-go", "intro-to-go"},
		{"slashes stripped", "a/b\\c", "abc"},
		{"only punctuation", "???", "untitled"},
		{"empty", "", "untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeTitle(tt.title))
		})
	}
}

func TestCopyFileIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "nested", "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("first"), 0o644))

	require.NoError(t, CopyFile(src, dst))
	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))

	// A second copy must not clobber the existing destination.
	require.NoError(t, os.WriteFile(src, []byte("second"), 0o644))
	require.NoError(t, CopyFile(src, dst))
	content, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestReadBatchList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.txt")
	content := `# my batch
https://youtu.be/one

  https://youtu.be/two
# comment
/videos/three.mp4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	inputs, err := ReadBatchList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://youtu.be/one",
		"https://youtu.be/two",
		"/videos/three.mp4",
	}, inputs)
}

func TestReadBatchListMissingFile(t *testing.T) {
	_, err := ReadBatchList(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestWriteTextFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")
	require.NoError(t, WriteTextFile(path, "hello"))

	got, err := ReadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestStem(t *testing.T) {
	assert.Equal(t, "video", Stem("/tmp/video.mp4"))
	assert.Equal(t, "audio_16khz", Stem("audio_16khz.wav"))
	assert.Equal(t, "noext", Stem("dir/noext"))
}
