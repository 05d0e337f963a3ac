package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Defaults()

	assert.Equal(t, "whisper_cpp", s.Transcriber.Provider)
	assert.Equal(t, "base", s.Transcriber.ModelSize)
	assert.Equal(t, "wav", s.Converter.AudioFormat)
	assert.Equal(t, 16000, s.Converter.SampleRate)
	assert.Equal(t, 1, s.Converter.Channels)
	assert.Equal(t, "output/videos", s.Download.OutputDir)
	assert.Equal(t, "sqlite", s.History.Backend)
	assert.True(t, s.Formatter.EnableBasicFormatting)
	assert.False(t, s.Formatter.EnableAIEnhancement)

	require.NoError(t, s.Validate())
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
transcriber:
  provider: openai
  model_size: small
converter:
  sample_rate: 44100
formatter:
  enable_ai_enhancement: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", s.Transcriber.Provider)
	assert.Equal(t, "small", s.Transcriber.ModelSize)
	assert.Equal(t, 44100, s.Converter.SampleRate)
	assert.True(t, s.Formatter.EnableAIEnhancement)
	// Untouched fields keep their defaults.
	assert.Equal(t, "output/audios", s.Converter.OutputDir)
	assert.Equal(t, "wav", s.Converter.AudioFormat)
}

func TestLoadMalformedYamlFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transcriber: [not: valid"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown provider", "transcriber:\n  provider: siri\n"},
		{"unknown model size", "transcriber:\n  model_size: gigantic\n"},
		{"bad audio format", "converter:\n  audio_format: flac\n"},
		{"too many channels", "converter:\n  channels: 5\n"},
		{"bad log level", "logging:\n  level: noisy\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
