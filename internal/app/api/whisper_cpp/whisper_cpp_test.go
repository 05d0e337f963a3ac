package whisper_cpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseOutput(t *testing.T) {
	lt := NewLocalTranscriber("/usr/local/bin/whisper", "/models", "base", zap.NewNop().Sugar())

	data := []byte(`{
		"result": {"language": "en"},
		"transcription": [
			{"offsets": {"from": 0, "to": 4500}, "text": " Hello there."},
			{"offsets": {"from": 4500, "to": 9000}, "text": " Second segment."},
			{"offsets": {"from": 9000, "to": 9500}, "text": "   "}
		]
	}`)

	result, err := lt.parseOutput(data)
	require.NoError(t, err)

	assert.Equal(t, "en", result.Language)
	assert.Equal(t, "whisper.cpp/base", result.Model)
	assert.Equal(t, "Hello there. Second segment.", result.Text)

	// Blank segments are dropped, offsets converted from ms to seconds.
	require.Len(t, result.Segments, 2)
	assert.Equal(t, 0.0, result.Segments[0].Start)
	assert.Equal(t, 4.5, result.Segments[0].End)
	assert.Equal(t, 9.0, result.Duration)
}

func TestParseOutputInvalidJSON(t *testing.T) {
	lt := NewLocalTranscriber("", "", "base", zap.NewNop().Sugar())
	_, err := lt.parseOutput([]byte("not json"))
	assert.Error(t, err)
}

func TestParseOutputEmptyTranscription(t *testing.T) {
	lt := NewLocalTranscriber("", "", "base", zap.NewNop().Sugar())
	result, err := lt.parseOutput([]byte(`{"result": {"language": "auto"}, "transcription": []}`))
	require.NoError(t, err)
	assert.Empty(t, result.Text)
	assert.Empty(t, result.Segments)
	assert.Zero(t, result.Duration)
}
