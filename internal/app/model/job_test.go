package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLifecycle(t *testing.T) {
	job := NewJob("https://youtu.be/abc")
	require.NotEmpty(t, job.ID)
	assert.Equal(t, StateClassified, job.State)
	assert.False(t, job.Succeeded())
	assert.Zero(t, job.Duration())

	job.AddArtifact(StageFetch, "/tmp/video.mp4")
	job.AddArtifact(StageExtract, "/tmp/audio.wav")

	a, ok := job.ArtifactFor(StageExtract)
	require.True(t, ok)
	assert.Equal(t, "/tmp/audio.wav", a.Path)

	_, ok = job.ArtifactFor(StageFormat)
	assert.False(t, ok)

	job.Finish()
	assert.True(t, job.Succeeded())
	assert.Equal(t, StateDone, job.State)
	assert.NotZero(t, job.Duration())
}

func TestJobFail(t *testing.T) {
	job := NewJob("broken.mp4")
	cause := errors.New("ffmpeg exploded")

	job.Fail(StageExtract, cause)
	assert.Equal(t, StateFailed, job.State)
	assert.Equal(t, StageExtract, job.FailedStage)
	assert.Equal(t, cause, job.Err)
	assert.False(t, job.Succeeded())
}

func TestArtifactsReturnsCopy(t *testing.T) {
	job := NewJob("x")
	job.AddArtifact(StageFetch, "/a")

	got := job.Artifacts()
	got[0].Path = "/mutated"

	a, _ := job.ArtifactFor(StageFetch)
	assert.Equal(t, "/a", a.Path)
}
