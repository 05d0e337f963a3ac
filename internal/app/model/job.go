package model

import (
	"time"

	"github.com/google/uuid"
)

// InputKind tells the pipeline how to fetch an input.
type InputKind int

const (
	InputRemote InputKind = iota // a video-host URL
	InputLocal                   // a file already on disk
)

func (k InputKind) String() string {
	if k == InputRemote {
		return "remote"
	}
	return "local"
}

// Stage identifies a pipeline step. Used for artifact bookkeeping and
// failure reporting.
type Stage string

const (
	StageClassify   Stage = "classify"
	StageFetch      Stage = "fetch"
	StageExtract    Stage = "extract"
	StageTranscribe Stage = "transcribe"
	StageFormat     Stage = "format"
)

// JobState is the per-job state machine. States advance strictly in order;
// StateFailed is terminal and reachable from any non-terminal state.
type JobState int

const (
	StateClassified JobState = iota
	StateFetched
	StateAudioExtracted
	StateTranscribed
	StateFormatted
	StateDone
	StateFailed
)

func (s JobState) String() string {
	switch s {
	case StateClassified:
		return "classified"
	case StateFetched:
		return "fetched"
	case StateAudioExtracted:
		return "audio_extracted"
	case StateTranscribed:
		return "transcribed"
	case StateFormatted:
		return "formatted"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Artifact is a file produced by one pipeline stage. Each stage owns
// exactly one artifact per job; downstream stages only read.
type Artifact struct {
	Stage Stage
	Path  string
}

// Job is one unit of work: a single user-supplied input and everything the
// pipeline learns about it while processing.
type Job struct {
	ID        string
	RawInput  string
	Kind      InputKind
	Title     string
	Language  string
	Task      string
	AudioOnly bool

	State       JobState
	FailedStage Stage
	Err         error

	StartedAt  time.Time
	FinishedAt time.Time

	artifacts []Artifact
}

// NewJob creates a job in its initial state.
func NewJob(rawInput string) *Job {
	return &Job{
		ID:        uuid.NewString(),
		RawInput:  rawInput,
		State:     StateClassified,
		StartedAt: time.Now(),
	}
}

// AddArtifact records the file a stage produced.
func (j *Job) AddArtifact(stage Stage, path string) {
	j.artifacts = append(j.artifacts, Artifact{Stage: stage, Path: path})
}

// ArtifactFor returns the artifact a stage produced, if any.
func (j *Job) ArtifactFor(stage Stage) (Artifact, bool) {
	for _, a := range j.artifacts {
		if a.Stage == stage {
			return a, true
		}
	}
	return Artifact{}, false
}

// Artifacts returns a copy of everything produced so far.
func (j *Job) Artifacts() []Artifact {
	out := make([]Artifact, len(j.artifacts))
	copy(out, j.artifacts)
	return out
}

// Fail moves the job to the terminal failed state, remembering which stage
// broke and why.
func (j *Job) Fail(stage Stage, err error) {
	j.State = StateFailed
	j.FailedStage = stage
	j.Err = err
	j.FinishedAt = time.Now()
}

// Finish marks the job done.
func (j *Job) Finish() {
	j.State = StateDone
	j.FinishedAt = time.Now()
}

// Succeeded reports whether the job ran to completion.
func (j *Job) Succeeded() bool {
	return j.State == StateDone
}

// Duration is wall-clock processing time; zero until the job finishes.
func (j *Job) Duration() time.Duration {
	if j.FinishedAt.IsZero() {
		return 0
	}
	return j.FinishedAt.Sub(j.StartedAt)
}
