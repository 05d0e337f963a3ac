package api

import (
	"context"
	"fmt"

	"video2md/internal/app/model"
)

// Request carries everything a speech provider needs for one audio file.
type Request struct {
	AudioPath string
	Language  string // empty triggers auto-detection
	Task      string // "transcribe" or "translate"
}

// Transcriber converts an audio file into a transcript. Implementations
// wrap external speech models and must not write pipeline artifacts.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (*model.TranscriptResult, error)
}

// TranscriptionError is the failure type all providers return, keeping the
// provider name with the underlying cause.
type TranscriptionError struct {
	Provider string
	Err      error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed (%s): %v", e.Provider, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }
