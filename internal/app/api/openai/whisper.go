// Package openai transcribes audio through the OpenAI audio API.
package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"video2md/internal/app/api"
	"video2md/internal/app/model"
)

// RemoteTranscriber sends audio files to the hosted whisper model.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
	log    *zap.SugaredLogger
}

func NewRemoteTranscriber(apiKey string, log *zap.SugaredLogger) *RemoteTranscriber {
	return &RemoteTranscriber{
		client: openai.NewClient(apiKey),
		model:  openai.Whisper1,
		log:    log,
	}
}

func (rt *RemoteTranscriber) Transcribe(ctx context.Context, req api.Request) (*model.TranscriptResult, error) {
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, &api.TranscriptionError{Provider: "openai", Err: fmt.Errorf("audio file not readable: %w", err)}
	}

	audioReq := openai.AudioRequest{
		Model:    rt.model,
		FilePath: req.AudioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: req.Language,
	}

	rt.log.Infow("sending audio to OpenAI", "file", req.AudioPath, "task", req.Task)

	var resp openai.AudioResponse
	var err error
	if req.Task == "translate" {
		// The translation endpoint always targets English and ignores the
		// language hint.
		audioReq.Language = ""
		resp, err = rt.client.CreateTranslation(ctx, audioReq)
	} else {
		resp, err = rt.client.CreateTranscription(ctx, audioReq)
	}
	if err != nil {
		return nil, &api.TranscriptionError{Provider: "openai", Err: err}
	}

	result := &model.TranscriptResult{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
		Model:    rt.model,
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, model.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return result, nil
}
