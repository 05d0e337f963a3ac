// Package whisper_cpp runs a locally compiled whisper.cpp binary.
package whisper_cpp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"video2md/internal/app/api"
	"video2md/internal/app/audio"
	"video2md/internal/app/model"
)

// LocalTranscriber shells out to whisper.cpp. The model file is resolved
// from the model directory and the configured size (ggml-<size>.bin).
type LocalTranscriber struct {
	binaryPath string
	modelDir   string
	modelSize  string
	log        *zap.SugaredLogger
}

func NewLocalTranscriber(binaryPath, modelDir, modelSize string, log *zap.SugaredLogger) *LocalTranscriber {
	return &LocalTranscriber{
		binaryPath: binaryPath,
		modelDir:   modelDir,
		modelSize:  modelSize,
		log:        log,
	}
}

// whisperJSON is the shape of whisper.cpp's -oj output file.
type whisperJSON struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"` // milliseconds
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (lt *LocalTranscriber) Transcribe(ctx context.Context, req api.Request) (*model.TranscriptResult, error) {
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, &api.TranscriptionError{Provider: "whisper_cpp", Err: fmt.Errorf("audio file not readable: %w", err)}
	}

	// whisper.cpp only accepts 16kHz pcm_s16le input.
	inputPath := req.AudioPath
	is16k, err := audio.Is16kHzWav(ctx, inputPath)
	if err != nil {
		return nil, &api.TranscriptionError{Provider: "whisper_cpp", Err: fmt.Errorf("probe input: %w", err)}
	}
	if !is16k {
		lt.log.Debugw("converting input to 16kHz wav", "input", inputPath)
		inputPath, err = audio.ConvertTo16kHzWav(ctx, inputPath)
		if err != nil {
			return nil, &api.TranscriptionError{Provider: "whisper_cpp", Err: err}
		}
	}

	modelPath := filepath.Join(lt.modelDir, fmt.Sprintf("ggml-%s.bin", lt.modelSize))
	if _, err := os.Stat(modelPath); err != nil {
		return nil, &api.TranscriptionError{Provider: "whisper_cpp", Err: fmt.Errorf("model not found: %s", modelPath)}
	}

	outputBase := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	language := req.Language
	if language == "" {
		language = "auto"
	}

	args := []string{
		"-m", modelPath,
		"-l", language,
		"-oj",
		"-f", inputPath,
		"-of", outputBase,
	}
	if req.Task == "translate" {
		args = append(args, "--translate")
	}

	lt.log.Infow("running whisper.cpp", "model", modelPath, "language", language)
	command := exec.CommandContext(ctx, lt.binaryPath, args...)
	var stderr bytes.Buffer
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return nil, &api.TranscriptionError{
			Provider: "whisper_cpp",
			Err:      fmt.Errorf("command execution error: %v, stderr: %s", err, strings.TrimSpace(stderr.String())),
		}
	}

	jsonPath := outputBase + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, &api.TranscriptionError{Provider: "whisper_cpp", Err: fmt.Errorf("read output file: %w", err)}
	}
	defer os.Remove(jsonPath)

	return lt.parseOutput(data)
}

func (lt *LocalTranscriber) parseOutput(data []byte) (*model.TranscriptResult, error) {
	var out whisperJSON
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &api.TranscriptionError{Provider: "whisper_cpp", Err: fmt.Errorf("parse output: %w", err)}
	}

	result := &model.TranscriptResult{
		Language: out.Result.Language,
		Model:    "whisper.cpp/" + lt.modelSize,
	}

	var sb strings.Builder
	for _, seg := range out.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		result.Segments = append(result.Segments, model.Segment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  text,
		})
		sb.WriteString(text)
		sb.WriteString(" ")
	}
	result.Text = strings.TrimSpace(sb.String())
	if len(result.Segments) > 0 {
		result.Duration = result.Segments[len(result.Segments)-1].End
	}
	return result, nil
}
