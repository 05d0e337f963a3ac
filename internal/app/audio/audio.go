// Package audio shells out to ffmpeg/ffprobe for audio extraction and
// stream inspection.
package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"video2md/internal/app/model"
	"video2md/internal/app/util/files"
)

// ExtractionError covers ffmpeg failures: missing binary, unreadable or
// corrupt input.
type ExtractionError struct {
	Input string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("audio extraction failed for %s: %v", e.Input, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor produces audio files from videos at a fixed format, sample
// rate and channel count.
type Extractor struct {
	outputDir  string
	format     string
	quality    string
	channels   int
	sampleRate int
	log        *zap.SugaredLogger
}

func NewExtractor(outputDir, format, quality string, channels, sampleRate int, log *zap.SugaredLogger) *Extractor {
	return &Extractor{
		outputDir:  outputDir,
		format:     format,
		quality:    quality,
		channels:   channels,
		sampleRate: sampleRate,
		log:        log,
	}
}

// Extract converts videoPath into an audio file under the output
// directory, named after the video stem. An existing target is reused.
func (e *Extractor) Extract(ctx context.Context, videoPath string) (string, error) {
	if !files.Exists(videoPath) {
		return "", &ExtractionError{Input: videoPath, Err: fmt.Errorf("input file does not exist")}
	}
	if err := files.EnsureDir(e.outputDir); err != nil {
		return "", &ExtractionError{Input: videoPath, Err: err}
	}

	audioPath := filepath.Join(e.outputDir, files.Stem(videoPath)+"."+e.format)
	if files.Exists(audioPath) {
		e.log.Infow("audio file already exists, skipping extraction", "path", audioPath)
		return audioPath, nil
	}

	args := []string{"-i", videoPath, "-vn"}
	switch e.format {
	case "wav":
		args = append(args, "-acodec", "pcm_s16le")
	case "mp3":
		args = append(args, "-acodec", "libmp3lame", "-b:a", e.quality)
	default:
		args = append(args, "-b:a", e.quality)
	}
	args = append(args,
		"-ar", strconv.Itoa(e.sampleRate),
		"-ac", strconv.Itoa(e.channels),
		audioPath,
	)

	e.log.Infow("extracting audio", "input", videoPath, "output", audioPath)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ExtractionError{
			Input: videoPath,
			Err:   fmt.Errorf("ffmpeg error: %v, stderr: %s", err, strings.TrimSpace(stderr.String())),
		}
	}

	if !files.Exists(audioPath) {
		return "", &ExtractionError{Input: videoPath, Err: fmt.Errorf("ffmpeg produced no output")}
	}
	return audioPath, nil
}

// Duration returns the media duration in whole seconds via ffprobe.
func Duration(ctx context.Context, filePath string) (int, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(durationFloat)), nil
}

// Probe returns the parsed ffprobe stream/format description.
func Probe(ctx context.Context, filePath string) (*model.FFProbeOutput, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		filePath)
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var probe model.FFProbeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, err
	}
	return &probe, nil
}

// Is16kHzWav reports whether the file is already 16kHz pcm_s16le, the
// input format whisper.cpp wants.
func Is16kHzWav(ctx context.Context, filePath string) (bool, error) {
	probe, err := Probe(ctx, filePath)
	if err != nil {
		return false, err
	}
	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" && stream.SampleRate == 16000 {
			return true, nil
		}
	}
	return false, nil
}

// ConvertTo16kHzWav rewrites any supported audio file as 16kHz WAV next to
// the original, reusing an existing conversion.
func ConvertTo16kHzWav(ctx context.Context, inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_16khz.wav"
	if files.Exists(outputPath) {
		return outputPath, nil
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		outputPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return outputPath, nil
}
