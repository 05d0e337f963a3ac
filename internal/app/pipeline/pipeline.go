// Package pipeline sequences the processing stages for each job:
// classify, fetch, extract audio, transcribe, format. Jobs in a batch run
// one at a time and fail independently.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"video2md/internal/app/api"
	"video2md/internal/app/classify"
	"video2md/internal/app/downloader"
	"video2md/internal/app/enhancer"
	"video2md/internal/app/formatter"
	"video2md/internal/app/localfile"
	"video2md/internal/app/model"
	"video2md/internal/app/repository"
	"video2md/internal/app/storage"
	"video2md/internal/app/util/files"
	"video2md/internal/config"
)

// Downloader fetches remote inputs. Implemented by downloader.YtDlp.
type Downloader interface {
	DownloadVideo(ctx context.Context, url string) (*downloader.Result, error)
	DownloadAudio(ctx context.Context, url string) (*downloader.Result, error)
}

// LocalHandler ingests on-disk inputs. Implemented by localfile.Handler.
type LocalHandler interface {
	Process(videoPath string) (*localfile.Result, error)
}

// AudioExtractor produces the audio artifact. Implemented by
// audio.Extractor.
type AudioExtractor interface {
	Extract(ctx context.Context, videoPath string) (string, error)
}

// Prober does the cheap pre-download page check.
type Prober interface {
	Probe(ctx context.Context, url string) (string, error)
}

// Pipeline wires the stage adapters together. Construct with New (or the
// wire injector) and reuse across jobs.
type Pipeline struct {
	settings    *config.Settings
	download    Downloader
	prober      Prober
	local       LocalHandler
	extractor   AudioExtractor
	transcriber api.Transcriber
	formatter   *formatter.Formatter
	enhancer    enhancer.Enhancer // nil when disabled
	archiver    *storage.Archiver // nil when disabled
	history     repository.RunDAO
	force       bool
	log         *zap.SugaredLogger
}

func New(
	settings *config.Settings,
	download Downloader,
	prober Prober,
	local LocalHandler,
	extractor AudioExtractor,
	transcriber api.Transcriber,
	fmtr *formatter.Formatter,
	enh enhancer.Enhancer,
	archiver *storage.Archiver,
	history repository.RunDAO,
	log *zap.SugaredLogger,
) *Pipeline {
	return &Pipeline{
		settings:    settings,
		download:    download,
		prober:      prober,
		local:       local,
		extractor:   extractor,
		transcriber: transcriber,
		formatter:   fmtr,
		enhancer:    enh,
		archiver:    archiver,
		history:     history,
		log:         log,
	}
}

// SetForce disables the already-processed skip.
func (p *Pipeline) SetForce(force bool) {
	p.force = force
}

func (p *Pipeline) Close() error {
	if p.history != nil {
		return p.history.Close()
	}
	return nil
}

// ProcessOne runs the full stage sequence for a single input. The returned
// job is always terminal (done or failed); errors never escape.
func (p *Pipeline) ProcessOne(ctx context.Context, rawInput, language string) *model.Job {
	job := model.NewJob(rawInput)
	job.Task = p.settings.Transcriber.Task
	job.AudioOnly = p.settings.Download.AudioOnly
	job.Language = language
	if job.Language == "" {
		job.Language = p.settings.Transcriber.Language
	}

	p.log.Infow("processing input", "input", rawInput)

	input, err := classify.Classify(rawInput)
	if err != nil {
		p.fail(job, model.StageClassify, err)
		return job
	}
	job.Kind = input.Kind

	if p.history != nil && !p.force {
		if id, err := p.history.CheckIfProcessed(input.Raw); err == nil {
			p.log.Infow("input already processed, skipping", "input", input.Raw, "run_id", id)
			job.Finish()
			return job
		}
	}

	audioPath, err := p.fetchAndExtract(ctx, job, input)
	if err != nil {
		return job // fetchAndExtract already failed the job
	}

	result, err := p.transcribe(ctx, job, audioPath)
	if err != nil {
		return job
	}

	p.format(ctx, job, result)
	if job.State == model.StateFailed {
		return job
	}

	p.archive(ctx, job)

	job.Finish()
	p.record(job, result)
	p.log.Infow("job completed", "input", rawInput, "title", job.Title, "duration", job.Duration())
	return job
}

// fetchAndExtract runs the fetch stage (download or local ingest) and the
// audio extraction stage, returning the audio artifact path. Audio-only
// remote jobs skip video creation entirely.
func (p *Pipeline) fetchAndExtract(ctx context.Context, job *model.Job, input classify.Input) (string, error) {
	if input.Kind == model.InputRemote {
		if p.prober != nil {
			if title, err := p.prober.Probe(ctx, input.Raw); err != nil {
				p.log.Warnw("video page probe failed, continuing", "url", input.Raw, "error", err)
			} else {
				p.log.Infow("video page reachable", "title", title)
			}
		}

		if job.AudioOnly {
			res, err := p.download.DownloadAudio(ctx, input.Raw)
			if err != nil {
				p.fail(job, model.StageFetch, err)
				return "", err
			}
			job.Title = files.SanitizeTitle(res.Title)
			job.State = model.StateFetched
			job.AddArtifact(model.StageFetch, res.Path)
			// The downloaded audio is the extraction artifact as well.
			job.State = model.StateAudioExtracted
			job.AddArtifact(model.StageExtract, res.Path)
			return res.Path, nil
		}

		res, err := p.download.DownloadVideo(ctx, input.Raw)
		if err != nil {
			p.fail(job, model.StageFetch, err)
			return "", err
		}
		job.Title = files.SanitizeTitle(res.Title)
		job.State = model.StateFetched
		job.AddArtifact(model.StageFetch, res.Path)
		return p.extract(ctx, job, res.Path)
	}

	res, err := p.local.Process(input.Raw)
	if err != nil {
		p.fail(job, model.StageFetch, err)
		return "", err
	}
	job.Title = files.SanitizeTitle(res.Title)
	job.State = model.StateFetched
	job.AddArtifact(model.StageFetch, res.Path)
	return p.extract(ctx, job, res.Path)
}

func (p *Pipeline) extract(ctx context.Context, job *model.Job, videoPath string) (string, error) {
	audioPath, err := p.extractor.Extract(ctx, videoPath)
	if err != nil {
		p.fail(job, model.StageExtract, err)
		return "", err
	}
	job.State = model.StateAudioExtracted
	job.AddArtifact(model.StageExtract, audioPath)
	return audioPath, nil
}

func (p *Pipeline) transcribe(ctx context.Context, job *model.Job, audioPath string) (*model.TranscriptResult, error) {
	result, err := p.transcriber.Transcribe(ctx, api.Request{
		AudioPath: audioPath,
		Language:  job.Language,
		Task:      job.Task,
	})
	if err != nil {
		p.fail(job, model.StageTranscribe, err)
		return nil, err
	}

	transcriptPath, err := p.writeTranscriptArtifacts(job.Title, result)
	if err != nil {
		p.fail(job, model.StageTranscribe, err)
		return nil, err
	}

	job.State = model.StateTranscribed
	job.AddArtifact(model.StageTranscribe, transcriptPath)
	return result, nil
}

// writeTranscriptArtifacts writes the plain transcript, the timestamped
// variant, and the details json for one job. Returns the transcript path.
func (p *Pipeline) writeTranscriptArtifacts(title string, result *model.TranscriptResult) (string, error) {
	dir := p.settings.Transcriber.OutputDir

	transcriptPath := filepath.Join(dir, title+"_transcript.txt")
	if err := files.WriteTextFile(transcriptPath, result.Text); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	timestampedPath := filepath.Join(dir, title+"_timestamped.txt")
	if err := files.WriteTextFile(timestampedPath, result.Timestamped()); err != nil {
		return "", fmt.Errorf("write timestamped transcript: %w", err)
	}

	details, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript details: %w", err)
	}
	detailsPath := filepath.Join(dir, title+"_details.json")
	if err := files.WriteTextFile(detailsPath, string(details)); err != nil {
		return "", fmt.Errorf("write transcript details: %w", err)
	}

	return transcriptPath, nil
}

// format runs the basic formatter and, when enabled, the AI enhancement
// pass. Enhancement failures degrade to the basic output with a warning.
func (p *Pipeline) format(ctx context.Context, job *model.Job, result *model.TranscriptResult) {
	if !p.settings.Formatter.EnableBasicFormatting {
		job.State = model.StateFormatted
		return
	}

	formatted, err := p.formatter.Format(result.Text, job.Title)
	if err != nil {
		p.fail(job, model.StageFormat, err)
		return
	}

	if p.enhancer != nil && p.settings.Formatter.EnableAIEnhancement {
		enhanced, err := p.enhancer.Enhance(ctx, result.Text, job.Title)
		if err != nil {
			p.log.Warnw("ai enhancement failed, keeping basic formatting", "error", err)
		} else if err := files.WriteTextFile(formatted.OutputPath, enhanced); err != nil {
			p.log.Warnw("failed to write enhanced document, keeping basic formatting", "error", err)
		}
	}

	job.State = model.StateFormatted
	job.AddArtifact(model.StageFormat, formatted.OutputPath)
}

// archive uploads the transcript and formatted document when an archive is
// configured. Failures are warnings only.
func (p *Pipeline) archive(ctx context.Context, job *model.Job) {
	if p.archiver == nil {
		return
	}

	var paths []string
	if a, ok := job.ArtifactFor(model.StageTranscribe); ok {
		paths = append(paths, a.Path)
	}
	if a, ok := job.ArtifactFor(model.StageFormat); ok {
		paths = append(paths, a.Path)
	}
	if len(paths) == 0 {
		return
	}

	if err := p.archiver.Archive(ctx, job.Title, paths); err != nil {
		p.log.Warnw("artifact archive failed", "error", err)
	}
}

func (p *Pipeline) fail(job *model.Job, stage model.Stage, err error) {
	job.Fail(stage, err)
	p.log.Errorw("job failed", "input", job.RawInput, "stage", stage, "error", err)
	p.record(job, nil)
}

// record persists the job outcome to the history repository.
func (p *Pipeline) record(job *model.Job, result *model.TranscriptResult) {
	if p.history == nil {
		return
	}

	run := model.Run{
		JobID:      job.ID,
		Input:      job.RawInput,
		Kind:       job.Kind.String(),
		Title:      job.Title,
		Language:   job.Language,
		FinishedAt: job.FinishedAt,
	}
	if result != nil {
		run.Transcript = result.Text
		run.Language = result.Language
		run.AudioDuration = int(result.Duration)
	}
	if a, ok := job.ArtifactFor(model.StageFormat); ok {
		run.FormattedPath = a.Path
	}
	if job.State == model.StateFailed {
		run.HasError = true
		run.FailedStage = string(job.FailedStage)
		if job.Err != nil {
			run.ErrorMessage = job.Err.Error()
		}
	}

	if err := p.history.RecordRun(run); err != nil {
		p.log.Warnw("failed to record run history", "error", err)
	}
}
