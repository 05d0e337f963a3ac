package app

import (
	"fmt"

	"go.uber.org/zap"

	"video2md/internal/app/api"
	openaiwhisper "video2md/internal/app/api/openai"
	"video2md/internal/app/api/whisper_cpp"
	"video2md/internal/app/audio"
	"video2md/internal/app/downloader"
	"video2md/internal/app/enhancer"
	"video2md/internal/app/formatter"
	"video2md/internal/app/localfile"
	"video2md/internal/app/pipeline"
	"video2md/internal/app/repository"
	"video2md/internal/app/repository/pg"
	"video2md/internal/app/repository/sqlite"
	"video2md/internal/app/storage"
	"video2md/internal/config"
)

func provideDownloader(settings *config.Settings, log *zap.SugaredLogger) pipeline.Downloader {
	return downloader.NewYtDlp(settings.Download.OutputDir, settings.Download.Format, log)
}

func provideProber() pipeline.Prober {
	return downloader.NewProber()
}

func provideLocalHandler(settings *config.Settings, log *zap.SugaredLogger) pipeline.LocalHandler {
	return localfile.NewHandler(settings.Download.OutputDir, settings.Download.CopyLocalFiles, log)
}

func provideExtractor(settings *config.Settings, log *zap.SugaredLogger) pipeline.AudioExtractor {
	c := settings.Converter
	return audio.NewExtractor(c.OutputDir, c.AudioFormat, c.Quality, c.Channels, c.SampleRate, log)
}

// provideTranscriber picks the configured speech provider. The local
// whisper.cpp provider needs its binary and model directory from the
// environment; the openai provider needs an API key.
func provideTranscriber(settings *config.Settings, keys *config.APIKeys, log *zap.SugaredLogger) (api.Transcriber, error) {
	switch settings.Transcriber.Provider {
	case "openai":
		if keys.OpenAI == "" {
			return nil, fmt.Errorf("transcriber provider openai requires OPENAI_API_KEY")
		}
		return openaiwhisper.NewRemoteTranscriber(keys.OpenAI, log), nil
	case "whisper_cpp":
		binaryPath, err := config.WhisperCppBinary()
		if err != nil {
			return nil, err
		}
		modelDir, err := config.WhisperCppModelDir()
		if err != nil {
			return nil, err
		}
		return whisper_cpp.NewLocalTranscriber(binaryPath, modelDir, settings.Transcriber.ModelSize, log), nil
	default:
		return nil, fmt.Errorf("unknown transcriber provider %q", settings.Transcriber.Provider)
	}
}

func provideFormatter(settings *config.Settings, log *zap.SugaredLogger) *formatter.Formatter {
	return formatter.New(settings.Formatter.OutputDir, log)
}

// provideEnhancer returns nil when enhancement is disabled or the needed
// key is missing; the pipeline treats nil as "skip the pass".
func provideEnhancer(settings *config.Settings, keys *config.APIKeys, log *zap.SugaredLogger) enhancer.Enhancer {
	if !settings.Formatter.EnableAIEnhancement {
		return nil
	}

	switch settings.Enhancer.Provider {
	case "gemini":
		if keys.Gemini == "" {
			log.Warnw("ai enhancement enabled but GEMINI_API_KEY is not set, disabling")
			return nil
		}
		return enhancer.NewGeminiEnhancer(keys.Gemini, settings.Enhancer, log)
	default:
		if keys.OpenAI == "" {
			log.Warnw("ai enhancement enabled but OPENAI_API_KEY is not set, disabling")
			return nil
		}
		return enhancer.NewOpenAIEnhancer(keys.OpenAI, settings.Enhancer, log)
	}
}

func provideArchiver(settings *config.Settings, keys *config.APIKeys, log *zap.SugaredLogger) (*storage.Archiver, error) {
	return storage.NewArchiver(settings.Storage, keys, log)
}

func provideHistory(settings *config.Settings) (repository.RunDAO, error) {
	return NewHistoryDAO(settings)
}

// NewHistoryDAO opens the configured run-history backend. Shared with the
// export and serve commands, which read history without a pipeline.
func NewHistoryDAO(settings *config.Settings) (repository.RunDAO, error) {
	switch settings.History.Backend {
	case "postgres":
		return pg.NewPostgresDB(settings.History.PostgresDSN)
	default:
		return sqlite.NewSQLiteDB(settings.History.SQLitePath)
	}
}
