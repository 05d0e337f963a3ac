package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Settings is the immutable configuration snapshot loaded once per process
// and passed through the pipeline. Values absent from the config file keep
// their defaults.
type Settings struct {
	Download    DownloadSettings    `yaml:"download"`
	Converter   ConverterSettings   `yaml:"converter"`
	Transcriber TranscriberSettings `yaml:"transcriber"`
	Formatter   FormatterSettings   `yaml:"formatter"`
	Enhancer    EnhancerSettings    `yaml:"enhancer"`
	History     HistorySettings     `yaml:"history"`
	Storage     StorageSettings     `yaml:"storage"`
	Logging     LoggingSettings     `yaml:"logging"`
}

type DownloadSettings struct {
	OutputDir      string `yaml:"output_dir"`
	Format         string `yaml:"format"`
	AudioOnly      bool   `yaml:"audio_only"`
	CopyLocalFiles bool   `yaml:"copy_local_files"`
}

type ConverterSettings struct {
	OutputDir   string `yaml:"output_dir"`
	AudioFormat string `yaml:"audio_format" validate:"oneof=wav mp3 m4a"`
	Quality     string `yaml:"quality"`
	Channels    int    `yaml:"channels" validate:"min=1,max=2"`
	SampleRate  int    `yaml:"sample_rate" validate:"min=8000"`
}

type TranscriberSettings struct {
	OutputDir string `yaml:"output_dir"`
	Provider  string `yaml:"provider" validate:"oneof=whisper_cpp openai"`
	ModelSize string `yaml:"model_size" validate:"oneof=tiny base small medium large large-v2 large-v3"`
	Language  string `yaml:"language"`
	Task      string `yaml:"task" validate:"oneof=transcribe translate"`
}

type FormatterSettings struct {
	OutputDir             string   `yaml:"output_dir"`
	EnableBasicFormatting bool     `yaml:"enable_basic_formatting"`
	EnableAIEnhancement   bool     `yaml:"enable_ai_enhancement"`
	OutputFormats         []string `yaml:"output_formats"`
}

type EnhancerSettings struct {
	Provider    string  `yaml:"provider" validate:"oneof=openai gemini"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

type HistorySettings struct {
	Backend     string `yaml:"backend" validate:"oneof=sqlite postgres"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

type StorageSettings struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Bucket   string `yaml:"bucket"`
	UseSSL   bool   `yaml:"use_ssl"`
}

type LoggingSettings struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// Defaults returns the documented default configuration.
func Defaults() *Settings {
	return &Settings{
		Download: DownloadSettings{
			OutputDir:      "output/videos",
			Format:         "best[height<=720]",
			AudioOnly:      false,
			CopyLocalFiles: true,
		},
		Converter: ConverterSettings{
			OutputDir:   "output/audios",
			AudioFormat: "wav",
			Quality:     "192k",
			Channels:    1,
			SampleRate:  16000,
		},
		Transcriber: TranscriberSettings{
			OutputDir: "output/texts",
			Provider:  "whisper_cpp",
			ModelSize: "base",
			Language:  "",
			Task:      "transcribe",
		},
		Formatter: FormatterSettings{
			OutputDir:             "output/formatted",
			EnableBasicFormatting: true,
			EnableAIEnhancement:   false,
			OutputFormats:         []string{"md"},
		},
		Enhancer: EnhancerSettings{
			Provider:    "openai",
			Model:       "deepseek-chat",
			BaseURL:     "https://api.deepseek.com/v1",
			MaxTokens:   4000,
			Temperature: 0.7,
		},
		History: HistorySettings{
			Backend:    "sqlite",
			SQLitePath: "data/history.db",
		},
		Storage: StorageSettings{
			Enabled: false,
			UseSSL:  true,
		},
		Logging: LoggingSettings{
			Level: "info",
			File:  "logs/v2md.log",
		},
	}
}

// Load reads the yaml config at path on top of the defaults. A missing
// file, or one that fails to parse, falls back to the defaults so the
// pipeline can still run. Invalid field values are an error.
func Load(path string) (*Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		// Keep going with defaults rather than aborting the run.
		return Defaults(), nil
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks field-level constraints with struct tags.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
