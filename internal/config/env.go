package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds credentials loaded from the environment. All of them are
// optional; features needing a missing key degrade or are skipped.
type APIKeys struct {
	OpenAI         string
	Gemini         string
	MinioAccessKey string
	MinioSecretKey string
}

// LoadEnv loads environment variables from a .env file if one exists. Keys
// already set in the environment win over the file.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// GetAPIKeys reads and sanity-checks API keys from the environment.
func GetAPIKeys() (*APIKeys, error) {
	keys := &APIKeys{
		OpenAI:         strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Gemini:         strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		MinioAccessKey: strings.TrimSpace(os.Getenv("MINIO_ACCESS_KEY")),
		MinioSecretKey: strings.TrimSpace(os.Getenv("MINIO_SECRET_KEY")),
	}

	if keys.OpenAI != "" && len(keys.OpenAI) < 20 {
		return nil, fmt.Errorf("invalid OPENAI_API_KEY: too short")
	}
	if keys.Gemini != "" && len(keys.Gemini) < 30 {
		return nil, fmt.Errorf("invalid GEMINI_API_KEY: too short")
	}
	return keys, nil
}

// WhisperCppBinary returns the whisper.cpp executable path, or an error if
// the local provider is selected without one configured.
func WhisperCppBinary() (string, error) {
	p := os.Getenv("WHISPER_CPP_BINARY")
	if p == "" {
		return "", fmt.Errorf("WHISPER_CPP_BINARY environment variable must be set for the whisper_cpp provider")
	}
	return p, nil
}

// WhisperCppModelDir returns the directory holding ggml model files.
func WhisperCppModelDir() (string, error) {
	p := os.Getenv("WHISPER_CPP_MODEL_DIR")
	if p == "" {
		return "", fmt.Errorf("WHISPER_CPP_MODEL_DIR environment variable must be set for the whisper_cpp provider")
	}
	return p, nil
}
