package enhancer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"video2md/internal/config"
)

// GeminiEnhancer uses the Google GenAI API as the rewrite backend.
type GeminiEnhancer struct {
	apiKey      string
	model       string
	temperature float32
	log         *zap.SugaredLogger
}

func NewGeminiEnhancer(apiKey string, settings config.EnhancerSettings, log *zap.SugaredLogger) *GeminiEnhancer {
	model := settings.Model
	if model == "" || model == "deepseek-chat" {
		model = "gemini-2.0-flash"
	}
	return &GeminiEnhancer{
		apiKey:      apiKey,
		model:       model,
		temperature: settings.Temperature,
		log:         log,
	}
}

func (e *GeminiEnhancer) Enhance(ctx context.Context, text, title string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  e.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &EnhancementError{Provider: "gemini", Err: err}
	}

	e.log.Infow("requesting ai enhancement", "model", e.model, "title", title)

	temperature := e.temperature
	resp, err := client.Models.GenerateContent(ctx, e.model,
		genai.Text(BuildPrompt(text)),
		&genai.GenerateContentConfig{Temperature: &temperature},
	)
	if err != nil {
		return "", &EnhancementError{Provider: "gemini", Err: err}
	}

	out := resp.Text()
	if out == "" {
		return "", &EnhancementError{Provider: "gemini", Err: fmt.Errorf("empty model response")}
	}
	return EnsureTitle(out, title), nil
}
