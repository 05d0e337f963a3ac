package enhancer

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"video2md/internal/config"
)

// OpenAIEnhancer calls an OpenAI-compatible chat completion API. Setting
// base_url points it at compatible services such as DeepSeek.
type OpenAIEnhancer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	log         *zap.SugaredLogger
}

func NewOpenAIEnhancer(apiKey string, settings config.EnhancerSettings, log *zap.SugaredLogger) *OpenAIEnhancer {
	clientConfig := openai.DefaultConfig(apiKey)
	if settings.BaseURL != "" {
		clientConfig.BaseURL = settings.BaseURL
	}

	return &OpenAIEnhancer{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       settings.Model,
		maxTokens:   settings.MaxTokens,
		temperature: settings.Temperature,
		log:         log,
	}
}

func (e *OpenAIEnhancer) Enhance(ctx context.Context, text, title string) (string, error) {
	e.log.Infow("requesting ai enhancement", "model", e.model, "title", title)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(text)},
		},
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	})
	if err != nil {
		return "", &EnhancementError{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &EnhancementError{Provider: "openai", Err: fmt.Errorf("empty completion response")}
	}

	return EnsureTitle(resp.Choices[0].Message.Content, title), nil
}
