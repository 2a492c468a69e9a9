package llm

import (
	"fmt"
	"strings"
	"time"

	"context"

	"github.com/sashabaranov/go-openai"
)

// OpenAIBackend implements Backend for OpenAI-compatible endpoints.
type OpenAIBackend struct {
	client *openai.Client
	config Config
}

// NewOpenAIBackend creates an OpenAI backend.
func NewOpenAIBackend(config Config) (*OpenAIBackend, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIBackend{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (b *OpenAIBackend) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured.
func (b *OpenAIBackend) IsAvailable(ctx context.Context) bool {
	_, err := b.client.ListModels(ctx)
	return err == nil
}

// Complete sends one chat completion request.
func (b *OpenAIBackend) Complete(ctx context.Context, system, user string) (string, error) {
	model := b.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := b.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}

	timeout := time.Duration(b.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1, // Extraction and judging want stable output
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
