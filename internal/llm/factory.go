package llm

import (
	"fmt"
	"strings"

	"github.com/newsarena/factgraph/internal/model"
	"github.com/newsarena/factgraph/internal/worker"
)

// NewFromConfig builds the configured provider client. An empty provider
// name returns (nil, nil): LLM-backed features degrade per their own rules.
func NewFromConfig(config Config) (*Client, error) {
	var (
		backend Backend
		host    string
		err     error
	)

	switch strings.ToLower(config.Provider) {
	case "openai":
		backend, err = NewOpenAIBackend(config)
		host = "api.openai.com"
		if config.BaseURL != "" {
			host = config.BaseURL
		}
	case "ollama":
		backend, err = NewOllamaBackend(config)
		host = "localhost:11434"
		if config.BaseURL != "" {
			host = config.BaseURL
		}
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	var limiter *worker.Limiter
	if config.RateLimit > 0 {
		limiter = worker.NewLimiter(config.RateLimit, 3)
	}
	return NewClient(backend, limiter, host), nil
}

// ConfigFromModel converts the app-level LLM config.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
		RateLimit: mc.RateLimit,
	}
}
