// Package llm is the language-reasoning collaborator: decomposition,
// routing, qualitative judging, and triplet extraction, all over a
// provider-agnostic completion backend. Model output is untrusted and is
// parsed and range-checked before anything downstream sees it.
package llm

import "context"

// Backend is a minimal completion interface one provider implements.
type Backend interface {
	// Name returns the provider name.
	Name() string

	// Complete sends one system+user exchange and returns the raw text.
	Complete(ctx context.Context, system, user string) (string, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for hosted providers.
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama).
	BaseURL string

	// Timeout for API requests, seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int

	// RateLimit in requests/sec against the provider host.
	RateLimit float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   60,
		MaxTokens: 2048,
		RateLimit: 2,
	}
}
