package model

import "time"

// Config holds the full runtime configuration.
// Hierarchy (highest to lowest priority): CLI flags, FACTGRAPH_* env vars,
// config file (~/.factgraph/config.yaml), defaults.
type Config struct {
	Retrieval RetrievalConfig `yaml:"retrieval" mapstructure:"retrieval"`
	Verify    VerifyConfig    `yaml:"verify" mapstructure:"verify"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Graph     GraphConfig     `yaml:"graph" mapstructure:"graph"`
	Dense     DenseConfig     `yaml:"dense" mapstructure:"dense"`
	Sandbox   SandboxConfig   `yaml:"sandbox" mapstructure:"sandbox"`
	Votes     VotesConfig     `yaml:"votes" mapstructure:"votes"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// RetrievalConfig controls rank fusion. TopN caps each input list; K is the
// RRF constant. Both are explicit so fused output is reproducible.
type RetrievalConfig struct {
	TopN int `yaml:"top_n" mapstructure:"top_n"`
	K    int `yaml:"k" mapstructure:"k"`
}

// VerifyConfig bounds the recursive verifier.
type VerifyConfig struct {
	MaxDepth    int           `yaml:"max_depth" mapstructure:"max_depth"`
	Threshold   float64       `yaml:"threshold" mapstructure:"threshold"` // Recurse below this confidence
	ToolTimeout time.Duration `yaml:"tool_timeout" mapstructure:"tool_timeout"`
	FanOut      int           `yaml:"fan_out" mapstructure:"fan_out"` // Concurrent siblings per level
}

// LLMConfig configures the language-reasoning collaborator.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "ollama"
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // From env only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // Seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests/sec per host
}

// GraphConfig selects the graph-store backend for isolation sessions.
type GraphConfig struct {
	Backend  string `yaml:"backend" mapstructure:"backend"` // "memory" or "neo4j"
	URI      string `yaml:"uri" mapstructure:"uri"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"-" mapstructure:"-"`
}

// DenseConfig selects the dense-index backend.
type DenseConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"` // "memory" or "weaviate"
	URL     string `yaml:"url" mapstructure:"url"`
	Class   string `yaml:"class" mapstructure:"class"`
}

// SandboxConfig configures the sandboxed code-execution collaborator.
type SandboxConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// VotesConfig selects the vote-store backend.
type VotesConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"` // "memory" or "badger"
	Path    string `yaml:"path" mapstructure:"path"`
}

// CacheConfig controls triplet-extraction memoization.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Retrieval: RetrievalConfig{TopN: 5, K: 60},
		Verify: VerifyConfig{
			MaxDepth:    3,
			Threshold:   0.8,
			ToolTimeout: 60 * time.Second,
			FanOut:      4,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   60,
			MaxTokens: 2048,
			RateLimit: 2,
		},
		Graph:   GraphConfig{Backend: "memory"},
		Dense:   DenseConfig{Backend: "memory", Class: "NewsChunk"},
		Sandbox: SandboxConfig{Timeout: 30 * time.Second},
		Votes:   VotesConfig{Backend: "memory"},
		Cache:   CacheConfig{Enabled: true, TTL: 24 * time.Hour},
		Output:  OutputConfig{},
	}
}
