package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/newsarena/factgraph/internal/model"
	"github.com/newsarena/factgraph/internal/worker"
)

// Client layers the domain operations over a completion backend and
// rate-limits outbound calls per provider host.
type Client struct {
	backend Backend
	limiter *worker.Limiter
	host    string
}

// NewClient wraps a backend. The limiter may be nil (no limiting).
func NewClient(backend Backend, limiter *worker.Limiter, host string) *Client {
	return &Client{backend: backend, limiter: limiter, host: host}
}

// Name returns the underlying provider name.
func (c *Client) Name() string {
	return c.backend.Name()
}

// IsAvailable reports backend reachability.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return c.backend.IsAvailable(ctx)
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.host); err != nil {
			return "", err
		}
	}
	return c.backend.Complete(ctx, system, user)
}

// Decompose splits a claim into atomic sub-claims.
func (c *Client) Decompose(ctx context.Context, claim string) ([]string, error) {
	out, err := c.complete(ctx, systemDecompose, fmt.Sprintf(promptDecompose, claim))
	if err != nil {
		return nil, fmt.Errorf("decompose: %w", err)
	}
	return parseStringList(out)
}

// Refine produces follow-up sub-claims conditioned on the evidence gap.
func (c *Client) Refine(ctx context.Context, claim, evidence string) ([]string, error) {
	out, err := c.complete(ctx, systemDecompose, fmt.Sprintf(promptRefine, claim, evidence))
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}
	return parseStringList(out)
}

// Classify routes a sub-claim to exactly one tool.
func (c *Client) Classify(ctx context.Context, subClaim string) (model.ToolKind, error) {
	out, err := c.complete(ctx, systemClassify, fmt.Sprintf(promptClassify, subClaim))
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}
	switch {
	case strings.Contains(strings.ToLower(out), "code"):
		return model.ToolCodeInterpreter, nil
	case strings.Contains(strings.ToLower(out), "knowledge"):
		return model.ToolKnowledgeSearch, nil
	default:
		return "", fmt.Errorf("classify: unrecognized tool %q", out)
	}
}

// Judge scores a payload against a rubric. The raw model output is parsed
// as a number; range validation is the caller's responsibility, which keeps
// the untrusted-value handling in one place (the metrics engine).
func (c *Client) Judge(ctx context.Context, rubric, payload string) (float64, error) {
	out, err := c.complete(ctx, rubric, payload)
	if err != nil {
		return 0, fmt.Errorf("judge: %w", err)
	}
	v, ok := parseNumber(out)
	if !ok {
		return 0, fmt.Errorf("judge: non-numeric response %q", truncate(out, 80))
	}
	return v, nil
}

// ExtractTriplets pulls (subject, relation, object) facts from text.
func (c *Client) ExtractTriplets(ctx context.Context, text string) ([]model.RawTriple, error) {
	out, err := c.complete(ctx, systemExtract, fmt.Sprintf(promptExtract, text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrExtractionFailure, err)
	}
	triples, err := parseTriples(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrExtractionFailure, err)
	}
	return triples, nil
}

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// parseStringList reads a JSON array of strings out of model output,
// tolerating surrounding prose and code fences.
func parseStringList(out string) ([]string, error) {
	raw := jsonArrayPattern.FindString(out)
	if raw == "" {
		return nil, fmt.Errorf("no JSON array in response %q", truncate(out, 80))
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("parse string list: %w", err)
	}
	cleaned := items[:0]
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned, nil
}

// parseTriples reads a JSON array of {subject, relation, object} objects.
func parseTriples(out string) ([]model.RawTriple, error) {
	raw := jsonArrayPattern.FindString(out)
	if raw == "" {
		return nil, fmt.Errorf("no JSON array in response %q", truncate(out, 80))
	}
	var triples []model.RawTriple
	if err := json.Unmarshal([]byte(raw), &triples); err != nil {
		return nil, fmt.Errorf("parse triples: %w", err)
	}
	cleaned := triples[:0]
	for _, t := range triples {
		if t.Subject != "" && t.Relation != "" && t.Object != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned, nil
}

var numberOutPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// parseNumber pulls the first numeric token out of model output.
func parseNumber(out string) (float64, bool) {
	m := numberOutPattern.FindString(out)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
