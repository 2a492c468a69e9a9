// Package sandbox is the client for the external sandboxed code-execution
// collaborator used for statistical and logical checks. Execution happens
// out of process behind an HTTP API with an enforced deadline; this package
// never evaluates anything locally.
package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a sandbox runner endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type runRequest struct {
	Expression string `json:"expression"`
}

type runResponse struct {
	Result     string  `json:"result"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

// New creates a sandbox client. The timeout bounds every run.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// Resolve implements the verifier's compute tool: it submits the claim
// expression to the sandbox and returns the result with the sandbox's
// confidence estimate. Deadline expiry surfaces as an error and is handled
// as a tool failure upstream.
func (c *Client) Resolve(ctx context.Context, expression string) (string, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(runRequest{Expression: expression})
	if err != nil {
		return "", 0, fmt.Errorf("marshal sandbox request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/run", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("create sandbox request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("sandbox request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("read sandbox response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("sandbox returned status %d", resp.StatusCode)
	}

	var parsed runResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", 0, fmt.Errorf("decode sandbox response: %w", err)
	}
	if parsed.Error != "" {
		return "", 0, fmt.Errorf("sandbox execution: %s", parsed.Error)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return "", 0, fmt.Errorf("sandbox returned out-of-range confidence %f", parsed.Confidence)
	}
	return parsed.Result, parsed.Confidence, nil
}
