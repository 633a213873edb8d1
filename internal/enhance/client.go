package enhance

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"media-studio/internal/logging"
)

// Request describes one call to the external enhancement/generation
// service: a tool (or generation type), binary input or a prompt, and
// provider-specific options.
type Request struct {
	Tool    string            `json:"tool"`
	Prompt  string            `json:"prompt,omitempty"`
	Payload []byte            `json:"payload,omitempty"`
	Options map[string]string `json:"options,omitempty"`
}

// Result is the service's opaque outcome.
type Result struct {
	Success   bool   `json:"success"`
	OutputURL string `json:"outputUrl,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Service is the collaborator interface for AI enhancement and generation.
// The core treats it as an opaque remote call; retry policy, if any, lives
// in the caller.
type Service interface {
	Run(ctx context.Context, req Request) (*Result, error)
}

// Client calls the enhancement service over plain HTTP JSON. No retries,
// no backoff.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an enhancement client for the given endpoint.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type wireRequest struct {
	Tool    string            `json:"tool"`
	Prompt  string            `json:"prompt,omitempty"`
	Payload string            `json:"payload,omitempty"` // base64
	Options map[string]string `json:"options,omitempty"`
}

// Run performs one enhancement call.
func (c *Client) Run(ctx context.Context, req Request) (*Result, error) {
	wire := wireRequest{
		Tool:    req.Tool,
		Prompt:  req.Prompt,
		Options: req.Options,
	}
	if len(req.Payload) > 0 {
		wire.Payload = base64.StdEncoding.EncodeToString(req.Payload)
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("failed to encode enhancement request: %w", err)
	}

	url := c.baseURL + "/v1/enhance"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build enhancement request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	logging.Debug("Enhancement call: tool=%s payload=%d bytes", req.Tool, len(req.Payload))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("enhancement request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("enhancement service returned HTTP %d: %s", resp.StatusCode, respBody)
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode enhancement response: %w", err)
	}
	return &result, nil
}
