package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZaguanLabs/gosocial"
	"github.com/google/uuid"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	maxResponseBytes   = 1 << 20
)

// HTTPConfig holds configuration for the HTTP generator.
type HTTPConfig struct {
	Endpoint  string        // Full URL of the generate endpoint
	Timeout   time.Duration // Per-request timeout (default: 60s)
	UserAgent string        // Default: gosocial.UserAgent()
	Client    *http.Client  // Optional; Timeout is ignored when set
}

// HTTPGenerator POSTs prompt requests to a remote generation API.
// Submit, regenerate and batch all use the same endpoint.
type HTTPGenerator struct {
	endpoint  string
	client    *http.Client
	userAgent string
}

// NewHTTPGenerator creates a generator for cfg.Endpoint.
func NewHTTPGenerator(cfg HTTPConfig) *HTTPGenerator {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = gosocial.UserAgent()
	}

	return &HTTPGenerator{
		endpoint:  cfg.Endpoint,
		client:    client,
		userAgent: ua,
	}
}

// Endpoint returns the configured URL.
func (g *HTTPGenerator) Endpoint() string {
	return g.endpoint
}

// Generate sends req and validates the JSON answer.
func (g *HTTPGenerator) Generate(ctx context.Context, req PromptRequest) (*gosocial.GenerationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &gosocial.GenerationError{Message: "encoding request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &gosocial.GenerationError{Message: "building request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", g.userAgent)
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, &gosocial.GenerationError{
			Message:   "request failed",
			Cause:     err,
			Retryable: ctx.Err() == nil,
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &gosocial.GenerationError{
			Message:    "reading response",
			Cause:      err,
			StatusCode: resp.StatusCode,
			Retryable:  true,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &gosocial.GenerationError{
			Message:    "unexpected status",
			Cause:      statusCause(data),
			StatusCode: resp.StatusCode,
			Retryable:  resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests,
		}
	}

	var result gosocial.GenerationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &gosocial.GenerationError{
			Message:    "malformed response",
			Cause:      err,
			StatusCode: resp.StatusCode,
		}
	}
	if err := result.Validate(); err != nil {
		return nil, &gosocial.GenerationError{
			Message:    "invalid response",
			Cause:      err,
			StatusCode: resp.StatusCode,
		}
	}

	return &result, nil
}

// statusCause extracts a short reason from an error body.
func statusCause(body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return errors.New(payload.Error)
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return nil
	}
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return fmt.Errorf("%s", text)
}

// Verify HTTPGenerator implements Generator
var _ Generator = (*HTTPGenerator)(nil)
