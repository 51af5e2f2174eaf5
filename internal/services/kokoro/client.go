package kokoro

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "http://localhost:8880"
	defaultModel       = "kokoro"
	defaultFormat      = "wav"
	defaultHTTPTimeout = 300 * time.Second
)

// Client wraps the Kokoro speech synthesis API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the Kokoro client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
// Synthesis of a long turn can take minutes, so the bound is generous.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a Kokoro API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Request describes one synthesis call.
type Request struct {
	Text  string
	Voice string
	Speed float64
}

type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
}

// Synthesize renders one dialogue turn to audio and returns the raw
// encoded bytes.
func (c *Client) Synthesize(ctx context.Context, request Request) ([]byte, error) {
	text := strings.TrimSpace(request.Text)
	if text == "" {
		return nil, errors.New("kokoro synthesize: text required")
	}
	voice := strings.TrimSpace(request.Voice)
	if voice == "" {
		return nil, errors.New("kokoro synthesize: voice required")
	}
	speed := request.Speed
	if speed <= 0 {
		speed = 1.0
	}

	endpoint, err := url.JoinPath(c.baseURL, "/v1/audio/speech")
	if err != nil {
		return nil, fmt.Errorf("kokoro synthesize: build url: %w", err)
	}
	encoded, err := json.Marshal(speechRequest{
		Model:          defaultModel,
		Input:          text,
		Voice:          voice,
		ResponseFormat: defaultFormat,
		Speed:          speed,
	})
	if err != nil {
		return nil, fmt.Errorf("kokoro synthesize: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("kokoro synthesize: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kokoro synthesize: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("kokoro synthesize: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("kokoro synthesize: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if len(body) == 0 {
		return nil, errors.New("kokoro synthesize: empty audio response")
	}
	return body, nil
}

// Health probes the service's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	endpoint, err := url.JoinPath(c.baseURL, "/health")
	if err != nil {
		return fmt.Errorf("kokoro health: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("kokoro health: request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("kokoro health: request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("kokoro health: http %d", resp.StatusCode)
	}
	return nil
}
