package web

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

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Ensure AnswerClient implements the interface.
var _ driven.AnswerFetcher = (*AnswerClient)(nil)

// Default answer client configuration.
const (
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel    = "gemini-2.0-flash"
	DefaultAnswerTimeout  = 30 * time.Second
	DefaultMaxAttempts    = 3
	DefaultBackoff        = 500 * time.Millisecond
	backoffFactor         = 2
)

// AnswerConfig holds configuration for the direct-answer client.
type AnswerConfig struct {
	// Endpoint is the API base URL (default: DefaultGeminiEndpoint).
	Endpoint string

	// Model is the model name (default: DefaultGeminiModel).
	Model string

	// APIKey authenticates requests.
	APIKey string

	// Timeout bounds each attempt (default: 30s).
	Timeout time.Duration

	// MaxAttempts caps attempts including the first (default: 3).
	MaxAttempts int

	// Backoff is the delay before the second attempt; it doubles after
	// each further failure (default: 500ms).
	Backoff time.Duration

	// Prompts supplies the prompt templates. Nil uses built-in framing.
	Prompts driven.PromptStore

	// Generator sends prompts to a model API. Nil uses Gemini at Endpoint,
	// which then needs APIKey.
	Generator Generator
}

// Generator sends one prompt to a model API and returns its reply.
// Implementations report HTTP failures as *StatusError and network
// failures as *TransportError so the client can decide whether to retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnswerClient asks a model API for a short answer, retrying transient
// failures.
type AnswerClient struct {
	gen         Generator
	maxAttempts int
	backoff     time.Duration
	prompts     driven.PromptStore
}

// Gemini speaks the generateContent API.
type Gemini struct {
	client   *http.Client
	endpoint string
	model    string
	apiKey   string
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// StatusError is a non-200 response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("answer API error (status %d): %s", e.Code, e.Body)
}

// NewStatusError reads up to 1KB of resp's body into a StatusError.
func NewStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// TransportError is a failure to get any response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "send request: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// NewAnswerClient creates a direct-answer client.
func NewAnswerClient(cfg AnswerConfig) (*AnswerClient, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultAnswerTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}

	gen := cfg.Generator
	if gen == nil {
		g, err := NewGemini(cfg.Endpoint, cfg.Model, cfg.APIKey, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		gen = g
	}

	return &AnswerClient{
		gen:         gen,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		prompts:     cfg.Prompts,
	}, nil
}

// FetchAnswer asks query, retrying transient failures with exponential
// backoff. Client errors other than 429 are returned at once.
func (c *AnswerClient) FetchAnswer(ctx context.Context, query, extra string) (string, error) {
	prompt := c.prompt(query, extra)

	delay := c.backoff
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		answer, err := c.gen.Generate(ctx, prompt)
		if err == nil {
			return answer, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !retryable(err) || attempt == c.maxAttempts {
			break
		}

		logger.Debug("answer: attempt %d failed, retrying in %s: %v", attempt, delay, err)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
		delay *= backoffFactor
	}
	return "", lastErr
}

// NewGemini creates a generateContent client. Empty endpoint and model use
// the defaults.
func NewGemini(endpoint, model, apiKey string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, domain.ErrAnswerUnavailable
	}
	if endpoint == "" {
		endpoint = DefaultGeminiEndpoint
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if timeout <= 0 {
		timeout = DefaultAnswerTimeout
	}
	return &Gemini{
		client:   &http.Client{Timeout: timeout},
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		apiKey:   apiKey,
	}, nil
}

// Ping lists models to check the key without running inference.
func (c *Gemini) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("gemini: failed to create ping request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gemini: %w", NewStatusError(resp))
	}
	return nil
}

// Model returns the model name.
func (c *Gemini) Model() string {
	return c.model
}

// Generate sends prompt as one user turn.
func (c *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewStatusError(resp)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(genResp.Candidates) == 0 {
		return "", errors.New("answer API returned no candidates")
	}

	var b strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	answer := strings.TrimSpace(b.String())
	if answer == "" {
		return "", errors.New("answer API returned an empty answer")
	}
	return answer, nil
}

func (c *AnswerClient) prompt(query, extra string) string {
	name, args := driven.PromptDirectAnswer, []any{query}
	if extra != "" {
		name, args = driven.PromptFollowUp, []any{extra, query}
	}
	if c.prompts != nil {
		if tmpl, err := c.prompts.Load(name); err == nil && strings.Count(tmpl, "%s") == len(args) {
			return fmt.Sprintf(tmpl, args...)
		}
	}
	if extra != "" {
		return extra + "\n\n" + query
	}
	return query
}

// retryable reports whether err is worth another attempt: network errors,
// 429 and 5xx.
func retryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return false
}
