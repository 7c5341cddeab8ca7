package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

// Ensure SuggestionClient implements the interface.
var _ driven.SuggestionFetcher = (*SuggestionClient)(nil)

// Default suggestion client configuration.
const (
	DefaultSuggestionTimeout = 5 * time.Second
	DefaultSuggestionRate    = 5.0
	DefaultSuggestionBurst   = 5
	DefaultMaxSuggestions    = 10
	defaultRetryAfter        = 30 * time.Second
	maxSuggestionBody        = 64 << 10
)

// SuggestionConfig holds configuration for the suggestion client.
type SuggestionConfig struct {
	// Endpoint is the OpenSearch suggestion URL with a {query} placeholder.
	Endpoint string

	// Timeout bounds each request (default: 5s).
	Timeout time.Duration

	// MaxResults caps returned suggestions (default: 10).
	MaxResults int

	// Limiter throttles requests. Nil uses DefaultSuggestionRate.
	Limiter *RateLimiter
}

// SuggestionClient fetches OpenSearch suggestions: ["query", ["a", "b"]].
type SuggestionClient struct {
	client     *http.Client
	endpoint   string
	maxResults int
	limiter    *RateLimiter
}

// NewSuggestionClient creates a suggestion client.
func NewSuggestionClient(cfg SuggestionConfig) (*SuggestionClient, error) {
	if !strings.Contains(cfg.Endpoint, "{query}") {
		return nil, fmt.Errorf("%w: suggestion endpoint needs a {query} placeholder", domain.ErrInvalidInput)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSuggestionTimeout
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxSuggestions
	}
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(DefaultSuggestionRate, DefaultSuggestionBurst)
	}

	return &SuggestionClient{
		client:     &http.Client{Timeout: cfg.Timeout},
		endpoint:   cfg.Endpoint,
		maxResults: cfg.MaxResults,
		limiter:    cfg.Limiter,
	}, nil
}

// GetSuggestions returns suggestions for query. A throttled call fails
// with ErrRateLimited instead of waiting.
func (c *SuggestionClient) GetSuggestions(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if !c.limiter.Allow() {
		return nil, domain.ErrRateLimited
	}

	reqURL := strings.ReplaceAll(c.endpoint, "{query}", url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.Pause(retryAfter(resp.Header.Get("Retry-After"), defaultRetryAfter))
		return nil, domain.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion error (status %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSuggestionBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	suggestions, err := ParseOpenSearch(body)
	if err != nil {
		return nil, err
	}
	if len(suggestions) > c.maxResults {
		suggestions = suggestions[:c.maxResults]
	}
	return suggestions, nil
}

// ParseOpenSearch decodes an OpenSearch suggestions document. Blank and
// duplicate suggestions are dropped.
func ParseOpenSearch(body []byte) ([]string, error) {
	var doc []json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	if len(doc) < 2 {
		return nil, errors.New("decode suggestions: expected [query, [suggestions]]")
	}

	var raw []string
	if err := json.Unmarshal(doc[1], &raw); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if _, dup := seen[key]; s == "" || dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// retryAfter parses a Retry-After seconds value.
func retryAfter(header string, fallback time.Duration) time.Duration {
	if seconds, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
