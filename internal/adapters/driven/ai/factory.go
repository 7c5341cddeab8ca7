// Package ai builds the direct-answer client for the configured provider.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/sercha-launcher/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/sercha-launcher/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/sercha-launcher/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/web"
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for provider validation.
const pingTimeout = 5 * time.Second

// Provider is a generator that can also check its credentials cheaply.
type Provider interface {
	web.Generator
	Ping(ctx context.Context) error
	Model() string
}

// CreateProvider returns the generator for settings.Provider. Unconfigured
// settings report domain.ErrAnswerUnavailable.
func CreateProvider(settings domain.AnswerSettings) (Provider, error) {
	if !settings.IsConfigured() {
		return nil, domain.ErrAnswerUnavailable
	}

	switch settings.Provider {
	case domain.AnswerGemini:
		return web.NewGemini(settings.Endpoint, settings.Model, settings.APIKey, 0)

	case domain.AnswerOpenAI:
		return openaillm.New(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.Endpoint,
			Model:   settings.Model,
		})

	case domain.AnswerAnthropic:
		return anthropicllm.New(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.Endpoint,
			Model:   settings.Model,
		})

	case domain.AnswerOllama:
		return ollamallm.New(ollamallm.Config{
			BaseURL: settings.Endpoint,
			Model:   settings.Model,
		}), nil

	default:
		return nil, fmt.Errorf("%w: unsupported answer provider %q", domain.ErrInvalidInput, settings.Provider)
	}
}

// NewAnswerClient builds a retrying answer client on the configured provider.
func NewAnswerClient(settings domain.AnswerSettings, prompts driven.PromptStore) (*web.AnswerClient, error) {
	provider, err := CreateProvider(settings)
	if err != nil {
		return nil, err
	}
	return web.NewAnswerClient(web.AnswerConfig{
		Generator: provider,
		Prompts:   prompts,
	})
}

// ValidateAnswerConfig creates the provider and pings it.
func ValidateAnswerConfig(ctx context.Context, settings domain.AnswerSettings) error {
	provider, err := CreateProvider(settings)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := provider.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s unreachable (%w)", domain.ErrAnswerUnavailable, settings.Provider, err)
	}
	return nil
}
