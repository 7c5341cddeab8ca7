package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anthropicllm "github.com/custodia-labs/sercha-launcher/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/sercha-launcher/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/sercha-launcher/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/web"
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

func TestCreateProvider(t *testing.T) {
	tests := []struct {
		name      string
		settings  domain.AnswerSettings
		wantModel string
		wantType  any
	}{
		{
			name:      "gemini defaults",
			settings:  domain.AnswerSettings{Provider: domain.AnswerGemini, APIKey: "k"},
			wantModel: web.DefaultGeminiModel,
			wantType:  &web.Gemini{},
		},
		{
			name:      "openai",
			settings:  domain.AnswerSettings{Provider: domain.AnswerOpenAI, APIKey: "k"},
			wantModel: openaillm.DefaultModel,
			wantType:  &openaillm.Generator{},
		},
		{
			name:      "anthropic with model",
			settings:  domain.AnswerSettings{Provider: domain.AnswerAnthropic, APIKey: "k", Model: "claude-x"},
			wantModel: "claude-x",
			wantType:  &anthropicllm.Generator{},
		},
		{
			name:      "ollama without key",
			settings:  domain.AnswerSettings{Provider: domain.AnswerOllama},
			wantModel: ollamallm.DefaultModel,
			wantType:  &ollamallm.Generator{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CreateProvider(tt.settings)
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, p)
			assert.Equal(t, tt.wantModel, p.Model())
		})
	}
}

func TestCreateProvider_Unconfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.AnswerSettings
	}{
		{"empty", domain.AnswerSettings{}},
		{"missing key", domain.AnswerSettings{Provider: domain.AnswerOpenAI}},
		{"unknown provider", domain.AnswerSettings{Provider: "watson", APIKey: "k"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateProvider(tt.settings)
			assert.ErrorIs(t, err, domain.ErrAnswerUnavailable)
		})
	}
}

func TestNewAnswerClient_UsesProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var body struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "capital of france", body.Prompt)
		_, _ = w.Write([]byte(`{"response":" Paris ","done":true}`))
	}))
	defer srv.Close()

	client, err := NewAnswerClient(domain.AnswerSettings{
		Provider: domain.AnswerOllama,
		Endpoint: srv.URL,
	}, nil)
	require.NoError(t, err)

	answer, err := client.FetchAnswer(context.Background(), "capital of france", "")
	require.NoError(t, err)
	assert.Equal(t, "Paris", answer)
}

func TestConfigValidator_ValidateAnswer(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"reachable", http.StatusOK, false},
		{"rejected", http.StatusUnauthorized, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/models", r.URL.Path)
				assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := NewConfigValidator().ValidateAnswer(context.Background(), domain.AnswerSettings{
				Provider: domain.AnswerOpenAI,
				Endpoint: srv.URL,
				APIKey:   "k",
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrAnswerUnavailable)
				var se *web.StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, tt.status, se.Code)
				return
			}
			assert.NoError(t, err)
		})
	}
}
