package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/web"
)

func TestNew_Defaults(t *testing.T) {
	g := New(Config{})

	assert.Equal(t, DefaultBaseURL, g.baseURL)
	assert.Equal(t, DefaultModel, g.Model())
	assert.Equal(t, DefaultTimeout, g.client.Timeout)
}

func TestGenerator_Generate(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"Paris","done":true}`))
	}))
	defer srv.Close()

	answer, err := New(Config{BaseURL: srv.URL, Model: "qwen"}).Generate(context.Background(), "capital of france")
	require.NoError(t, err)
	assert.Equal(t, "Paris", answer)
	assert.Equal(t, "qwen", got.Model)
	assert.False(t, got.Stream)
}

func TestGenerator_GenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"model missing", http.StatusNotFound, `{"error":"model not found"}`},
		{"empty answer", http.StatusOK, `{"response":"","done":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(Config{BaseURL: srv.URL}).Generate(context.Background(), "q")
			require.Error(t, err)
			var se *web.StatusError
			assert.Equal(t, tt.status != http.StatusOK, errors.As(err, &se))
		})
	}
}

func TestGenerator_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	assert.NoError(t, New(Config{BaseURL: srv.URL}).Ping(context.Background()))

	url := srv.URL
	srv.Close()
	assert.Error(t, New(Config{BaseURL: url}).Ping(context.Background()))
}
