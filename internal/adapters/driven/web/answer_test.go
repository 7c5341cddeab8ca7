package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

type stubPrompts map[string]string

func (s stubPrompts) Load(name string) (string, error) { return s[name], nil }

func (s stubPrompts) Reload() {}

func answerBody(text string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":"` + text + `"}]}}]}`
}

func newAnswerClient(t *testing.T, srv *httptest.Server, prompts driven.PromptStore) *AnswerClient {
	t.Helper()
	client, err := NewAnswerClient(AnswerConfig{
		Endpoint: srv.URL + "/v1beta/",
		Model:    "test-model",
		APIKey:   "secret",
		Backoff:  time.Millisecond,
		Prompts:  prompts,
	})
	require.NoError(t, err)
	return client
}

func TestNewAnswerClient_RequiresConfig(t *testing.T) {
	_, err := NewAnswerClient(AnswerConfig{Endpoint: "http://x", Model: "m"})

	assert.ErrorIs(t, err, domain.ErrAnswerUnavailable)
}

func TestNewGemini_Defaults(t *testing.T) {
	g, err := NewGemini("", "", "key", 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultGeminiEndpoint, g.endpoint)
	assert.Equal(t, DefaultGeminiModel, g.Model())
	assert.Equal(t, DefaultAnswerTimeout, g.client.Timeout)
}

func TestGemini_Ping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusOK, false},
		{"bad key", http.StatusForbidden, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotKey string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath, gotKey = r.URL.Path, r.Header.Get("x-goog-api-key")
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			g, err := NewGemini(srv.URL+"/", "m", "secret", time.Second)
			require.NoError(t, err)

			err = g.Ping(context.Background())
			assert.Equal(t, "/models", gotPath)
			assert.Equal(t, "secret", gotKey)
			if tt.wantErr {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, tt.status, se.Code)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAnswerClient_FetchAnswer(t *testing.T) {
	var gotPath, gotKey, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		var req generateRequest
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)
		gotPrompt = req.Contents[0].Parts[0].Text
		_, _ = w.Write([]byte(answerBody(" Paris ")))
	}))
	t.Cleanup(srv.Close)

	client := newAnswerClient(t, srv, stubPrompts{driven.PromptDirectAnswer: "Q: %s"})
	answer, err := client.FetchAnswer(context.Background(), "capital of france", "")

	require.NoError(t, err)
	assert.Equal(t, "Paris", answer)
	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "Q: capital of france", gotPrompt)
}

func TestAnswerClient_Prompt(t *testing.T) {
	client := &AnswerClient{}
	assert.Equal(t, "q", client.prompt("q", ""))
	assert.Equal(t, "prev\n\nq", client.prompt("q", "prev"))

	client.prompts = stubPrompts{driven.PromptFollowUp: "A: %s / Q: %s", driven.PromptDirectAnswer: "no placeholder"}
	assert.Equal(t, "A: prev / Q: q", client.prompt("q", "prev"))
	// Templates with the wrong placeholder count fall back to the raw query.
	assert.Equal(t, "q", client.prompt("q", ""))
}

func TestAnswerClient_Retries(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []int
		wantCalls int32
		wantErr   bool
	}{
		{"recovers after 503", []int{503, 200}, 2, false},
		{"recovers after 429", []int{429, 429, 200}, 3, false},
		{"gives up after three attempts", []int{500, 500, 500, 200}, 3, true},
		{"no retry on 400", []int{400, 200}, 1, true},
		{"no retry on 401", []int{401, 200}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				n := calls.Add(1)
				status := tt.statuses[n-1]
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write([]byte(answerBody("ok")))
				}
			}))
			t.Cleanup(srv.Close)

			answer, err := newAnswerClient(t, srv, nil).FetchAnswer(context.Background(), "q", "")

			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ok", answer)
		})
	}
}

func TestAnswerClient_EmptyResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates", `{"candidates":[]}`},
		{"blank text", answerBody("  ")},
		{"not json", `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			_, err := newAnswerClient(t, srv, nil).FetchAnswer(context.Background(), "q", "")

			assert.Error(t, err)
		})
	}
}

func TestAnswerClient_CancelDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	client, err := NewAnswerClient(AnswerConfig{
		Endpoint: srv.URL, Model: "m", APIKey: "k", Backoff: time.Hour,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.FetchAnswer(ctx, "q", "")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&TransportError{Err: io.EOF}))
	assert.True(t, retryable(fmt.Errorf("wrapped: %w", &StatusError{Code: 502})))
	assert.True(t, retryable(&StatusError{Code: 429}))
	assert.False(t, retryable(&StatusError{Code: 404}))
	assert.False(t, retryable(io.ErrUnexpectedEOF))
}

// scriptedGenerator replies with errs in order, then with answer.
type scriptedGenerator struct {
	errs    []error
	answer  string
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if n := len(g.prompts); n <= len(g.errs) {
		return "", g.errs[n-1]
	}
	return g.answer, nil
}

func TestAnswerClient_CustomGenerator(t *testing.T) {
	gen := &scriptedGenerator{
		errs:   []error{&TransportError{Err: io.EOF}, &StatusError{Code: 529}},
		answer: "Paris",
	}
	client, err := NewAnswerClient(AnswerConfig{
		Generator: gen,
		Backoff:   time.Millisecond,
		Prompts:   stubPrompts{driven.PromptFollowUp: "%s | %s"},
	})
	require.NoError(t, err)

	answer, err := client.FetchAnswer(context.Background(), "and spain?", "France: Paris")

	require.NoError(t, err)
	assert.Equal(t, "Paris", answer)
	assert.Equal(t, []string{"France: Paris | and spain?", "France: Paris | and spain?", "France: Paris | and spain?"}, gen.prompts)
}

func TestAnswerClient_CustomGeneratorPermanentError(t *testing.T) {
	bad := errors.New("model refused")
	gen := &scriptedGenerator{errs: []error{bad}}
	client, err := NewAnswerClient(AnswerConfig{Generator: gen, Backoff: time.Millisecond})
	require.NoError(t, err)

	_, err = client.FetchAnswer(context.Background(), "q", "")

	assert.ErrorIs(t, err, bad)
	assert.Len(t, gen.prompts, 1)
}
