package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Search: &mockSearchService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("search only is valid", func(t *testing.T) {
		ports := &Ports{
			Search: &mockSearchService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Search:  &mockSearchService{},
			Engines: &mockEngineService{},
			Answer:  &mockAnswerService{},
			Sources: map[domain.SourceKind]driving.SourceSearch{
				domain.SourceApps: &mockSource{kind: domain.SourceApps},
			},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}

func connect(t *testing.T, ports *Ports) *mcp.ClientSession {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestServer_RegistersToolsForPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  []string
	}{
		{"search only", &Ports{Search: &mockSearchService{}}, []string{"search"}},
		{"all ports", &Ports{
			Search:  &mockSearchService{},
			Engines: &mockEngineService{},
			Answer:  &mockAnswerService{},
		}, []string{"ask", "search", "search_url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := connect(t, tt.ports)

			res, err := cs.ListTools(context.Background(), nil)
			require.NoError(t, err)
			names := make([]string, 0, len(res.Tools))
			for _, tool := range res.Tools {
				names = append(names, tool.Name)
			}
			sort.Strings(names)
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestServer_Instructions(t *testing.T) {
	cs := connect(t, &Ports{Search: &mockSearchService{}})

	assert.Contains(t, cs.InitializeResult().Instructions, "launcher")
	assert.Equal(t, "sercha-launcher", cs.InitializeResult().ServerInfo.Name)
}

func TestServer_Handler(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}})
	require.NoError(t, err)

	srv := httptest.NewServer(server.Handler())
	defer srv.Close()

	// A bare GET without a session is rejected rather than served.
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.GreaterOrEqual(t, resp.StatusCode, 400)
}

func TestServer_RunHTTPStopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.RunHTTP(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-done)
}
