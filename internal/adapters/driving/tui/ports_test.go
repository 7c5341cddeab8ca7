package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// MockSourceSearch implements driving.SourceSearch for testing.
type MockSourceSearch struct {
	Matches []domain.Match
}

func (m *MockSourceSearch) Source() domain.SourceKind { return domain.SourceApps }

func (m *MockSourceSearch) Refresh(context.Context, bool) (bool, error) { return false, nil }

func (m *MockSourceSearch) DeriveMatches(context.Context, string, int) []domain.Match {
	return m.Matches
}

func (m *MockSourceSearch) Available(context.Context) []domain.Candidate { return nil }

func (m *MockSourceSearch) Pinned(context.Context, map[string]struct{}) []domain.Candidate {
	return nil
}

func (m *MockSourceSearch) Lookup(string) (domain.Candidate, bool) {
	return domain.Candidate{}, false
}

// MockSecondarySearch implements driving.SecondarySearch for testing.
type MockSecondarySearch struct {
	version uint64
	states  chan domain.SecondaryState
	closed  bool
}

func (m *MockSecondarySearch) Perform(context.Context, string) uint64 {
	m.version++
	return m.version
}

func (m *MockSecondarySearch) Subscribe() (<-chan domain.SecondaryState, func()) {
	if m.states == nil {
		m.states = make(chan domain.SecondaryState, 1)
	}
	return m.states, func() { m.closed = true }
}

func (m *MockSecondarySearch) State() domain.SecondaryState { return domain.SecondaryState{} }

func (m *MockSecondarySearch) Close() {}

// MockEngineService implements driving.EngineService for testing.
type MockEngineService struct{}

func (m *MockEngineService) BuildSearchURL(query string, engine domain.SearchEngine, _ string) (string, error) {
	return "https://" + string(engine) + ".test/?q=" + query, nil
}

func (m *MockEngineService) ResolveShortcut(string) (*domain.ShortcutMatch, bool) { return nil, false }

func (m *MockEngineService) ActiveShortcuts() map[domain.SearchEngine]string { return nil }

func (m *MockEngineService) SetShortcut(domain.SearchEngine, string) error { return nil }

func (m *MockEngineService) EnabledEngines() []domain.EngineDefinition { return nil }

func (m *MockEngineService) SearchURLs(string) []domain.EngineURL { return nil }

func (m *MockEngineService) DefaultEngine() domain.SearchEngine { return domain.EngineGoogle }

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports Ports
		want  error
	}{
		{
			name: "all required set",
			ports: Ports{
				Apps:      &MockSourceSearch{},
				Secondary: &MockSecondarySearch{},
				Engines:   &MockEngineService{},
			},
		},
		{
			name:  "missing apps",
			ports: Ports{Secondary: &MockSecondarySearch{}, Engines: &MockEngineService{}},
			want:  ErrMissingAppsSource,
		},
		{
			name:  "missing secondary",
			ports: Ports{Apps: &MockSourceSearch{}, Engines: &MockEngineService{}},
			want:  ErrMissingSecondarySearch,
		},
		{
			name:  "missing engines",
			ports: Ports{Apps: &MockSourceSearch{}, Secondary: &MockSecondarySearch{}},
			want:  ErrMissingEngineService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
