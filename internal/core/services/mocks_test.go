package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// --- Mock implementations ---

// mockProvider implements driven.CandidateProvider for testing.
type mockProvider struct {
	mu        sync.Mutex
	kind      domain.SourceKind
	items     []domain.Candidate
	unloaded  []domain.Candidate // returned by Search only
	loadErr   error
	searchErr error
	loads     atomic.Int64
	searches  atomic.Int64
}

func newMockProvider(kind domain.SourceKind, names ...string) *mockProvider {
	p := &mockProvider{kind: kind}
	for _, n := range names {
		p.items = append(p.items, domain.Candidate{ID: string(kind) + ":" + n, Source: kind, DisplayText: n})
	}
	return p
}

func (m *mockProvider) Source() domain.SourceKind {
	return m.kind
}

func (m *mockProvider) LoadAll(_ context.Context) ([]domain.Candidate, error) {
	m.loads.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.Candidate, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *mockProvider) Search(_ context.Context, query string, limit int) ([]domain.Candidate, error) {
	m.searches.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	var out []domain.Candidate
	for _, c := range append(append([]domain.Candidate{}, m.items...), m.unloaded...) {
		if strings.Contains(strings.ToLower(c.DisplayText), query) {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockProvider) set(items []domain.Candidate, err error) {
	m.mu.Lock()
	m.items = items
	m.loadErr = err
	m.mu.Unlock()
}

// mockNotifyingProvider adds driven.ChangeNotifier.
type mockNotifyingProvider struct {
	*mockProvider
	ch chan struct{}
}

func (m *mockNotifyingProvider) Changes() <-chan struct{} {
	return m.ch
}

// mockWatchingProvider also needs its watch started.
type mockWatchingProvider struct {
	*mockNotifyingProvider
	started chan struct{}
}

func (m *mockWatchingProvider) Watch(_ context.Context) error {
	close(m.started)
	return nil
}

// mockPrefs implements driven.PreferenceStore for testing.
type mockPrefs struct {
	mu        sync.Mutex
	hidden    map[domain.HiddenScope]map[string]struct{}
	pinned    map[string]struct{}
	nicknames map[string]string
	usage     map[string]int
	err       error
}

func newMockPrefs() *mockPrefs {
	return &mockPrefs{
		hidden: map[domain.HiddenScope]map[string]struct{}{
			domain.HiddenFromResults:     {},
			domain.HiddenFromSuggestions: {},
		},
		pinned:    map[string]struct{}{},
		nicknames: map[string]string{},
		usage:     map[string]int{},
	}
}

func (m *mockPrefs) HiddenSet(_ context.Context, _ domain.SourceKind, scope domain.HiddenScope) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return copySet(m.hidden[scope]), nil
}

func (m *mockPrefs) PinnedSet(_ context.Context, _ domain.SourceKind) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return copySet(m.pinned), nil
}

func (m *mockPrefs) Nickname(_ context.Context, _ domain.SourceKind, id string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nicknames[id]
	return n, ok, m.err
}

func (m *mockPrefs) Nicknames(_ context.Context, _ domain.SourceKind) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]string, len(m.nicknames))
	for k, v := range m.nicknames {
		out[k] = v
	}
	return out, nil
}

func (m *mockPrefs) UsageCounts(_ context.Context, _ domain.SourceKind) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]int, len(m.usage))
	for k, v := range m.usage {
		out[k] = v
	}
	return out, nil
}

func (m *mockPrefs) Hide(_ context.Context, _ domain.SourceKind, scope domain.HiddenScope, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.hidden[scope][id] = struct{}{}
	return nil
}

func (m *mockPrefs) Unhide(_ context.Context, _ domain.SourceKind, scope domain.HiddenScope, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.hidden[scope], id)
	return nil
}

func (m *mockPrefs) Pin(_ context.Context, _ domain.SourceKind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.pinned[id] = struct{}{}
	return nil
}

func (m *mockPrefs) Unpin(_ context.Context, _ domain.SourceKind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.pinned, id)
	return nil
}

func (m *mockPrefs) SetNickname(_ context.Context, _ domain.SourceKind, id, nickname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if nickname == "" {
		delete(m.nicknames, id)
	} else {
		m.nicknames[id] = nickname
	}
	return nil
}

func (m *mockPrefs) RecordUsage(_ context.Context, _ domain.SourceKind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.usage[id]++
	return nil
}

func copySet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}

// mockSuggestions implements driven.SuggestionFetcher for testing.
type mockSuggestions struct {
	mu      sync.Mutex
	results []string
	err     error
	calls   []string
}

func (m *mockSuggestions) GetSuggestions(_ context.Context, query string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockSuggestions) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockAnswers implements driven.AnswerFetcher for testing.
type mockAnswers struct {
	mu      sync.Mutex
	answer  string
	err     error
	queries []string
}

func (m *mockAnswers) FetchAnswer(_ context.Context, query, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

// failingConfigStore rejects every write.
type failingConfigStore struct {
	*memory.ConfigStore
	err error
}

func (f *failingConfigStore) Set(_ string, _ any) error { return f.err }

func (f *failingConfigStore) Delete(_ string) error { return f.err }
