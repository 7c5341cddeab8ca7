package mcp

import (
	"context"
	"strings"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	report   *domain.SearchReport
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchReport, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &domain.SearchReport{Query: query}, nil
	}
	return m.report, nil
}

// mockEngineService is a mock implementation of driving.EngineService.
type mockEngineService struct {
	err error
}

func (m *mockEngineService) BuildSearchURL(query string, engine domain.SearchEngine, domainOverride string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "https://" + string(engine) + "." + domainOverride + "/?q=" + strings.ReplaceAll(query, " ", "+"), nil
}

func (m *mockEngineService) ResolveShortcut(string) (*domain.ShortcutMatch, bool) { return nil, false }

func (m *mockEngineService) ActiveShortcuts() map[domain.SearchEngine]string { return nil }

func (m *mockEngineService) SetShortcut(domain.SearchEngine, string) error { return nil }

func (m *mockEngineService) EnabledEngines() []domain.EngineDefinition { return nil }

func (m *mockEngineService) SearchURLs(string) []domain.EngineURL { return nil }

func (m *mockEngineService) DefaultEngine() domain.SearchEngine { return domain.EngineGoogle }

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	state domain.AnswerState
}

func (m *mockAnswerService) Ask(_ context.Context, query string) domain.AnswerState {
	m.state.Query = query
	return m.state
}

func (m *mockAnswerService) Retry(context.Context) domain.AnswerState { return m.state }

func (m *mockAnswerService) State() domain.AnswerState { return m.state }

// mockSource is a mock implementation of driving.SourceSearch.
type mockSource struct {
	kind   domain.SourceKind
	items  []domain.Candidate
	pinned []domain.Candidate
}

func (m *mockSource) Source() domain.SourceKind { return m.kind }

func (m *mockSource) Refresh(context.Context, bool) (bool, error) { return false, nil }

func (m *mockSource) DeriveMatches(context.Context, string, int) []domain.Match { return nil }

func (m *mockSource) Available(context.Context) []domain.Candidate { return m.items }

func (m *mockSource) Pinned(context.Context, map[string]struct{}) []domain.Candidate { return m.pinned }

func (m *mockSource) Lookup(id string) (domain.Candidate, bool) {
	for _, c := range m.items {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Candidate{}, false
}
