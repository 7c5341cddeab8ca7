package services

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/core/ranking"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Ensure SecondarySearchService implements the interface.
var _ driving.SecondarySearch = (*SecondarySearchService)(nil)

// secondarySources are the sources fanned out to, in result order.
var secondarySources = []domain.SourceKind{
	domain.SourceContacts,
	domain.SourceFiles,
	domain.SourceSettings,
}

// minSecondaryQueryLen is the shortest query worth a secondary search.
const minSecondaryQueryLen = 2

// SecondaryConfig gates and tunes the secondary search.
type SecondaryConfig struct {
	// Debounce is the delay between the last query and the search.
	Debounce time.Duration

	// Limit caps results per source.
	Limit int

	// Sections switches sources on and off.
	Sections domain.SectionSettings

	// Permissions records which sources may be read.
	Permissions domain.PermissionSettings

	// Suggestions enables the web-suggestion fallback.
	Suggestions bool

	// SuggestionCount caps the number of suggestions kept. Zero keeps all.
	SuggestionCount int
}

// SecondaryConfigFrom extracts the secondary search config from settings.
func SecondaryConfigFrom(s *domain.LauncherSettings) SecondaryConfig {
	return SecondaryConfig{
		Debounce:        s.Search.Debounce,
		Limit:           s.Search.ResultLimit,
		Sections:        s.Sections,
		Permissions:     s.Permissions,
		Suggestions:     s.Suggestions.Enabled,
		SuggestionCount: s.Suggestions.Count,
	}
}

// SecondarySearchService debounces queries and fans them out to the
// contacts, files and settings managers.
//
// Every query gets a version. Starting a new query cancels the previous
// one, and a result whose version is no longer current is dropped on
// arrival even if cancellation did not reach it in time.
type SecondarySearchService struct {
	apps        driving.SourceSearch
	sources     map[domain.SourceKind]driving.SourceSearch
	suggestions driven.SuggestionFetcher

	mu      sync.Mutex
	cfg     SecondaryConfig
	version uint64
	cancel  context.CancelFunc
	state   domain.SecondaryState
	subs    map[int]chan domain.SecondaryState
	nextSub int
	closed  bool

	wg sync.WaitGroup
}

// NewSecondarySearchService creates the orchestrator.
// apps is consulted only to decide whether a query matched anything at
// all; suggestions may be nil to disable the fallback.
func NewSecondarySearchService(
	apps driving.SourceSearch,
	sources []driving.SourceSearch,
	suggestions driven.SuggestionFetcher,
	cfg SecondaryConfig,
) *SecondarySearchService {
	bySource := make(map[domain.SourceKind]driving.SourceSearch, len(sources))
	for _, s := range sources {
		bySource[s.Source()] = s
	}
	return &SecondarySearchService{
		apps:        apps,
		sources:     bySource,
		suggestions: suggestions,
		cfg:         normalizeSecondaryConfig(cfg),
		state:       domain.SecondaryState{Phase: domain.PhaseIdle},
		subs:        make(map[int]chan domain.SecondaryState),
	}
}

// Configure replaces the config. It applies from the next query on.
func (s *SecondarySearchService) Configure(cfg SecondaryConfig) {
	s.mu.Lock()
	s.cfg = normalizeSecondaryConfig(cfg)
	s.mu.Unlock()
}

// Perform starts a secondary search for query and returns its version.
// Blank and single-character queries clear the results immediately.
func (s *SecondarySearchService) Perform(ctx context.Context, query string) uint64 {
	q := ranking.NormalizeQueryWhitespace(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.version
	}

	s.version++
	v := s.version
	s.cancelLocked()

	if utf8.RuneCountInString(q) < minSecondaryQueryLen {
		s.publishLocked(domain.SecondaryState{Version: v, Query: q, Phase: domain.PhaseIdle})
		return v
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	cfg := s.cfg
	s.publishLocked(domain.SecondaryState{Version: v, Query: q, Phase: domain.PhaseDebouncing})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.run(runCtx, v, q, cfg)
	}()
	return v
}

// run is the lifecycle of one query version.
func (s *SecondarySearchService) run(ctx context.Context, v uint64, q string, cfg SecondaryConfig) {
	timer := time.NewTimer(cfg.Debounce)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		logger.Debug("secondary v%d: cancelled while debouncing", v)
		return
	case <-timer.C:
	}

	if !s.apply(v, func(st *domain.SecondaryState) { st.Phase = domain.PhaseSearching }) {
		return
	}

	results := s.collect(ctx, q, cfg)
	if ctx.Err() != nil {
		logger.Debug("secondary v%d: cancelled while searching", v)
		return
	}

	empty := results.Total() == 0 && !s.appsMatch(ctx, q, cfg)
	suggest := empty && cfg.Suggestions && s.suggestions != nil &&
		utf8.RuneCountInString(q) >= minSecondaryQueryLen

	applied := s.apply(v, func(st *domain.SecondaryState) {
		st.Results = results
		st.Suggestions = nil
		switch {
		case suggest:
			st.Phase = domain.PhaseSuggesting
		case empty:
			st.Phase = domain.PhaseEmpty
		default:
			st.Phase = domain.PhaseResults
		}
	})
	if !applied {
		logger.Debug("secondary v%d: dropped stale results", v)
		return
	}
	logger.Debug("secondary v%d: %q -> %d contacts, %d files, %d settings",
		v, q, len(results.Contacts), len(results.Files), len(results.Settings))

	if !suggest {
		return
	}

	suggestions, err := s.suggestions.GetSuggestions(ctx, q)
	if err != nil {
		logger.Warn("secondary v%d: web suggestions failed: %v", v, err)
		suggestions = nil
	}
	if cfg.SuggestionCount > 0 && len(suggestions) > cfg.SuggestionCount {
		suggestions = suggestions[:cfg.SuggestionCount]
	}

	if !s.apply(v, func(st *domain.SecondaryState) {
		st.Phase = domain.PhaseEmpty
		st.Suggestions = suggestions
	}) {
		logger.Debug("secondary v%d: dropped stale suggestions", v)
	}
}

// Collect runs the fan-out synchronously, without debounce or versioning.
// Each source is capped at limit, or the configured limit when limit <= 0.
func (s *SecondarySearchService) Collect(ctx context.Context, query string, limit int) domain.SecondaryResults {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()
	if limit > 0 {
		cfg.Limit = limit
	}
	return s.collect(ctx, ranking.NormalizeQueryWhitespace(query), cfg)
}

// collect queries every enabled and permitted source concurrently.
// A source that fails contributes nothing; the others still report.
func (s *SecondarySearchService) collect(ctx context.Context, q string, cfg SecondaryConfig) domain.SecondaryResults {
	var (
		mu      sync.Mutex
		results domain.SecondaryResults
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range secondarySources {
		mgr, ok := s.sources[kind]
		if !ok || !cfg.Sections.Enabled(kind) || !cfg.Permissions.Granted(kind) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches := mgr.DeriveMatches(gctx, q, cfg.Limit)

			mu.Lock()
			defer mu.Unlock()
			switch kind {
			case domain.SourceContacts:
				results.Contacts = matches
			case domain.SourceFiles:
				results.Files = matches
			case domain.SourceSettings:
				results.Settings = matches
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Debug("secondary fan-out stopped: %v", err)
	}
	return results
}

// appsMatch reports whether the apps section lists anything for q.
func (s *SecondarySearchService) appsMatch(ctx context.Context, q string, cfg SecondaryConfig) bool {
	if s.apps == nil || !cfg.Sections.Enabled(domain.SourceApps) {
		return false
	}
	return len(s.apps.DeriveMatches(ctx, q, 1)) > 0
}

// apply mutates and publishes the state if v is still the current version.
func (s *SecondarySearchService) apply(v uint64, mutate func(*domain.SecondaryState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v != s.version || s.closed {
		return false
	}
	next := s.state
	mutate(&next)
	s.publishLocked(next)
	return true
}

// Subscribe returns a channel of state updates, primed with the current
// state. A slow subscriber only ever sees the latest state.
func (s *SecondarySearchService) Subscribe() (<-chan domain.SecondaryState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan domain.SecondaryState, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.state

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

// State returns the current state.
func (s *SecondarySearchService) State() domain.SecondaryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Version returns the latest query version.
func (s *SecondarySearchService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Close cancels any search in flight, waits for it and closes subscribers.
func (s *SecondarySearchService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancelLocked()
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.mu.Unlock()
}

func (s *SecondarySearchService) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// publishLocked stores state and hands it to every subscriber, replacing
// anything still buffered. Must be called with mu held.
func (s *SecondarySearchService) publishLocked(state domain.SecondaryState) {
	s.state = state
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}

func normalizeSecondaryConfig(cfg SecondaryConfig) SecondaryConfig {
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	if cfg.Limit <= 0 {
		cfg.Limit = domain.DefaultResultLimit
	}
	return cfg
}
