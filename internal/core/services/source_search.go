package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/core/ranking"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Ensure SourceManager implements the interface.
var _ driving.SourceSearch = (*SourceManager)(nil)

// SourceManagerOptions configures ranking for one source.
type SourceManagerOptions struct {
	// Fuzzy configures the approximate-match fallback.
	Fuzzy domain.FuzzyConfig

	// Order picks the tiebreaker inside a tier.
	Order ranking.SortOrder

	// LiveSearch also ranks provider.Search hits missing from the snapshot,
	// such as files created since the last refresh.
	LiveSearch bool

	// LiveSearchLimit caps provider.Search. Defaults to 50.
	LiveSearchLimit int
}

// entry is a snapshotted candidate with its text normalised once.
type entry struct {
	cand     domain.Candidate
	text     string
	nickname string
	keywords []string
}

// SourceManager owns the cached snapshot of one source and ranks it.
// Nothing outside the manager writes its snapshot, nickname cache or
// no-match guard.
type SourceManager struct {
	provider driven.CandidateProvider
	prefs    driven.PreferenceReader

	mu              sync.RWMutex
	opts            SourceManagerOptions
	fuzzy           *ranking.FuzzyMatcher
	entries         []entry
	byID            map[string]int
	loaded          bool
	nicknames       map[string]string
	hiddenResults   map[string]struct{}
	hiddenSuggested map[string]struct{}
	pinned          map[string]struct{}

	guardMu       sync.Mutex
	noMatchPrefix string

	scans atomic.Int64
}

// NewSourceManager creates a manager for provider's source.
// prefs may be nil, in which case nothing is hidden, pinned or nicknamed.
func NewSourceManager(
	provider driven.CandidateProvider,
	prefs driven.PreferenceReader,
	opts SourceManagerOptions,
) *SourceManager {
	if opts.LiveSearchLimit <= 0 {
		opts.LiveSearchLimit = 50
	}
	return &SourceManager{
		provider:        provider,
		prefs:           prefs,
		opts:            opts,
		fuzzy:           ranking.NewFuzzyMatcher(opts.Fuzzy),
		byID:            make(map[string]int),
		nicknames:       make(map[string]string),
		hiddenResults:   make(map[string]struct{}),
		hiddenSuggested: make(map[string]struct{}),
		pinned:          make(map[string]struct{}),
	}
}

// Source identifies the managed source.
func (m *SourceManager) Source() domain.SourceKind {
	return m.provider.Source()
}

// Configure swaps the ranking options. The no-match guard is reset because
// a different fuzzy config can change what matches.
func (m *SourceManager) Configure(opts SourceManagerOptions) {
	if opts.LiveSearchLimit <= 0 {
		opts.LiveSearchLimit = 50
	}
	m.mu.Lock()
	m.opts = opts
	m.fuzzy = ranking.NewFuzzyMatcher(opts.Fuzzy)
	m.mu.Unlock()
	m.Invalidate()
}

// Refresh re-reads the provider and the preference store and clears the
// no-match guard.
//
// It reports true when the candidate identities changed, a usage count
// changed, a preference changed or force is set. A provider failure keeps
// the previous snapshot and reports false with an error wrapping
// domain.ErrProviderUnavailable.
func (m *SourceManager) Refresh(ctx context.Context, force bool) (bool, error) {
	kind := m.Source()

	cands, err := m.provider.LoadAll(ctx)
	if err != nil {
		logger.Warn("Refresh %s: provider failed, keeping %d cached candidates: %v", kind, m.size(), err)
		return false, fmt.Errorf("refresh %s: %w", kind, errors.Join(domain.ErrProviderUnavailable, err))
	}

	prefs := m.loadPreferences(ctx)

	entries := make([]entry, 0, len(cands))
	byID := make(map[string]int, len(cands))
	for _, c := range cands {
		if _, dup := byID[c.ID]; dup {
			continue
		}
		if nick, ok := prefs.nicknames[c.ID]; ok {
			c.Nickname = nick
		}
		if n, ok := prefs.usage[c.ID]; ok {
			c.UsageCount = n
		}
		byID[c.ID] = len(entries)
		entries = append(entries, newEntry(c))
	}

	m.mu.Lock()
	changed := force || !m.loaded || snapshotChanged(m.entries, entries) || prefs.differs(m)
	m.entries = entries
	m.byID = byID
	m.loaded = true
	m.nicknames = prefs.nicknames
	m.hiddenResults = prefs.hiddenResults
	m.hiddenSuggested = prefs.hiddenSuggested
	m.pinned = prefs.pinned
	m.mu.Unlock()

	m.Invalidate()
	if changed {
		logger.Debug("Refresh %s: %d candidates (changed)", kind, len(entries))
	} else {
		logger.Debug("Refresh %s: %d candidates (unchanged)", kind, len(entries))
	}
	return changed, nil
}

// Invalidate clears the no-match guard so the next query rescans.
func (m *SourceManager) Invalidate() {
	m.guardMu.Lock()
	m.noMatchPrefix = ""
	m.guardMu.Unlock()
}

// Watch refreshes the snapshot whenever the provider reports a change.
// It returns immediately if the provider cannot notify, otherwise it
// blocks until ctx is cancelled.
func (m *SourceManager) Watch(ctx context.Context) {
	notifier, ok := m.provider.(driven.ChangeNotifier)
	if !ok {
		return
	}
	if w, ok := m.provider.(driven.Watcher); ok {
		if err := w.Watch(ctx); err != nil {
			logger.Warn("Watch %s: %v", m.Source(), err)
		}
	}
	changes := notifier.Changes()
	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-changes:
			if !open {
				return
			}
			if _, err := m.Refresh(ctx, false); err != nil {
				logger.Warn("Watch %s: %v", m.Source(), err)
			}
		}
	}
}

// DeriveMatches ranks the searchable candidates for query.
//
// The exact pass assigns nickname-aware tiers. Candidates without a tier
// fall through to the fuzzy pass. Exact matches sort before fuzzy ones and
// the result is capped at limit. A blank query returns an empty list, as
// does any query extending a prefix that matched nothing.
func (m *SourceManager) DeriveMatches(ctx context.Context, query string, limit int) []domain.Match {
	q := ranking.NewQuery(query)
	if q.IsBlank() {
		return []domain.Match{}
	}
	m.ensureLoaded(ctx)

	m.guardMu.Lock()
	guard := m.noMatchPrefix
	m.guardMu.Unlock()
	if q.Extends(guard) {
		logger.Debug("%s: %q extends no-match prefix %q, skipping scan", m.Source(), q.Normalized, guard)
		return []domain.Match{}
	}

	m.mu.RLock()
	opts := m.opts
	fuzzy := m.fuzzy
	searchable := m.searchableLocked()
	m.mu.RUnlock()

	m.scans.Add(1)
	pool := searchable
	if opts.LiveSearch {
		pool = m.withLiveHits(ctx, q, searchable, opts.LiveSearchLimit)
	}

	results := make([]domain.Match, 0)
	exact := 0
	for i := range pool {
		e := &pool[i]
		if tier := e.tier(q); tier.IsMatch() {
			results = append(results, domain.Match{Candidate: e.cand, Tier: tier})
			exact++
			continue
		}
		if !fuzzy.Applies(q) {
			continue
		}
		score, ok := fuzzy.Match(q, e.cand.DisplayText, e.cand.Nickname)
		if !ok {
			continue
		}
		results = append(results, domain.Match{
			Candidate: e.cand,
			Tier:      fuzzy.Config().Priority,
			Score:     score,
			IsFuzzy:   true,
		})
	}

	m.guardMu.Lock()
	if len(results) == 0 {
		m.noMatchPrefix = q.Normalized
	} else {
		m.noMatchPrefix = ""
	}
	m.guardMu.Unlock()

	ranking.SortMatches(results, opts.Order)
	results = ranking.Truncate(results, limit)
	logger.Debug("%s: %q -> %d exact, %d total", m.Source(), q.Normalized, exact, len(results))
	return results
}

// withLiveHits appends provider.Search hits the snapshot does not hold yet.
// Snapshot candidates are always kept, so every source ranks the same way.
func (m *SourceManager) withLiveHits(ctx context.Context, q ranking.Query, searchable []entry, limit int) []entry {
	hits, err := m.provider.Search(ctx, q.Normalized, limit)
	if err != nil {
		logger.Warn("%s: provider search failed, ranking snapshot only: %v", m.Source(), err)
		return searchable
	}

	m.mu.RLock()
	known := make(map[string]struct{}, len(m.byID))
	for id := range m.byID {
		known[id] = struct{}{}
	}
	m.mu.RUnlock()

	pool := searchable
	for _, h := range hits {
		if _, ok := known[h.ID]; ok || m.isExcluded(h.ID) {
			continue
		}
		known[h.ID] = struct{}{}
		pool = append(pool, newEntry(m.decorate(h)))
	}
	return pool
}

// Available returns the snapshot minus candidates hidden from suggestions.
func (m *SourceManager) Available(ctx context.Context) []domain.Candidate {
	m.ensureLoaded(ctx)

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Candidate, 0, len(m.entries))
	for i := range m.entries {
		if _, hidden := m.hiddenSuggested[m.entries[i].cand.ID]; hidden {
			continue
		}
		out = append(out, m.entries[i].cand)
	}
	return out
}

// Searchable returns the snapshot minus candidates hidden from results and
// minus pinned candidates, which are shown separately.
func (m *SourceManager) Searchable(ctx context.Context) []domain.Candidate {
	m.ensureLoaded(ctx)

	m.mu.RLock()
	entries := m.searchableLocked()
	m.mu.RUnlock()

	out := make([]domain.Candidate, len(entries))
	for i := range entries {
		out[i] = entries[i].cand
	}
	return out
}

// Pinned returns pinned candidates not in exclude, alphabetical.
// Pinned candidates are never re-ranked by query.
func (m *SourceManager) Pinned(ctx context.Context, exclude map[string]struct{}) []domain.Candidate {
	m.ensureLoaded(ctx)

	m.mu.RLock()
	out := make([]domain.Candidate, 0, len(m.pinned))
	for i := range m.entries {
		id := m.entries[i].cand.ID
		if _, ok := m.pinned[id]; !ok {
			continue
		}
		if _, skip := exclude[id]; skip {
			continue
		}
		out = append(out, m.entries[i].cand)
	}
	m.mu.RUnlock()

	ranking.SortCandidatesByName(out)
	return out
}

// Lookup returns a cached candidate by ID.
func (m *SourceManager) Lookup(id string) (domain.Candidate, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.byID[id]
	if !ok {
		return domain.Candidate{}, false
	}
	return m.entries[idx].cand, true
}

// Scans returns how many queries scanned the candidate set.
func (m *SourceManager) Scans() int64 {
	return m.scans.Load()
}

func (m *SourceManager) ensureLoaded(ctx context.Context) {
	m.mu.RLock()
	loaded := m.loaded
	m.mu.RUnlock()
	if loaded {
		return
	}
	if _, err := m.Refresh(ctx, false); err != nil {
		logger.Warn("%s: initial load failed: %v", m.Source(), err)
	}
}

// searchableLocked must be called with mu held.
func (m *SourceManager) searchableLocked() []entry {
	out := make([]entry, 0, len(m.entries))
	for i := range m.entries {
		id := m.entries[i].cand.ID
		if _, hidden := m.hiddenResults[id]; hidden {
			continue
		}
		if _, pinned := m.pinned[id]; pinned {
			continue
		}
		out = append(out, m.entries[i])
	}
	return out
}

func (m *SourceManager) isExcluded(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, hidden := m.hiddenResults[id]; hidden {
		return true
	}
	_, pinned := m.pinned[id]
	return pinned
}

// decorate applies cached nickname to a candidate read outside the snapshot.
func (m *SourceManager) decorate(c domain.Candidate) domain.Candidate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if nick, ok := m.nicknames[c.ID]; ok {
		c.Nickname = nick
	}
	return c
}

func (m *SourceManager) size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func newEntry(c domain.Candidate) entry {
	e := entry{
		cand:     c,
		text:     ranking.NormalizeText(c.DisplayText),
		nickname: ranking.NormalizeText(c.Nickname),
	}
	if len(c.Keywords) > 0 {
		e.keywords = make([]string, 0, len(c.Keywords))
		for _, k := range c.Keywords {
			if n := ranking.NormalizeText(k); n != "" {
				e.keywords = append(e.keywords, n)
			}
		}
	}
	return e
}

// tier is the nickname-aware priority, also checking keyword fields.
func (e *entry) tier(q ranking.Query) domain.MatchTier {
	if ranking.NicknameMatches(e.nickname, q) {
		return domain.TierNickname
	}
	best := ranking.PriorityForNormalized(e.text, q)
	for _, k := range e.keywords {
		if best == domain.TierPrefix {
			break
		}
		if t := ranking.PriorityForNormalized(k, q); t < best {
			best = t
		}
	}
	return best
}

// snapshotChanged compares identity and usage; display-only edits do not count.
func snapshotChanged(prev, next []entry) bool {
	if len(prev) != len(next) {
		return true
	}
	usage := make(map[string]int, len(prev))
	for i := range prev {
		usage[prev[i].cand.ID] = prev[i].cand.UsageCount
	}
	for i := range next {
		n, ok := usage[next[i].cand.ID]
		if !ok || n != next[i].cand.UsageCount {
			return true
		}
	}
	return false
}

// preferenceSnapshot is what Refresh reads from the preference store.
type preferenceSnapshot struct {
	nicknames       map[string]string
	usage           map[string]int
	hiddenResults   map[string]struct{}
	hiddenSuggested map[string]struct{}
	pinned          map[string]struct{}
}

// loadPreferences reads preferences, keeping the cached copy of any set that
// fails to load.
func (m *SourceManager) loadPreferences(ctx context.Context) preferenceSnapshot {
	m.mu.RLock()
	snap := preferenceSnapshot{
		nicknames:       m.nicknames,
		usage:           map[string]int{},
		hiddenResults:   m.hiddenResults,
		hiddenSuggested: m.hiddenSuggested,
		pinned:          m.pinned,
	}
	m.mu.RUnlock()

	if m.prefs == nil {
		return snap
	}
	kind := m.Source()

	if v, err := m.prefs.Nicknames(ctx, kind); err == nil {
		snap.nicknames = v
	} else {
		logger.Warn("%s: loading nicknames: %v", kind, err)
	}
	if v, err := m.prefs.UsageCounts(ctx, kind); err == nil {
		snap.usage = v
	} else {
		logger.Warn("%s: loading usage counts: %v", kind, err)
	}
	if v, err := m.prefs.HiddenSet(ctx, kind, domain.HiddenFromResults); err == nil {
		snap.hiddenResults = v
	} else {
		logger.Warn("%s: loading hidden set: %v", kind, err)
	}
	if v, err := m.prefs.HiddenSet(ctx, kind, domain.HiddenFromSuggestions); err == nil {
		snap.hiddenSuggested = v
	} else {
		logger.Warn("%s: loading hidden set: %v", kind, err)
	}
	if v, err := m.prefs.PinnedSet(ctx, kind); err == nil {
		snap.pinned = v
	} else {
		logger.Warn("%s: loading pinned set: %v", kind, err)
	}
	return snap
}

// differs reports whether any preference differs from m's cached copy.
// Caller must hold m.mu.
func (p preferenceSnapshot) differs(m *SourceManager) bool {
	return !sameStrings(p.nicknames, m.nicknames) ||
		!sameSet(p.hiddenResults, m.hiddenResults) ||
		!sameSet(p.hiddenSuggested, m.hiddenSuggested) ||
		!sameSet(p.pinned, m.pinned)
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sameStrings(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
