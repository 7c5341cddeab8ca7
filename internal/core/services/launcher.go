package services

import (
	"context"
	"slices"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/core/ranking"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Ensure LauncherService implements the interface.
var _ driving.SearchService = (*LauncherService)(nil)

// collector runs the secondary fan-out synchronously.
type collector interface {
	Collect(ctx context.Context, query string, limit int) domain.SecondaryResults
}

// LauncherService answers a whole launcher query in one call: ranked apps,
// pinned apps, secondary sources, web suggestions and engine routing.
// It has no debounce and no versioning; interactive callers use the
// secondary search service instead.
type LauncherService struct {
	apps        driving.SourceSearch
	secondary   collector
	engines     driving.EngineService
	settings    driving.SettingsService
	suggestions driven.SuggestionFetcher
}

// NewLauncherService creates the launcher facade. suggestions may be nil.
func NewLauncherService(
	apps driving.SourceSearch,
	secondary collector,
	engines driving.EngineService,
	settings driving.SettingsService,
	suggestions driven.SuggestionFetcher,
) *LauncherService {
	return &LauncherService{
		apps:        apps,
		secondary:   secondary,
		engines:     engines,
		settings:    settings,
		suggestions: suggestions,
	}
}

// Search runs query against every enabled source.
func (s *LauncherService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchReport, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	q := ranking.NormalizeQueryWhitespace(query)
	limit := opts.Limit
	if limit <= 0 {
		limit = settings.Search.ResultLimit
	}
	wanted := func(kind domain.SourceKind) bool {
		if !settings.Sections.Enabled(kind) {
			return false
		}
		return len(opts.Sources) == 0 || slices.Contains(opts.Sources, kind)
	}

	report := &domain.SearchReport{Query: q}
	if wanted(domain.SourceApps) {
		report.Pinned = s.apps.Pinned(ctx, nil)
	}
	if q == "" {
		return report, nil
	}

	logger.Section("Search")
	// Apps and the secondary sources rank independently; each goroutine
	// writes only its own report field.
	g, gctx := errgroup.WithContext(ctx)
	if wanted(domain.SourceApps) {
		g.Go(func() error {
			report.Apps = s.apps.DeriveMatches(gctx, q, limit)
			return nil
		})
	}
	if utf8.RuneCountInString(q) >= minSecondaryQueryLen && s.secondary != nil {
		g.Go(func() error {
			report.Secondary = filterSecondary(s.secondary.Collect(gctx, q, limit), wanted, limit)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Debug("search %q: %d apps, %d secondary", q, len(report.Apps), report.Secondary.Total())

	s.route(report, q)

	if !opts.SkipSuggestions && len(report.Apps) == 0 && report.Secondary.Total() == 0 {
		report.Suggestions = s.fetchSuggestions(ctx, q, settings.Suggestions)
	}
	return report, nil
}

// route fills engine routing. A shortcut sends the rest of the query to
// its engine only.
func (s *LauncherService) route(report *domain.SearchReport, q string) {
	if match, ok := s.engines.ResolveShortcut(q); ok {
		report.Shortcut = match
		url, err := s.engines.BuildSearchURL(match.Query, match.Engine, "")
		if err != nil {
			logger.Debug("search: shortcut %s has no URL: %v", match.Code, err)
			return
		}
		report.EngineURLs = []domain.EngineURL{{Engine: match.Engine, URL: url}}
		return
	}
	report.EngineURLs = s.engines.SearchURLs(q)
}

func (s *LauncherService) fetchSuggestions(ctx context.Context, q string, cfg domain.WebSuggestionSettings) []string {
	if !cfg.Enabled || s.suggestions == nil || utf8.RuneCountInString(q) < minSecondaryQueryLen {
		return nil
	}
	suggestions, err := s.suggestions.GetSuggestions(ctx, q)
	if err != nil {
		logger.Warn("search: web suggestions failed: %v", err)
		return nil
	}
	if cfg.Count > 0 && len(suggestions) > cfg.Count {
		suggestions = suggestions[:cfg.Count]
	}
	return suggestions
}

func filterSecondary(r domain.SecondaryResults, wanted func(domain.SourceKind) bool, limit int) domain.SecondaryResults {
	keep := func(kind domain.SourceKind, m []domain.Match) []domain.Match {
		if !wanted(kind) {
			return nil
		}
		return ranking.Truncate(m, limit)
	}
	return domain.SecondaryResults{
		Contacts: keep(domain.SourceContacts, r.Contacts),
		Files:    keep(domain.SourceFiles, r.Files),
		Settings: keep(domain.SourceSettings, r.Settings),
	}
}
