package services

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/core/ranking"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Ensure EngineService implements the interface.
var _ driving.EngineService = (*EngineService)(nil)

// minShortcutLen is the shortest usable shortcut code.
const minShortcutLen = 2

// NormalizeShortcutCodeInput lowercases a code and drops everything that
// is not a letter or digit.
func NormalizeShortcutCodeInput(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range strings.ToLower(code) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidShortcutCode returns true if an already normalised code is long enough.
func IsValidShortcutCode(code string) bool {
	return len([]rune(code)) >= minShortcutLen
}

// EngineService builds engine URLs and resolves shortcut codes using the
// engine settings.
type EngineService struct {
	settings driving.SettingsService
}

// NewEngineService creates a new engine service.
func NewEngineService(settings driving.SettingsService) *EngineService {
	return &EngineService{settings: settings}
}

// BuildSearchURL returns the destination for query on engine.
//
// The {domain} placeholder takes domainOverride, then the configured
// domain, then the engine default. A blank query resolves to the engine's
// home page, or to the template with the query parameter removed.
func (s *EngineService) BuildSearchURL(query string, engine domain.SearchEngine, domainOverride string) (string, error) {
	def, ok := domain.LookupEngine(engine)
	if !ok {
		return "", fmt.Errorf("%w: engine %q", domain.ErrUnsupportedType, engine)
	}
	if !def.HasBrowserURL() {
		return "", fmt.Errorf("%s: %w", def.Name, domain.ErrNoBrowserURL)
	}

	d := def.DefaultDomain
	if def.SupportsDomainOverride() {
		if domainOverride != "" {
			normalized, valid := normalizedDomain(domainOverride)
			if !valid {
				return "", fmt.Errorf("%w: domain %q", domain.ErrInvalidInput, domainOverride)
			}
			d = normalized
		} else if configured := s.engineSettings().Domains[engine]; configured != "" {
			d = configured
		}
	}

	q := ranking.NormalizeQueryWhitespace(query)
	if q == "" {
		if def.HomeURL != "" {
			return strings.ReplaceAll(def.HomeURL, domain.DomainPlaceholder, d), nil
		}
		return stripQueryPlaceholder(strings.ReplaceAll(def.URLTemplate, domain.DomainPlaceholder, d)), nil
	}

	return fillQueryPlaceholder(strings.ReplaceAll(def.URLTemplate, domain.DomainPlaceholder, d), q), nil
}

// SearchURLs returns the URL for query on every enabled browser engine.
func (s *EngineService) SearchURLs(query string) []domain.EngineURL {
	var out []domain.EngineURL
	for _, def := range s.EnabledEngines() {
		if !def.HasBrowserURL() {
			continue
		}
		u, err := s.BuildSearchURL(query, def.Engine, "")
		if err != nil {
			logger.Warn("building %s URL: %v", def.Engine, err)
			continue
		}
		out = append(out, domain.EngineURL{Engine: def.Engine, URL: u})
	}
	return out
}

// ResolveShortcut routes "<code> <rest>" to the engine owning code.
// The rest must be non-blank.
func (s *EngineService) ResolveShortcut(query string) (*domain.ShortcutMatch, bool) {
	q := ranking.NormalizeQueryWhitespace(query)
	first, rest, found := strings.Cut(q, " ")
	if !found || rest == "" {
		return nil, false
	}

	code := NormalizeShortcutCodeInput(first)
	if !IsValidShortcutCode(code) || code != strings.ToLower(first) {
		return nil, false
	}

	for engine, active := range s.ActiveShortcuts() {
		if active == code {
			return &domain.ShortcutMatch{Engine: engine, Code: code, Query: rest}, true
		}
	}
	return nil, false
}

// ActiveShortcuts returns the code for each enabled engine, or nothing
// when shortcuts are switched off.
func (s *EngineService) ActiveShortcuts() map[domain.SearchEngine]string {
	cfg := s.engineSettings()
	out := make(map[domain.SearchEngine]string)
	if !cfg.ShortcutsEnabled {
		return out
	}
	for _, engine := range cfg.Enabled {
		def, ok := domain.LookupEngine(engine)
		if !ok {
			continue
		}
		code := def.DefaultShortcut
		if override := cfg.Shortcuts[engine]; override != "" {
			code = override
		}
		if code != "" {
			out[engine] = code
		}
	}
	return out
}

// SetShortcut validates and stores a shortcut code for engine.
//
// The code is rejected when another active engine already owns it, or
// when it is a strict prefix of another active code.
func (s *EngineService) SetShortcut(engine domain.SearchEngine, code string) error {
	if !engine.IsValid() {
		return fmt.Errorf("%w: engine %q", domain.ErrUnsupportedType, engine)
	}

	normalized := NormalizeShortcutCodeInput(code)
	if !IsValidShortcutCode(normalized) {
		return fmt.Errorf("%q: %w", code, domain.ErrShortcutInvalid)
	}

	for other, active := range s.ActiveShortcuts() {
		if other == engine {
			continue
		}
		if active == normalized {
			return fmt.Errorf("%q is used by %s: %w", normalized, other.DisplayName(), domain.ErrShortcutInUse)
		}
		if strings.HasPrefix(active, normalized) {
			return fmt.Errorf("%q is a prefix of %s's %q: %w",
				normalized, other.DisplayName(), active, domain.ErrShortcutAmbiguous)
		}
	}

	return s.settings.Set(keyShortcutPrefix+engine.String(), normalized)
}

// EnabledEngines returns the enabled engines in display order.
func (s *EngineService) EnabledEngines() []domain.EngineDefinition {
	cfg := s.engineSettings()
	out := make([]domain.EngineDefinition, 0, len(cfg.Enabled))
	for _, engine := range cfg.Enabled {
		if def, ok := domain.LookupEngine(engine); ok {
			out = append(out, def)
		}
	}
	return out
}

// DefaultEngine returns the engine used for a plain web search.
func (s *EngineService) DefaultEngine() domain.SearchEngine {
	return s.engineSettings().Default
}

func (s *EngineService) engineSettings() domain.EngineSettings {
	settings, err := s.settings.Get()
	if err != nil {
		logger.Warn("loading engine settings, using defaults: %v", err)
		return s.settings.GetDefaults().Engines
	}
	return settings.Engines
}

// fillQueryPlaceholder escapes query for the part of the URL holding the
// placeholder: query-string escaping after '?', path escaping before it.
func fillQueryPlaceholder(tmpl, query string) string {
	idx := strings.Index(tmpl, domain.QueryPlaceholder)
	if idx < 0 {
		return tmpl
	}
	escaped := url.PathEscape(query)
	if qs := strings.IndexByte(tmpl, '?'); qs >= 0 && qs < idx {
		escaped = url.QueryEscape(query)
	}
	return tmpl[:idx] + escaped + tmpl[idx+len(domain.QueryPlaceholder):]
}

// stripQueryPlaceholder removes the placeholder from a template. A query
// parameter carrying it is dropped entirely, and so is a '?' left with
// nothing after it.
func stripQueryPlaceholder(tmpl string) string {
	base, rawQuery, hasQuery := strings.Cut(tmpl, "?")
	base = strings.ReplaceAll(base, domain.QueryPlaceholder, "")
	if !hasQuery {
		return base
	}

	params := strings.Split(rawQuery, "&")
	kept := params[:0]
	for _, p := range params {
		if p != "" && !strings.Contains(p, domain.QueryPlaceholder) {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return base
	}
	return base + "?" + strings.Join(kept, "&")
}
