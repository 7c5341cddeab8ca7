package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyResultLimit      = "search.result_limit"
	keySortByUsage      = "search.sort_apps_by_usage"
	keyDebounceMS       = "search.debounce_ms"
	keyFuzzyPrefix      = "search.fuzzy."
	keySectionApps      = "sections.apps"
	keySectionContacts  = "sections.contacts"
	keySectionFiles     = "sections.files"
	keySectionSettings  = "sections.settings"
	keyPermContacts     = "permissions.contacts"
	keyPermFiles        = "permissions.files"
	keySuggestEnabled   = "suggestions.enabled"
	keySuggestCount     = "suggestions.count"
	keySuggestEndpoint  = "suggestions.endpoint"
	keyEngineDefault    = "engines.default"
	keyEngineEnabled    = "engines.enabled"
	keyShortcutsEnabled = "engines.shortcuts_enabled"
	keyShortcutPrefix   = "engines.shortcuts."
	keyDomainPrefix     = "engines.domains."
	keyAnswerProvider   = "answer.provider"
	keyAnswerEndpoint   = "answer.endpoint"
	keyAnswerModel      = "answer.model"
	keyAnswerAPIKey     = "answer.api_key"
	keyDesktopDirs      = "providers.desktop_dirs"
	keyContactsPath     = "providers.contacts_path"
	keyFileRoots        = "providers.file_roots"
	keyFileMaxDepth     = "providers.file_max_depth"
	keySettingsCommand  = "providers.settings_command"
)

// Fuzzy config field suffixes under search.fuzzy.<source>.
const (
	fuzzyEnabled   = "enabled"
	fuzzyMinLength = "min_query_length"
	fuzzyThreshold = "match_threshold"
	fuzzyPriority  = "priority"
)

// Bounds for numeric settings.
const (
	maxResultLimit    = 100
	maxDebounceMS     = 2000
	maxSuggestCount   = 10
	maxFileDepth      = 32
	maxFuzzyThreshold = 100
)

type settingKind int

const (
	kindBool settingKind = iota
	kindInt
	kindFloat
	kindString
	kindList
)

// staticSettingKinds lists every fixed key and how its string form parses.
var staticSettingKinds = map[string]settingKind{
	keyResultLimit:      kindInt,
	keySortByUsage:      kindBool,
	keyDebounceMS:       kindInt,
	keySectionApps:      kindBool,
	keySectionContacts:  kindBool,
	keySectionFiles:     kindBool,
	keySectionSettings:  kindBool,
	keyPermContacts:     kindBool,
	keyPermFiles:        kindBool,
	keySuggestEnabled:   kindBool,
	keySuggestCount:     kindInt,
	keySuggestEndpoint:  kindString,
	keyEngineDefault:    kindString,
	keyEngineEnabled:    kindList,
	keyShortcutsEnabled: kindBool,
	keyAnswerProvider:   kindString,
	keyAnswerEndpoint:   kindString,
	keyAnswerModel:      kindString,
	keyAnswerAPIKey:     kindString,
	keyDesktopDirs:      kindList,
	keyContactsPath:     kindString,
	keyFileRoots:        kindList,
	keyFileMaxDepth:     kindInt,
	keySettingsCommand:  kindString,
}

var fuzzyFieldKinds = map[string]settingKind{
	fuzzyEnabled:   kindBool,
	fuzzyMinLength: kindInt,
	fuzzyThreshold: kindFloat,
	fuzzyPriority:  kindInt,
}

// SettingsService manages launcher settings on top of a ConfigStore.
// Missing or invalid stored values fall back to defaults.
type SettingsService struct {
	configStore driven.ConfigStore
	validator   driven.AnswerValidator
}

// NewSettingsService creates a new settings service. validator may be nil,
// in which case ValidateAnswerConfig only checks completeness.
func NewSettingsService(configStore driven.ConfigStore, validator driven.AnswerValidator) *SettingsService {
	return &SettingsService{configStore: configStore, validator: validator}
}

// Get retrieves current launcher settings.
func (s *SettingsService) Get() (*domain.LauncherSettings, error) {
	defaults := domain.DefaultLauncherSettings()

	fuzzy := make(map[domain.SourceKind]domain.FuzzyConfig, len(defaults.Search.Fuzzy))
	for _, kind := range domain.AllSources() {
		fuzzy[kind] = s.getFuzzy(kind, defaults.Search.FuzzyFor(kind))
	}

	settings := &domain.LauncherSettings{
		Search: domain.SearchSettings{
			ResultLimit:     s.getBoundedInt(keyResultLimit, 1, maxResultLimit, defaults.Search.ResultLimit),
			SortAppsByUsage: s.getBool(keySortByUsage, defaults.Search.SortAppsByUsage),
			Debounce:        s.getDebounce(defaults.Search.Debounce),
			Fuzzy:           fuzzy,
		},
		Sections: domain.SectionSettings{
			Apps:     s.getBool(keySectionApps, defaults.Sections.Apps),
			Contacts: s.getBool(keySectionContacts, defaults.Sections.Contacts),
			Files:    s.getBool(keySectionFiles, defaults.Sections.Files),
			Settings: s.getBool(keySectionSettings, defaults.Sections.Settings),
		},
		Permissions: domain.PermissionSettings{
			Contacts: s.getBool(keyPermContacts, defaults.Permissions.Contacts),
			Files:    s.getBool(keyPermFiles, defaults.Permissions.Files),
		},
		Suggestions: domain.WebSuggestionSettings{
			Enabled:  s.getBool(keySuggestEnabled, defaults.Suggestions.Enabled),
			Count:    s.getBoundedInt(keySuggestCount, 0, maxSuggestCount, defaults.Suggestions.Count),
			Endpoint: s.getString(keySuggestEndpoint, defaults.Suggestions.Endpoint),
		},
		Engines: domain.EngineSettings{
			Default:          s.getEngine(keyEngineDefault, defaults.Engines.Default),
			Enabled:          s.getEngineList(defaults.Engines.Enabled),
			ShortcutsEnabled: s.getBool(keyShortcutsEnabled, defaults.Engines.ShortcutsEnabled),
			Shortcuts:        s.getEngineMap(keyShortcutPrefix, normalizedShortcut),
			Domains:          s.getEngineMap(keyDomainPrefix, normalizedDomain),
		},
		Answer: domain.AnswerSettings{
			Provider: s.getAnswerProvider(defaults.Answer.Provider),
			Endpoint: s.getString(keyAnswerEndpoint, defaults.Answer.Endpoint),
			Model:    s.getString(keyAnswerModel, defaults.Answer.Model),
			APIKey:   s.configStore.GetString(keyAnswerAPIKey),
		},
		Providers: domain.ProviderSettings{
			DesktopDirs:     s.getList(keyDesktopDirs, defaults.Providers.DesktopDirs),
			ContactsPath:    s.configStore.GetString(keyContactsPath),
			FileRoots:       s.getList(keyFileRoots, defaults.Providers.FileRoots),
			FileMaxDepth:    s.getBoundedInt(keyFileMaxDepth, 1, maxFileDepth, defaults.Providers.FileMaxDepth),
			SettingsCommand: s.getString(keySettingsCommand, defaults.Providers.SettingsCommand),
		},
	}

	return settings, nil
}

// Save persists launcher settings.
func (s *SettingsService) Save(settings *domain.LauncherSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}

	values := map[string]any{
		keyResultLimit:      settings.Search.ResultLimit,
		keySortByUsage:      settings.Search.SortAppsByUsage,
		keyDebounceMS:       int(settings.Search.Debounce / time.Millisecond),
		keySectionApps:      settings.Sections.Apps,
		keySectionContacts:  settings.Sections.Contacts,
		keySectionFiles:     settings.Sections.Files,
		keySectionSettings:  settings.Sections.Settings,
		keyPermContacts:     settings.Permissions.Contacts,
		keyPermFiles:        settings.Permissions.Files,
		keySuggestEnabled:   settings.Suggestions.Enabled,
		keySuggestCount:     settings.Suggestions.Count,
		keySuggestEndpoint:  settings.Suggestions.Endpoint,
		keyEngineDefault:    settings.Engines.Default.String(),
		keyEngineEnabled:    engineStrings(settings.Engines.Enabled),
		keyShortcutsEnabled: settings.Engines.ShortcutsEnabled,
		keyAnswerProvider:   string(settings.Answer.Provider),
		keyAnswerEndpoint:   settings.Answer.Endpoint,
		keyAnswerModel:      settings.Answer.Model,
		keyDesktopDirs:      settings.Providers.DesktopDirs,
		keyContactsPath:     settings.Providers.ContactsPath,
		keyFileRoots:        settings.Providers.FileRoots,
		keyFileMaxDepth:     settings.Providers.FileMaxDepth,
		keySettingsCommand:  settings.Providers.SettingsCommand,
	}
	if settings.Answer.APIKey != "" {
		values[keyAnswerAPIKey] = settings.Answer.APIKey
	}
	for kind, cfg := range settings.Search.Fuzzy {
		prefix := keyFuzzyPrefix + kind.String() + "."
		values[prefix+fuzzyEnabled] = cfg.Enabled
		values[prefix+fuzzyMinLength] = cfg.MinQueryLength
		values[prefix+fuzzyThreshold] = cfg.MatchThreshold
		values[prefix+fuzzyPriority] = int(cfg.Priority)
	}
	for engine, code := range settings.Engines.Shortcuts {
		values[keyShortcutPrefix+engine.String()] = code
	}
	for engine, d := range settings.Engines.Domains {
		values[keyDomainPrefix+engine.String()] = d
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set parses value according to key's type, validates it and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := s.kindOf(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	parsed, err = validateSetting(key, parsed)
	if err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes a stored setting so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if _, ok := s.kindOf(key); !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	return nil
}

// Keys returns every settable key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(staticSettingKinds)+32)
	for k := range staticSettingKinds {
		keys = append(keys, k)
	}
	for _, kind := range domain.AllSources() {
		for field := range fuzzyFieldKinds {
			keys = append(keys, keyFuzzyPrefix+kind.String()+"."+field)
		}
	}
	for _, def := range domain.EngineDefinitions() {
		keys = append(keys, keyShortcutPrefix+def.Engine.String())
		if def.SupportsDomainOverride() {
			keys = append(keys, keyDomainPrefix+def.Engine.String())
		}
	}
	sort.Strings(keys)
	return keys
}

// SetAnswerAPIKey stores the direct-answer API key.
func (s *SettingsService) SetAnswerAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("%w: empty API key", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyAnswerAPIKey, apiKey); err != nil {
		return fmt.Errorf("save answer api_key: %w", err)
	}
	return nil
}

// ValidateAnswerConfig checks the current direct-answer configuration by
// contacting the provider.
func (s *SettingsService) ValidateAnswerConfig(ctx context.Context) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if !settings.Answer.IsConfigured() {
		return domain.ErrAnswerUnavailable
	}
	if s.validator == nil {
		return nil
	}
	return s.validator.ValidateAnswer(ctx, settings.Answer)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.LauncherSettings {
	return domain.DefaultLauncherSettings()
}

// kindOf resolves static and per-source/per-engine keys.
func (s *SettingsService) kindOf(key string) (settingKind, bool) {
	if kind, ok := staticSettingKinds[key]; ok {
		return kind, true
	}
	if rest, ok := strings.CutPrefix(key, keyFuzzyPrefix); ok {
		source, field, found := strings.Cut(rest, ".")
		if !found || !domain.SourceKind(source).IsValid() {
			return 0, false
		}
		kind, ok := fuzzyFieldKinds[field]
		return kind, ok
	}
	if engine, ok := strings.CutPrefix(key, keyShortcutPrefix); ok {
		return kindString, domain.SearchEngine(engine).IsValid()
	}
	if engine, ok := strings.CutPrefix(key, keyDomainPrefix); ok {
		def, found := domain.LookupEngine(domain.SearchEngine(engine))
		return kindString, found && def.SupportsDomainOverride()
	}
	return 0, false
}

func parseSetting(kind settingKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindBool:
		return strconv.ParseBool(value)
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindList:
		if value == "" {
			return []string{}, nil
		}
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	default:
		return value, nil
	}
}

// validateSetting checks ranges and enumerations, returning the value in
// its canonical form.
func validateSetting(key string, value any) (any, error) {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidInput, key, fmt.Sprintf(format, args...))
	}

	switch {
	case key == keyResultLimit:
		if n := value.(int); n < 1 || n > maxResultLimit {
			return nil, invalid("must be between 1 and %d", maxResultLimit)
		}
	case key == keyDebounceMS:
		if n := value.(int); n < 0 || n > maxDebounceMS {
			return nil, invalid("must be between 0 and %d", maxDebounceMS)
		}
	case key == keySuggestCount:
		if n := value.(int); n < 0 || n > maxSuggestCount {
			return nil, invalid("must be between 0 and %d", maxSuggestCount)
		}
	case key == keyFileMaxDepth:
		if n := value.(int); n < 1 || n > maxFileDepth {
			return nil, invalid("must be between 1 and %d", maxFileDepth)
		}
	case key == keyEngineDefault:
		if !domain.SearchEngine(value.(string)).IsValid() {
			return nil, invalid("unknown engine %q", value)
		}
	case key == keyAnswerProvider:
		p := domain.AnswerProvider(strings.ToLower(value.(string)))
		if !p.IsValid() {
			return nil, invalid("unknown provider %q", value)
		}
		return string(p), nil
	case key == keyEngineEnabled:
		for _, e := range value.([]string) {
			if !domain.SearchEngine(e).IsValid() {
				return nil, invalid("unknown engine %q", e)
			}
		}
	case strings.HasPrefix(key, keyShortcutPrefix):
		code := NormalizeShortcutCodeInput(value.(string))
		if !IsValidShortcutCode(code) {
			return nil, fmt.Errorf("%s: %w", key, domain.ErrShortcutInvalid)
		}
		return code, nil
	case strings.HasPrefix(key, keyDomainPrefix):
		d, ok := normalizedDomain(value.(string))
		if !ok {
			return nil, invalid("invalid domain %q", value)
		}
		return d, nil
	case strings.HasPrefix(key, keyFuzzyPrefix):
		return validateFuzzyField(key, value, invalid)
	}
	return value, nil
}

func validateFuzzyField(key string, value any, invalid func(string, ...any) error) (any, error) {
	switch key[strings.LastIndex(key, ".")+1:] {
	case fuzzyMinLength:
		if n := value.(int); n < 1 {
			return nil, invalid("must be at least 1")
		}
	case fuzzyThreshold:
		if f := value.(float64); f < 0 || f > maxFuzzyThreshold {
			return nil, invalid("must be between 0 and %d", maxFuzzyThreshold)
		}
	case fuzzyPriority:
		if n := value.(int); n < int(domain.TierNickname) || n > int(domain.TierNoMatch) {
			return nil, invalid("must be a tier between %d and %d", domain.TierNickname, domain.TierNoMatch)
		}
	}
	return value, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBoundedInt(key string, lo, hi, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < lo || val > hi {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	raw, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getList(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getDebounce(defaultVal time.Duration) time.Duration {
	ms := s.getBoundedInt(keyDebounceMS, 0, maxDebounceMS, -1)
	if ms < 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) getFuzzy(kind domain.SourceKind, defaultVal domain.FuzzyConfig) domain.FuzzyConfig {
	prefix := keyFuzzyPrefix + kind.String() + "."
	cfg := domain.FuzzyConfig{
		Enabled:        s.getBool(prefix+fuzzyEnabled, defaultVal.Enabled),
		MinQueryLength: s.getBoundedInt(prefix+fuzzyMinLength, 1, 1<<16, defaultVal.MinQueryLength),
		MatchThreshold: s.getFloat(prefix+fuzzyThreshold, defaultVal.MatchThreshold),
		Priority: domain.MatchTier(s.getBoundedInt(prefix+fuzzyPriority,
			int(domain.TierNickname), int(domain.TierNoMatch), int(defaultVal.Priority))),
	}
	if err := cfg.Validate(); err != nil {
		return defaultVal
	}
	return cfg
}

func (s *SettingsService) getEngine(key string, defaultVal domain.SearchEngine) domain.SearchEngine {
	engine := domain.SearchEngine(s.configStore.GetString(key))
	if !engine.IsValid() {
		return defaultVal
	}
	return engine
}

func (s *SettingsService) getAnswerProvider(defaultVal domain.AnswerProvider) domain.AnswerProvider {
	p := domain.AnswerProvider(s.configStore.GetString(keyAnswerProvider))
	if !p.IsValid() {
		return defaultVal
	}
	return p
}

func (s *SettingsService) getEngineList(defaultVal []domain.SearchEngine) []domain.SearchEngine {
	if _, exists := s.configStore.Get(keyEngineEnabled); !exists {
		return append([]domain.SearchEngine(nil), defaultVal...)
	}
	var out []domain.SearchEngine
	seen := make(map[domain.SearchEngine]bool)
	for _, raw := range s.configStore.GetStringSlice(keyEngineEnabled) {
		engine := domain.SearchEngine(raw)
		if engine.IsValid() && !seen[engine] {
			seen[engine] = true
			out = append(out, engine)
		}
	}
	return out
}

// getEngineMap reads engine-keyed overrides, dropping values normalize rejects.
func (s *SettingsService) getEngineMap(prefix string, normalize func(string) (string, bool)) map[domain.SearchEngine]string {
	out := make(map[domain.SearchEngine]string)
	for _, def := range domain.EngineDefinitions() {
		raw := s.configStore.GetString(prefix + def.Engine.String())
		if raw == "" {
			continue
		}
		if v, ok := normalize(raw); ok {
			out[def.Engine] = v
		}
	}
	return out
}

func normalizedShortcut(raw string) (string, bool) {
	code := NormalizeShortcutCodeInput(raw)
	return code, IsValidShortcutCode(code)
}

// normalizedDomain accepts a top-level or country domain such as "de" or
// "co.uk", with or without a leading dot.
func normalizedDomain(raw string) (string, bool) {
	d := strings.Trim(strings.ToLower(strings.TrimSpace(raw)), ".")
	if d == "" {
		return "", false
	}
	for _, label := range strings.Split(d, ".") {
		if label == "" {
			return "", false
		}
		for _, r := range label {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
				return "", false
			}
		}
	}
	return d, true
}

func engineStrings(engines []domain.SearchEngine) []string {
	out := make([]string, len(engines))
	for i, e := range engines {
		out[i] = e.String()
	}
	return out
}
