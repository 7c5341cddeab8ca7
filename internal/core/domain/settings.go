package domain

import "time"

const unknownDescription = "Unknown"

// DefaultDebounce is the delay before the secondary search runs.
const DefaultDebounce = 150 * time.Millisecond

// SectionSettings toggles each source section.
type SectionSettings struct {
	Apps     bool
	Contacts bool
	Files    bool
	Settings bool
}

// Enabled returns whether the section for a source is on.
func (s SectionSettings) Enabled(kind SourceKind) bool {
	switch kind {
	case SourceApps:
		return s.Apps
	case SourceContacts:
		return s.Contacts
	case SourceFiles:
		return s.Files
	case SourceSettings:
		return s.Settings
	default:
		return false
	}
}

// PermissionSettings records which sources the user granted access to.
// Apps and settings never need a grant.
type PermissionSettings struct {
	Contacts bool
	Files    bool
}

// Granted returns whether the source may be read.
func (p PermissionSettings) Granted(kind SourceKind) bool {
	switch kind {
	case SourceContacts:
		return p.Contacts
	case SourceFiles:
		return p.Files
	case SourceApps, SourceSettings:
		return true
	default:
		return false
	}
}

// SearchSettings holds ranking behaviour configuration.
type SearchSettings struct {
	// ResultLimit caps ranked results per source.
	ResultLimit int

	// SortAppsByUsage orders equal tiers by launch count instead of name.
	SortAppsByUsage bool

	// Debounce is the delay before the secondary search runs.
	Debounce time.Duration

	// Fuzzy holds the fallback configuration per source.
	Fuzzy map[SourceKind]FuzzyConfig
}

// FuzzyFor returns the fuzzy config for a source, falling back to the default.
func (s SearchSettings) FuzzyFor(kind SourceKind) FuzzyConfig {
	if cfg, ok := s.Fuzzy[kind]; ok {
		return cfg
	}
	return DefaultFuzzyConfig()
}

// WebSuggestionSettings configures the empty-result suggestion fallback.
type WebSuggestionSettings struct {
	// Enabled turns suggestions on.
	Enabled bool

	// Count caps the number of suggestions.
	Count int

	// Endpoint is the OpenSearch suggestion URL with a {query} placeholder.
	Endpoint string
}

// EngineSettings configures external engines and shortcuts.
type EngineSettings struct {
	// Default is the engine used for plain "search the web".
	Default SearchEngine

	// Enabled lists engines in display order.
	Enabled []SearchEngine

	// ShortcutsEnabled turns shortcut-code routing on.
	ShortcutsEnabled bool

	// Shortcuts overrides the built-in shortcut code per engine.
	Shortcuts map[SearchEngine]string

	// Domains overrides the domain for engines that support it.
	Domains map[SearchEngine]string
}

// IsEnabled returns true if the engine is in the enabled list.
func (e EngineSettings) IsEnabled(engine SearchEngine) bool {
	for _, en := range e.Enabled {
		if en == engine {
			return true
		}
	}
	return false
}

// AnswerProvider selects the model API behind direct answers.
type AnswerProvider string

// Supported answer providers.
const (
	AnswerGemini    AnswerProvider = "gemini"
	AnswerOpenAI    AnswerProvider = "openai"
	AnswerAnthropic AnswerProvider = "anthropic"
	AnswerOllama    AnswerProvider = "ollama"
)

// AllAnswerProviders returns the supported providers.
func AllAnswerProviders() []AnswerProvider {
	return []AnswerProvider{AnswerGemini, AnswerOpenAI, AnswerAnthropic, AnswerOllama}
}

// IsValid returns true if p is a supported provider.
func (p AnswerProvider) IsValid() bool {
	switch p {
	case AnswerGemini, AnswerOpenAI, AnswerAnthropic, AnswerOllama:
		return true
	}
	return false
}

// NeedsAPIKey returns false for local providers.
func (p AnswerProvider) NeedsAPIKey() bool {
	return p != AnswerOllama
}

// AnswerSettings configures the direct-answer API.
type AnswerSettings struct {
	// Provider selects the API.
	Provider AnswerProvider

	// Endpoint is the API base URL. Empty uses the provider's default.
	Endpoint string

	// Model is the model name. Empty uses the provider's default.
	Model string

	// APIKey is the API key.
	APIKey string
}

// IsConfigured returns true if the answer API can be called.
func (a AnswerSettings) IsConfigured() bool {
	return a.Provider.IsValid() && (a.APIKey != "" || !a.Provider.NeedsAPIKey())
}

// ProviderSettings points candidate providers at local data.
type ProviderSettings struct {
	// DesktopDirs are searched for .desktop application entries.
	DesktopDirs []string

	// ContactsPath is a .vcf file or a directory of them.
	ContactsPath string

	// FileRoots are walked for file candidates.
	FileRoots []string

	// FileMaxDepth bounds the walk below each root.
	FileMaxDepth int

	// SettingsCommand opens a settings panel when given its name.
	SettingsCommand string
}

// LauncherSettings holds all launcher settings.
type LauncherSettings struct {
	Search      SearchSettings
	Sections    SectionSettings
	Permissions PermissionSettings
	Suggestions WebSuggestionSettings
	Engines     EngineSettings
	Answer      AnswerSettings
	Providers   ProviderSettings
}

// DefaultLauncherSettings returns settings with sensible defaults.
// Contacts and files stay unreadable until the user grants access.
func DefaultLauncherSettings() LauncherSettings {
	fuzzy := make(map[SourceKind]FuzzyConfig, 4)
	for _, kind := range AllSources() {
		fuzzy[kind] = DefaultFuzzyConfig()
	}

	return LauncherSettings{
		Search: SearchSettings{
			ResultLimit:     DefaultResultLimit,
			SortAppsByUsage: true,
			Debounce:        DefaultDebounce,
			Fuzzy:           fuzzy,
		},
		Sections: SectionSettings{
			Apps:     true,
			Contacts: true,
			Files:    true,
			Settings: true,
		},
		Suggestions: WebSuggestionSettings{
			Enabled:  true,
			Count:    5,
			Endpoint: "https://duckduckgo.com/ac/?type=list&q={query}",
		},
		Engines: EngineSettings{
			Default: EngineGoogle,
			Enabled: []SearchEngine{
				EngineGoogle, EngineDirectAnswer, EngineChatGPT, EnginePerplexity,
				EngineDuckDuckGo, EngineYouTube, EngineAmazon, EngineWikipedia,
				EngineGoogleMaps, EngineGooglePlay, EngineReddit,
			},
			ShortcutsEnabled: true,
			Shortcuts:        map[SearchEngine]string{},
			Domains:          map[SearchEngine]string{},
		},
		Answer: AnswerSettings{
			Provider: AnswerGemini,
		},
		Providers: ProviderSettings{
			DesktopDirs:     []string{"/usr/share/applications", "/usr/local/share/applications"},
			FileMaxDepth:    4,
			SettingsCommand: "gnome-control-center",
		},
	}
}
