package domain

// SearchEngine identifies an external engine a query can be handed to.
type SearchEngine string

// Available search engines.
const (
	EngineGoogle       SearchEngine = "google"
	EngineDirectAnswer SearchEngine = "direct_answer"
	EngineChatGPT      SearchEngine = "chatgpt"
	EnginePerplexity   SearchEngine = "perplexity"
	EngineBing         SearchEngine = "bing"
	EngineDuckDuckGo   SearchEngine = "duckduckgo"
	EngineBrave        SearchEngine = "brave"
	EngineYouTube      SearchEngine = "youtube"
	EngineAmazon       SearchEngine = "amazon"
	EngineReddit       SearchEngine = "reddit"
	EngineWikipedia    SearchEngine = "wikipedia"
	EngineGoogleMaps   SearchEngine = "google_maps"
	EngineGooglePlay   SearchEngine = "google_play"
	EngineSpotify      SearchEngine = "spotify"
)

// Template placeholders.
const (
	// QueryPlaceholder is replaced by the escaped query.
	QueryPlaceholder = "{query}"

	// DomainPlaceholder is replaced by the engine's (possibly overridden) domain.
	DomainPlaceholder = "{domain}"
)

// EngineDefinition describes how to reach an engine.
type EngineDefinition struct {
	// Engine is the identifier.
	Engine SearchEngine

	// Name is the display name.
	Name string

	// URLTemplate contains QueryPlaceholder and optionally DomainPlaceholder.
	// Empty for engines without a browser URL.
	URLTemplate string

	// HomeURL is opened for a blank query. Empty means strip the placeholder
	// from URLTemplate instead.
	HomeURL string

	// DefaultDomain fills DomainPlaceholder when no override is set.
	DefaultDomain string

	// DefaultShortcut is the built-in shortcut code.
	DefaultShortcut string
}

// HasBrowserURL returns true if the engine can be opened in a browser.
func (d EngineDefinition) HasBrowserURL() bool {
	return d.URLTemplate != ""
}

// SupportsDomainOverride returns true if the template has a domain slot.
func (d EngineDefinition) SupportsDomainOverride() bool {
	return d.DefaultDomain != ""
}

var engineDefinitions = []EngineDefinition{
	{
		Engine:          EngineGoogle,
		Name:            "Google",
		URLTemplate:     "https://www.google.{domain}/search?q={query}",
		HomeURL:         "https://www.google.{domain}/",
		DefaultDomain:   "com",
		DefaultShortcut: "gg",
	},
	{
		Engine:          EngineDirectAnswer,
		Name:            "Direct Answer",
		DefaultShortcut: "da",
	},
	{
		Engine:          EngineChatGPT,
		Name:            "ChatGPT",
		URLTemplate:     "https://chatgpt.com/?q={query}",
		HomeURL:         "https://chatgpt.com/",
		DefaultShortcut: "gpt",
	},
	{
		Engine:          EnginePerplexity,
		Name:            "Perplexity",
		URLTemplate:     "https://www.perplexity.ai/search?q={query}",
		HomeURL:         "https://www.perplexity.ai/",
		DefaultShortcut: "px",
	},
	{
		Engine:          EngineBing,
		Name:            "Bing",
		URLTemplate:     "https://www.bing.com/search?q={query}",
		DefaultShortcut: "bg",
	},
	{
		Engine:          EngineDuckDuckGo,
		Name:            "DuckDuckGo",
		URLTemplate:     "https://duckduckgo.com/?q={query}",
		DefaultShortcut: "dd",
	},
	{
		Engine:          EngineBrave,
		Name:            "Brave Search",
		URLTemplate:     "https://search.brave.com/search?q={query}&source=web",
		DefaultShortcut: "br",
	},
	{
		Engine:          EngineYouTube,
		Name:            "YouTube",
		URLTemplate:     "https://www.youtube.com/results?search_query={query}",
		HomeURL:         "https://www.youtube.com/",
		DefaultShortcut: "yt",
	},
	{
		Engine:          EngineAmazon,
		Name:            "Amazon",
		URLTemplate:     "https://www.amazon.{domain}/s?k={query}",
		DefaultDomain:   "com",
		DefaultShortcut: "am",
	},
	{
		Engine:          EngineReddit,
		Name:            "Reddit",
		URLTemplate:     "https://www.reddit.com/search/?q={query}",
		DefaultShortcut: "rd",
	},
	{
		Engine:          EngineWikipedia,
		Name:            "Wikipedia",
		URLTemplate:     "https://en.wikipedia.org/w/index.php?search={query}",
		DefaultShortcut: "wk",
	},
	{
		Engine:          EngineGoogleMaps,
		Name:            "Google Maps",
		URLTemplate:     "https://www.google.com/maps/search/{query}",
		HomeURL:         "https://www.google.com/maps",
		DefaultShortcut: "mp",
	},
	{
		Engine:          EngineGooglePlay,
		Name:            "Google Play",
		URLTemplate:     "https://play.google.com/store/search?q={query}&c=apps",
		DefaultShortcut: "ps",
	},
	{
		Engine:          EngineSpotify,
		Name:            "Spotify",
		URLTemplate:     "https://open.spotify.com/search/{query}",
		DefaultShortcut: "sp",
	},
}

// EngineDefinitions returns all known engines in default display order.
func EngineDefinitions() []EngineDefinition {
	out := make([]EngineDefinition, len(engineDefinitions))
	copy(out, engineDefinitions)
	return out
}

// LookupEngine returns the definition for an engine.
func LookupEngine(e SearchEngine) (EngineDefinition, bool) {
	for _, d := range engineDefinitions {
		if d.Engine == e {
			return d, true
		}
	}
	return EngineDefinition{}, false
}

// IsValid returns true if the engine is recognised.
func (e SearchEngine) IsValid() bool {
	_, ok := LookupEngine(e)
	return ok
}

// String returns the string representation.
func (e SearchEngine) String() string {
	return string(e)
}

// DisplayName returns the engine's display name.
func (e SearchEngine) DisplayName() string {
	if d, ok := LookupEngine(e); ok {
		return d.Name
	}
	return unknownDescription
}
