package domain

// DefaultResultLimit caps ranked results per source.
const DefaultResultLimit = 10

// SearchOptions configures a one-shot launcher search.
type SearchOptions struct {
	// Limit is the maximum number of results per source.
	Limit int

	// Sources restricts the search to specific sources. Empty means all enabled.
	Sources []SourceKind

	// SkipSuggestions disables the web-suggestion fallback.
	SkipSuggestions bool
}

// SecondaryResults holds the merged output of the contacts, files and
// settings searches for one query.
type SecondaryResults struct {
	Contacts []Match
	Files    []Match
	Settings []Match
}

// Total returns the number of matches across all secondary sources.
func (r SecondaryResults) Total() int {
	return len(r.Contacts) + len(r.Files) + len(r.Settings)
}

// SearchReport is the full result of a one-shot launcher search.
type SearchReport struct {
	// Query is the whitespace-normalised query.
	Query string

	// Apps holds ranked app matches.
	Apps []Match

	// Pinned holds pinned apps, alphabetical, never re-ranked.
	Pinned []Candidate

	// Secondary holds contacts, files and settings matches.
	Secondary SecondaryResults

	// Suggestions holds web suggestions, only set when nothing local matched.
	Suggestions []string

	// Shortcut is set when the query starts with an engine shortcut code.
	Shortcut *ShortcutMatch

	// EngineURLs maps each enabled browser engine to its URL for the query.
	EngineURLs []EngineURL
}

// EngineURL pairs an engine with a resolved destination.
type EngineURL struct {
	Engine SearchEngine
	URL    string
}

// ShortcutMatch is a query routed to an engine by its shortcut code.
type ShortcutMatch struct {
	// Engine is the engine the code resolved to.
	Engine SearchEngine

	// Code is the normalised code that matched.
	Code string

	// Query is the remainder after the code.
	Query string
}
