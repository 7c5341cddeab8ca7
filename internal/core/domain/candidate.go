package domain

// SourceKind identifies where a candidate comes from.
type SourceKind string

// Available candidate sources.
const (
	// SourceApps is installed applications.
	SourceApps SourceKind = "apps"

	// SourceContacts is the address book.
	SourceContacts SourceKind = "contacts"

	// SourceFiles is files on the device.
	SourceFiles SourceKind = "files"

	// SourceSettings is OS settings shortcuts.
	SourceSettings SourceKind = "settings"
)

// AllSources lists every source in display order.
func AllSources() []SourceKind {
	return []SourceKind{SourceApps, SourceContacts, SourceFiles, SourceSettings}
}

// IsValid returns true if the source is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceApps, SourceContacts, SourceFiles, SourceSettings:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// Candidate is a read-only snapshot of one searchable item.
// Candidates are re-read from their provider on refresh and never mutated
// by the ranking engine.
type Candidate struct {
	// ID is the source-specific identity (package/desktop ID, contact UID, path).
	ID string

	// Source is the provider the candidate came from.
	Source SourceKind

	// DisplayText is the primary text shown and matched.
	DisplayText string

	// Nickname is an optional user alias that outranks every other tier.
	Nickname string

	// Keywords are extra fields matched alongside DisplayText
	// (phone numbers, e-mail addresses, settings synonyms).
	Keywords []string

	// Detail is secondary display text (exec line, path, phone number).
	Detail string

	// Target is what activating the candidate opens (command, path, URI).
	Target string

	// UsageCount is the launch count used as a sort tiebreaker.
	UsageCount int
}

// MatchTier is a discrete match-quality bucket. Lower is better.
type MatchTier int

// Match tiers, best first.
const (
	// TierNickname means the nickname contains the query.
	TierNickname MatchTier = 0

	// TierPrefix means the display text starts with the query.
	TierPrefix MatchTier = 1

	// TierWordPrefix means a word in the display text starts with the query.
	TierWordPrefix MatchTier = 2

	// TierContains means the display text contains the query (or every token).
	TierContains MatchTier = 3

	// TierNoMatch excludes the candidate from results.
	TierNoMatch MatchTier = 4
)

// IsMatch returns true for every tier except TierNoMatch.
func (t MatchTier) IsMatch() bool {
	return t >= TierNickname && t < TierNoMatch
}

// String returns a short label for the tier.
func (t MatchTier) String() string {
	switch t {
	case TierNickname:
		return "nickname"
	case TierPrefix:
		return "prefix"
	case TierWordPrefix:
		return "word-prefix"
	case TierContains:
		return "contains"
	case TierNoMatch:
		return "none"
	default:
		return unknownDescription
	}
}

// Match is a candidate accepted for one query.
type Match struct {
	// Candidate is the matched item.
	Candidate Candidate

	// Tier is the exact-match tier, or the fuzzy priority for fuzzy matches.
	Tier MatchTier

	// Score is the fuzzy similarity (0-100). Zero for exact matches.
	Score float64

	// IsFuzzy is true when the match came from the fuzzy fallback.
	IsFuzzy bool
}

// HiddenScope distinguishes the two hide lists a user can manage.
type HiddenScope string

// Available hidden scopes.
const (
	// HiddenFromSuggestions removes an item from the zero-query suggestion row.
	HiddenFromSuggestions HiddenScope = "suggestions"

	// HiddenFromResults removes an item from ranked search results.
	HiddenFromResults HiddenScope = "results"
)

// IsValid returns true if the scope is recognised.
func (s HiddenScope) IsValid() bool {
	return s == HiddenFromSuggestions || s == HiddenFromResults
}

// FuzzyConfig controls the approximate-match fallback for one source.
type FuzzyConfig struct {
	// Enabled turns the fallback on.
	Enabled bool

	// MinQueryLength is the shortest query (in runes) that is fuzzy matched.
	MinQueryLength int

	// MatchThreshold is the minimum similarity (0-100) to accept a match.
	MatchThreshold float64

	// Priority is the tier assigned to fuzzy matches. Fuzzy matches always
	// sort after exact matches regardless of this value.
	Priority MatchTier
}

// DefaultFuzzyConfig returns the fallback used when nothing is configured.
func DefaultFuzzyConfig() FuzzyConfig {
	return FuzzyConfig{
		Enabled:        true,
		MinQueryLength: 3,
		MatchThreshold: 60,
		Priority:       TierNoMatch,
	}
}

// Validate checks the config is usable.
func (c FuzzyConfig) Validate() error {
	if c.MinQueryLength < 1 {
		return ErrInvalidInput
	}
	if c.MatchThreshold < 0 || c.MatchThreshold > 100 {
		return ErrInvalidInput
	}
	return nil
}
