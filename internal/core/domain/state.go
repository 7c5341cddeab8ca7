package domain

// SearchPhase is the lifecycle position of one secondary-search query version.
type SearchPhase string

// Secondary search phases.
//
//	Idle -> Debouncing -> Searching -> Results
//	                               \-> Empty -> Suggesting -> Empty
//
// A new query restarts from Idle or Debouncing with a higher version.
const (
	PhaseIdle       SearchPhase = "idle"
	PhaseDebouncing SearchPhase = "debouncing"
	PhaseSearching  SearchPhase = "searching"
	PhaseResults    SearchPhase = "results"
	PhaseEmpty      SearchPhase = "empty"
	PhaseSuggesting SearchPhase = "suggesting"
)

// IsTerminal returns true when no further transition is pending for the version.
func (p SearchPhase) IsTerminal() bool {
	return p == PhaseIdle || p == PhaseResults || p == PhaseEmpty
}

// SecondaryState is the published state of the secondary search pipeline.
// Every field describes the query identified by Version.
type SecondaryState struct {
	// Version is the monotonic query version the state belongs to.
	Version uint64

	// Query is the whitespace-normalised query.
	Query string

	// Phase is the pipeline position.
	Phase SearchPhase

	// Results holds contacts, files and settings matches.
	Results SecondaryResults

	// Suggestions holds web suggestions for an otherwise empty result.
	Suggestions []string
}

// AnswerState is the state of a direct-answer request.
// A failed request keeps Err and Query so the caller can retry it.
type AnswerState struct {
	// Query is the question that was asked.
	Query string

	// Loading is true while the request is in flight.
	Loading bool

	// Answer is the response text on success.
	Answer string

	// Err is set when the request failed.
	Err error
}

// Retryable returns true if the state is a failure that can be asked again.
func (s AnswerState) Retryable() bool {
	return s.Err != nil && !s.Loading && s.Query != ""
}
