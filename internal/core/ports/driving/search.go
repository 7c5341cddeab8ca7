package driving

import (
	"context"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// SearchService provides one-shot launcher search to external actors.
type SearchService interface {
	// Search ranks apps and secondary sources for query and, when nothing
	// matched locally, fetches web suggestions.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchReport, error)
}

// SourceSearch ranks one source's candidates.
type SourceSearch interface {
	// Source identifies the managed source.
	Source() domain.SourceKind

	// Refresh re-reads the provider. It reports whether anything visible changed.
	Refresh(ctx context.Context, force bool) (bool, error)

	// DeriveMatches ranks the searchable candidates for query.
	DeriveMatches(ctx context.Context, query string, limit int) []domain.Match

	// Available returns candidates minus those hidden from suggestions.
	Available(ctx context.Context) []domain.Candidate

	// Pinned returns pinned candidates not in exclude, alphabetical.
	Pinned(ctx context.Context, exclude map[string]struct{}) []domain.Candidate

	// Lookup returns a cached candidate by ID.
	Lookup(id string) (domain.Candidate, bool)
}

// SecondarySearch debounces and fans a query out to contacts, files and
// settings, publishing versioned state to subscribers.
type SecondarySearch interface {
	// Perform starts a search for query, cancelling any search in flight.
	// It returns the query version assigned to the search.
	Perform(ctx context.Context, query string) uint64

	// Subscribe returns a channel of state updates and a function that
	// stops delivery. Only the latest state is buffered.
	Subscribe() (<-chan domain.SecondaryState, func())

	// State returns the current state.
	State() domain.SecondaryState

	// Close cancels any search in flight.
	Close()
}
