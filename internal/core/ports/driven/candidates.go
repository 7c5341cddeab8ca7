package driven

import (
	"context"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// CandidateProvider reads one source's candidates from the platform.
// LoadAll may be slow; callers snapshot its result rather than calling it
// per keystroke.
type CandidateProvider interface {
	// Source identifies the candidates this provider returns.
	Source() domain.SourceKind

	// LoadAll returns every candidate.
	LoadAll(ctx context.Context) ([]domain.Candidate, error)

	// Search returns candidates whose text contains query, at most limit.
	// It is a pre-filter before ranking, not a replacement for it.
	Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error)
}

// ChangeNotifier is implemented by providers that can push change events.
// A value on the channel means the next LoadAll may return different data.
type ChangeNotifier interface {
	// Changes returns a channel that receives after the underlying data changed.
	Changes() <-chan struct{}
}

// Watcher is implemented by providers whose change notifications must be
// started explicitly. Watch must not block; it stops when ctx is done.
type Watcher interface {
	Watch(ctx context.Context) error
}
