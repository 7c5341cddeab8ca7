package driving

import "context"

// Scheduler keeps source snapshots fresh in long-running sessions.
type Scheduler interface {
	// Start begins refreshing sources.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops refreshing.
	Stop() error
}
