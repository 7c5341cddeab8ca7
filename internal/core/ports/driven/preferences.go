package driven

import (
	"context"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// PreferenceReader is the read side of the preference store.
// Search managers only ever read.
type PreferenceReader interface {
	// HiddenSet returns the IDs hidden in scope for a source.
	HiddenSet(ctx context.Context, source domain.SourceKind, scope domain.HiddenScope) (map[string]struct{}, error)

	// PinnedSet returns the pinned IDs for a source.
	PinnedSet(ctx context.Context, source domain.SourceKind) (map[string]struct{}, error)

	// Nickname returns the nickname for an ID, if any.
	Nickname(ctx context.Context, source domain.SourceKind, id string) (string, bool, error)

	// Nicknames returns every nickname for a source keyed by ID.
	Nicknames(ctx context.Context, source domain.SourceKind) (map[string]string, error)

	// UsageCounts returns launch counts for a source keyed by ID.
	UsageCounts(ctx context.Context, source domain.SourceKind) (map[string]int, error)
}

// PreferenceStore persists user preferences about candidates.
type PreferenceStore interface {
	PreferenceReader

	// Hide adds an ID to the hidden set for scope.
	Hide(ctx context.Context, source domain.SourceKind, scope domain.HiddenScope, id string) error

	// Unhide removes an ID from the hidden set for scope.
	Unhide(ctx context.Context, source domain.SourceKind, scope domain.HiddenScope, id string) error

	// Pin adds an ID to the pinned set.
	Pin(ctx context.Context, source domain.SourceKind, id string) error

	// Unpin removes an ID from the pinned set.
	Unpin(ctx context.Context, source domain.SourceKind, id string) error

	// SetNickname stores a nickname. An empty nickname clears it.
	SetNickname(ctx context.Context, source domain.SourceKind, id, nickname string) error

	// RecordUsage increments the launch count for an ID.
	RecordUsage(ctx context.Context, source domain.SourceKind, id string) error
}
