package driving

import (
	"context"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// PreferenceService applies management actions to candidates.
// Every mutation refreshes the owning source so searches see it at once.
type PreferenceService interface {
	Hide(ctx context.Context, source domain.SourceKind, scope domain.HiddenScope, id string) error
	Unhide(ctx context.Context, source domain.SourceKind, scope domain.HiddenScope, id string) error
	Pin(ctx context.Context, source domain.SourceKind, id string) error
	Unpin(ctx context.Context, source domain.SourceKind, id string) error

	// SetNickname stores a nickname; an empty nickname clears it.
	SetNickname(ctx context.Context, source domain.SourceKind, id, nickname string) error
	ClearNickname(ctx context.Context, source domain.SourceKind, id string) error

	// RecordLaunch counts a launch towards usage ordering.
	RecordLaunch(ctx context.Context, source domain.SourceKind, id string) error
}
