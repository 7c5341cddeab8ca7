package driving

import (
	"context"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// ResultActionService acts on launched results for external actors.
// This is used by TUI and CLI adapters.
type ResultActionService interface {
	// Open starts target. Apps run their command line; other sources and
	// web rows (empty source) open in the desktop's default handler.
	Open(ctx context.Context, source domain.SourceKind, target string) error

	// CopyToClipboard copies text to the system clipboard.
	CopyToClipboard(ctx context.Context, text string) error
}
