package driven

import (
	"context"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// AnswerValidator checks an answer provider configuration by contacting
// the provider.
type AnswerValidator interface {
	// ValidateAnswer returns nil if the provider accepts the configuration.
	// Unconfigured settings report domain.ErrAnswerUnavailable.
	ValidateAnswer(ctx context.Context, settings domain.AnswerSettings) error
}
