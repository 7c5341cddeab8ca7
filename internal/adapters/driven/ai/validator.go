package ai

import (
	"context"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AnswerValidator = (*ConfigValidator)(nil)

// ConfigValidator validates answer provider configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new answer config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateAnswer pings the provider named by settings.
func (v *ConfigValidator) ValidateAnswer(ctx context.Context, settings domain.AnswerSettings) error {
	return ValidateAnswerConfig(ctx, settings)
}
