package driving

import (
	"context"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// SettingsService manages launcher settings.
type SettingsService interface {
	// Get retrieves current launcher settings.
	Get() (*domain.LauncherSettings, error)

	// Save persists launcher settings.
	Save(settings *domain.LauncherSettings) error

	// Set updates a single setting by dotted key from its string form.
	Set(key, value string) error

	// Reset removes a stored setting so its default applies again.
	Reset(key string) error

	// Keys returns every settable key.
	Keys() []string

	// SetAnswerAPIKey stores the direct-answer API key.
	SetAnswerAPIKey(apiKey string) error

	// ValidateAnswerConfig checks the direct-answer configuration by
	// contacting the provider.
	ValidateAnswerConfig(ctx context.Context) error

	// GetDefaults returns default settings.
	GetDefaults() domain.LauncherSettings
}
