package driving

import "github.com/custodia-labs/lookup/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults for unset keys.
	Get() (*domain.Settings, error)

	// Save persists settings after validating them.
	Save(settings *domain.Settings) error
}
