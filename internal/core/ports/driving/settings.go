package driving

import "github.com/custodia-labs/feedsearch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, applying defaults.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// SetEndpoint updates the feed endpoint after validating it.
	SetEndpoint(endpoint string) error

	// SetCacheBackend updates the durable cache backend.
	SetCacheBackend(backend domain.CacheBackend) error

	// Validate checks the stored settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
