package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyFeedEndpoint   = "feed.endpoint"
	KeyFeedMaxResults = "feed.max_results"
	KeyFeedTimeoutMS  = "feed.timeout_ms"
	KeyFeedRate       = "feed.rate_per_second"
	KeyDebounceMS     = "search.debounce_ms"
	KeyCacheBackend   = "cache.backend"
	KeyCacheDir       = "cache.dir"
	KeyCacheQuota     = "cache.quota_bytes"
)

// SettingKeys lists every recognised config key in display order.
func SettingKeys() []string {
	return []string{
		KeyFeedEndpoint,
		KeyFeedMaxResults,
		KeyFeedTimeoutMS,
		KeyFeedRate,
		KeyDebounceMS,
		KeyCacheBackend,
		KeyCacheDir,
		KeyCacheQuota,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	dataDir     string
}

// NewSettingsService creates a new settings service.
// dataDir is the default cache directory when cache.dir is unset.
func NewSettingsService(configStore driven.ConfigStore, dataDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		dataDir:     dataDir,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := s.GetDefaults()

	settings := &domain.Settings{
		Feed: domain.FeedSettings{
			Endpoint:      s.configStore.GetString(KeyFeedEndpoint),
			MaxResults:    s.getInt(KeyFeedMaxResults, defaults.Feed.MaxResults),
			Timeout:       s.getMillis(KeyFeedTimeoutMS, defaults.Feed.Timeout),
			RatePerSecond: s.getFloat(KeyFeedRate, defaults.Feed.RatePerSecond),
		},
		Search: domain.SearchSettings{
			Debounce: s.getMillis(KeyDebounceMS, defaults.Search.Debounce),
		},
		Cache: domain.CacheSettings{
			Backend:    s.getBackend(defaults.Cache.Backend),
			Dir:        s.getString(KeyCacheDir, defaults.Cache.Dir),
			QuotaBytes: int64(s.getInt(KeyCacheQuota, int(defaults.Cache.QuotaBytes))),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyFeedEndpoint, settings.Feed.Endpoint},
		{KeyFeedMaxResults, settings.Feed.MaxResults},
		{KeyFeedTimeoutMS, settings.Feed.Timeout.Milliseconds()},
		{KeyFeedRate, settings.Feed.RatePerSecond},
		{KeyDebounceMS, settings.Search.Debounce.Milliseconds()},
		{KeyCacheBackend, settings.Cache.Backend.String()},
		{KeyCacheDir, settings.Cache.Dir},
		{KeyCacheQuota, settings.Cache.QuotaBytes},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetEndpoint updates the feed endpoint.
func (s *SettingsService) SetEndpoint(endpoint string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Feed.Endpoint = endpoint
	if err := settings.Validate(); err != nil {
		return err
	}

	return s.configStore.Set(KeyFeedEndpoint, endpoint)
}

// SetCacheBackend updates the durable cache backend.
func (s *SettingsService) SetCacheBackend(backend domain.CacheBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown cache backend %q", domain.ErrInvalidInput, backend)
	}
	return s.configStore.Set(KeyCacheBackend, backend.String())
}

// Validate checks the stored settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	defaults := domain.DefaultSettings()
	defaults.Cache.Dir = s.dataDir
	return defaults
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func (s *SettingsService) getBackend(defaultVal domain.CacheBackend) domain.CacheBackend {
	val := s.configStore.GetString(KeyCacheBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.CacheBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
