package cli

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/feedsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/feedsearch/internal/adapters/driven/feed/blogger"
	badgerstore "github.com/custodia-labs/feedsearch/internal/adapters/driven/storage/badger"
	"github.com/custodia-labs/feedsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/feedsearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
	"github.com/custodia-labs/feedsearch/internal/core/services"
	"github.com/custodia-labs/feedsearch/internal/logger"
	normaliser "github.com/custodia-labs/feedsearch/internal/normalisers/blogger"
)

// Options carries the global flag overrides.
type Options struct {
	// ConfigDir replaces ~/.feedsearch when set.
	ConfigDir string

	// Endpoint replaces feed.endpoint for this run without persisting it.
	Endpoint string
}

// Runtime is the fully wired application.
type Runtime struct {
	ConfigStore *file.ConfigStore
	Settings    *services.SettingsService
	Cache       *services.CacheStore
	Resolver    *services.Resolver
	Coordinator *services.Coordinator
	Navigator   *services.BrowserNavigator

	settings domain.Settings
}

// LoadConfig opens the config file and the settings service only.
func LoadConfig(opts Options) (*Services, error) {
	store, settings, dataDir, err := openConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Services{
		Settings: settings,
		Config:   store,
		DataDir:  dataDir,
	}, nil
}

func openConfig(opts Options) (*file.ConfigStore, *services.SettingsService, string, error) {
	dir := opts.ConfigDir
	if dir == "" {
		var err error
		dir, err = file.DefaultDir()
		if err != nil {
			return nil, nil, "", fmt.Errorf("resolving config dir: %w", err)
		}
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, nil, "", fmt.Errorf("opening config: %w", err)
	}
	dataDir := filepath.Join(dir, "data")
	return store, services.NewSettingsService(store, dataDir), dataDir, nil
}

// NewRuntime wires the feed client, cache tiers and coordinator from the
// stored settings. A durable tier that cannot be opened degrades to
// in-memory caching.
func NewRuntime(opts Options) (*Runtime, error) {
	store, settingsSvc, _, err := openConfig(opts)
	if err != nil {
		return nil, err
	}

	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if opts.Endpoint != "" {
		settings.Feed.Endpoint = opts.Endpoint
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	client, err := blogger.NewClient(blogger.Config{
		Endpoint:      settings.Feed.Endpoint,
		MaxResults:    settings.Feed.MaxResults,
		Timeout:       settings.Feed.Timeout,
		RatePerSecond: settings.Feed.RatePerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("creating feed client: %w", err)
	}

	durable, err := OpenDurable(settings.Cache)
	if err != nil {
		logger.Warn("Durable cache unavailable, caching in memory only: %v", err)
		durable = nil
	}

	cache := services.NewCacheStore(memory.NewResultCache(), durable)
	resolver := services.NewResolver(cache, client, normaliser.New())
	coordinator := services.NewCoordinator(resolver, services.CoordinatorConfig{
		Debounce:       settings.Search.Debounce,
		RequestTimeout: settings.Feed.Timeout,
	})

	logger.Debug("Runtime ready: endpoint=%s backend=%s", settings.Feed.Endpoint, settings.Cache.Backend)

	return &Runtime{
		ConfigStore: store,
		Settings:    settingsSvc,
		Cache:       cache,
		Resolver:    resolver,
		Coordinator: coordinator,
		Navigator:   services.NewBrowserNavigator(),
		settings:    *settings,
	}, nil
}

// OpenDurable opens the durable cache tier selected by cfg.Backend.
func OpenDurable(cfg domain.CacheSettings) (driven.ResultCache, error) {
	switch cfg.Backend {
	case domain.CacheBackendSQLite:
		store, err := sqlite.NewStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return store.ResultCache(cfg.QuotaBytes), nil
	case domain.CacheBackendBadger:
		return badgerstore.Open(filepath.Join(cfg.Dir, "badger"), false, cfg.QuotaBytes)
	case domain.CacheBackendMemory:
		return memory.NewResultCache(), nil
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", domain.ErrInvalidInput, cfg.Backend)
	}
}

// Services exposes the runtime as command services.
func (r *Runtime) Services() *Services {
	return &Services{
		Overlay:   r.Coordinator,
		Search:    r.Resolver,
		Settings:  r.Settings,
		Navigator: r.Navigator,
		Config:    r.ConfigStore,
		DataDir:   r.settings.Cache.Dir,
		Close:     r.Close,
	}
}

// Close stops the coordinator and closes both cache tiers.
func (r *Runtime) Close() error {
	r.Coordinator.Close()
	stats := r.Cache.Stats()
	logger.Debug("Cache stats: fast=%d durable=%d misses=%d durable_failures=%d",
		stats.FastHits, stats.DurableHits, stats.Misses, stats.DurableFailures)
	if err := r.Cache.Close(); err != nil {
		return fmt.Errorf("closing cache: %w", err)
	}
	return nil
}
