package domain

import (
	"fmt"
	"net/url"
	"time"
)

const unknownDescription = "Unknown"

// CacheBackend identifies the storage used for the durable cache tier.
type CacheBackend string

// Available cache backends.
const (
	// CacheBackendSQLite stores cached result sets in a SQLite database.
	CacheBackendSQLite CacheBackend = "sqlite"

	// CacheBackendBadger stores cached result sets in a BadgerDB directory.
	CacheBackendBadger CacheBackend = "badger"

	// CacheBackendMemory keeps the durable tier in memory (nothing survives a restart).
	CacheBackendMemory CacheBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheBackendSQLite, CacheBackendBadger, CacheBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b CacheBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b CacheBackend) Description() string {
	switch b {
	case CacheBackendSQLite:
		return "SQLite (persistent)"
	case CacheBackendBadger:
		return "BadgerDB (persistent)"
	case CacheBackendMemory:
		return "Memory (process lifetime)"
	default:
		return unknownDescription
	}
}

// AllCacheBackends returns all valid cache backends.
func AllCacheBackends() []CacheBackend {
	return []CacheBackend{CacheBackendSQLite, CacheBackendBadger, CacheBackendMemory}
}

// FeedSettings configures the remote feed endpoint.
type FeedSettings struct {
	// Endpoint is the base URL of the blog, e.g. https://example.blogspot.com.
	Endpoint string

	// MaxResults caps the number of entries requested per query.
	MaxResults int

	// Timeout bounds a single feed request.
	Timeout time.Duration

	// RatePerSecond throttles outbound requests. Zero disables throttling.
	RatePerSecond float64
}

// SearchSettings configures the request coordinator.
type SearchSettings struct {
	// Debounce is the quiet period before a query resolves.
	Debounce time.Duration
}

// CacheSettings configures the durable cache tier.
type CacheSettings struct {
	// Backend selects the durable tier storage.
	Backend CacheBackend

	// Dir is the data directory for persistent backends.
	Dir string

	// QuotaBytes caps the stored payload size. Zero means unbounded.
	QuotaBytes int64
}

// Settings holds runtime configuration.
type Settings struct {
	Feed   FeedSettings
	Search SearchSettings
	Cache  CacheSettings
}

// Defaults for Settings.
const (
	DefaultMaxResults    = 25
	DefaultTimeout       = 10 * time.Second
	DefaultRatePerSecond = 4.0
	DefaultDebounce      = 250 * time.Millisecond
	DefaultQuotaBytes    = 5 << 20
)

// DefaultSettings returns settings with sensible defaults.
// The endpoint has no default and must be configured.
func DefaultSettings() Settings {
	return Settings{
		Feed: FeedSettings{
			MaxResults:    DefaultMaxResults,
			Timeout:       DefaultTimeout,
			RatePerSecond: DefaultRatePerSecond,
		},
		Search: SearchSettings{
			Debounce: DefaultDebounce,
		},
		Cache: CacheSettings{
			Backend:    CacheBackendSQLite,
			QuotaBytes: DefaultQuotaBytes,
		},
	}
}

// Validate checks the settings for consistency.
func (s Settings) Validate() error {
	if s.Feed.Endpoint == "" {
		return ErrNoEndpoint
	}
	u, err := url.Parse(s.Feed.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: endpoint %q must be an http(s) URL", ErrInvalidInput, s.Feed.Endpoint)
	}
	if s.Feed.MaxResults <= 0 {
		return fmt.Errorf("%w: max results must be positive", ErrInvalidInput)
	}
	if s.Feed.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidInput)
	}
	if s.Feed.RatePerSecond < 0 {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidInput)
	}
	if s.Search.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalidInput)
	}
	if !s.Cache.Backend.IsValid() {
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidInput, s.Cache.Backend)
	}
	if s.Cache.QuotaBytes < 0 {
		return fmt.Errorf("%w: quota must not be negative", ErrInvalidInput)
	}
	return nil
}
