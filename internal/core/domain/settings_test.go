package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() Settings {
	s := DefaultSettings()
	s.Feed.Endpoint = "https://example.blogspot.com"
	return s
}

// TestDefaultSettings tests default values
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Empty(t, s.Feed.Endpoint)
	assert.Equal(t, 25, s.Feed.MaxResults)
	assert.Equal(t, 10*time.Second, s.Feed.Timeout)
	assert.Equal(t, 250*time.Millisecond, s.Search.Debounce)
	assert.Equal(t, CacheBackendSQLite, s.Cache.Backend)
	assert.Equal(t, int64(5<<20), s.Cache.QuotaBytes)
}

// TestSettings_Validate tests validation rules
func TestSettings_Validate(t *testing.T) {
	require.NoError(t, validSettings().Validate())

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"bad scheme", func(s *Settings) { s.Feed.Endpoint = "ftp://blog" }},
		{"no host", func(s *Settings) { s.Feed.Endpoint = "https://" }},
		{"zero max results", func(s *Settings) { s.Feed.MaxResults = 0 }},
		{"zero timeout", func(s *Settings) { s.Feed.Timeout = 0 }},
		{"negative rate", func(s *Settings) { s.Feed.RatePerSecond = -1 }},
		{"negative debounce", func(s *Settings) { s.Search.Debounce = -time.Second }},
		{"unknown backend", func(s *Settings) { s.Cache.Backend = "redis" }},
		{"negative quota", func(s *Settings) { s.Cache.QuotaBytes = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}

// TestSettings_ValidateNoEndpoint tests the missing endpoint error
func TestSettings_ValidateNoEndpoint(t *testing.T) {
	assert.ErrorIs(t, DefaultSettings().Validate(), ErrNoEndpoint)
}

// TestCacheBackend tests backend helpers
func TestCacheBackend(t *testing.T) {
	for _, b := range AllCacheBackends() {
		assert.True(t, b.IsValid())
		assert.NotEqual(t, unknownDescription, b.Description())
		assert.Equal(t, string(b), b.String())
	}
	assert.False(t, CacheBackend("redis").IsValid())
	assert.Equal(t, unknownDescription, CacheBackend("redis").Description())
}
