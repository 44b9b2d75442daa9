package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
)

// Ensure ResultCache implements the interface.
var _ driven.ResultCache = (*ResultCache)(nil)

// ResultCache is an in-memory implementation of driven.ResultCache.
// Entries live for the lifetime of the process.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]domain.ResultSet
}

// NewResultCache creates an empty in-memory result cache.
func NewResultCache() *ResultCache {
	return &ResultCache{
		entries: make(map[string]domain.ResultSet),
	}
}

// Get retrieves the result set stored under key.
func (c *ResultCache) Get(_ context.Context, key string) (domain.ResultSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rs, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rs.Clone(), nil
}

// Put stores a copy of rs under key.
func (c *ResultCache) Put(_ context.Context, key string, rs domain.ResultSet) error {
	if rs == nil {
		rs = domain.ResultSet{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = rs.Clone()
	return nil
}

// Len returns the number of stored entries.
func (c *ResultCache) Len(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}

// Close is a no-op.
func (c *ResultCache) Close() error {
	return nil
}
