package services

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
	"github.com/custodia-labs/feedsearch/internal/logger"
)

// DurableKeyPrefix namespaces entries in the durable tier.
const DurableKeyPrefix = "blogSearch_"

// CacheStats counts cache outcomes since the store was created.
type CacheStats struct {
	FastHits        int64
	DurableHits     int64
	Misses          int64
	DurableFailures int64
}

// CacheStore is a two-tier query cache. The fast tier is consulted first;
// durable hits are promoted into it. Entries are never evicted.
// Safe for concurrent use if both tiers are.
type CacheStore struct {
	fast    driven.ResultCache
	durable driven.ResultCache

	fastHits        atomic.Int64
	durableHits     atomic.Int64
	misses          atomic.Int64
	durableFailures atomic.Int64
}

// NewCacheStore creates a cache store. durable may be nil, in which case
// only the fast tier is used.
func NewCacheStore(fast, durable driven.ResultCache) *CacheStore {
	return &CacheStore{fast: fast, durable: durable}
}

// Get returns the cached result set for query.
// Durable read failures are logged and reported as a miss.
func (c *CacheStore) Get(ctx context.Context, query domain.Query) (domain.ResultSet, bool) {
	key := query.String()

	rs, err := c.fast.Get(ctx, key)
	if err == nil {
		c.fastHits.Add(1)
		logger.Debug("Cache: fast hit for %q", key)
		return rs, true
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Cache: fast tier read for %q failed: %v", key, err)
	}

	if c.durable == nil {
		c.misses.Add(1)
		return nil, false
	}

	rs, err = c.durable.Get(ctx, DurableKeyPrefix+key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Cache: durable tier read for %q failed: %v", key, err)
		}
		c.misses.Add(1)
		logger.Debug("Cache: miss for %q", key)
		return nil, false
	}

	c.durableHits.Add(1)
	logger.Debug("Cache: durable hit for %q, promoting", key)
	if err := c.fast.Put(ctx, key, rs); err != nil {
		logger.Warn("Cache: promoting %q failed: %v", key, err)
	}
	return rs, true
}

// Put writes rs to both tiers. A durable failure is logged and counted;
// the fast tier write still stands.
func (c *CacheStore) Put(ctx context.Context, query domain.Query, rs domain.ResultSet) {
	key := query.String()

	if err := c.fast.Put(ctx, key, rs); err != nil {
		logger.Warn("Cache: fast tier write for %q failed: %v", key, err)
	}
	if c.durable == nil {
		return
	}
	if err := c.durable.Put(ctx, DurableKeyPrefix+key, rs); err != nil {
		c.durableFailures.Add(1)
		logger.Warn("Cache: durable write for %q failed, keeping in memory only: %v", key, err)
	}
}

// Stats returns a snapshot of the counters.
func (c *CacheStore) Stats() CacheStats {
	return CacheStats{
		FastHits:        c.fastHits.Load(),
		DurableHits:     c.durableHits.Load(),
		Misses:          c.misses.Load(),
		DurableFailures: c.durableFailures.Load(),
	}
}

// Close closes both tiers.
func (c *CacheStore) Close() error {
	err := c.fast.Close()
	if c.durable != nil {
		err = errors.Join(err, c.durable.Close())
	}
	return err
}
