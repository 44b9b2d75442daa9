package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
	"github.com/custodia-labs/feedsearch/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driving.SearchService = (*Resolver)(nil)

// Resolver looks a query up in the cache and falls back to the feed.
// Concurrent misses for the same query share one fetch.
type Resolver struct {
	cache      *CacheStore
	feed       driven.FeedClient
	normaliser driven.Normaliser
	group      singleflight.Group
}

// NewResolver creates a new resolver.
func NewResolver(cache *CacheStore, feed driven.FeedClient, normaliser driven.Normaliser) *Resolver {
	return &Resolver{
		cache:      cache,
		feed:       feed,
		normaliser: normaliser,
	}
}

// Search returns the records for query, fetching and caching on a miss.
// Failed fetches are not cached.
func (r *Resolver) Search(ctx context.Context, query domain.Query) (domain.ResultSet, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if rs, ok := r.cache.Get(ctx, query); ok {
		logger.Info("Cached results: %d", rs.Len())
		return rs, nil
	}

	v, err, shared := r.group.Do(query.String(), func() (any, error) {
		rs, err := r.fetch(ctx, query)
		if err != nil {
			return nil, err
		}
		r.cache.Put(context.WithoutCancel(ctx), query, rs)
		return rs, nil
	})
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, err
	}
	if shared {
		logger.Debug("Shared in-flight fetch for %q", query)
	}

	rs, _ := v.(domain.ResultSet)
	logger.Info("Final results: %d", rs.Len())
	return rs.Clone(), nil
}

// fetch retrieves and normalises entries without touching the cache.
// Errors always wrap domain.ErrNetworkFailure.
func (r *Resolver) fetch(ctx context.Context, query domain.Query) (domain.ResultSet, error) {
	entries, err := r.feed.Fetch(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrNetworkFailure) {
			return nil, fmt.Errorf("fetch %q: %w", query, err)
		}
		return nil, fmt.Errorf("fetch %q: %w: %w", query, domain.ErrNetworkFailure, err)
	}
	logger.Debug("Fetched %d entries for %q", len(entries), query)

	rs := r.normaliser.NormaliseBatch(entries)
	if rs == nil {
		rs = domain.ResultSet{}
	}
	return rs, nil
}
