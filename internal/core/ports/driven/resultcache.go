package driven

import (
	"context"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// ResultCache is one cache tier mapping keys to result sets.
// Tiers never evict or expire entries on their own.
type ResultCache interface {
	// Get returns the result set stored under key.
	// Returns domain.ErrNotFound on a miss.
	Get(ctx context.Context, key string) (domain.ResultSet, error)

	// Put stores the result set under key, replacing any previous value.
	// Durable tiers return an error wrapping domain.ErrStorageWriteFailure
	// when the write is rejected.
	Put(ctx context.Context, key string, rs domain.ResultSet) error

	// Len returns the number of stored entries.
	Len(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
