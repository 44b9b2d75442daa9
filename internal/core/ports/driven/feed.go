package driven

import (
	"context"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// FeedClient fetches raw entries for a query from the feed endpoint.
type FeedClient interface {
	// Fetch issues one request for the query and decodes its entries.
	// A document without entries yields an empty slice and no error.
	// Transport, status and decoding failures wrap domain.ErrNetworkFailure.
	// Fetch must return promptly once ctx is cancelled.
	Fetch(ctx context.Context, query domain.Query) ([]domain.FeedEntry, error)
}
