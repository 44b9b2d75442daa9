package driving

import (
	"context"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// Navigator opens a record's link outside the overlay.
// Opening is a full navigation, not an in-app transition.
type Navigator interface {
	// Open navigates to the record's link.
	Open(ctx context.Context, record domain.DisplayRecord) error
}
