package driven

import "github.com/custodia-labs/feedsearch/internal/core/domain"

// Normaliser transforms raw feed entries into display records.
// Implementations are pure: no I/O, no shared state.
type Normaliser interface {
	// Normalise converts one entry.
	// Returns an error wrapping domain.ErrMalformedEntry if the entry
	// cannot be displayed (for example, it has no alternate link).
	Normalise(entry domain.FeedEntry) (domain.DisplayRecord, error)

	// NormaliseBatch converts entries in order, skipping malformed ones.
	// The result is never longer than the input.
	NormaliseBatch(entries []domain.FeedEntry) domain.ResultSet
}
