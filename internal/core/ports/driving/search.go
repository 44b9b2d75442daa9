package driving

import (
	"context"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// SearchService resolves a query through the cache tiers and the feed endpoint
// without any session state. Safe for concurrent use.
type SearchService interface {
	// Search returns the records for the query.
	// Failures wrap domain.ErrNetworkFailure; an empty set is not an error.
	Search(ctx context.Context, query domain.Query) (domain.ResultSet, error)
}

// QuerySession is one resolved query together with its page cursor.
// A session is owned by a single UI goroutine and is not safe for concurrent use.
type QuerySession interface {
	// Resolution returns the immutable outcome of the session.
	Resolution() domain.Resolution

	// Pagination returns the current page cursor.
	Pagination() domain.PaginationState

	// CurrentPage returns the records on the current page.
	CurrentPage() domain.ResultSet

	// Next advances one page. Returns false at the last page.
	Next() bool

	// Prev goes back one page. Returns false at the first page.
	Prev() bool
}

// OverlayService coordinates incremental search as the user types.
type OverlayService interface {
	// OnInput reports the current input text. Short input is ignored;
	// anything else supersedes the current session and restarts the debounce.
	OnInput(raw string)

	// Resolve runs a query immediately, bypassing the debounce.
	Resolve(ctx context.Context, raw string) (QuerySession, error)

	// Subscribe registers fn to receive every committed session.
	// The returned function removes the registration.
	Subscribe(fn func(QuerySession)) (unsubscribe func())

	// Active returns the committed session, or nil before the first commit.
	Active() QuerySession

	// State returns the coordinator's current state.
	State() domain.SessionState

	// Close stops pending timers and cancels the in-flight request.
	Close()
}
