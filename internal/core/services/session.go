package services

import (
	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
)

// Ensure Session implements the interface.
var _ driving.QuerySession = (*Session)(nil)

// Session is a committed query together with its page cursor.
type Session struct {
	resolution domain.Resolution
	pager      *Paginator
}

// NewSession wraps a resolution with a page cursor at the first page.
func NewSession(res domain.Resolution) *Session {
	if res.Results == nil {
		res.Results = domain.ResultSet{}
	}
	return &Session{
		resolution: res,
		pager:      NewPaginator(res.Query, res.Results),
	}
}

// Resolution returns the outcome of the session.
func (s *Session) Resolution() domain.Resolution {
	return s.resolution
}

// Pagination returns the current page cursor.
func (s *Session) Pagination() domain.PaginationState {
	return s.pager.State()
}

// CurrentPage returns the records on the current page.
func (s *Session) CurrentPage() domain.ResultSet {
	return s.pager.CurrentPage()
}

// Next advances one page.
func (s *Session) Next() bool {
	return s.pager.Next()
}

// Prev goes back one page.
func (s *Session) Prev() bool {
	return s.pager.Prev()
}
