package services

import "github.com/custodia-labs/feedsearch/internal/core/domain"

// Paginator is a page cursor over one result set.
// Moving past either end is a no-op. Not safe for concurrent use.
type Paginator struct {
	query   domain.Query
	results domain.ResultSet
	page    int
}

// NewPaginator creates a paginator positioned on the first page of rs.
func NewPaginator(query domain.Query, rs domain.ResultSet) *Paginator {
	p := &Paginator{}
	p.Reset(query, rs)
	return p
}

// Reset replaces the result set and returns to the first page.
func (p *Paginator) Reset(query domain.Query, rs domain.ResultSet) {
	p.query = query
	p.results = rs
	p.page = 0
}

// Next advances one page. Returns false when already on the last page.
func (p *Paginator) Next() bool {
	if p.page >= p.TotalPages()-1 {
		return false
	}
	p.page++
	return true
}

// Prev goes back one page. Returns false when already on the first page.
func (p *Paginator) Prev() bool {
	if p.page == 0 {
		return false
	}
	p.page--
	return true
}

// Seek moves to the zero-based page index. Returns false, leaving the
// cursor where it was, when index is outside the set.
func (p *Paginator) Seek(index int) bool {
	if index < 0 || index >= p.TotalPages() {
		return false
	}
	p.page = index
	return true
}

// CurrentPage returns the records on the current page.
func (p *Paginator) CurrentPage() domain.ResultSet {
	start := p.page * domain.PageSize
	if start >= len(p.results) {
		return domain.ResultSet{}
	}
	end := start + domain.PageSize
	if end > len(p.results) {
		end = len(p.results)
	}
	return p.results[start:end]
}

// PageIndex returns the zero-based current page.
func (p *Paginator) PageIndex() int {
	return p.page
}

// TotalPages returns ceil(N/PageSize), 0 for an empty set.
func (p *Paginator) TotalPages() int {
	return p.State().TotalPages()
}

// State returns a snapshot of the cursor.
func (p *Paginator) State() domain.PaginationState {
	return domain.PaginationState{
		Query:     p.query,
		PageIndex: p.page,
		PageSize:  domain.PageSize,
		Total:     len(p.results),
	}
}
