package domain

// PageSize is the fixed number of records per page.
const PageSize = 5

// PaginationState is the page cursor over the active result set.
type PaginationState struct {
	// Query is the query whose results are paginated.
	Query Query

	// PageIndex is the zero-based current page.
	PageIndex int

	// PageSize is the number of records per page.
	PageSize int

	// Total is the number of records in the result set.
	Total int
}

// TotalPages returns ceil(Total/PageSize), or 0 for an empty set.
func (p PaginationState) TotalPages() int {
	size := p.PageSize
	if size <= 0 {
		size = PageSize
	}
	if p.Total <= 0 {
		return 0
	}
	return (p.Total + size - 1) / size
}

// HasPrev reports whether a previous page exists.
func (p PaginationState) HasPrev() bool {
	return p.PageIndex > 0
}

// HasNext reports whether a next page exists.
func (p PaginationState) HasNext() bool {
	return p.PageIndex < p.TotalPages()-1
}
