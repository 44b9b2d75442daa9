package render

import (
	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// SummarySuffix is appended to every rendered summary.
const SummarySuffix = "..."

// Messages shown instead of items.
const (
	MessageNoResults = "No results found"
	MessageFailed    = "Search failed"
)

// Control is a pagination action offered by a view.
type Control string

// Pagination controls.
const (
	ControlPrev Control = "prev"
	ControlNext Control = "next"
)

// Label returns the control's display text.
func (c Control) Label() string {
	switch c {
	case ControlPrev:
		return "← Prev"
	case ControlNext:
		return "Next →"
	default:
		return ""
	}
}

// Item is one rendered record.
type Item struct {
	Title     []Segment
	Summary   []Segment
	Thumbnail string
	Labels    []string
	Link      string
}

// View is the rendered state of the overlay for one page.
type View struct {
	Query    domain.Query
	Items    []Item
	Message  string
	Controls []Control
	Page     int
	Pages    int
}

// Empty reports whether the view shows a message instead of items.
func (v View) Empty() bool {
	return len(v.Items) == 0
}

// Render builds the view for one page of a session.
func Render(page domain.ResultSet, query domain.Query, state domain.PaginationState, status domain.ResolutionStatus) View {
	view := View{
		Query: query,
		Page:  state.PageIndex,
		Pages: state.TotalPages(),
	}

	switch {
	case status == domain.StatusFailed:
		view.Message = MessageFailed
		return view
	case len(page) == 0:
		view.Message = MessageNoResults
		return view
	}

	q := query.String()
	view.Items = make([]Item, len(page))
	for i, rec := range page {
		labels := rec.Labels
		if len(labels) > domain.MaxLabels {
			labels = labels[:domain.MaxLabels]
		}
		item := Item{
			Title:   Highlight(rec.Title, q),
			Summary: Highlight(rec.Summary+SummarySuffix, q),
			Labels:  labels,
			Link:    rec.Link,
		}
		if rec.HasThumbnail() {
			item.Thumbnail = rec.Thumbnail
		}
		view.Items[i] = item
	}

	if view.Pages > 1 {
		if state.HasPrev() {
			view.Controls = append(view.Controls, ControlPrev)
		}
		if state.HasNext() {
			view.Controls = append(view.Controls, ControlNext)
		}
	}
	return view
}
