// Package list renders a page of records for the overlay.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/feedsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/feedsearch/internal/render"
)

// ResultList displays one rendered page with a movable selection.
type ResultList struct {
	view     render.View
	shown    bool
	selected int
	styles   *styles.Styles
	width    int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{
		styles: s,
		width:  80,
	}
}

// SetView replaces the rendered page. The selection returns to the first item.
func (r *ResultList) SetView(v render.View) {
	r.view = v
	r.shown = true
	r.selected = 0
}

// RenderView returns the page being displayed.
func (r *ResultList) RenderView() render.View {
	return r.view
}

// View renders the list. Nothing is drawn before the first SetView.
func (r *ResultList) View() string {
	if !r.shown {
		return ""
	}
	if r.view.Empty() {
		style := r.styles.Muted
		if r.view.Message == render.MessageFailed {
			style = r.styles.Error
		}
		return style.Render(r.view.Message)
	}

	blocks := make([]string, 0, len(r.view.Items)+1)
	for i, item := range r.view.Items {
		blocks = append(blocks, r.renderItem(i, item))
	}
	if footer := r.renderFooter(); footer != "" {
		blocks = append(blocks, footer)
	}
	return strings.Join(blocks, "\n\n")
}

func (r *ResultList) renderItem(index int, item render.Item) string {
	indicator := "  "
	base := r.styles.Normal
	if index == r.selected {
		indicator = "> "
		base = r.styles.Selected
	}

	thumb := ""
	if item.Thumbnail != "" {
		thumb = r.styles.Muted.Render("▣ ")
	}

	lines := []string{
		indicator + thumb + r.segments(item.Title, base),
		"    " + r.segments(item.Summary, r.styles.Muted),
	}
	if len(item.Labels) > 0 {
		labels := make([]string, len(item.Labels))
		for i, l := range item.Labels {
			labels[i] = r.styles.Label.Render(l)
		}
		lines = append(lines, "    "+lipgloss.JoinHorizontal(lipgloss.Top, labels...))
	}
	if index == r.selected && item.Link != "" {
		lines = append(lines, "    "+r.styles.Link.Render(item.Link))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) segments(segs []render.Segment, base lipgloss.Style) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Match {
			b.WriteString(r.styles.Highlight.Render(s.Text))
		} else {
			b.WriteString(base.Render(s.Text))
		}
	}
	return b.String()
}

func (r *ResultList) renderFooter() string {
	if r.view.Pages <= 1 {
		return ""
	}
	parts := make([]string, 0, len(r.view.Controls)+1)
	for _, c := range r.view.Controls {
		parts = append(parts, r.styles.Control.Render(c.Label()))
	}
	parts = append(parts, r.styles.Muted.Render(fmt.Sprintf("page %d of %d", r.view.Page+1, r.view.Pages)))
	return strings.Join(parts, " ")
}

// Selected returns the index of the selected item.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedItem returns the selected item, or false when the page is empty.
func (r *ResultList) SelectedItem() (render.Item, bool) {
	if r.selected < 0 || r.selected >= len(r.view.Items) {
		return render.Item{}, false
	}
	return r.view.Items[r.selected], true
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.view.Items)-1 {
		r.selected++
	}
}

// SetWidth sets the component width.
func (r *ResultList) SetWidth(width int) {
	r.width = width
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Count returns the number of items on the page.
func (r *ResultList) Count() int {
	return len(r.view.Items)
}
