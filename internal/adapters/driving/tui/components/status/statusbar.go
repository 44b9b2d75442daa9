// Package status provides the overlay's status bar.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/feedsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/feedsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// Bar displays the coordinator state and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     domain.SessionState
	outcome   domain.ResolutionStatus
	total     int
	fromCache bool
	message   string
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		state:  domain.StateIdle,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - s.styles.StatusBar.GetHorizontalFrameSize() - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) renderLeft() string {
	if s.message != "" {
		return s.styles.Normal.Render(s.message)
	}
	switch s.state {
	case domain.StateDebouncing, domain.StateResolving:
		return s.styles.Muted.Render("Searching...")
	case domain.StateResolved:
		switch s.outcome {
		case domain.StatusFailed:
			return s.styles.Error.Render("Search failed")
		case domain.StatusEmpty:
			return s.styles.Muted.Render("No results")
		case domain.StatusResolved:
			text := fmt.Sprintf("%d results", s.total)
			if s.fromCache {
				text += " (cached)"
			}
			return s.styles.Normal.Render(text)
		}
	case domain.StateIdle:
	}
	return s.styles.Muted.Render("Type at least 2 characters")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.outcome == domain.StatusResolved && s.total > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState records the coordinator state.
func (s *Bar) SetState(state domain.SessionState) {
	s.state = state
}

// State returns the last recorded coordinator state.
func (s *Bar) State() domain.SessionState {
	return s.state
}

// SetResolution records the outcome of the committed session.
func (s *Bar) SetResolution(res domain.Resolution) {
	s.outcome = res.Status
	s.total = res.Results.Len()
	s.fromCache = res.FromCache
}

// SetMessage shows a transient message in place of the state.
// An empty message restores the state display.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
