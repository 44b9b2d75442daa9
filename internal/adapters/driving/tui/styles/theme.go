// Package styles provides colour themes and styling for the overlay.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the overlay.
type Theme struct {
	// Accent marks titles and the selection.
	Accent lipgloss.Color

	// Match marks highlighted query matches.
	Match lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for summaries, labels and hints.
	Muted lipgloss.Color

	// Error marks failures.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#F97316"),
		Match:      lipgloss.Color("#FACC15"),
		Foreground: lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Error:      lipgloss.Color("#F87171"),
		Border:     lipgloss.Color("#4B5563"),
		Bar:        lipgloss.Color("#1F2937"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Highlight  lipgloss.Style
	Label      lipgloss.Style
	Link       lipgloss.Style
	Control    lipgloss.Style
	Error      lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Highlight: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(theme.Match),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Border(lipgloss.NormalBorder(), false, true).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Link: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Control: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
