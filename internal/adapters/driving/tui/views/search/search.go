// Package search provides the overlay view: a query input over a paged
// result list.
package search

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/feedsearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/feedsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/feedsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/feedsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/feedsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/feedsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
	"github.com/custodia-labs/feedsearch/internal/logger"
	"github.com/custodia-labs/feedsearch/internal/render"
)

// View is the overlay: input, results and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	overlay   driving.OverlayService
	navigator driving.Navigator
	ctx       context.Context

	session driving.QuerySession

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new overlay view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	overlay driving.OverlayService,
	navigator driving.Navigator,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchInput(s),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km),
		overlay:   overlay,
		navigator: navigator,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used when opening records.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the overlay.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ResultsResolved:
		v.showSession(msg.Session)
		return v, nil

	case messages.RecordOpened:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetMessage("Open failed: " + msg.Err.Error())
		} else {
			v.statusbar.SetMessage("Opened " + msg.Link)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Close):
		return v, tea.Quit

	case key.Matches(msg, v.keymap.Open):
		return v, v.openSelected()

	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case key.Matches(msg, v.keymap.NextPage):
		if v.session != nil && v.session.Next() {
			v.renderPage()
		}
		return v, nil

	case key.Matches(msg, v.keymap.PrevPage):
		if v.session != nil && v.session.Prev() {
			v.renderPage()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Changed() && v.overlay != nil {
		v.statusbar.SetMessage("")
		v.overlay.OnInput(v.input.Value())
		v.statusbar.SetState(v.overlay.State())
	}
	return v, cmd
}

// showSession replaces the displayed results with a committed session.
func (v *View) showSession(s driving.QuerySession) {
	if s == nil {
		return
	}
	v.session = s
	res := s.Resolution()
	v.err = res.Err
	v.statusbar.SetState(domain.StateResolved)
	v.statusbar.SetResolution(res)
	logger.Debug("tui: showing session %s (%s, %d records)", res.ID, res.Status, res.Results.Len())
	v.renderPage()
}

func (v *View) renderPage() {
	res := v.session.Resolution()
	v.list.SetView(render.Render(v.session.CurrentPage(), res.Query, v.session.Pagination(), res.Status))
}

// openSelected returns a command that opens the selected record's link.
func (v *View) openSelected() tea.Cmd {
	if v.session == nil {
		return nil
	}
	idx := v.list.Selected()
	page := v.session.CurrentPage()
	if idx < 0 || idx >= len(page) {
		return nil
	}
	record := page[idx]
	nav := v.navigator
	ctx := v.ctx

	return func() tea.Msg {
		if nav == nil {
			return messages.ErrorOccurred{Err: ErrNoNavigator}
		}
		return messages.RecordOpened{Link: record.Link, Err: nav.Open(ctx, record)}
	}
}

// View renders the overlay.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections,
		v.styles.Title.Render("feedsearch"), "",
		v.input.View(), "",
	)
	if body := v.list.View(); body != "" {
		sections = append(sections, body, "")
	}
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current input text.
func (v *View) Query() string {
	return v.input.Value()
}

// Session returns the displayed session, or nil before the first commit.
func (v *View) Session() driving.QuerySession {
	return v.session
}

// Page returns the rendered page currently displayed.
func (v *View) Page() render.View {
	return v.list.RenderView()
}

// SelectedIndex returns the index of the selected item on the page.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
