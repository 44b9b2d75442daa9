package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
	"github.com/custodia-labs/feedsearch/internal/render"
)

var (
	searchPage int
	searchJSON bool
	searchHTML bool
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search the feed once and print a page of results",
	Long: `Resolves QUERY through the cache tiers and the feed endpoint and prints
one page of five results. Matches are marked [like this], or highlighted
when writing to a terminal.

Use --page to pick a later page, --json for machine-readable output and
--html for the overlay markup.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationNeeds: needsRuntime},
	RunE:        runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "1-based page number")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchHTML, "html", false, "output the overlay HTML")
	searchCmd.MarkFlagsMutuallyExclusive("json", "html")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if deps == nil || deps.Overlay == nil {
		return errNotConfigured
	}
	if searchPage < 1 {
		return fmt.Errorf("%w: page must be at least 1", domain.ErrInvalidInput)
	}

	session, err := deps.Overlay.Resolve(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrQueryTooShort) {
			return fmt.Errorf("query must be at least %d characters: %w", domain.MinQueryLength, err)
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if err := seekPage(session, searchPage); err != nil {
		return err
	}

	res := session.Resolution()
	view := render.Render(session.CurrentPage(), res.Query, session.Pagination(), res.Status)
	out := cmd.OutOrStdout()

	switch {
	case searchJSON:
		err = outputSearchJSON(out, session)
	case searchHTML:
		err = render.WriteHTML(out, view)
	default:
		if !res.Failed() {
			err = outputSearchText(out, view, res, stylesFor(out))
		}
	}
	if err != nil {
		return err
	}

	if res.Failed() {
		return fmt.Errorf("%s: %w", render.MessageFailed, res.Err)
	}
	return nil
}

// seekPage advances the session to the 1-based page.
func seekPage(s driving.QuerySession, page int) error {
	for s.Pagination().PageIndex < page-1 {
		if !s.Next() {
			pages := s.Pagination().TotalPages()
			if pages == 0 {
				return nil
			}
			return fmt.Errorf("%w: page %d of %d", domain.ErrInvalidInput, page, pages)
		}
	}
	return nil
}

// searchOutput is the JSON shape of search --json.
type searchOutput struct {
	Query   string                 `json:"query"`
	Status  string                 `json:"status"`
	Error   string                 `json:"error,omitempty"`
	Cached  bool                   `json:"cached"`
	Page    int                    `json:"page"`
	Pages   int                    `json:"pages"`
	Total   int                    `json:"total"`
	Results []domain.DisplayRecord `json:"results"`
}

func outputSearchJSON(w io.Writer, s driving.QuerySession) error {
	res := s.Resolution()
	state := s.Pagination()

	output := searchOutput{
		Query:   res.Query.String(),
		Status:  res.Status.String(),
		Cached:  res.FromCache,
		Page:    state.PageIndex + 1,
		Pages:   state.TotalPages(),
		Total:   state.Total,
		Results: s.CurrentPage(),
	}
	if res.Err != nil {
		output.Error = res.Err.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return nil
}

// textStyles decorates plain text output. The zero value writes
// matches as [match].
type textStyles struct {
	color     bool
	highlight lipgloss.Style
	title     lipgloss.Style
	muted     lipgloss.Style
}

func stylesFor(w io.Writer) textStyles {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return textStyles{}
	}
	return textStyles{
		color:     true,
		highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FACC15")),
		title:     lipgloss.NewStyle().Bold(true),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
	}
}

func (s textStyles) segments(segs []render.Segment, base lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range segs {
		switch {
		case seg.Match && s.color:
			b.WriteString(s.highlight.Render(seg.Text))
		case seg.Match:
			b.WriteString("[" + seg.Text + "]")
		case s.color:
			b.WriteString(base.Render(seg.Text))
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

func (s textStyles) plain(text string, base lipgloss.Style) string {
	if !s.color {
		return text
	}
	return base.Render(text)
}

func outputSearchText(w io.Writer, view render.View, res domain.Resolution, st textStyles) error {
	var b strings.Builder

	if view.Empty() {
		b.WriteString(view.Message + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	header := fmt.Sprintf("Results for %q (page %d of %d, %d total", res.Query, view.Page+1, view.Pages, res.Results.Len())
	if res.FromCache {
		header += ", cached"
	}
	b.WriteString(st.plain(header+")", st.title) + "\n\n")

	for i, item := range view.Items {
		n := view.Page*domain.PageSize + i + 1
		fmt.Fprintf(&b, "  %d. %s\n", n, st.segments(item.Title, st.title))
		fmt.Fprintf(&b, "     %s\n", st.segments(item.Summary, st.muted))
		if len(item.Labels) > 0 {
			fmt.Fprintf(&b, "     %s\n", st.plain("labels: "+strings.Join(item.Labels, ", "), st.muted))
		}
		fmt.Fprintf(&b, "     %s\n\n", item.Link)
	}

	for _, c := range view.Controls {
		page := view.Page
		if c == render.ControlNext {
			page += 2
		}
		fmt.Fprintf(&b, "  %s  --page %d\n", c.Label(), page)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
