package render

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// WriteHTML writes the overlay markup for view. All text is escaped.
// Items carry their link in data-href and controls carry data-action,
// both for the host page to bind; no inline handlers are emitted.
func WriteHTML(w io.Writer, view View) error {
	var b strings.Builder

	if view.Empty() {
		fmt.Fprintf(&b, "<div class=\"search-message\">%s</div>\n", html.EscapeString(view.Message))
	}

	for _, item := range view.Items {
		fmt.Fprintf(&b, "<div class=\"search-item\" data-href=\"%s\">\n", html.EscapeString(item.Link))
		if item.Thumbnail != "" {
			fmt.Fprintf(&b, "  <img src=\"%s\" alt=\"\" loading=\"lazy\">\n", html.EscapeString(item.Thumbnail))
		}
		b.WriteString("  <div>\n")
		b.WriteString("    <div><strong>")
		writeSegments(&b, item.Title)
		b.WriteString("</strong></div>\n")
		b.WriteString("    <div class=\"search-summary\">")
		writeSegments(&b, item.Summary)
		b.WriteString("</div>\n")
		b.WriteString("    <div class=\"search-labels\">")
		for _, label := range item.Labels {
			fmt.Fprintf(&b, "<span class=\"search-label\">%s</span>", html.EscapeString(label))
		}
		b.WriteString("</div>\n")
		b.WriteString("  </div>\n</div>\n")
	}

	if len(view.Controls) > 0 {
		b.WriteString("<div class=\"search-pagination\">")
		for _, c := range view.Controls {
			fmt.Fprintf(&b, "<button type=\"button\" data-action=\"%s\">%s</button>",
				html.EscapeString(string(c)), html.EscapeString(c.Label()))
		}
		b.WriteString("</div>\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSegments(b *strings.Builder, segments []Segment) {
	for _, s := range segments {
		if s.Match {
			fmt.Fprintf(b, "<span class=\"search-highlight\">%s</span>", html.EscapeString(s.Text))
			continue
		}
		b.WriteString(html.EscapeString(s.Text))
	}
}
