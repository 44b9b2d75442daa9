package blogger

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// feedResponse is the subset of the Blogger JSON feed the overlay reads.
type feedResponse struct {
	Feed struct {
		Entry []wireEntry `json:"entry"`
	} `json:"feed"`
}

type textNode struct {
	Text string `json:"$t"`
}

type wireEntry struct {
	Title     textNode   `json:"title"`
	Summary   textNode   `json:"summary"`
	Link      []wireLink `json:"link"`
	Thumbnail *struct {
		URL string `json:"url"`
	} `json:"media$thumbnail"`
	Category []struct {
		Term string `json:"term"`
	} `json:"category"`
}

type wireLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// decodeFeed parses a feed document. A feed without entries decodes to
// an empty slice.
func decodeFeed(data []byte) ([]domain.FeedEntry, error) {
	var resp feedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode feed: %w", domain.ErrNetworkFailure, err)
	}

	entries := make([]domain.FeedEntry, len(resp.Feed.Entry))
	for i, e := range resp.Feed.Entry {
		links := make([]domain.FeedLink, len(e.Link))
		for j, l := range e.Link {
			links[j] = domain.FeedLink{Rel: l.Rel, Href: l.Href}
		}
		categories := make([]string, len(e.Category))
		for j, c := range e.Category {
			categories[j] = c.Term
		}
		entry := domain.FeedEntry{
			Title:      e.Title.Text,
			Links:      links,
			Summary:    e.Summary.Text,
			Categories: categories,
		}
		if e.Thumbnail != nil {
			entry.ThumbnailURL = e.Thumbnail.URL
		}
		entries[i] = entry
	}
	return entries, nil
}
