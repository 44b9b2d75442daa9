package blogger

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
	"github.com/custodia-labs/feedsearch/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Blogger thumbnail size tokens. The feed serves 72px cropped squares;
// swapping the token requests the 300px rendition of the same image.
const (
	thumbnailSmallToken = "s72-c"
	thumbnailLargeToken = "s300"
)

// Normaliser converts Blogger feed entries into display records.
// It is safe for concurrent use.
type Normaliser struct {
	policy *bluemonday.Policy
}

// New creates a new Blogger normaliser.
func New() *Normaliser {
	return &Normaliser{
		policy: bluemonday.StrictPolicy(),
	}
}

// Normalise converts one entry into a display record.
// Entries without an alternate link are malformed.
func (n *Normaliser) Normalise(entry domain.FeedEntry) (domain.DisplayRecord, error) {
	link, ok := entry.AlternateLink()
	if !ok {
		return domain.DisplayRecord{}, fmt.Errorf("%w: %q has no alternate link", domain.ErrMalformedEntry, entry.Title)
	}

	return domain.DisplayRecord{
		Title:     entry.Title,
		Link:      link,
		Summary:   n.summarise(entry.Summary),
		Thumbnail: upsizeThumbnail(entry.ThumbnailURL),
		Labels:    firstLabels(entry.Categories),
	}, nil
}

// NormaliseBatch converts entries in feed order, skipping malformed ones.
func (n *Normaliser) NormaliseBatch(entries []domain.FeedEntry) domain.ResultSet {
	records := make(domain.ResultSet, 0, len(entries))
	for i := range entries {
		record, err := n.Normalise(entries[i])
		if err != nil {
			logger.Warn("Skipping entry %d: %v", i, err)
			continue
		}
		records = append(records, record)
	}
	return records
}

// summarise strips markup and keeps the first MaxSummaryLength characters.
// Truncation is not word-aware and may split a word.
func (n *Normaliser) summarise(markup string) string {
	if markup == "" {
		return ""
	}
	text := html.UnescapeString(n.policy.Sanitize(markup))
	return truncate(text, domain.MaxSummaryLength)
}

// truncate keeps the first max runes of s.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// upsizeThumbnail swaps the small size token for the large one.
// Returns empty string if there is no thumbnail.
func upsizeThumbnail(url string) string {
	if url == "" {
		return ""
	}
	return strings.Replace(url, thumbnailSmallToken, thumbnailLargeToken, 1)
}

// firstLabels returns up to MaxLabels terms, never nil.
func firstLabels(categories []string) []string {
	n := len(categories)
	if n > domain.MaxLabels {
		n = domain.MaxLabels
	}
	labels := make([]string, n)
	copy(labels, categories[:n])
	return labels
}
