package domain

// LinkRelAlternate is the link relation that points at an entry's public page.
const LinkRelAlternate = "alternate"

// FeedLink is one link of a feed entry with its relation tag.
type FeedLink struct {
	Rel  string
	Href string
}

// FeedEntry is one article record as returned by the feed endpoint.
// Optional fields are empty when the endpoint omits them.
type FeedEntry struct {
	// Title is the entry title text.
	Title string

	// Links lists the entry's links with their relation tags.
	Links []FeedLink

	// Summary is the summary markup.
	Summary string

	// ThumbnailURL is the small rendition URL containing a size token.
	ThumbnailURL string

	// Categories lists category terms in feed order.
	Categories []string
}

// AlternateLink returns the href of the first link tagged "alternate".
func (e FeedEntry) AlternateLink() (string, bool) {
	for _, l := range e.Links {
		if l.Rel == LinkRelAlternate {
			return l.Href, true
		}
	}
	return "", false
}
