package domain

// MaxSummaryLength is the number of characters kept from an entry summary.
const MaxSummaryLength = 120

// MaxLabels is the number of category labels kept per record.
const MaxLabels = 3

// DisplayRecord is the compact, render-ready form of a feed entry.
// Records are immutable once created; result sets share them by reference.
type DisplayRecord struct {
	// Title is the entry title, verbatim.
	Title string `json:"title"`

	// Link is the entry's alternate (public) URL.
	Link string `json:"link"`

	// Summary is the markup-stripped summary, at most MaxSummaryLength characters.
	Summary string `json:"summary"`

	// Thumbnail is the upscaled thumbnail URL. Empty when the entry has none.
	Thumbnail string `json:"thumbnail,omitempty"`

	// Labels holds up to MaxLabels category terms in feed order.
	Labels []string `json:"labels"`
}

// HasThumbnail reports whether the record carries a thumbnail.
func (r DisplayRecord) HasThumbnail() bool {
	return r.Thumbnail != ""
}

// ResultSet is the ordered sequence of records resolved for one query.
type ResultSet []DisplayRecord

// Len returns the number of records.
func (rs ResultSet) Len() int {
	return len(rs)
}

// Clone returns a shallow copy of the set. Records are shared, not copied.
func (rs ResultSet) Clone() ResultSet {
	if rs == nil {
		return nil
	}
	out := make(ResultSet, len(rs))
	copy(out, rs)
	return out
}
