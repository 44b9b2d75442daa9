// Package blogger provides a Normaliser for Blogger summary-feed entries.
// It strips summary markup, truncates snippets, upsizes thumbnails and
// keeps the first category labels, producing compact display records.
package blogger
