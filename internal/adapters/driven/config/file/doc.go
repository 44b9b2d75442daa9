// Package file provides a TOML file-backed configuration store.
//
// Keys are exposed in dot notation ("feed.endpoint") and written back
// as nested tables, so a config file reads:
//
//	[feed]
//	endpoint = "https://example.blogspot.com"
//	timeout_ms = 10000
package file
