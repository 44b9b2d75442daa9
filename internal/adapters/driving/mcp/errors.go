// Package mcp provides a Model Context Protocol server adapter for feedsearch.
// It lets AI assistants run feed searches and page through the results.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrPageOutOfRange is returned when a tool call asks for a page past the end.
var ErrPageOutOfRange = errors.New("mcp: page out of range")
