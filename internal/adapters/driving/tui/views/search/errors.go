package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoNavigator indicates that no navigator was provided.
	ErrNoNavigator = errors.New("navigator is required")
)
