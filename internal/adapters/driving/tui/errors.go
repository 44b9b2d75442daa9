package tui

import "errors"

// ErrMissingOverlayService is returned when the overlay service is not provided.
var ErrMissingOverlayService = errors.New("tui: overlay service is required")

// ErrMissingNavigator is returned when the navigator is not provided.
var ErrMissingNavigator = errors.New("tui: navigator is required")
