// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
)

// ResultsResolved carries a committed session from the coordinator.
type ResultsResolved struct {
	Session driving.QuerySession
}

// RecordOpened reports the outcome of opening a record's link.
type RecordOpened struct {
	Link string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
