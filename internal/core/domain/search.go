package domain

import (
	"strings"
	"unicode/utf8"
)

// MinQueryLength is the minimum number of characters a trimmed query must have.
const MinQueryLength = 2

// Query is a trimmed search term of at least MinQueryLength characters.
// It is case-preserving when used as a cache key and case-insensitive
// when used for highlighting.
type Query string

// ParseQuery trims raw input and validates its length.
// Returns ErrQueryTooShort if fewer than MinQueryLength characters remain.
func ParseQuery(raw string) (Query, error) {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) < MinQueryLength {
		return "", ErrQueryTooShort
	}
	return Query(trimmed), nil
}

// String returns the query text.
func (q Query) String() string {
	return string(q)
}

// ResolutionStatus describes how a query session ended.
type ResolutionStatus string

// Available resolution statuses.
const (
	// StatusResolved means the query produced at least one record.
	StatusResolved ResolutionStatus = "resolved"

	// StatusEmpty means the search succeeded and found nothing.
	StatusEmpty ResolutionStatus = "empty"

	// StatusFailed means the fetch or decode failed. The result set is empty.
	StatusFailed ResolutionStatus = "failed"
)

// String returns the string representation.
func (s ResolutionStatus) String() string {
	return string(s)
}

// StatusFor returns StatusResolved or StatusEmpty depending on the record count.
func StatusFor(rs ResultSet) ResolutionStatus {
	if rs.Len() == 0 {
		return StatusEmpty
	}
	return StatusResolved
}

// SessionState is the coordinator's position in a query session.
type SessionState string

// Query session states.
const (
	// StateIdle means no query has been accepted yet.
	StateIdle SessionState = "idle"

	// StateDebouncing means a query is waiting for input to go quiet.
	StateDebouncing SessionState = "debouncing"

	// StateResolving means a query is being looked up or fetched.
	StateResolving SessionState = "resolving"

	// StateResolved means the latest query has committed its results.
	StateResolved SessionState = "resolved"
)

// String returns the string representation.
func (s SessionState) String() string {
	return string(s)
}

// Resolution is the immutable outcome of one query session.
type Resolution struct {
	// Token orders sessions. Only the session holding the current token commits.
	Token uint64

	// ID correlates the session across log lines and adapters.
	ID string

	// Query is the resolved query.
	Query Query

	// Results holds the records, empty when Status is StatusEmpty or StatusFailed.
	Results ResultSet

	// Status tells "found nothing" apart from "search failed".
	Status ResolutionStatus

	// Err is the failure cause when Status is StatusFailed.
	Err error

	// FromCache reports whether the results came from a cache tier.
	FromCache bool
}

// Failed reports whether the session ended in a failure.
func (r Resolution) Failed() bool {
	return r.Status == StatusFailed
}
