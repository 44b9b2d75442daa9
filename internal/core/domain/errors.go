package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrQueryTooShort indicates the trimmed query is shorter than MinQueryLength.
	ErrQueryTooShort = errors.New("query too short")

	// ErrNoEndpoint indicates no feed endpoint has been configured.
	ErrNoEndpoint = errors.New("feed endpoint not configured")

	// Pipeline Errors.

	// ErrMalformedEntry indicates a feed entry could not be normalised.
	// Recoverable: the entry is skipped and the batch continues.
	ErrMalformedEntry = errors.New("malformed feed entry")

	// ErrNetworkFailure indicates the feed request or its decoding failed.
	// Recoverable: surfaced as a failed, empty result. Never retried automatically.
	ErrNetworkFailure = errors.New("network failure")

	// ErrStaleResult indicates a resolution lost the race to a newer query.
	// It is discarded silently and never shown to the user.
	ErrStaleResult = errors.New("stale result")

	// Storage Errors.

	// ErrStorageWriteFailure indicates the durable cache tier rejected a write.
	// Recoverable: caching degrades to the in-memory tier only.
	ErrStorageWriteFailure = errors.New("storage write failure")

	// ErrStorageQuotaExceeded indicates a durable write would exceed the tier quota.
	ErrStorageQuotaExceeded = fmt.Errorf("%w: quota exceeded", ErrStorageWriteFailure)
)
