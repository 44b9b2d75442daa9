package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrQueryTooShort", ErrQueryTooShort},
		{"ErrNoEndpoint", ErrNoEndpoint},
		{"ErrMalformedEntry", ErrMalformedEntry},
		{"ErrNetworkFailure", ErrNetworkFailure},
		{"ErrStaleResult", ErrStaleResult},
		{"ErrStorageWriteFailure", ErrStorageWriteFailure},
		{"ErrStorageQuotaExceeded", ErrStorageQuotaExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrStorageQuotaExceeded_IsWriteFailure tests the quota error wraps the write failure
func TestErrStorageQuotaExceeded_IsWriteFailure(t *testing.T) {
	assert.True(t, errors.Is(ErrStorageQuotaExceeded, ErrStorageWriteFailure))
	assert.False(t, errors.Is(ErrStorageWriteFailure, ErrStorageQuotaExceeded))
	assert.Equal(t, "storage write failure: quota exceeded", ErrStorageQuotaExceeded.Error())
}

// TestErrors_Wrapping tests that wrapped domain errors can be unwrapped
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetch %q: %w", "blog", ErrNetworkFailure)
	assert.True(t, errors.Is(wrapped, ErrNetworkFailure))
	assert.False(t, errors.Is(wrapped, ErrMalformedEntry))
}

// TestErrors_Distinct tests that pipeline errors are distinguishable
func TestErrors_Distinct(t *testing.T) {
	all := []error{ErrMalformedEntry, ErrNetworkFailure, ErrStaleResult, ErrStorageWriteFailure, ErrQueryTooShort}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
