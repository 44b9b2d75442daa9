package blogger

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// Blogger-specific errors.
var (
	// ErrBodyTooLarge indicates the response exceeded the body limit.
	ErrBodyTooLarge = errors.New("blogger: response body too large")

	// ErrInvalidEndpoint indicates the endpoint is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("blogger: invalid endpoint")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("blogger: HTTP %d %s (URL: %s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Unwrap makes every status error match domain.ErrNetworkFailure.
func (e *StatusError) Unwrap() error {
	return domain.ErrNetworkFailure
}

// IsRateLimited checks if the error is a 429 response.
func IsRateLimited(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}
	return false
}
