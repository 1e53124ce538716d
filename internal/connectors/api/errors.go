package api

import (
	"errors"
	"fmt"
)

// Connector-specific errors.
var (
	// ErrMissingEndpoint indicates a source has no endpoint URL.
	ErrMissingEndpoint = errors.New("api: missing endpoint URL")

	// ErrInvalidResponse indicates a response body was not valid JSON.
	ErrInvalidResponse = errors.New("api: response is not valid JSON")
)

// APIError represents a non-2xx response from the remote API.
// Transport failures are fatal for the current source's traversal.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: request failed (%d): %s", e.StatusCode, e.URL)
}

// IsAPIError reports whether err wraps a non-2xx API response and
// returns the typed error when it does.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
