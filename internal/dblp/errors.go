package dblp

import (
	"errors"
	"fmt"
)

// Common errors returned by the DBLP client.
var (
	// ErrAuthorNotFound indicates the author search returned no hits.
	ErrAuthorNotFound = errors.New("author not found in DBLP")

	// ErrNoPID indicates the author's profile URL carries no PID.
	ErrNoPID = errors.New("no DBLP PID in author profile")

	// ErrRateLimited indicates DBLP throttled the request.
	ErrRateLimited = errors.New("DBLP rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with DBLP")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from DBLP")
)

// APIError represents an HTTP error from DBLP.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("DBLP API error (status %d): %s (%s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound returns true if the error indicates a missing author or
// profile.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrAuthorNotFound) || errors.Is(err, ErrNoPID) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
