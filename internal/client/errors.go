package client

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports that a request never produced an HTTP response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError reports a non-2xx response from the board API.
type APIError struct {
	StatusCode int
	Message    string
	TraceID    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("board API error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("board API error (%d): %s", e.StatusCode, e.Message)
}

// IsNetworkError reports whether err is, or wraps, a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == status
}

// IsNotFound reports whether err is a 404 APIError.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}
