package service

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound indicates a task referenced a column that does not exist.
// It is only returned when reference validation is enabled.
// API layer should map this to HTTP 404 Not Found.
var ErrColumnNotFound = errors.New("column not found")

// BoardServiceError is a custom error type for board service errors.
type BoardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for BoardServiceError.
func (e *BoardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("board service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("board service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *BoardServiceError) Unwrap() error {
	return e.Err
}

// NewBoardServiceError creates a new BoardServiceError.
func NewBoardServiceError(operation, message string, err error) *BoardServiceError {
	return &BoardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
