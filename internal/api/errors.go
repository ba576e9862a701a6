package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/redact"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Not found errors; only produced when reference validation is on
	case errors.Is(err, service.ErrColumnNotFound),
		errors.Is(err, store.ErrColumnNotFound):
		return http.StatusNotFound

	// Everything else, including store.ErrInvalidEntity raised by database
	// constraints, is a server failure
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message sent to clients for err.
// Validation errors keep their own message. Server errors carry the
// redacted error text so clients see what failed without credentials or hosts.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case domain.IsValidationError(err):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return ve.Error()
		}
		return "Validation error"
	case errors.Is(err, service.ErrColumnNotFound),
		errors.Is(err, store.ErrColumnNotFound):
		return "Column not found"
	default:
		return redact.Error(err)
	}
}

// HandleAPIError writes the error response for err. A non-empty message
// overrides the default message for 400 responses only.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" || status != http.StatusBadRequest {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
