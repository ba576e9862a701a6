package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/kanban-api/internal/domain"
)

// Global validator instance for reuse
var validate = validator.New()

func init() {
	// Report JSON field names rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return validate.Struct(v)
}

// DecodeAndValidate decodes the body into v and validates it. Failures are
// returned as domain validation errors naming the offending field.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return domain.NewValidationError("body", "is not valid JSON", domain.ErrValidation)
	}

	if err := ValidateRequest(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return domain.NewValidationError(fe.Field(), messageForTag(fe.Tag()), domain.ErrValidation)
		}
		if domain.IsValidationError(err) {
			return err
		}
		return domain.NewValidationError("body", fmt.Sprintf("is invalid: %v", err), domain.ErrValidation)
	}
	return nil
}

// messageForTag maps validation tags to user-friendly error messages
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "gt":
		return "must be positive"
	default:
		return "is invalid"
	}
}
