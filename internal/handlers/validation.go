package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/homeflix/homeflix/internal/models"
	pkgauth "github.com/homeflix/homeflix/pkg/auth"
	pkghttp "github.com/homeflix/homeflix/pkg/http"
)

// Global validator instance (reused across all handlers)
var validate = validator.New()

// ValidateRequest validates a request struct and returns field-level
// errors suitable for a 400 response body.
func ValidateRequest(req interface{}) []pkghttp.FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]pkghttp.FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, pkghttp.FieldError{
				Field:   fe.Field(),
				Message: formatValidationError(fe),
			})
		}
		return fields
	}

	return []pkghttp.FieldError{{Field: "", Message: err.Error()}}
}

// formatValidationError converts a validator FieldError to a user-friendly message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must have a minimum of %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must have a maximum of %s characters", fe.Param())
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid id"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}

// writeServiceError maps service-layer sentinel errors onto the HTTP
// error taxonomy. Unrecognized errors become opaque 500s.
func writeServiceError(w http.ResponseWriter, err error) {
	var pve *pkgauth.PasswordValidationError
	if errors.As(err, &pve) {
		fields := make([]pkghttp.FieldError, 0, len(pve.Errors))
		for _, msg := range pve.Errors {
			fields = append(fields, pkghttp.FieldError{Field: "password", Message: msg})
		}
		pkghttp.WriteValidationError(w, "Invalid password", fields)
		return
	}

	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		pkghttp.WriteError(w, http.StatusBadRequest, "invalid_credentials", "Unable to log in with provided credentials")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "Invalid request")
	case errors.Is(err, models.ErrUnauthorized):
		pkghttp.WriteUnauthorized(w, "Authentication required")
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, "You do not have permission to perform this action")
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Resource not found")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "Resource already exists")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
