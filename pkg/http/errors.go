package http

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error   string       `json:"error"`             // Machine-readable error code
	Message string       `json:"message"`           // Human-readable message
	Fields  []FieldError `json:"fields,omitempty"`  // Field-level validation messages
	Details string       `json:"details,omitempty"` // Optional additional context
}

// FieldError carries a validation message for a single request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response with the given status code
func WriteError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	writeError(w, statusCode, ErrorResponse{Error: errorCode, Message: message})
}

// WriteValidationError writes a 400 response with field-level messages
func WriteValidationError(w http.ResponseWriter, message string, fields []FieldError) {
	writeError(w, http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: message,
		Fields:  fields,
	})
}

func writeError(w http.ResponseWriter, statusCode int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Log encoding errors but don't expose them to client
	_ = json.NewEncoder(w).Encode(resp)
}

// Common error writers for consistency
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message)
}

func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message)
}

// WriteJSON writes a JSON success response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
