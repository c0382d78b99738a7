package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/homeflix/homeflix/internal/auth"
	"github.com/homeflix/homeflix/internal/models"
	"github.com/homeflix/homeflix/internal/services"
	pkghttp "github.com/homeflix/homeflix/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	Register(ctx context.Context, email, password string) (*services.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*services.AuthResponse, error)
	Logout(ctx context.Context, digest string) error
	LogoutAll(ctx context.Context, userID string) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new account and returns the user with a fresh token
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	resp, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		// A taken email is a validation failure of the request, not a conflict
		// on an addressable resource.
		if errors.Is(err, models.ErrConflict) {
			pkghttp.WriteValidationError(w, "Validation failed", []pkghttp.FieldError{
				{Field: "email", Message: "A user with this email already exists"},
			})
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, resp)
}

// Login verifies credentials and issues a fresh token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	resp, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// Logout revokes the token that authenticated this request. Other
// sessions stay valid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	digest := auth.TokenDigestFromContext(r)
	if digest == "" {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), digest); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LogoutAll revokes every token belonging to the authenticated user
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r)
	if user == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.LogoutAll(r.Context(), user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
