package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/homeflix/homeflix/internal/auth"
	"github.com/homeflix/homeflix/internal/models"
	pkghttp "github.com/homeflix/homeflix/pkg/http"
)

// ProfileServiceInterface defines the profile business logic used by the handler
type ProfileServiceInterface interface {
	ListProfiles(ctx context.Context, actor *models.User) ([]*models.UserProfile, error)
	GetProfile(ctx context.Context, actor *models.User, id string) (*models.UserProfile, error)
	CreateProfile(ctx context.Context, actor *models.User, name string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, actor *models.User, id, name string) (*models.UserProfile, error)
	DeleteProfile(ctx context.Context, actor *models.User, id string) error
}

// ProfileHandler handles viewing-profile HTTP requests
type ProfileHandler struct {
	service ProfileServiceInterface
}

func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// ProfileRequest represents the request body for creating or renaming a profile
type ProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListProfiles(r.Context(), auth.UserFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		resp = append(resp, profileToResponse(profile))
	}
	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, profileToResponse(profile))
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), auth.UserFromContext(r), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, profileToResponse(profile))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, profileToResponse(profile))
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProfile(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
