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

// GenreServiceInterface defines the genre business logic used by the handler
type GenreServiceInterface interface {
	ListGenres(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Genre, error)
	GetGenre(ctx context.Context, actor *models.User, id string) (*models.Genre, error)
	CreateGenre(ctx context.Context, actor *models.User, name string) (*models.Genre, error)
	UpdateGenre(ctx context.Context, actor *models.User, id, name string) (*models.Genre, error)
	DeleteGenre(ctx context.Context, actor *models.User, id string) error
}

// GenreHandler handles genre HTTP requests
type GenreHandler struct {
	service GenreServiceInterface
}

func NewGenreHandler(service GenreServiceInterface) *GenreHandler {
	return &GenreHandler{service: service}
}

// GenreRequest represents the request body for creating or renaming a genre
type GenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=30"`
}

func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	genres, err := h.service.ListGenres(r.Context(), auth.UserFromContext(r), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]GenreResponse, 0, len(genres))
	for _, genre := range genres {
		resp = append(resp, genreToResponse(genre))
	}
	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *GenreHandler) Get(w http.ResponseWriter, r *http.Request) {
	genre, err := h.service.GetGenre(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, genreToResponse(genre))
}

func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	genre, err := h.service.CreateGenre(r.Context(), auth.UserFromContext(r), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, genreToResponse(genre))
}

func (h *GenreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	genre, err := h.service.UpdateGenre(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, genreToResponse(genre))
}

func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGenre(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
