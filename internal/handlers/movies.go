package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/homeflix/homeflix/internal/auth"
	"github.com/homeflix/homeflix/internal/models"
	"github.com/homeflix/homeflix/internal/services"
	pkghttp "github.com/homeflix/homeflix/pkg/http"
)

// MovieServiceInterface defines the movie business logic used by the handler
type MovieServiceInterface interface {
	ListMovies(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Movie, error)
	GetMovie(ctx context.Context, actor *models.User, id string) (*models.Movie, error)
	CreateMovie(ctx context.Context, actor *models.User, input services.MovieInput) (*models.Movie, error)
	UpdateMovie(ctx context.Context, actor *models.User, id string, input services.MovieInput) (*models.Movie, error)
	DeleteMovie(ctx context.Context, actor *models.User, id string) error
}

// MovieHandler handles movie HTTP requests
type MovieHandler struct {
	service MovieServiceInterface
}

func NewMovieHandler(service MovieServiceInterface) *MovieHandler {
	return &MovieHandler{service: service}
}

// CreateMovieRequest represents the request body for creating a movie.
// Tags and genres are nested name objects.
type CreateMovieRequest struct {
	Title  string    `json:"title" validate:"required,min=1,max=30"`
	Tags   []NameRef `json:"tags" validate:"omitempty,dive"`
	Genres []NameRef `json:"genres" validate:"omitempty,dive"`
}

// UpdateMovieRequest represents the request body for updating a movie.
// Absent fields are left untouched; tags and genres append.
type UpdateMovieRequest struct {
	Title  *string   `json:"title" validate:"omitempty,min=1,max=30"`
	Tags   []NameRef `json:"tags" validate:"omitempty,dive"`
	Genres []NameRef `json:"genres" validate:"omitempty,dive"`
}

func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	movies, err := h.service.ListMovies(r.Context(), auth.UserFromContext(r), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		resp = append(resp, movieToResponse(movie))
	}
	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovie(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, movieToResponse(movie))
}

func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), auth.UserFromContext(r), services.MovieInput{
		Title:  &req.Title,
		Tags:   refNames(req.Tags),
		Genres: refNames(req.Genres),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, movieToResponse(movie))
}

func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id"), services.MovieInput{
		Title:  req.Title,
		Tags:   refNames(req.Tags),
		Genres: refNames(req.Genres),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, movieToResponse(movie))
}

func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMovie(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
