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

// ListingServiceInterface defines the listing business logic used by the handler
type ListingServiceInterface interface {
	ListListings(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Listing, error)
	GetListing(ctx context.Context, actor *models.User, id string) (*models.Listing, error)
	CreateListing(ctx context.Context, actor *models.User, input services.ListingInput) (*models.Listing, error)
	UpdateListing(ctx context.Context, actor *models.User, id string, input services.ListingInput) (*models.Listing, error)
	DeleteListing(ctx context.Context, actor *models.User, id string) error
}

// ListingHandler handles listing HTTP requests
type ListingHandler struct {
	service ListingServiceInterface
}

func NewListingHandler(service ListingServiceInterface) *ListingHandler {
	return &ListingHandler{service: service}
}

// CreateListingRequest represents the request body for creating a listing.
// Listings reference their movie by id; the movie comes back embedded.
type CreateListingRequest struct {
	Name               string `json:"name" validate:"required,min=1,max=100"`
	StreamURL          string `json:"stream_url" validate:"required,url"`
	SeasonNumber       int    `json:"season_number" validate:"gte=0"`
	EpisodeNumber      int    `json:"episode_number" validate:"gte=0"`
	ContentDescription string `json:"content_description"`
	MovieID            string `json:"movie_id" validate:"required,uuid"`
}

// UpdateListingRequest represents the request body for updating a listing.
// Absent fields are left untouched.
type UpdateListingRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1,max=100"`
	StreamURL          *string `json:"stream_url" validate:"omitempty,url"`
	SeasonNumber       *int    `json:"season_number" validate:"omitempty,gte=0"`
	EpisodeNumber      *int    `json:"episode_number" validate:"omitempty,gte=0"`
	ContentDescription *string `json:"content_description"`
	MovieID            *string `json:"movie_id" validate:"omitempty,uuid"`
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	listings, err := h.service.ListListings(r.Context(), auth.UserFromContext(r), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]ListingResponse, 0, len(listings))
	for _, listing := range listings {
		resp = append(resp, listingToResponse(listing))
	}
	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.GetListing(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, listingToResponse(listing))
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	listing, err := h.service.CreateListing(r.Context(), auth.UserFromContext(r), services.ListingInput{
		Name:               &req.Name,
		StreamURL:          &req.StreamURL,
		SeasonNumber:       &req.SeasonNumber,
		EpisodeNumber:      &req.EpisodeNumber,
		ContentDescription: &req.ContentDescription,
		MovieID:            &req.MovieID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, listingToResponse(listing))
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	listing, err := h.service.UpdateListing(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id"), services.ListingInput{
		Name:               req.Name,
		StreamURL:          req.StreamURL,
		SeasonNumber:       req.SeasonNumber,
		EpisodeNumber:      req.EpisodeNumber,
		ContentDescription: req.ContentDescription,
		MovieID:            req.MovieID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, listingToResponse(listing))
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteListing(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
