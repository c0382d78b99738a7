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

// TagServiceInterface defines the tag business logic used by the handler
type TagServiceInterface interface {
	ListTags(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Tag, error)
	GetTag(ctx context.Context, actor *models.User, id string) (*models.Tag, error)
	CreateTag(ctx context.Context, actor *models.User, name string) (*models.Tag, error)
	UpdateTag(ctx context.Context, actor *models.User, id, name string) (*models.Tag, error)
	DeleteTag(ctx context.Context, actor *models.User, id string) error
}

// TagHandler handles tag HTTP requests
type TagHandler struct {
	service TagServiceInterface
}

func NewTagHandler(service TagServiceInterface) *TagHandler {
	return &TagHandler{service: service}
}

// TagRequest represents the request body for creating or renaming a tag
type TagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=30"`
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	tags, err := h.service.ListTags(r.Context(), auth.UserFromContext(r), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		resp = append(resp, tagToResponse(tag))
	}
	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	tag, err := h.service.GetTag(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, tagToResponse(tag))
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	tag, err := h.service.CreateTag(r.Context(), auth.UserFromContext(r), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, tagToResponse(tag))
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if fields := ValidateRequest(req); fields != nil {
		pkghttp.WriteValidationError(w, "Validation failed", fields)
		return
	}

	tag, err := h.service.UpdateTag(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, tagToResponse(tag))
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTag(r.Context(), auth.UserFromContext(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
