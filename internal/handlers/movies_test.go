package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/homeflix/homeflix/internal/models"
	"github.com/homeflix/homeflix/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMovie(id, title string) *models.Movie {
	now := time.Now()
	return &models.Movie{
		ID:        id,
		Title:     title,
		CreatedBy: "admin-1",
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []*models.Tag{{ID: "tag-1", Name: "Cute", CreatedAt: now, UpdatedAt: now}},
		Genres:    []*models.Genre{{ID: "genre-1", Name: "Anime", CreatedAt: now, UpdatedAt: now}},
		Creator:   &models.User{ID: "admin-1", Email: "admin@example.com"},
	}
}

func TestMovieHandler_List(t *testing.T) {
	handler := NewMovieHandler(&MockMovieService{
		ListMoviesFunc: func(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Movie, error) {
			assert.Equal(t, 20, limit)
			assert.Equal(t, 0, offset)
			return []*models.Movie{testMovie("movie-1", "Totoro")}, nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodGet, "/movies", nil), NewTestUser("user-1", "user@example.com"))
	w := httptest.NewRecorder()
	handler.List(w, req)

	var resp []MovieResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, "Totoro", resp[0].Title)
	require.Len(t, resp[0].Tags, 1)
	assert.Equal(t, "Cute", resp[0].Tags[0].Name)
	require.NotNil(t, resp[0].CreatedBy)
	assert.Equal(t, "admin@example.com", resp[0].CreatedBy.Email)
}

func TestMovieHandler_List_PaginationParams(t *testing.T) {
	handler := NewMovieHandler(&MockMovieService{
		ListMoviesFunc: func(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Movie, error) {
			assert.Equal(t, 5, limit)
			assert.Equal(t, 10, offset)
			return []*models.Movie{}, nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodGet, "/movies?limit=5&offset=10", nil), NewTestUser("user-1", "user@example.com"))
	w := httptest.NewRecorder()
	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMovieHandler_Get_NotFound(t *testing.T) {
	handler := NewMovieHandler(&MockMovieService{
		GetMovieFunc: func(ctx context.Context, actor *models.User, id string) (*models.Movie, error) {
			return nil, models.ErrNotFound
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodGet, "/movies/missing", nil), NewTestUser("user-1", "user@example.com"))
	req = WithURLParam(req, "id", "missing")
	w := httptest.NewRecorder()
	handler.Get(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}

func TestMovieHandler_Create_Success(t *testing.T) {
	handler := NewMovieHandler(&MockMovieService{
		CreateMovieFunc: func(ctx context.Context, actor *models.User, input services.MovieInput) (*models.Movie, error) {
			require.NotNil(t, input.Title)
			assert.Equal(t, "Totoro", *input.Title)
			assert.Equal(t, []string{"Cute"}, input.Tags)
			assert.Equal(t, []string{"Anime"}, input.Genres)
			return testMovie("movie-1", *input.Title), nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodPost, "/movies", CreateMovieRequest{
		Title:  "Totoro",
		Tags:   []NameRef{{Name: "Cute"}},
		Genres: []NameRef{{Name: "Anime"}},
	}), NewTestAdmin("admin-1", "admin@example.com"))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	var resp MovieResponse
	AssertJSONResponse(t, w, http.StatusCreated, &resp)
	assert.Equal(t, "movie-1", resp.ID)
}

func TestMovieHandler_Create_TitleTooLong(t *testing.T) {
	handler := NewMovieHandler(&MockMovieService{})

	req := WithAuthContext(NewTestRequest(t, http.MethodPost, "/movies", CreateMovieRequest{
		Title: strings.Repeat("a", 31),
	}), NewTestAdmin("admin-1", "admin@example.com"))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "validation_error")
}

func TestMovieHandler_Create_EmptyTagName(t *testing.T) {
	handler := NewMovieHandler(&MockMovieService{})

	req := WithAuthContext(NewTestRequest(t, http.MethodPost, "/movies", CreateMovieRequest{
		Title: "Totoro",
		Tags:  []NameRef{{Name: ""}},
	}), NewTestAdmin("admin-1", "admin@example.com"))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "validation_error")
}

func TestMovieHandler_Create_Forbidden(t *testing.T) {
	handler := NewMovieHandler(&MockMovieService{
		CreateMovieFunc: func(ctx context.Context, actor *models.User, input services.MovieInput) (*models.Movie, error) {
			return nil, models.ErrForbidden
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodPost, "/movies", CreateMovieRequest{
		Title: "Totoro",
	}), NewTestUser("user-1", "user@example.com"))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	AssertErrorResponse(t, w, http.StatusForbidden, "forbidden")
}

func TestMovieHandler_Update_PartialTitle(t *testing.T) {
	handler := NewMovieHandler(&MockMovieService{
		UpdateMovieFunc: func(ctx context.Context, actor *models.User, id string, input services.MovieInput) (*models.Movie, error) {
			assert.Equal(t, "movie-1", id)
			require.NotNil(t, input.Title)
			return testMovie(id, *input.Title), nil
		},
	})

	title := "Ponyo"
	req := WithAuthContext(NewTestRequest(t, http.MethodPatch, "/movies/movie-1", UpdateMovieRequest{
		Title: &title,
	}), NewTestAdmin("admin-1", "admin@example.com"))
	req = WithURLParam(req, "id", "movie-1")
	w := httptest.NewRecorder()
	handler.Update(w, req)

	var resp MovieResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "Ponyo", resp.Title)
}

func TestMovieHandler_Delete_Success(t *testing.T) {
	deleted := false
	handler := NewMovieHandler(&MockMovieService{
		DeleteMovieFunc: func(ctx context.Context, actor *models.User, id string) error {
			deleted = true
			return nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodDelete, "/movies/movie-1", nil), NewTestAdmin("admin-1", "admin@example.com"))
	req = WithURLParam(req, "id", "movie-1")
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, deleted)
}
