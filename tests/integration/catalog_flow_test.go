package integration

import (
	"net/http"
	"testing"

	"github.com/homeflix/homeflix/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieRoundTripWithNestedTagsAndGenres(t *testing.T) {
	cleanup(t)

	adminToken := testServer.SeedAndLoginAdmin(t, uniqueEmail(t, "admin"), "correct-horse-battery")

	var created handlers.MovieResponse
	resp := testServer.DoJSON(t, http.MethodPost, "/movies", adminToken, map[string]interface{}{
		"title":  "Totoro",
		"tags":   []map[string]string{{"name": "Cute"}},
		"genres": []map[string]string{{"name": "Anime"}},
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.ID)

	var fetched handlers.MovieResponse
	resp = testServer.DoJSON(t, http.MethodGet, "/movies/"+created.ID, adminToken, nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Totoro", fetched.Title)
	require.Len(t, fetched.Tags, 1)
	assert.Equal(t, "Cute", fetched.Tags[0].Name)
	assert.NotEmpty(t, fetched.Tags[0].ID, "nested tags get server-assigned ids")
	require.Len(t, fetched.Genres, 1)
	assert.Equal(t, "Anime", fetched.Genres[0].Name)
	require.NotNil(t, fetched.CreatedBy)
}

func TestMovieTagsGetOrCreatedPerOwner(t *testing.T) {
	cleanup(t)

	adminToken := testServer.SeedAndLoginAdmin(t, uniqueEmail(t, "admin"), "correct-horse-battery")

	var first handlers.MovieResponse
	testServer.DoJSON(t, http.MethodPost, "/movies", adminToken, map[string]interface{}{
		"title": "Totoro",
		"tags":  []map[string]string{{"name": "Cute"}},
	}, &first)

	var second handlers.MovieResponse
	testServer.DoJSON(t, http.MethodPost, "/movies", adminToken, map[string]interface{}{
		"title": "Ponyo",
		"tags":  []map[string]string{{"name": "Cute"}},
	}, &second)

	require.Len(t, first.Tags, 1)
	require.Len(t, second.Tags, 1)
	assert.Equal(t, first.Tags[0].ID, second.Tags[0].ID, "the same owner reuses the existing tag")
}

func TestCatalogWritesRequireAdmin(t *testing.T) {
	cleanup(t)

	_, userToken := testServer.RegisterUser(t, uniqueEmail(t, "user"), "correct-horse-battery")

	resp := testServer.DoJSON(t, http.MethodPost, "/movies", userToken, map[string]interface{}{
		"title": "Totoro",
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testServer.DoJSON(t, http.MethodPost, "/tags", userToken, map[string]string{"name": "Cute"}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Reads stay open to any authenticated user
	resp = testServer.DoJSON(t, http.MethodGet, "/movies", userToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMoviePartialUpdate(t *testing.T) {
	cleanup(t)

	adminToken := testServer.SeedAndLoginAdmin(t, uniqueEmail(t, "admin"), "correct-horse-battery")

	var created handlers.MovieResponse
	testServer.DoJSON(t, http.MethodPost, "/movies", adminToken, map[string]interface{}{
		"title": "Totoro",
		"tags":  []map[string]string{{"name": "Cute"}},
	}, &created)

	// Rename without touching tags
	var updated handlers.MovieResponse
	resp := testServer.DoJSON(t, http.MethodPatch, "/movies/"+created.ID, adminToken, map[string]interface{}{
		"title": "My Neighbor Totoro",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "My Neighbor Totoro", updated.Title)
	require.Len(t, updated.Tags, 1, "tags survive a title-only update")
}

func TestMovieTitleValidation(t *testing.T) {
	cleanup(t)

	adminToken := testServer.SeedAndLoginAdmin(t, uniqueEmail(t, "admin"), "correct-horse-battery")

	resp := testServer.DoJSON(t, http.MethodPost, "/movies", adminToken, map[string]interface{}{
		"title": "",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = testServer.DoJSON(t, http.MethodPost, "/movies", adminToken, map[string]interface{}{
		"title": "a title that is much longer than thirty characters",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMovieDeleteCascadesToListings(t *testing.T) {
	cleanup(t)

	adminToken := testServer.SeedAndLoginAdmin(t, uniqueEmail(t, "admin"), "correct-horse-battery")

	var movie handlers.MovieResponse
	testServer.DoJSON(t, http.MethodPost, "/movies", adminToken, map[string]interface{}{
		"title": "Totoro",
	}, &movie)

	var listing handlers.ListingResponse
	resp := testServer.DoJSON(t, http.MethodPost, "/listings", adminToken, map[string]interface{}{
		"name":       "Totoro HD",
		"stream_url": "https://cdn.example.com/totoro.m3u8",
		"movie_id":   movie.ID,
	}, &listing)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = testServer.DoJSON(t, http.MethodDelete, "/movies/"+movie.ID, adminToken, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = testServer.DoJSON(t, http.MethodGet, "/listings/"+listing.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListingEmbedsMovie(t *testing.T) {
	cleanup(t)

	adminToken := testServer.SeedAndLoginAdmin(t, uniqueEmail(t, "admin"), "correct-horse-battery")

	var movie handlers.MovieResponse
	testServer.DoJSON(t, http.MethodPost, "/movies", adminToken, map[string]interface{}{
		"title": "Totoro",
		"tags":  []map[string]string{{"name": "Cute"}},
	}, &movie)

	var listing handlers.ListingResponse
	resp := testServer.DoJSON(t, http.MethodPost, "/listings", adminToken, map[string]interface{}{
		"name":           "Totoro HD",
		"stream_url":     "https://cdn.example.com/totoro.m3u8",
		"season_number":  1,
		"episode_number": 2,
		"movie_id":       movie.ID,
	}, &listing)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var fetched handlers.ListingResponse
	resp = testServer.DoJSON(t, http.MethodGet, "/listings/"+listing.ID, adminToken, nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, fetched.Movie)
	assert.Equal(t, "Totoro", fetched.Movie.Title)
	require.Len(t, fetched.Movie.Tags, 1)
	assert.Equal(t, "Cute", fetched.Movie.Tags[0].Name)
	assert.Equal(t, 1, fetched.SeasonNumber)
	assert.Equal(t, 2, fetched.EpisodeNumber)
}

func TestListingRejectsUnknownMovie(t *testing.T) {
	cleanup(t)

	adminToken := testServer.SeedAndLoginAdmin(t, uniqueEmail(t, "admin"), "correct-horse-battery")

	resp := testServer.DoJSON(t, http.MethodPost, "/listings", adminToken, map[string]interface{}{
		"name":       "Orphan",
		"stream_url": "https://cdn.example.com/orphan.m3u8",
		"movie_id":   "00000000-0000-0000-0000-000000000000",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTagRename(t *testing.T) {
	cleanup(t)

	adminToken := testServer.SeedAndLoginAdmin(t, uniqueEmail(t, "admin"), "correct-horse-battery")

	var tag handlers.TagResponse
	resp := testServer.DoJSON(t, http.MethodPost, "/tags", adminToken, map[string]string{"name": "Cute"}, &tag)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var renamed handlers.TagResponse
	resp = testServer.DoJSON(t, http.MethodPatch, "/tags/"+tag.ID, adminToken, map[string]string{"name": "Wholesome"}, &renamed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Wholesome", renamed.Name)

	resp = testServer.DoJSON(t, http.MethodDelete, "/tags/"+tag.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
