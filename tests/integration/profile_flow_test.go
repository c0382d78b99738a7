package integration

import (
	"net/http"
	"testing"

	"github.com/homeflix/homeflix/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileLifecycle(t *testing.T) {
	cleanup(t)

	_, token := testServer.RegisterUser(t, uniqueEmail(t, "owner"), "correct-horse-battery")

	var created handlers.ProfileResponse
	resp := testServer.DoJSON(t, http.MethodPost, "/profiles", token, map[string]string{"name": "Kids"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.ID)

	var renamed handlers.ProfileResponse
	resp = testServer.DoJSON(t, http.MethodPatch, "/profiles/"+created.ID, token, map[string]string{"name": "Family"}, &renamed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Family", renamed.Name)

	resp = testServer.DoJSON(t, http.MethodDelete, "/profiles/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = testServer.DoJSON(t, http.MethodGet, "/profiles/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfilesAreInvisibleAcrossUsers(t *testing.T) {
	cleanup(t)

	_, ownerToken := testServer.RegisterUser(t, uniqueEmail(t, "owner"), "correct-horse-battery")
	_, strangerToken := testServer.RegisterUser(t, uniqueEmail(t, "stranger"), "correct-horse-battery")

	var created handlers.ProfileResponse
	resp := testServer.DoJSON(t, http.MethodPost, "/profiles", ownerToken, map[string]string{"name": "Kids"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The stranger's list is empty and the item looks nonexistent
	var strangerProfiles []handlers.ProfileResponse
	resp = testServer.DoJSON(t, http.MethodGet, "/profiles", strangerToken, nil, &strangerProfiles)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, strangerProfiles)

	resp = testServer.DoJSON(t, http.MethodGet, "/profiles/"+created.ID, strangerToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = testServer.DoJSON(t, http.MethodPatch, "/profiles/"+created.ID, strangerToken, map[string]string{"name": "Hijacked"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = testServer.DoJSON(t, http.MethodDelete, "/profiles/"+created.ID, strangerToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner still sees it untouched
	var fetched handlers.ProfileResponse
	resp = testServer.DoJSON(t, http.MethodGet, "/profiles/"+created.ID, ownerToken, nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Kids", fetched.Name)
}

func TestAdminHasNoProfileBackdoor(t *testing.T) {
	cleanup(t)

	_, ownerToken := testServer.RegisterUser(t, uniqueEmail(t, "owner"), "correct-horse-battery")
	adminToken := testServer.SeedAndLoginAdmin(t, uniqueEmail(t, "admin"), "correct-horse-battery")

	var created handlers.ProfileResponse
	resp := testServer.DoJSON(t, http.MethodPost, "/profiles", ownerToken, map[string]string{"name": "Kids"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = testServer.DoJSON(t, http.MethodGet, "/profiles/"+created.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
