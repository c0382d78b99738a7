package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/homeflix/homeflix/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(id, userID, name string) *models.UserProfile {
	now := time.Now()
	return &models.UserProfile{ID: id, UserID: userID, Name: name, CreatedAt: now, UpdatedAt: now}
}

func TestProfileHandler_List(t *testing.T) {
	handler := NewProfileHandler(&MockProfileService{
		ListProfilesFunc: func(ctx context.Context, actor *models.User) ([]*models.UserProfile, error) {
			assert.Equal(t, "user-1", actor.ID)
			return []*models.UserProfile{testProfile("profile-1", actor.ID, "Kids")}, nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodGet, "/profiles", nil), NewTestUser("user-1", "user@example.com"))
	w := httptest.NewRecorder()
	handler.List(w, req)

	var resp []ProfileResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, "Kids", resp[0].Name)
}

func TestProfileHandler_Get_ForeignProfileIsNotFound(t *testing.T) {
	handler := NewProfileHandler(&MockProfileService{
		GetProfileFunc: func(ctx context.Context, actor *models.User, id string) (*models.UserProfile, error) {
			return nil, models.ErrNotFound
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodGet, "/profiles/profile-1", nil), NewTestUser("user-2", "other@example.com"))
	req = WithURLParam(req, "id", "profile-1")
	w := httptest.NewRecorder()
	handler.Get(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}

func TestProfileHandler_Create_Success(t *testing.T) {
	handler := NewProfileHandler(&MockProfileService{
		CreateProfileFunc: func(ctx context.Context, actor *models.User, name string) (*models.UserProfile, error) {
			return testProfile("profile-1", actor.ID, name), nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodPost, "/profiles", ProfileRequest{Name: "Kids"}), NewTestUser("user-1", "user@example.com"))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	var resp ProfileResponse
	AssertJSONResponse(t, w, http.StatusCreated, &resp)
	assert.Equal(t, "Kids", resp.Name)
	assert.Equal(t, "user-1", resp.UserID)
}

func TestProfileHandler_Create_EmptyName(t *testing.T) {
	handler := NewProfileHandler(&MockProfileService{})

	req := WithAuthContext(NewTestRequest(t, http.MethodPost, "/profiles", ProfileRequest{Name: ""}), NewTestUser("user-1", "user@example.com"))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "validation_error")
}

func TestProfileHandler_Update_Success(t *testing.T) {
	handler := NewProfileHandler(&MockProfileService{
		UpdateProfileFunc: func(ctx context.Context, actor *models.User, id, name string) (*models.UserProfile, error) {
			assert.Equal(t, "profile-1", id)
			return testProfile(id, actor.ID, name), nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodPatch, "/profiles/profile-1", ProfileRequest{Name: "Family"}), NewTestUser("user-1", "user@example.com"))
	req = WithURLParam(req, "id", "profile-1")
	w := httptest.NewRecorder()
	handler.Update(w, req)

	var resp ProfileResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "Family", resp.Name)
}

func TestProfileHandler_Delete_ForeignProfileIsNotFound(t *testing.T) {
	handler := NewProfileHandler(&MockProfileService{
		DeleteProfileFunc: func(ctx context.Context, actor *models.User, id string) error {
			return models.ErrNotFound
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodDelete, "/profiles/profile-1", nil), NewTestUser("user-2", "other@example.com"))
	req = WithURLParam(req, "id", "profile-1")
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}
