package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/homeflix/homeflix/internal/auth"
	"github.com/homeflix/homeflix/internal/models"
	"github.com/homeflix/homeflix/internal/services"
	pkghttp "github.com/homeflix/homeflix/pkg/http"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAuthContext attaches an authenticated user and token digest to the
// request context, as the token middleware would
func WithAuthContext(req *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(req.Context(), auth.UserContextKey, user)
	ctx = context.WithValue(ctx, auth.TokenDigestContextKey, "test-digest")
	return req.WithContext(ctx)
}

// WithURLParam attaches a chi route parameter to the request context
func WithURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// NewTestUser returns an active regular user for tests
func NewTestUser(id, email string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Email:     email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestAdmin returns an active superuser for tests
func NewTestAdmin(id, email string) *models.User {
	user := NewTestUser(id, email)
	user.IsSuperuser = true
	return user
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	RegisterFunc  func(ctx context.Context, email, password string) (*services.AuthResponse, error)
	LoginFunc     func(ctx context.Context, email, password string) (*services.AuthResponse, error)
	LogoutFunc    func(ctx context.Context, digest string) error
	LogoutAllFunc func(ctx context.Context, userID string) error
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.RegisterFunc == nil {
		return nil, models.ErrConflict
	}
	return m.RegisterFunc(ctx, email, password)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrInvalidCredentials
	}
	return m.LoginFunc(ctx, email, password)
}

func (m *MockAuthService) Logout(ctx context.Context, digest string) error {
	if m.LogoutFunc == nil {
		return nil
	}
	return m.LogoutFunc(ctx, digest)
}

func (m *MockAuthService) LogoutAll(ctx context.Context, userID string) error {
	if m.LogoutAllFunc == nil {
		return nil
	}
	return m.LogoutAllFunc(ctx, userID)
}

// MockMovieService implements MovieServiceInterface for testing
type MockMovieService struct {
	ListMoviesFunc  func(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Movie, error)
	GetMovieFunc    func(ctx context.Context, actor *models.User, id string) (*models.Movie, error)
	CreateMovieFunc func(ctx context.Context, actor *models.User, input services.MovieInput) (*models.Movie, error)
	UpdateMovieFunc func(ctx context.Context, actor *models.User, id string, input services.MovieInput) (*models.Movie, error)
	DeleteMovieFunc func(ctx context.Context, actor *models.User, id string) error
}

func (m *MockMovieService) ListMovies(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Movie, error) {
	if m.ListMoviesFunc == nil {
		return []*models.Movie{}, nil
	}
	return m.ListMoviesFunc(ctx, actor, limit, offset)
}

func (m *MockMovieService) GetMovie(ctx context.Context, actor *models.User, id string) (*models.Movie, error) {
	if m.GetMovieFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetMovieFunc(ctx, actor, id)
}

func (m *MockMovieService) CreateMovie(ctx context.Context, actor *models.User, input services.MovieInput) (*models.Movie, error) {
	if m.CreateMovieFunc == nil {
		return nil, models.ErrForbidden
	}
	return m.CreateMovieFunc(ctx, actor, input)
}

func (m *MockMovieService) UpdateMovie(ctx context.Context, actor *models.User, id string, input services.MovieInput) (*models.Movie, error) {
	if m.UpdateMovieFunc == nil {
		return nil, models.ErrForbidden
	}
	return m.UpdateMovieFunc(ctx, actor, id, input)
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, actor *models.User, id string) error {
	if m.DeleteMovieFunc == nil {
		return models.ErrForbidden
	}
	return m.DeleteMovieFunc(ctx, actor, id)
}

// MockProfileService implements ProfileServiceInterface for testing
type MockProfileService struct {
	ListProfilesFunc  func(ctx context.Context, actor *models.User) ([]*models.UserProfile, error)
	GetProfileFunc    func(ctx context.Context, actor *models.User, id string) (*models.UserProfile, error)
	CreateProfileFunc func(ctx context.Context, actor *models.User, name string) (*models.UserProfile, error)
	UpdateProfileFunc func(ctx context.Context, actor *models.User, id, name string) (*models.UserProfile, error)
	DeleteProfileFunc func(ctx context.Context, actor *models.User, id string) error
}

func (m *MockProfileService) ListProfiles(ctx context.Context, actor *models.User) ([]*models.UserProfile, error) {
	if m.ListProfilesFunc == nil {
		return []*models.UserProfile{}, nil
	}
	return m.ListProfilesFunc(ctx, actor)
}

func (m *MockProfileService) GetProfile(ctx context.Context, actor *models.User, id string) (*models.UserProfile, error) {
	if m.GetProfileFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetProfileFunc(ctx, actor, id)
}

func (m *MockProfileService) CreateProfile(ctx context.Context, actor *models.User, name string) (*models.UserProfile, error) {
	if m.CreateProfileFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.CreateProfileFunc(ctx, actor, name)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, actor *models.User, id, name string) (*models.UserProfile, error) {
	if m.UpdateProfileFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateProfileFunc(ctx, actor, id, name)
}

func (m *MockProfileService) DeleteProfile(ctx context.Context, actor *models.User, id string) error {
	if m.DeleteProfileFunc == nil {
		return models.ErrNotFound
	}
	return m.DeleteProfileFunc(ctx, actor, id)
}
