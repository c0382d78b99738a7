package integration

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/homeflix/homeflix/internal/auth"
	"github.com/homeflix/homeflix/internal/database"
	"github.com/homeflix/homeflix/internal/handlers"
	middlewareCustom "github.com/homeflix/homeflix/internal/middleware"
	"github.com/homeflix/homeflix/internal/repositories"
	"github.com/homeflix/homeflix/internal/routes"
	"github.com/homeflix/homeflix/internal/services"
	pkglogger "github.com/homeflix/homeflix/pkg/logger"
)

// TestServer wraps httptest.Server with the fully wired application
type TestServer struct {
	Server *httptest.Server
	DB     *database.DB
}

// NewTestServer wires the real router, services and repositories against
// the given database
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	movieRepo := repositories.NewMovieRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	genreRepo := repositories.NewGenreRepository(db)
	listingRepo := repositories.NewListingRepository(db)

	tokenManager := auth.NewTokenManager()
	auditLogger := pkglogger.NewAuditLogger(logger)
	authService := services.NewAuthService(userRepo, tokenRepo, tokenManager, logger, auditLogger)
	catalogService := services.NewCatalogService(movieRepo, tagRepo, genreRepo, listingRepo, logger)
	profileService := services.NewProfileService(profileRepo, logger)

	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Movies:   handlers.NewMovieHandler(catalogService),
		Tags:     handlers.NewTagHandler(catalogService),
		Genres:   handlers.NewGenreHandler(catalogService),
		Listings: handlers.NewListingHandler(catalogService),
		Profiles: handlers.NewProfileHandler(profileService),
	}

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(chiMiddleware.Recoverer)

	// Generous limit so flow tests never trip it
	rateLimit := middlewareCustom.RateLimitConfig{RequestsPerMinute: 1000}
	routes.RegisterRoutes(router, h, authService, rateLimit)

	return &TestServer{
		Server: httptest.NewServer(router),
		DB:     db,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// DoJSON sends a JSON request with an optional bearer token and decodes
// the JSON response into target (when target is non-nil)
func (ts *TestServer) DoJSON(t *testing.T, method, path, token string, body interface{}, target interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	if target != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, target); err != nil {
			t.Fatalf("failed to decode response %q: %v", string(raw), err)
		}
	}

	return resp
}

// RegisterUser registers a fresh account through the API and returns its token
func (ts *TestServer) RegisterUser(t *testing.T, email, password string) (userID, token string) {
	t.Helper()

	var resp services.AuthResponse
	httpResp := ts.DoJSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if httpResp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned status %d", httpResp.StatusCode)
	}

	return resp.User.ID, resp.Token
}

// LoginUser logs in through the API and returns a fresh token
func (ts *TestServer) LoginUser(t *testing.T, email, password string) string {
	t.Helper()

	var resp services.AuthResponse
	httpResp := ts.DoJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if httpResp.StatusCode != http.StatusOK {
		t.Fatalf("login returned status %d", httpResp.StatusCode)
	}

	return resp.Token
}

// SeedAndLoginAdmin seeds a superuser directly and logs in through the API
func (ts *TestServer) SeedAndLoginAdmin(t *testing.T, email, password string) string {
	t.Helper()

	ctx := t.Context()
	if _, err := SeedUser(ctx, ts.DB.Pool, email, password, true); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return ts.LoginUser(t, email, password)
}

// uniqueEmail derives a per-test email address so tests never collide
// on the users.email unique constraint
func uniqueEmail(t *testing.T, prefix string) string {
	t.Helper()
	sum := sha256.Sum256([]byte(t.Name()))
	return fmt.Sprintf("%s-%s@example.com", prefix, hex.EncodeToString(sum[:4]))
}
