package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homeflix/homeflix/internal/models"
)

// mockAuthenticator implements TokenAuthenticator for testing
type mockAuthenticator struct {
	AuthenticateFunc func(ctx context.Context, plainSecret string) (*models.User, string, error)
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, plainSecret string) (*models.User, string, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, plainSecret)
	}
	return nil, "", models.ErrUnauthorized
}

func okHandler(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r)
		if user == nil {
			t.Error("expected user in context")
		} else if user.ID != wantUserID {
			t.Errorf("user in context: got %s, want %s", user.ID, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestTokenAuth_ValidToken(t *testing.T) {
	authenticator := &mockAuthenticator{
		AuthenticateFunc: func(ctx context.Context, secret string) (*models.User, string, error) {
			if secret != "valid-secret" {
				t.Errorf("secret: got %q, want %q", secret, "valid-secret")
			}
			return &models.User{ID: "user-1", IsActive: true}, "digest-1", nil
		},
	}

	req := httptest.NewRequest("GET", "/movies", nil)
	req.Header.Set("Authorization", "Token valid-secret")
	w := httptest.NewRecorder()

	TokenAuth(authenticator)(okHandler(t, "user-1")).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
}

func TestTokenAuth_MissingHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/movies", nil)
	w := httptest.NewRecorder()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	TokenAuth(&mockAuthenticator{})(next).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", w.Code)
	}
	if called {
		t.Error("next handler must not run without credentials")
	}
}

func TestTokenAuth_WrongScheme(t *testing.T) {
	req := httptest.NewRequest("GET", "/movies", nil)
	req.Header.Set("Authorization", "Bearer some-secret")
	w := httptest.NewRecorder()

	TokenAuth(&mockAuthenticator{})(http.NotFoundHandler()).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", w.Code)
	}
}

func TestTokenAuth_RevokedToken(t *testing.T) {
	authenticator := &mockAuthenticator{
		AuthenticateFunc: func(ctx context.Context, secret string) (*models.User, string, error) {
			return nil, "", models.ErrUnauthorized
		},
	}

	req := httptest.NewRequest("GET", "/movies", nil)
	req.Header.Set("Authorization", "Token revoked-secret")
	w := httptest.NewRecorder()

	TokenAuth(authenticator)(http.NotFoundHandler()).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", w.Code)
	}
}

func TestTokenDigestFromContext(t *testing.T) {
	authenticator := &mockAuthenticator{
		AuthenticateFunc: func(ctx context.Context, secret string) (*models.User, string, error) {
			return &models.User{ID: "user-1", IsActive: true}, "digest-xyz", nil
		},
	}

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set("Authorization", "Token whatever")
	w := httptest.NewRecorder()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := TokenDigestFromContext(r); got != "digest-xyz" {
			t.Errorf("digest: got %q, want %q", got, "digest-xyz")
		}
	})

	TokenAuth(authenticator)(next).ServeHTTP(w, req)
}

func TestUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if UserFromContext(req) != nil {
		t.Error("expected nil user for request without auth context")
	}
}
