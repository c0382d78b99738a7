package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/homeflix/homeflix/internal/models"
	pkghttp "github.com/homeflix/homeflix/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// UserContextKey is the key for storing the authenticated user in context
	UserContextKey contextKey = "user"
	// TokenDigestContextKey is the key for the digest of the presented token
	TokenDigestContextKey contextKey = "token_digest"
)

// TokenAuthenticator resolves a presented token secret to a user.
// Implemented by services.AuthService.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, plainSecret string) (*models.User, string, error)
}

// TokenAuth validates the "Authorization: Token <secret>" header and injects
// the resolved user and token digest into the request context. Any failure
// is a 401; the distinction with 403 is owned by the policy evaluator.
func TokenAuth(authenticator TokenAuthenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				pkghttp.WriteUnauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Token" {
				pkghttp.WriteUnauthorized(w, "invalid authorization header format")
				return
			}

			user, digest, err := authenticator.Authenticate(r.Context(), parts[1])
			if err != nil {
				pkghttp.WriteUnauthorized(w, "invalid or revoked token")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			ctx = context.WithValue(ctx, TokenDigestContextKey, digest)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context
func UserFromContext(r *http.Request) *models.User {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// TokenDigestFromContext extracts the digest of the presented token
func TokenDigestFromContext(r *http.Request) string {
	digest, ok := r.Context().Value(TokenDigestContextKey).(string)
	if !ok {
		return ""
	}
	return digest
}
