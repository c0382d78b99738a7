package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/homeflix/homeflix/internal/auth"
	"github.com/homeflix/homeflix/internal/models"
	pkgauth "github.com/homeflix/homeflix/pkg/auth"
	pkglogger "github.com/homeflix/homeflix/pkg/logger"
)

// UserRepository defines the persistence operations AuthService needs
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	TouchLastLogin(ctx context.Context, id string) error
}

// TokenRepository defines the token session persistence operations
type TokenRepository interface {
	Create(ctx context.Context, userID, digest string) (*models.AuthToken, error)
	GetByDigest(ctx context.Context, digest string) (*models.AuthToken, error)
	DeleteByDigest(ctx context.Context, digest string) error
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
}

// AuthService owns the token lifecycle: registration, login, per-request
// validation, and revocation of one or all sessions.
type AuthService struct {
	users       UserRepository
	tokens      TokenRepository
	tm          *auth.TokenManager
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

func NewAuthService(users UserRepository, tokens TokenRepository, tm *auth.TokenManager, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		tm:          tm,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// UserResponse represents a user in auth responses
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse carries the user and the plaintext token secret. The secret
// is never persisted and never appears in a response again.
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

func userToResponse(user *models.User) *UserResponse {
	return &UserResponse{ID: user.ID, Email: user.Email}
}

// Register creates a user and immediately issues a first token.
// Password strength failures come back as *pkgauth.PasswordValidationError.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, models.ErrBadRequest
	}

	if err := pkgauth.ValidatePassword(password, email); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		s.logger.Info("registration rejected: email taken", slog.String("email", pkglogger.SanitizedEmail(email)))
		return nil, models.ErrConflict
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check email uniqueness", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	passwordHash, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	secret, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
		EventType: "register",
		UserID:    user.ID,
		Success:   true,
	})

	return &AuthResponse{User: userToResponse(user), Token: secret}, nil
}

// Login verifies credentials and issues a fresh token without touching
// existing sessions. Failures never reveal whether the email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
				EventType:     "login",
				FailureReason: "invalid_credentials",
			})
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !user.IsActive {
		s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
			EventType:     "login",
			UserID:        user.ID,
			FailureReason: "account_disabled",
		})
		return nil, models.ErrInvalidCredentials
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
			EventType:     "login",
			UserID:        user.ID,
			FailureReason: "invalid_credentials",
		})
		return nil, models.ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		// Non-fatal: the login still succeeds
		s.logger.Warn("failed to update last_login", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	secret, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
		EventType: "login",
		UserID:    user.ID,
		Success:   true,
	})

	return &AuthResponse{User: userToResponse(user), Token: secret}, nil
}

// Authenticate resolves a presented secret to its user for the auth
// middleware. Returns the digest so logout can revoke the same session.
func (s *AuthService) Authenticate(ctx context.Context, plainSecret string) (*models.User, string, error) {
	digest, err := s.tm.DigestSecret(plainSecret)
	if err != nil {
		return nil, "", models.ErrUnauthorized
	}

	token, err := s.tokens.GetByDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrUnauthorized
		}
		s.logger.Error("failed to look up token", slog.Any("error", err))
		return nil, "", models.ErrInternalServer
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrUnauthorized
		}
		s.logger.Error("failed to resolve token user", slog.Any("error", err))
		return nil, "", models.ErrInternalServer
	}

	if !user.IsActive {
		return nil, "", models.ErrUnauthorized
	}

	return user, digest, nil
}

// Logout revokes exactly the presented session
func (s *AuthService) Logout(ctx context.Context, digest string) error {
	if err := s.tokens.DeleteByDigest(ctx, digest); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrUnauthorized
		}
		s.logger.Error("failed to revoke token", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
		EventType: "logout",
		Success:   true,
	})

	return nil
}

// LogoutAll revokes every session of the user
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	count, err := s.tokens.DeleteAllForUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to revoke user tokens", slog.String("user_id", userID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("revoked all sessions", slog.String("user_id", userID), slog.Int64("count", count))
	s.auditLogger.LogAuthEvent(pkglogger.AuditEvent{
		EventType: "logout_all",
		UserID:    userID,
		Success:   true,
	})

	return nil
}

// issueToken persists the digest before returning the plaintext, so a
// returned secret always validates.
func (s *AuthService) issueToken(ctx context.Context, userID string) (string, error) {
	secret, digest, err := s.tm.GenerateSecret()
	if err != nil {
		s.logger.Error("failed to generate token secret", slog.Any("error", err))
		return "", models.ErrInternalServer
	}

	if _, err := s.tokens.Create(ctx, userID, digest); err != nil {
		s.logger.Error("failed to store token", slog.Any("error", err))
		return "", models.ErrInternalServer
	}

	return secret, nil
}
