package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/homeflix/homeflix/internal/database"
	"github.com/homeflix/homeflix/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenRepository persists opaque token sessions. Only digests are stored;
// a deleted row is a revoked token and can never validate again.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(db *database.DB) *TokenRepository {
	return &TokenRepository{pool: db.Pool}
}

// Create stores a token digest. The single INSERT makes issuance atomic:
// the row exists before the plaintext secret leaves the service.
func (r *TokenRepository) Create(ctx context.Context, userID, digest string) (*models.AuthToken, error) {
	token := &models.AuthToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		Digest:    digest,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO auth_tokens (id, user_id, digest, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.pool.Exec(ctx, query, token.ID, token.UserID, token.Digest, token.CreatedAt); err != nil {
		return nil, database.MapPostgresError(err)
	}

	return token, nil
}

func (r *TokenRepository) GetByDigest(ctx context.Context, digest string) (*models.AuthToken, error) {
	query := `
		SELECT id, user_id, digest, created_at
		FROM auth_tokens WHERE digest = $1
	`

	var token models.AuthToken
	err := r.pool.QueryRow(ctx, query, digest).Scan(
		&token.ID, &token.UserID, &token.Digest, &token.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &token, nil
}

// DeleteByDigest revokes exactly one token. Returns ErrNotFound when the
// token was already revoked, which keeps concurrent revoke/validate honest:
// the DELETE and the lookup race on the same row and Postgres serializes them.
func (r *TokenRepository) DeleteByDigest(ctx context.Context, digest string) error {
	query := `DELETE FROM auth_tokens WHERE digest = $1`

	result, err := r.pool.Exec(ctx, query, digest)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// DeleteAllForUser revokes every session of a user, returning the count
func (r *TokenRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	query := `DELETE FROM auth_tokens WHERE user_id = $1`

	result, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}

	return result.RowsAffected(), nil
}
