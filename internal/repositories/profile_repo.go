package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homeflix/homeflix/internal/database"
	"github.com/homeflix/homeflix/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository scopes every query by the owning user: another user's
// profile is indistinguishable from a missing one.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{pool: db.Pool}
}

func scanProfileRow(scanner rowScanner) (*models.UserProfile, error) {
	var profile models.UserProfile

	err := scanner.Scan(
		&profile.ID, &profile.UserID, &profile.Name,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &profile, nil
}

func scanProfileRows(rows pgx.Rows) ([]*models.UserProfile, error) {
	defer rows.Close()

	profiles := make([]*models.UserProfile, 0)

	for rows.Next() {
		profile, err := scanProfileRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepository) ListByUser(ctx context.Context, userID string) ([]*models.UserProfile, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM user_profiles WHERE user_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}

	return scanProfileRows(rows)
}

func (r *ProfileRepository) GetByIDForUser(ctx context.Context, id, userID string) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM user_profiles WHERE id = $1 AND user_id = $2
	`

	return scanProfileRow(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	profile.ID = uuid.New().String()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO user_profiles (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, created_at, updated_at
	`

	return scanProfileRow(r.pool.QueryRow(ctx, query,
		profile.ID, profile.UserID, profile.Name,
		profile.CreatedAt, profile.UpdatedAt,
	))
}

func (r *ProfileRepository) Update(ctx context.Context, id, userID, name string) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles SET name = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, name, created_at, updated_at
	`

	return scanProfileRow(r.pool.QueryRow(ctx, query, name, time.Now(), id, userID))
}

func (r *ProfileRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM user_profiles WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
