package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homeflix/homeflix/internal/database"
	"github.com/homeflix/homeflix/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GenreRepository struct {
	pool *pgxpool.Pool
}

func NewGenreRepository(db *database.DB) *GenreRepository {
	return &GenreRepository{pool: db.Pool}
}

const genreSelect = `
	SELECT g.id, g.name, g.created_by, g.created_at, g.updated_at, u.email
	FROM genres g
	JOIN users u ON u.id = g.created_by
`

func (r *GenreRepository) List(ctx context.Context, limit, offset int) ([]*models.Genre, error) {
	query := genreSelect + ` ORDER BY g.created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	genres := make([]*models.Genre, 0)
	for rows.Next() {
		genre, err := scanGenreRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}

	return genres, rows.Err()
}

func (r *GenreRepository) GetByID(ctx context.Context, id string) (*models.Genre, error) {
	return scanGenreRow(r.pool.QueryRow(ctx, genreSelect+` WHERE g.id = $1`, id))
}

func (r *GenreRepository) Create(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	genre.ID = uuid.New().String()

	now := time.Now()
	genre.CreatedAt = now
	genre.UpdatedAt = now

	query := `
		INSERT INTO genres (id, name, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.pool.Exec(ctx, query,
		genre.ID, genre.Name, genre.CreatedBy, genre.CreatedAt, genre.UpdatedAt,
	); err != nil {
		return nil, database.MapPostgresError(err)
	}

	return r.GetByID(ctx, genre.ID)
}

func (r *GenreRepository) Update(ctx context.Context, id, name string) (*models.Genre, error) {
	query := `UPDATE genres SET name = $1, updated_at = $2 WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, name, time.Now(), id)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *GenreRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM genres WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
