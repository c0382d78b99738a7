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

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(db *database.DB) *TagRepository {
	return &TagRepository{pool: db.Pool}
}

const tagSelect = `
	SELECT t.id, t.name, t.created_by, t.created_at, t.updated_at, u.email
	FROM tags t
	JOIN users u ON u.id = t.created_by
`

func (r *TagRepository) List(ctx context.Context, limit, offset int) ([]*models.Tag, error) {
	query := tagSelect + ` ORDER BY t.created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*models.Tag, 0)
	for rows.Next() {
		tag, err := scanTagRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (r *TagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	return scanTagRow(r.pool.QueryRow(ctx, tagSelect+` WHERE t.id = $1`, id))
}

func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	tag.ID = uuid.New().String()

	now := time.Now()
	tag.CreatedAt = now
	tag.UpdatedAt = now

	query := `
		INSERT INTO tags (id, name, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.pool.Exec(ctx, query,
		tag.ID, tag.Name, tag.CreatedBy, tag.CreatedAt, tag.UpdatedAt,
	); err != nil {
		return nil, database.MapPostgresError(err)
	}

	return r.GetByID(ctx, tag.ID)
}

func (r *TagRepository) Update(ctx context.Context, id, name string) (*models.Tag, error) {
	query := `UPDATE tags SET name = $1, updated_at = $2 WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, name, time.Now(), id)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *TagRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tags WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
