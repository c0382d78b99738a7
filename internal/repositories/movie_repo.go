package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homeflix/homeflix/internal/database"
	"github.com/homeflix/homeflix/internal/models"
	"github.com/jackc/pgx/v5"
)

type MovieRepository struct {
	db *database.DB
}

func NewMovieRepository(db *database.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func scanMovieRow(scanner rowScanner) (*models.Movie, error) {
	var movie models.Movie
	var creatorEmail string

	err := scanner.Scan(
		&movie.ID, &movie.Title, &movie.CreatedBy,
		&movie.CreatedAt, &movie.UpdatedAt, &creatorEmail,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	movie.Creator = &models.User{ID: movie.CreatedBy, Email: creatorEmail}

	return &movie, nil
}

const movieSelect = `
	SELECT m.id, m.title, m.created_by, m.created_at, m.updated_at, u.email
	FROM movies m
	JOIN users u ON u.id = m.created_by
`

// loadRelations fills the movie's tag and genre slices
func (r *MovieRepository) loadRelations(ctx context.Context, q queryer, movie *models.Movie) error {
	tags, err := loadMovieTags(ctx, q, movie.ID)
	if err != nil {
		return err
	}
	movie.Tags = tags

	genres, err := loadMovieGenres(ctx, q, movie.ID)
	if err != nil {
		return err
	}
	movie.Genres = genres

	return nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	movie, err := scanMovieRow(r.db.Pool.QueryRow(ctx, movieSelect+` WHERE m.id = $1`, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, r.db.Pool, movie); err != nil {
		return nil, err
	}

	return movie, nil
}

func (r *MovieRepository) List(ctx context.Context, limit, offset int) ([]*models.Movie, error) {
	query := movieSelect + ` ORDER BY m.created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}

	movies := make([]*models.Movie, 0)

	for rows.Next() {
		movie, err := scanMovieRow(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	for _, movie := range movies {
		if err := r.loadRelations(ctx, r.db.Pool, movie); err != nil {
			return nil, err
		}
	}

	return movies, nil
}

// Create inserts the movie and resolves nested tag/genre names in one
// transaction. Names are get-or-created under the movie's creator.
func (r *MovieRepository) Create(ctx context.Context, movie *models.Movie, tagNames, genreNames []string) (*models.Movie, error) {
	movie.ID = uuid.New().String()

	now := time.Now()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (id, title, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`

		if _, err := tx.Exec(ctx, query,
			movie.ID, movie.Title, movie.CreatedBy, movie.CreatedAt, movie.UpdatedAt,
		); err != nil {
			return database.MapPostgresError(err)
		}

		if err := attachTags(ctx, tx, movie.ID, movie.CreatedBy, tagNames); err != nil {
			return err
		}
		return attachGenres(ctx, tx, movie.ID, movie.CreatedBy, genreNames)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, movie.ID)
}

// Update changes the title when non-nil and attaches any named tags and
// genres. Existing relations are kept; get-or-create runs under the
// requesting user.
func (r *MovieRepository) Update(ctx context.Context, id string, title *string, tagNames, genreNames []string, requestedBy string) (*models.Movie, error) {
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if title != nil {
			query := `UPDATE movies SET title = $1, updated_at = $2 WHERE id = $3`

			result, err := tx.Exec(ctx, query, *title, time.Now(), id)
			if err != nil {
				return database.MapPostgresError(err)
			}
			if result.RowsAffected() == 0 {
				return models.ErrNotFound
			}
		} else {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists); err != nil {
				return database.MapPostgresError(err)
			}
			if !exists {
				return models.ErrNotFound
			}
		}

		if err := attachTags(ctx, tx, id, requestedBy, tagNames); err != nil {
			return err
		}
		return attachGenres(ctx, tx, id, requestedBy, genreNames)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
