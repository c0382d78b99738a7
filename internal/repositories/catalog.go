package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homeflix/homeflix/internal/database"
	"github.com/homeflix/homeflix/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryer abstracts pgxpool.Pool and pgx.Tx so catalog queries can run
// inside or outside a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func scanTagRow(scanner rowScanner) (*models.Tag, error) {
	var tag models.Tag
	var creatorEmail string

	err := scanner.Scan(
		&tag.ID, &tag.Name, &tag.CreatedBy,
		&tag.CreatedAt, &tag.UpdatedAt, &creatorEmail,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	tag.Creator = &models.User{ID: tag.CreatedBy, Email: creatorEmail}

	return &tag, nil
}

func scanGenreRow(scanner rowScanner) (*models.Genre, error) {
	var genre models.Genre
	var creatorEmail string

	err := scanner.Scan(
		&genre.ID, &genre.Name, &genre.CreatedBy,
		&genre.CreatedAt, &genre.UpdatedAt, &creatorEmail,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	genre.Creator = &models.User{ID: genre.CreatedBy, Email: creatorEmail}

	return &genre, nil
}

// getOrCreateTag resolves a tag by (created_by, name), creating it when
// absent. The no-op DO UPDATE makes RETURNING yield the existing row.
func getOrCreateTag(ctx context.Context, q queryer, name, createdBy string) (string, error) {
	query := `
		INSERT INTO tags (id, name, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (created_by, name) DO UPDATE SET updated_at = tags.updated_at
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, uuid.New().String(), name, createdBy, time.Now()).Scan(&id)
	if err != nil {
		return "", database.MapPostgresError(err)
	}

	return id, nil
}

func getOrCreateGenre(ctx context.Context, q queryer, name, createdBy string) (string, error) {
	query := `
		INSERT INTO genres (id, name, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (created_by, name) DO UPDATE SET updated_at = genres.updated_at
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, uuid.New().String(), name, createdBy, time.Now()).Scan(&id)
	if err != nil {
		return "", database.MapPostgresError(err)
	}

	return id, nil
}

// attachTags get-or-creates each named tag for the owner and links it to
// the movie. Existing links are left alone.
func attachTags(ctx context.Context, q queryer, movieID, createdBy string, names []string) error {
	for _, name := range names {
		tagID, err := getOrCreateTag(ctx, q, name, createdBy)
		if err != nil {
			return fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}

		link := `INSERT INTO movie_tags (movie_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		if _, err := q.Exec(ctx, link, movieID, tagID); err != nil {
			return database.MapPostgresError(err)
		}
	}
	return nil
}

func attachGenres(ctx context.Context, q queryer, movieID, createdBy string, names []string) error {
	for _, name := range names {
		genreID, err := getOrCreateGenre(ctx, q, name, createdBy)
		if err != nil {
			return fmt.Errorf("failed to resolve genre %q: %w", name, err)
		}

		link := `INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		if _, err := q.Exec(ctx, link, movieID, genreID); err != nil {
			return database.MapPostgresError(err)
		}
	}
	return nil
}

func loadMovieTags(ctx context.Context, q queryer, movieID string) ([]*models.Tag, error) {
	query := `
		SELECT t.id, t.name, t.created_by, t.created_at, t.updated_at, u.email
		FROM tags t
		JOIN movie_tags mt ON mt.tag_id = t.id
		JOIN users u ON u.id = t.created_by
		WHERE mt.movie_id = $1
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movie tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*models.Tag, 0)
	for rows.Next() {
		tag, err := scanTagRow(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func loadMovieGenres(ctx context.Context, q queryer, movieID string) ([]*models.Genre, error) {
	query := `
		SELECT g.id, g.name, g.created_by, g.created_at, g.updated_at, u.email
		FROM genres g
		JOIN movie_genres mg ON mg.genre_id = g.id
		JOIN users u ON u.id = g.created_by
		WHERE mg.movie_id = $1
		ORDER BY g.name
	`

	rows, err := q.Query(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movie genres: %w", err)
	}
	defer rows.Close()

	genres := make([]*models.Genre, 0)
	for rows.Next() {
		genre, err := scanGenreRow(rows)
		if err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}

	return genres, rows.Err()
}
