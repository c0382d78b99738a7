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

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(db *database.DB) *ListingRepository {
	return &ListingRepository{pool: db.Pool}
}

// listingSelect embeds the parent movie and both creator emails
const listingSelect = `
	SELECT l.id, l.name, l.stream_url, l.season_number, l.episode_number,
	       l.content_description, l.movie_id, l.created_by, l.created_at, l.updated_at,
	       cu.email,
	       m.title, m.created_by, m.created_at, m.updated_at, mu.email
	FROM listings l
	JOIN users cu ON cu.id = l.created_by
	JOIN movies m ON m.id = l.movie_id
	JOIN users mu ON mu.id = m.created_by
`

func scanListingRow(scanner rowScanner) (*models.Listing, error) {
	var listing models.Listing
	var creatorEmail string
	var movie models.Movie
	var movieCreatorEmail string

	err := scanner.Scan(
		&listing.ID, &listing.Name, &listing.StreamURL,
		&listing.SeasonNumber, &listing.EpisodeNumber,
		&listing.ContentDescription, &listing.MovieID, &listing.CreatedBy,
		&listing.CreatedAt, &listing.UpdatedAt,
		&creatorEmail,
		&movie.Title, &movie.CreatedBy, &movie.CreatedAt, &movie.UpdatedAt, &movieCreatorEmail,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	movie.ID = listing.MovieID
	movie.Creator = &models.User{ID: movie.CreatedBy, Email: movieCreatorEmail}
	listing.Movie = &movie
	listing.Creator = &models.User{ID: listing.CreatedBy, Email: creatorEmail}

	return &listing, nil
}

func scanListingRows(rows pgx.Rows) ([]*models.Listing, error) {
	defer rows.Close()

	listings := make([]*models.Listing, 0)

	for rows.Next() {
		listing, err := scanListingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return listings, nil
}

// loadMovieRelations fills the embedded movie's tags and genres
func (r *ListingRepository) loadMovieRelations(ctx context.Context, listing *models.Listing) error {
	tags, err := loadMovieTags(ctx, r.pool, listing.MovieID)
	if err != nil {
		return err
	}
	listing.Movie.Tags = tags

	genres, err := loadMovieGenres(ctx, r.pool, listing.MovieID)
	if err != nil {
		return err
	}
	listing.Movie.Genres = genres

	return nil
}

func (r *ListingRepository) List(ctx context.Context, limit, offset int) ([]*models.Listing, error) {
	query := listingSelect + ` ORDER BY l.created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}

	listings, err := scanListingRows(rows)
	if err != nil {
		return nil, err
	}

	for _, listing := range listings {
		if err := r.loadMovieRelations(ctx, listing); err != nil {
			return nil, err
		}
	}

	return listings, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	listing, err := scanListingRow(r.pool.QueryRow(ctx, listingSelect+` WHERE l.id = $1`, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadMovieRelations(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	listing.ID = uuid.New().String()

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	query := `
		INSERT INTO listings (id, name, stream_url, season_number, episode_number,
		                      content_description, movie_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if _, err := r.pool.Exec(ctx, query,
		listing.ID, listing.Name, listing.StreamURL,
		listing.SeasonNumber, listing.EpisodeNumber,
		listing.ContentDescription, listing.MovieID, listing.CreatedBy,
		listing.CreatedAt, listing.UpdatedAt,
	); err != nil {
		return nil, database.MapPostgresError(err)
	}

	return r.GetByID(ctx, listing.ID)
}

// ListingUpdate carries the mutable listing fields; nil means unchanged
type ListingUpdate struct {
	Name               *string
	StreamURL          *string
	SeasonNumber       *int
	EpisodeNumber      *int
	ContentDescription *string
	MovieID            *string
}

func (r *ListingRepository) Update(ctx context.Context, id string, update ListingUpdate) (*models.Listing, error) {
	query := `
		UPDATE listings SET
			name = COALESCE($1, name),
			stream_url = COALESCE($2, stream_url),
			season_number = COALESCE($3, season_number),
			episode_number = COALESCE($4, episode_number),
			content_description = COALESCE($5, content_description),
			movie_id = COALESCE($6, movie_id),
			updated_at = $7
		WHERE id = $8
	`

	result, err := r.pool.Exec(ctx, query,
		update.Name, update.StreamURL,
		update.SeasonNumber, update.EpisodeNumber,
		update.ContentDescription, update.MovieID,
		time.Now(), id,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM listings WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
