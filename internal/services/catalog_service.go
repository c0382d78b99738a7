package services

import (
	"context"
	"log/slog"

	"github.com/homeflix/homeflix/internal/auth"
	"github.com/homeflix/homeflix/internal/models"
	"github.com/homeflix/homeflix/internal/repositories"
)

// MovieRepository defines the movie persistence operations
type MovieRepository interface {
	GetByID(ctx context.Context, id string) (*models.Movie, error)
	List(ctx context.Context, limit, offset int) ([]*models.Movie, error)
	Create(ctx context.Context, movie *models.Movie, tagNames, genreNames []string) (*models.Movie, error)
	Update(ctx context.Context, id string, title *string, tagNames, genreNames []string, requestedBy string) (*models.Movie, error)
	Delete(ctx context.Context, id string) error
}

// TagRepository defines the tag persistence operations
type TagRepository interface {
	List(ctx context.Context, limit, offset int) ([]*models.Tag, error)
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	Update(ctx context.Context, id, name string) (*models.Tag, error)
	Delete(ctx context.Context, id string) error
}

// GenreRepository defines the genre persistence operations
type GenreRepository interface {
	List(ctx context.Context, limit, offset int) ([]*models.Genre, error)
	GetByID(ctx context.Context, id string) (*models.Genre, error)
	Create(ctx context.Context, genre *models.Genre) (*models.Genre, error)
	Update(ctx context.Context, id, name string) (*models.Genre, error)
	Delete(ctx context.Context, id string) error
}

// ListingRepository defines the listing persistence operations
type ListingRepository interface {
	List(ctx context.Context, limit, offset int) ([]*models.Listing, error)
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	Create(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	Update(ctx context.Context, id string, update repositories.ListingUpdate) (*models.Listing, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService gates every catalog operation through the policy
// evaluator before touching the repositories.
type CatalogService struct {
	movies   MovieRepository
	tags     TagRepository
	genres   GenreRepository
	listings ListingRepository
	policy   *auth.Evaluator
	logger   *slog.Logger
}

func NewCatalogService(movies MovieRepository, tags TagRepository, genres GenreRepository, listings ListingRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		movies:   movies,
		tags:     tags,
		genres:   genres,
		listings: listings,
		policy:   auth.NewEvaluator(auth.CatalogRules()...),
		logger:   logger,
	}
}

// MovieInput carries the writable movie fields. Tags and Genres are
// nested name objects, get-or-created under the acting user.
type MovieInput struct {
	Title  *string
	Tags   []string
	Genres []string
}

// ListingInput carries the writable listing fields
type ListingInput struct {
	Name               *string
	StreamURL          *string
	SeasonNumber       *int
	EpisodeNumber      *int
	ContentDescription *string
	MovieID            *string
}

// Movies

func (s *CatalogService) ListMovies(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Movie, error) {
	if err := s.policy.Evaluate(actor, auth.ActionList, auth.Resource{Kind: "movie"}); err != nil {
		return nil, err
	}
	return s.movies.List(ctx, limit, offset)
}

func (s *CatalogService) GetMovie(ctx context.Context, actor *models.User, id string) (*models.Movie, error) {
	if err := s.policy.Evaluate(actor, auth.ActionRetrieve, auth.Resource{Kind: "movie"}); err != nil {
		return nil, err
	}
	return s.movies.GetByID(ctx, id)
}

func (s *CatalogService) CreateMovie(ctx context.Context, actor *models.User, input MovieInput) (*models.Movie, error) {
	if err := s.policy.Evaluate(actor, auth.ActionCreate, auth.Resource{Kind: "movie"}); err != nil {
		return nil, err
	}

	title := ""
	if input.Title != nil {
		title = *input.Title
	}

	movie := &models.Movie{Title: title, CreatedBy: actor.ID}
	created, err := s.movies.Create(ctx, movie, input.Tags, input.Genres)
	if err != nil {
		return nil, err
	}

	s.logger.Info("movie created", slog.String("movie_id", created.ID), slog.String("user_id", actor.ID))
	return created, nil
}

func (s *CatalogService) UpdateMovie(ctx context.Context, actor *models.User, id string, input MovieInput) (*models.Movie, error) {
	if err := s.policy.Evaluate(actor, auth.ActionUpdate, auth.Resource{Kind: "movie"}); err != nil {
		return nil, err
	}
	return s.movies.Update(ctx, id, input.Title, input.Tags, input.Genres, actor.ID)
}

func (s *CatalogService) DeleteMovie(ctx context.Context, actor *models.User, id string) error {
	if err := s.policy.Evaluate(actor, auth.ActionDelete, auth.Resource{Kind: "movie"}); err != nil {
		return err
	}

	if err := s.movies.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("movie deleted", slog.String("movie_id", id), slog.String("user_id", actor.ID))
	return nil
}

// Tags

func (s *CatalogService) ListTags(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Tag, error) {
	if err := s.policy.Evaluate(actor, auth.ActionList, auth.Resource{Kind: "tag"}); err != nil {
		return nil, err
	}
	return s.tags.List(ctx, limit, offset)
}

func (s *CatalogService) GetTag(ctx context.Context, actor *models.User, id string) (*models.Tag, error) {
	if err := s.policy.Evaluate(actor, auth.ActionRetrieve, auth.Resource{Kind: "tag"}); err != nil {
		return nil, err
	}
	return s.tags.GetByID(ctx, id)
}

func (s *CatalogService) CreateTag(ctx context.Context, actor *models.User, name string) (*models.Tag, error) {
	if err := s.policy.Evaluate(actor, auth.ActionCreate, auth.Resource{Kind: "tag"}); err != nil {
		return nil, err
	}
	return s.tags.Create(ctx, &models.Tag{Name: name, CreatedBy: actor.ID})
}

func (s *CatalogService) UpdateTag(ctx context.Context, actor *models.User, id, name string) (*models.Tag, error) {
	if err := s.policy.Evaluate(actor, auth.ActionUpdate, auth.Resource{Kind: "tag"}); err != nil {
		return nil, err
	}
	return s.tags.Update(ctx, id, name)
}

func (s *CatalogService) DeleteTag(ctx context.Context, actor *models.User, id string) error {
	if err := s.policy.Evaluate(actor, auth.ActionDelete, auth.Resource{Kind: "tag"}); err != nil {
		return err
	}
	return s.tags.Delete(ctx, id)
}

// Genres

func (s *CatalogService) ListGenres(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Genre, error) {
	if err := s.policy.Evaluate(actor, auth.ActionList, auth.Resource{Kind: "genre"}); err != nil {
		return nil, err
	}
	return s.genres.List(ctx, limit, offset)
}

func (s *CatalogService) GetGenre(ctx context.Context, actor *models.User, id string) (*models.Genre, error) {
	if err := s.policy.Evaluate(actor, auth.ActionRetrieve, auth.Resource{Kind: "genre"}); err != nil {
		return nil, err
	}
	return s.genres.GetByID(ctx, id)
}

func (s *CatalogService) CreateGenre(ctx context.Context, actor *models.User, name string) (*models.Genre, error) {
	if err := s.policy.Evaluate(actor, auth.ActionCreate, auth.Resource{Kind: "genre"}); err != nil {
		return nil, err
	}
	return s.genres.Create(ctx, &models.Genre{Name: name, CreatedBy: actor.ID})
}

func (s *CatalogService) UpdateGenre(ctx context.Context, actor *models.User, id, name string) (*models.Genre, error) {
	if err := s.policy.Evaluate(actor, auth.ActionUpdate, auth.Resource{Kind: "genre"}); err != nil {
		return nil, err
	}
	return s.genres.Update(ctx, id, name)
}

func (s *CatalogService) DeleteGenre(ctx context.Context, actor *models.User, id string) error {
	if err := s.policy.Evaluate(actor, auth.ActionDelete, auth.Resource{Kind: "genre"}); err != nil {
		return err
	}
	return s.genres.Delete(ctx, id)
}

// Listings

func (s *CatalogService) ListListings(ctx context.Context, actor *models.User, limit, offset int) ([]*models.Listing, error) {
	if err := s.policy.Evaluate(actor, auth.ActionList, auth.Resource{Kind: "listing"}); err != nil {
		return nil, err
	}
	return s.listings.List(ctx, limit, offset)
}

func (s *CatalogService) GetListing(ctx context.Context, actor *models.User, id string) (*models.Listing, error) {
	if err := s.policy.Evaluate(actor, auth.ActionRetrieve, auth.Resource{Kind: "listing"}); err != nil {
		return nil, err
	}
	return s.listings.GetByID(ctx, id)
}

func (s *CatalogService) CreateListing(ctx context.Context, actor *models.User, input ListingInput) (*models.Listing, error) {
	if err := s.policy.Evaluate(actor, auth.ActionCreate, auth.Resource{Kind: "listing"}); err != nil {
		return nil, err
	}

	listing := &models.Listing{CreatedBy: actor.ID}
	if input.Name != nil {
		listing.Name = *input.Name
	}
	if input.StreamURL != nil {
		listing.StreamURL = *input.StreamURL
	}
	if input.SeasonNumber != nil {
		listing.SeasonNumber = *input.SeasonNumber
	}
	if input.EpisodeNumber != nil {
		listing.EpisodeNumber = *input.EpisodeNumber
	}
	if input.ContentDescription != nil {
		listing.ContentDescription = *input.ContentDescription
	}
	if input.MovieID != nil {
		listing.MovieID = *input.MovieID
	}

	return s.listings.Create(ctx, listing)
}

func (s *CatalogService) UpdateListing(ctx context.Context, actor *models.User, id string, input ListingInput) (*models.Listing, error) {
	if err := s.policy.Evaluate(actor, auth.ActionUpdate, auth.Resource{Kind: "listing"}); err != nil {
		return nil, err
	}

	return s.listings.Update(ctx, id, repositories.ListingUpdate{
		Name:               input.Name,
		StreamURL:          input.StreamURL,
		SeasonNumber:       input.SeasonNumber,
		EpisodeNumber:      input.EpisodeNumber,
		ContentDescription: input.ContentDescription,
		MovieID:            input.MovieID,
	})
}

func (s *CatalogService) DeleteListing(ctx context.Context, actor *models.User, id string) error {
	if err := s.policy.Evaluate(actor, auth.ActionDelete, auth.Resource{Kind: "listing"}); err != nil {
		return err
	}
	return s.listings.Delete(ctx, id)
}
