package services

import (
	"context"
	"time"

	"github.com/homeflix/homeflix/internal/models"
	"github.com/homeflix/homeflix/internal/repositories"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc        func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	CreateFunc         func(ctx context.Context, user *models.User) (*models.User, error)
	TouchLastLoginFunc func(ctx context.Context, id string) error
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string) error {
	if m.TouchLastLoginFunc != nil {
		return m.TouchLastLoginFunc(ctx, id)
	}
	return nil
}

// MockTokenRepository implements TokenRepository for testing
type MockTokenRepository struct {
	CreateFunc           func(ctx context.Context, userID, digest string) (*models.AuthToken, error)
	GetByDigestFunc      func(ctx context.Context, digest string) (*models.AuthToken, error)
	DeleteByDigestFunc   func(ctx context.Context, digest string) error
	DeleteAllForUserFunc func(ctx context.Context, userID string) (int64, error)
}

func (m *MockTokenRepository) Create(ctx context.Context, userID, digest string) (*models.AuthToken, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, digest)
	}
	return &models.AuthToken{UserID: userID, Digest: digest, CreatedAt: time.Now()}, nil
}

func (m *MockTokenRepository) GetByDigest(ctx context.Context, digest string) (*models.AuthToken, error) {
	if m.GetByDigestFunc != nil {
		return m.GetByDigestFunc(ctx, digest)
	}
	return nil, models.ErrNotFound
}

func (m *MockTokenRepository) DeleteByDigest(ctx context.Context, digest string) error {
	if m.DeleteByDigestFunc != nil {
		return m.DeleteByDigestFunc(ctx, digest)
	}
	return nil
}

func (m *MockTokenRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(ctx, userID)
	}
	return 0, nil
}

// MockMovieRepository implements MovieRepository for testing
type MockMovieRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Movie, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*models.Movie, error)
	CreateFunc  func(ctx context.Context, movie *models.Movie, tagNames, genreNames []string) (*models.Movie, error)
	UpdateFunc  func(ctx context.Context, id string, title *string, tagNames, genreNames []string, requestedBy string) (*models.Movie, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockMovieRepository) List(ctx context.Context, limit, offset int) ([]*models.Movie, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.Movie{}, nil
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *models.Movie, tagNames, genreNames []string) (*models.Movie, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, movie, tagNames, genreNames)
	}
	return nil, models.ErrInternalServer
}

func (m *MockMovieRepository) Update(ctx context.Context, id string, title *string, tagNames, genreNames []string, requestedBy string) (*models.Movie, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, title, tagNames, genreNames, requestedBy)
	}
	return nil, models.ErrNotFound
}

func (m *MockMovieRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockTagRepository implements TagRepository for testing
type MockTagRepository struct {
	ListFunc    func(ctx context.Context, limit, offset int) ([]*models.Tag, error)
	GetByIDFunc func(ctx context.Context, id string) (*models.Tag, error)
	CreateFunc  func(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	UpdateFunc  func(ctx context.Context, id, name string) (*models.Tag, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockTagRepository) List(ctx context.Context, limit, offset int) ([]*models.Tag, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.Tag{}, nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tag)
	}
	return nil, models.ErrInternalServer
}

func (m *MockTagRepository) Update(ctx context.Context, id, name string) (*models.Tag, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, name)
	}
	return nil, models.ErrNotFound
}

func (m *MockTagRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockGenreRepository implements GenreRepository for testing
type MockGenreRepository struct {
	ListFunc    func(ctx context.Context, limit, offset int) ([]*models.Genre, error)
	GetByIDFunc func(ctx context.Context, id string) (*models.Genre, error)
	CreateFunc  func(ctx context.Context, genre *models.Genre) (*models.Genre, error)
	UpdateFunc  func(ctx context.Context, id, name string) (*models.Genre, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockGenreRepository) List(ctx context.Context, limit, offset int) ([]*models.Genre, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.Genre{}, nil
}

func (m *MockGenreRepository) GetByID(ctx context.Context, id string) (*models.Genre, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockGenreRepository) Create(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, genre)
	}
	return nil, models.ErrInternalServer
}

func (m *MockGenreRepository) Update(ctx context.Context, id, name string) (*models.Genre, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, name)
	}
	return nil, models.ErrNotFound
}

func (m *MockGenreRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockListingRepository implements ListingRepository for testing
type MockListingRepository struct {
	ListFunc    func(ctx context.Context, limit, offset int) ([]*models.Listing, error)
	GetByIDFunc func(ctx context.Context, id string) (*models.Listing, error)
	CreateFunc  func(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	UpdateFunc  func(ctx context.Context, id string, update repositories.ListingUpdate) (*models.Listing, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockListingRepository) List(ctx context.Context, limit, offset int) ([]*models.Listing, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.Listing{}, nil
}

func (m *MockListingRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockListingRepository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, listing)
	}
	return nil, models.ErrInternalServer
}

func (m *MockListingRepository) Update(ctx context.Context, id string, update repositories.ListingUpdate) (*models.Listing, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return nil, models.ErrNotFound
}

func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProfileRepository implements ProfileRepository for testing
type MockProfileRepository struct {
	ListByUserFunc     func(ctx context.Context, userID string) ([]*models.UserProfile, error)
	GetByIDForUserFunc func(ctx context.Context, id, userID string) (*models.UserProfile, error)
	CreateFunc         func(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
	UpdateFunc         func(ctx context.Context, id, userID, name string) (*models.UserProfile, error)
	DeleteFunc         func(ctx context.Context, id, userID string) error
}

func (m *MockProfileRepository) ListByUser(ctx context.Context, userID string) ([]*models.UserProfile, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []*models.UserProfile{}, nil
}

func (m *MockProfileRepository) GetByIDForUser(ctx context.Context, id, userID string) (*models.UserProfile, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	return nil, models.ErrNotFound
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProfileRepository) Update(ctx context.Context, id, userID, name string) (*models.UserProfile, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, userID, name)
	}
	return nil, models.ErrNotFound
}

func (m *MockProfileRepository) Delete(ctx context.Context, id, userID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

// NewTestUser returns an active regular user for tests
func NewTestUser(id, email string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Email:     email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestAdmin returns an active superuser for tests
func NewTestAdmin(id, email string) *models.User {
	user := NewTestUser(id, email)
	user.IsSuperuser = true
	return user
}
