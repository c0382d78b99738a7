package services

import (
	"context"
	"log/slog"

	"github.com/homeflix/homeflix/internal/auth"
	"github.com/homeflix/homeflix/internal/models"
)

// ProfileRepository defines the owner-scoped profile persistence operations
type ProfileRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.UserProfile, error)
	GetByIDForUser(ctx context.Context, id, userID string) (*models.UserProfile, error)
	Create(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
	Update(ctx context.Context, id, userID, name string) (*models.UserProfile, error)
	Delete(ctx context.Context, id, userID string) error
}

// ProfileService applies the owner-only policy. The repository already
// scopes every query by owner, so a foreign profile surfaces as not found
// rather than forbidden, which keeps other users' profiles unobservable.
type ProfileService struct {
	profiles ProfileRepository
	policy   *auth.Evaluator
	logger   *slog.Logger
}

func NewProfileService(profiles ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		policy:   auth.NewEvaluator(auth.ProfileRules()...),
		logger:   logger,
	}
}

func (s *ProfileService) ListProfiles(ctx context.Context, actor *models.User) ([]*models.UserProfile, error) {
	if err := s.policy.Evaluate(actor, auth.ActionList, auth.Resource{Kind: "profile"}); err != nil {
		return nil, err
	}
	return s.profiles.ListByUser(ctx, actor.ID)
}

func (s *ProfileService) GetProfile(ctx context.Context, actor *models.User, id string) (*models.UserProfile, error) {
	if err := s.policy.Evaluate(actor, auth.ActionRetrieve, auth.Resource{Kind: "profile"}); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByIDForUser(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Evaluate(actor, auth.ActionRetrieve, auth.Resource{Kind: "profile", OwnerID: profile.UserID}); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *ProfileService) CreateProfile(ctx context.Context, actor *models.User, name string) (*models.UserProfile, error) {
	if err := s.policy.Evaluate(actor, auth.ActionCreate, auth.Resource{Kind: "profile"}); err != nil {
		return nil, err
	}

	profile, err := s.profiles.Create(ctx, &models.UserProfile{UserID: actor.ID, Name: name})
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile created", slog.String("profile_id", profile.ID), slog.String("user_id", actor.ID))
	return profile, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, actor *models.User, id, name string) (*models.UserProfile, error) {
	if err := s.policy.Evaluate(actor, auth.ActionUpdate, auth.Resource{Kind: "profile"}); err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetByIDForUser(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Evaluate(actor, auth.ActionUpdate, auth.Resource{Kind: "profile", OwnerID: existing.UserID}); err != nil {
		return nil, err
	}

	return s.profiles.Update(ctx, id, actor.ID, name)
}

func (s *ProfileService) DeleteProfile(ctx context.Context, actor *models.User, id string) error {
	if err := s.policy.Evaluate(actor, auth.ActionDelete, auth.Resource{Kind: "profile"}); err != nil {
		return err
	}

	existing, err := s.profiles.GetByIDForUser(ctx, id, actor.ID)
	if err != nil {
		return err
	}

	if err := s.policy.Evaluate(actor, auth.ActionDelete, auth.Resource{Kind: "profile", OwnerID: existing.UserID}); err != nil {
		return err
	}

	return s.profiles.Delete(ctx, id, actor.ID)
}
