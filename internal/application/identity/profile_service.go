package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProfileService manages the current user's profile
type ProfileService struct {
	userRepo    identity.UserRepository
	profileRepo identity.ProfileRepository
	logger      *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	userRepo identity.UserRepository,
	profileRepo identity.ProfileRepository,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Get returns the user's profile, creating an empty one on first access
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	user, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := ToProfileDTO(user, profile)
	return &dto, nil
}

// Update applies the given changes to the profile and its account
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	user, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		if err := profile.SetPhone(*input.Phone); err != nil {
			return nil, err
		}
	}
	if input.Address != nil {
		profile.SetAddress(*input.Address)
	}
	if input.Type != nil {
		if err := profile.SetType(identity.ProfileType(*input.Type)); err != nil {
			return nil, err
		}
	}

	userChanged := false
	if input.Email != nil {
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
		userChanged = true
	}
	if input.FirstName != nil || input.LastName != nil {
		first, last := user.FirstName, user.LastName
		if input.FirstName != nil {
			first = *input.FirstName
		}
		if input.LastName != nil {
			last = *input.LastName
		}
		if err := user.SetName(first, last); err != nil {
			return nil, err
		}
		userChanged = true
	}

	if userChanged {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save profile", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	dto := ToProfileDTO(user, profile)
	return &dto, nil
}

func (s *ProfileService) load(ctx context.Context, userID uuid.UUID) (*identity.User, *identity.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		return user, profile, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, nil, err
	}

	profile = identity.NewProfile(userID, identity.ProfileTypeForRole(user.Role))
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, nil, err
	}
	s.logger.Info("Profile created on first access", zap.String("user_id", userID.String()))
	return user, profile, nil
}
