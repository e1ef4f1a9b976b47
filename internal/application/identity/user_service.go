package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// UserService handles administrative user management
type UserService struct {
	userRepo  identity.UserRepository
	blacklist auth.TokenBlacklist
	jwt       *auth.JWTService
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blacklist: blacklist,
		jwt:       jwtService,
		logger:    logger,
	}
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, filter UserListFilter) (*UserListResult, error) {
	domainFilter := identity.UserFilter{Filter: shared.DefaultFilter()}
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Role != "" {
		role, err := identity.ParseRole(filter.Role)
		if err != nil {
			return nil, err
		}
		domainFilter.Role = &role
	}

	users, total, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}

	page := shared.NewPaginated(lo.Map(users, func(u *identity.User, _ int) UserDTO {
		return ToUserDTO(u)
	}), total, domainFilter.Page, domainFilter.PageSize)

	return &UserListResult{
		Users:      page.Items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// GetByID returns one user
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// Update changes an account. A role change revokes the user's tokens so
// the old role cannot be used any more.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.FirstName != nil || input.LastName != nil {
		if err := user.SetName(
			lo.FromPtrOr(input.FirstName, user.FirstName),
			lo.FromPtrOr(input.LastName, user.LastName),
		); err != nil {
			return nil, err
		}
	}

	roleChanged := false
	if input.Role != nil {
		role, err := identity.ParseRole(*input.Role)
		if err != nil {
			return nil, err
		}
		roleChanged = role != user.Role
		if err := user.ChangeRole(role); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if roleChanged {
		s.revokeTokens(ctx, user.ID)
		s.logger.Info("User role changed",
			zap.String("user_id", user.ID.String()),
			zap.String("role", user.Role.String()))
	}

	dto := ToUserDTO(user)
	return &dto, nil
}

// Delete removes a user. Users who placed orders cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrInUse) {
			return shared.NewDomainError("IN_USE", "User has orders and cannot be deleted")
		}
		return err
	}
	s.revokeTokens(ctx, id)
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *UserService) revokeTokens(ctx context.Context, userID uuid.UUID) {
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwt.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke user tokens", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
