package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/infrastructure/auth"
)

// RegisterInput contains the input for self-registration
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput identifies the access token to revoke
type LogoutInput struct {
	UserID    uuid.UUID
	TokenJTI  string
	ExpiresAt time.Time
}

// TokenResult is an issued token pair
type TokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	TokenResult
	User UserDTO `json:"user"`
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ProfileDTO is a user's profile with the embedded account
type ProfileDTO struct {
	User    UserDTO `json:"user"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Type    string  `json:"type"`
}

// UpdateProfileInput changes profile fields; nil fields are left untouched
type UpdateProfileInput struct {
	Phone     *string
	Address   *string
	Type      *string
	Email     *string
	FirstName *string
	LastName  *string
}

// UserListFilter narrows the admin user listing
type UserListFilter struct {
	Search   string
	Role     string
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// UpdateUserInput is an admin change to an account; nil fields are kept
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *string
}

// UserListResult represents paginated user list result
type UserListResult struct {
	Users      []UserDTO `json:"users"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// ToUserDTO maps a domain user
func ToUserDTO(u *identity.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role.String(),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToProfileDTO maps a profile and its user
func ToProfileDTO(u *identity.User, p *identity.Profile) ProfileDTO {
	return ProfileDTO{
		User:    ToUserDTO(u),
		Phone:   p.Phone.String(),
		Address: p.Address,
		Type:    string(p.Type),
	}
}

func toTokenResult(pair *auth.TokenPair) TokenResult {
	return TokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}
