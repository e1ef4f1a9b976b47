package cart

import (
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// MaxSessionKeyLength bounds anonymous session keys
const MaxSessionKeyLength = 40

// ErrNoIdentity is returned when a cart is requested without an owner
var ErrNoIdentity = shared.NewDomainError("CART_IDENTITY_REQUIRED", "Cart requires a user or a session")

// Identity names the owner of a cart: an authenticated user or an
// anonymous session, never both.
type Identity struct {
	userID     uuid.UUID
	sessionKey string
}

// ForUser returns the identity of an authenticated user
func ForUser(userID uuid.UUID) Identity {
	return Identity{userID: userID}
}

// ForSession returns the identity of an anonymous session
func ForSession(sessionKey string) Identity {
	return Identity{sessionKey: strings.TrimSpace(sessionKey)}
}

// UserID returns the user id and whether the identity is a user
func (i Identity) UserID() (uuid.UUID, bool) {
	return i.userID, i.userID != uuid.Nil
}

// SessionKey returns the session key and whether the identity is anonymous
func (i Identity) SessionKey() (string, bool) {
	return i.sessionKey, i.userID == uuid.Nil && i.sessionKey != ""
}

// IsAuthenticated reports whether the identity is a user
func (i Identity) IsAuthenticated() bool {
	return i.userID != uuid.Nil
}

// Validate checks exactly one side is set
func (i Identity) Validate() error {
	if i.userID == uuid.Nil && i.sessionKey == "" {
		return ErrNoIdentity
	}
	if i.userID != uuid.Nil && i.sessionKey != "" {
		return shared.NewDomainError("CART_IDENTITY_AMBIGUOUS", "Cart identity cannot be both a user and a session")
	}
	if len(i.sessionKey) > MaxSessionKeyLength {
		return shared.NewDomainError("INVALID_SESSION_KEY", "Session key is too long")
	}
	return nil
}

// String is used in logs
func (i Identity) String() string {
	if i.userID != uuid.Nil {
		return "user:" + i.userID.String()
	}
	return "session:" + i.sessionKey
}
