package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
)

// ProfileType distinguishes buyer and seller profiles
type ProfileType string

const (
	ProfileTypeCustomer ProfileType = "customer"
	ProfileTypeSeller   ProfileType = "seller"
)

// IsValid reports whether t is a known profile type
func (t ProfileType) IsValid() bool {
	return t == ProfileTypeCustomer || t == ProfileTypeSeller
}

// ProfileTypeForRole returns the profile type matching a role
func ProfileTypeForRole(role Role) ProfileType {
	if role == RoleSeller {
		return ProfileTypeSeller
	}
	return ProfileTypeCustomer
}

// Profile holds a user's contact details, one per user
type Profile struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Phone   valueobject.Phone
	Address string
	Type    ProfileType
}

// NewProfile creates an empty profile for a user
func NewProfile(userID uuid.UUID, profileType ProfileType) *Profile {
	if !profileType.IsValid() {
		profileType = ProfileTypeCustomer
	}
	return &Profile{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Type:       profileType,
	}
}

// SetPhone normalizes and stores the phone; empty clears it
func (p *Profile) SetPhone(raw string) error {
	phone, err := valueobject.ParseOptionalPhone(raw)
	if err != nil {
		return err
	}
	p.Phone = phone
	p.Touch()
	return nil
}

// SetAddress stores the postal address
func (p *Profile) SetAddress(address string) {
	p.Address = strings.TrimSpace(address)
	p.Touch()
}

// SetType changes the profile type
func (p *Profile) SetType(t ProfileType) error {
	if !t.IsValid() {
		return shared.NewDomainError("INVALID_PROFILE_TYPE", "Profile type must be customer or seller")
	}
	p.Type = t
	p.Touch()
	return nil
}
