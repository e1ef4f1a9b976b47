package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
)

// UserModel is the persistence model for identity.User
type UserModel struct {
	BaseModel
	Username     string        `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string        `gorm:"type:varchar(254)"`
	FirstName    string        `gorm:"type:varchar(150)"`
	LastName     string        `gorm:"type:varchar(150)"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'customer';index"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the model from a domain user
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Username = u.Username
	m.Email = u.Email
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new model from a domain user
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// ProfileModel is the persistence model for identity.Profile
type ProfileModel struct {
	BaseModel
	UserID  uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	Phone   string               `gorm:"type:varchar(20)"`
	Address string               `gorm:"type:varchar(255)"`
	Type    identity.ProfileType `gorm:"type:varchar(20);not null;default:'customer'"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the model to a domain profile
func (m *ProfileModel) ToDomain() *identity.Profile {
	return &identity.Profile{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Phone:      valueobject.Phone(m.Phone),
		Address:    m.Address,
		Type:       m.Type,
	}
}

// FromDomain populates the model from a domain profile
func (m *ProfileModel) FromDomain(p *identity.Profile) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.UserID = p.UserID
	m.Phone = p.Phone.String()
	m.Address = p.Address
	m.Type = p.Type
}
