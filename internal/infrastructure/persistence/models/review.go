package models

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/review"
)

// ReviewModel is the persistence model for review.Review
type ReviewModel struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user,priority:2;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the model to a domain review
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		UserID:     m.UserID,
		Rating:     m.Rating,
		Comment:    m.Comment,
	}
}

// FromDomain populates the model from a domain review
func (m *ReviewModel) FromDomain(r *review.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProductID = r.ProductID
	m.UserID = r.UserID
	m.Rating = r.Rating
	m.Comment = r.Comment
}
