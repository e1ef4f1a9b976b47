package review

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrInvalidRating   = shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	ErrAlreadyReviewed = shared.NewDomainError("ALREADY_EXISTS", "You have already reviewed this product")
)

// Review is a user's rating of a product; one per (product, user)
type Review struct {
	shared.BaseEntity
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string

	// Username is filled by repositories for display
	Username string
}

// NewReview creates a review
func NewReview(productID, userID uuid.UUID, rating int, comment string) (*Review, error) {
	r := &Review{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		UserID:     userID,
	}
	if err := r.Update(rating, comment); err != nil {
		return nil, err
	}
	return r, nil
}

// Update replaces rating and comment
func (r *Review) Update(rating int, comment string) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	r.Touch()
	return nil
}

// IsWrittenBy reports whether the user authored the review
func (r *Review) IsWrittenBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// Filter narrows review listings
type Filter struct {
	shared.Filter
	ProductID *uuid.UUID
	UserID    *uuid.UUID
}

// Repository persists reviews
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindAll(ctx context.Context, filter Filter) ([]Review, int64, error)
	ExistsByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (bool, error)

	// Save inserts or updates. Returns ErrAlreadyReviewed on a (product, user) conflict.
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
