package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/review"
)

// CreateReviewRequest represents a request to review a product
type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment" binding:"max=5000"`
}

// UpdateReviewRequest changes a review; nil fields are left untouched
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=5000"`
}

// ListFilter represents filter options for review lists
type ListFilter struct {
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AuthorResponse is the public view of a review's author
type AuthorResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Response represents a review in API responses
type Response struct {
	ID        uuid.UUID      `json:"id"`
	ProductID uuid.UUID      `json:"product"`
	User      AuthorResponse `json:"user"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
}

// ToResponse converts a domain Review
func ToResponse(r *review.Review) Response {
	return Response{
		ID:        r.ID,
		ProductID: r.ProductID,
		User:      AuthorResponse{ID: r.UserID, Username: r.Username},
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
