package catalog

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Favorite marks a product a user wants to keep track of
type Favorite struct {
	shared.BaseEntity
	UserID    uuid.UUID
	ProductID uuid.UUID
}

// NewFavorite creates a favorite entry
func NewFavorite(userID, productID uuid.UUID) *Favorite {
	return &Favorite{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
	}
}
