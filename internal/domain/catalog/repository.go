package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, category *Category) error

	// Delete removes the category and its subtree. Returns shared.ErrInUse
	// while any product in the subtree references it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductFilter narrows product listings
type ProductFilter struct {
	shared.Filter
	CategoryID    *uuid.UUID
	SellerID      *uuid.UUID
	PublishedOnly bool
	IsPublished   *bool
}

// ProductRepository persists products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	Save(ctx context.Context, product *Product) error

	// Delete removes a product. Returns shared.ErrInUse while order items reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageRepository persists product images
type ImageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Image, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Image, error)

	// FindByProducts returns the images of several products, oldest first
	FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]Image, error)

	// FirstByProducts returns the earliest image of each product, keyed by product id.
	FirstByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]Image, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Image, int64, error)
	Save(ctx context.Context, image *Image) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FavoriteRepository persists favorites
type FavoriteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Favorite, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*Favorite, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Favorite, int64, error)
	Save(ctx context.Context, favorite *Favorite) error
	Delete(ctx context.Context, id uuid.UUID) error
}
