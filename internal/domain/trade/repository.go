package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.Filter
	BuyerID  *uuid.UUID
	SellerID *uuid.UUID
	Status   *OrderStatus
}

// OrderRepository persists orders with their items
type OrderRepository interface {
	// FindByID loads an order with items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindAll lists orders newest first. A SellerID filter keeps orders
	// containing at least one item of that seller.
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	// Create inserts the order and all of its items
	Create(ctx context.Context, order *Order) error
	// Save updates the order row (status, total)
	Save(ctx context.Context, order *Order) error
}

// CheckoutRepos are the repositories bound to a checkout transaction
type CheckoutRepos struct {
	Orders   OrderRepository
	Carts    cart.Repository
	Products catalog.ProductRepository
}

// TransactionScope runs fn inside one database transaction. Any error
// returned by fn rolls everything back and is returned unchanged.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos CheckoutRepos) error) error
}
