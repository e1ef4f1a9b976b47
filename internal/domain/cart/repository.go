package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists carts and their items
type Repository interface {
	// FindByOwner loads the cart of an identity with its items.
	// Returns shared.ErrNotFound when the identity has no cart yet.
	FindByOwner(ctx context.Context, owner Identity) (*Cart, error)
	Create(ctx context.Context, cart *Cart) error

	// SaveItem inserts or updates a single line
	SaveItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error

	// ClearItems deletes every line of a cart, keeping the cart row
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}
