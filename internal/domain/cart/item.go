package cart

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxQuantity caps a single cart line
const MaxQuantity = 10000

// ErrInvalidQuantity is returned for quantities outside 1..MaxQuantity
var ErrInvalidQuantity = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be between 1 and 10000")

func validQuantity(quantity int) bool {
	return quantity >= 1 && quantity <= MaxQuantity
}

// Item is a cart line. Price is the product price captured when the line
// was added or last incremented.
type Item struct {
	shared.BaseEntity
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// NewItem creates a cart line
func NewItem(cartID, productID uuid.UUID, quantity int, price decimal.Decimal) (*Item, error) {
	if !validQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     cartID,
		ProductID:  productID,
		Quantity:   quantity,
		Price:      price,
	}, nil
}

// Subtotal is quantity times the snapshot price
func (i *Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SetQuantity sets a quantity within 1..MaxQuantity
func (i *Item) SetQuantity(quantity int) error {
	if !validQuantity(quantity) {
		return ErrInvalidQuantity
	}
	i.Quantity = quantity
	i.Touch()
	return nil
}
