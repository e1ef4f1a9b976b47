package trade

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderItem is an immutable snapshot of a purchased product line
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID
	ProductID uuid.UUID
	SellerID  uuid.UUID
	Quantity  int
	Price     decimal.Decimal

	// ProductName and ProductImage are read-side fields filled by repositories
	ProductName  string
	ProductImage string
}

// NewOrderItem creates an order line
func NewOrderItem(orderID, productID, sellerID uuid.UUID, quantity int, price decimal.Decimal) (*OrderItem, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller is required")
	}
	return &OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		ProductID:  productID,
		SellerID:   sellerID,
		Quantity:   quantity,
		Price:      price,
	}, nil
}

// Subtotal is quantity times unit price
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
