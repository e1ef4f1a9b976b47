package cart

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Cart is a mutable pre-order collection owned by a user or a session
type Cart struct {
	shared.BaseEntity
	UserID     *uuid.UUID
	SessionKey string
	Items      []Item
}

// New creates an empty cart for the identity
func New(owner Identity) (*Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	c := &Cart{BaseEntity: shared.NewBaseEntity()}
	if userID, ok := owner.UserID(); ok {
		c.UserID = &userID
	} else {
		c.SessionKey, _ = owner.SessionKey()
	}
	return c, nil
}

// Owner returns the identity the cart belongs to
func (c *Cart) Owner() Identity {
	if c.UserID != nil {
		return ForUser(*c.UserID)
	}
	return ForSession(c.SessionKey)
}

// TotalPrice sums the subtotals of all items
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem returns the item with the given id
func (c *Cart) FindItem(itemID uuid.UUID) (*Item, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// FindItemByProduct returns the item for a product
func (c *Cart) FindItemByProduct(productID uuid.UUID) (*Item, bool) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// Add puts a product in the cart. An existing line for the product gets the
// quantity added and its price refreshed; otherwise a new line is created.
// The returned item is the one that must be persisted.
func (c *Cart) Add(productID uuid.UUID, quantity int, price decimal.Decimal) (*Item, error) {
	if !validQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}
	if item, ok := c.FindItemByProduct(productID); ok {
		// quantity is capped, so the sum cannot overflow
		if item.Quantity+quantity > MaxQuantity {
			return nil, ErrInvalidQuantity
		}
		item.Quantity += quantity
		item.Price = price
		item.Touch()
		return item, nil
	}
	item, err := NewItem(c.ID, productID, quantity, price)
	if err != nil {
		return nil, err
	}
	c.Items = append(c.Items, *item)
	return &c.Items[len(c.Items)-1], nil
}

// RemoveItem drops a line from the in-memory cart
func (c *Cart) RemoveItem(itemID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}
