package models

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// CartModel is the persistence model for cart.Cart
type CartModel struct {
	BaseModel
	UserID     *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	SessionKey *string         `gorm:"type:varchar(40);uniqueIndex"`
	Items      []CartItemModel `gorm:"foreignKey:CartID;references:ID"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// ToDomain converts the model and its loaded items to a domain cart
func (m *CartModel) ToDomain() *cart.Cart {
	c := &cart.Cart{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Items:      make([]cart.Item, 0, len(m.Items)),
	}
	if m.SessionKey != nil {
		c.SessionKey = *m.SessionKey
	}
	for i := range m.Items {
		c.Items = append(c.Items, *m.Items[i].ToDomain())
	}
	return c
}

// FromDomain populates the cart row; items are persisted separately
func (m *CartModel) FromDomain(c *cart.Cart) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.UserID = c.UserID
	m.SessionKey = nil
	if c.UserID == nil && c.SessionKey != "" {
		key := c.SessionKey
		m.SessionKey = &key
	}
}

// CartItemModel is the persistence model for cart.Item
type CartItemModel struct {
	BaseModel
	CartID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product,priority:1"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product,priority:2"`
	Quantity  int             `gorm:"not null;default:1"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the model to a domain cart item
func (m *CartItemModel) ToDomain() *cart.Item {
	return &cart.Item{
		BaseEntity: m.BaseModel.ToDomain(),
		CartID:     m.CartID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		Price:      m.Price,
	}
}

// FromDomain populates the model from a domain cart item
func (m *CartItemModel) FromDomain(i *cart.Item) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.CartID = i.CartID
	m.ProductID = i.ProductID
	m.Quantity = i.Quantity
	m.Price = i.Price
}
