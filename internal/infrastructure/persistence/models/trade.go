package models

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for trade.Order
type OrderModel struct {
	BaseModel
	BuyerID         uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status          trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalPrice      decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	ContactName     string            `gorm:"type:varchar(255);not null"`
	ContactPhone    string            `gorm:"type:varchar(20);not null"`
	DeliveryMethod  string            `gorm:"type:varchar(100);not null"`
	DeliveryAddress string            `gorm:"type:varchar(500);not null"`
	Items           []OrderItemModel  `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model and its loaded items to a domain order
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseEntity: m.BaseModel.ToDomain(),
		BuyerID:    m.BuyerID,
		Status:     m.Status,
		TotalPrice: m.TotalPrice,
		Delivery: trade.Delivery{
			ContactName:  m.ContactName,
			ContactPhone: valueobject.Phone(m.ContactPhone),
			Method:       m.DeliveryMethod,
			Address:      m.DeliveryAddress,
		},
		Items: make([]trade.OrderItem, 0, len(m.Items)),
	}
	for i := range m.Items {
		o.Items = append(o.Items, *m.Items[i].ToDomain())
	}
	return o
}

// FromDomain populates the order row; items are handled separately
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.BuyerID = o.BuyerID
	m.Status = o.Status
	m.TotalPrice = o.TotalPrice
	m.ContactName = o.ContactName
	m.ContactPhone = o.ContactPhone.String()
	m.DeliveryMethod = o.Method
	m.DeliveryAddress = o.Address
}

// OrderItemModel is the persistence model for trade.OrderItem
type OrderItemModel struct {
	BaseModel
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the model to a domain order item
func (m *OrderItemModel) ToDomain() *trade.OrderItem {
	return &trade.OrderItem{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		ProductID:  m.ProductID,
		SellerID:   m.SellerID,
		Quantity:   m.Quantity,
		Price:      m.Price,
	}
}

// FromDomain populates the model from a domain order item
func (m *OrderItemModel) FromDomain(i *trade.OrderItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.OrderID = i.OrderID
	m.ProductID = i.ProductID
	m.SellerID = i.SellerID
	m.Quantity = i.Quantity
	m.Price = i.Price
}
