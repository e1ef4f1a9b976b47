package trade

import (
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
)

// CheckoutRequest carries the contact and delivery details of a new order
type CheckoutRequest struct {
	ContactName     string `json:"contact_name" binding:"required,max=255"`
	ContactPhone    string `json:"contact_phone" binding:"required,phone"`
	DeliveryMethod  string `json:"delivery_method" binding:"required,max=50"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
}

// UpdateStatusRequest changes the status of an order
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Actor is the authenticated user acting on orders
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// Scope selects whose orders an operation works on
type Scope int

const (
	// ScopeBuyer covers orders placed by the actor
	ScopeBuyer Scope = iota
	// ScopeSeller covers orders containing the actor's products
	ScopeSeller
	// ScopeAdmin covers every order
	ScopeAdmin
)

// OrderItemResponse is an order line
type OrderItemResponse struct {
	ID           uuid.UUID                  `json:"id"`
	Product      appcatalog.ProductResponse `json:"product"`
	ProductID    uuid.UUID                  `json:"product_id"`
	SellerID     uuid.UUID                  `json:"seller"`
	Quantity     int                        `json:"quantity"`
	Price        string                     `json:"price"`
	Subtotal     string                     `json:"subtotal"`
	ProductImage string                     `json:"product_image"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	BuyerID         uuid.UUID           `json:"buyer"`
	Status          string              `json:"status"`
	TotalPrice      string              `json:"total_price"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	ContactName     string              `json:"contact_name"`
	ContactPhone    string              `json:"contact_phone"`
	DeliveryMethod  string              `json:"delivery_method"`
	DeliveryAddress string              `json:"delivery_address"`
	Items           []OrderItemResponse `json:"items"`
}

// Export is a rendered spreadsheet download
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}
