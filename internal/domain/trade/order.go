package trade

import (
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Delivery carries the buyer contact and delivery details of an order
type Delivery struct {
	ContactName  string
	ContactPhone valueobject.Phone
	Method       string
	Address      string
}

// Validate checks every field is present
func (d Delivery) Validate() error {
	if strings.TrimSpace(d.ContactName) == "" {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name is required")
	}
	if d.ContactPhone.IsZero() {
		return valueobject.ErrPhoneRequired
	}
	if strings.TrimSpace(d.Method) == "" {
		return shared.NewDomainError("INVALID_DELIVERY_METHOD", "Delivery method is required")
	}
	if strings.TrimSpace(d.Address) == "" {
		return shared.NewDomainError("INVALID_DELIVERY_ADDRESS", "Delivery address is required")
	}
	return nil
}

// Order is a placed purchase. Items and total are fixed at checkout.
type Order struct {
	shared.BaseEntity
	BuyerID    uuid.UUID
	Status     OrderStatus
	TotalPrice decimal.Decimal
	Delivery
	Items []OrderItem
}

// NewOrder creates a pending order with a zero total
func NewOrder(buyerID uuid.UUID, delivery Delivery) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer is required")
	}
	delivery.ContactName = strings.TrimSpace(delivery.ContactName)
	delivery.Method = strings.TrimSpace(delivery.Method)
	delivery.Address = strings.TrimSpace(delivery.Address)
	if err := delivery.Validate(); err != nil {
		return nil, err
	}
	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		BuyerID:    buyerID,
		Status:     OrderStatusPending,
		TotalPrice: decimal.Zero,
		Delivery:   delivery,
	}, nil
}

// AddItem appends a snapshotted line
func (o *Order) AddItem(productID, sellerID uuid.UUID, quantity int, price decimal.Decimal) (*OrderItem, error) {
	item, err := NewOrderItem(o.ID, productID, sellerID, quantity, price)
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, *item)
	return &o.Items[len(o.Items)-1], nil
}

// RecalculateTotal sets TotalPrice to the sum of item subtotals
func (o *Order) RecalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	o.TotalPrice = total
	o.Touch()
	return total
}

// ChangeStatus moves the order to a new status under the policy.
// Returns false when the status was already set.
func (o *Order) ChangeStatus(policy TransitionPolicy, to OrderStatus) (bool, error) {
	if !to.IsValid() {
		return false, ErrInvalidStatus
	}
	if o.Status == to {
		return false, nil
	}
	if !policy.Allows(o.Status, to) {
		return false, ErrTransitionNotAllowed
	}
	o.Status = to
	o.Touch()
	return true, nil
}

// IsBoughtBy reports whether the user placed the order
func (o *Order) IsBoughtBy(userID uuid.UUID) bool {
	return o.BuyerID == userID
}

// HasSeller reports whether any item belongs to the seller
func (o *Order) HasSeller(sellerID uuid.UUID) bool {
	for i := range o.Items {
		if o.Items[i].SellerID == sellerID {
			return true
		}
	}
	return false
}

// ItemsOfSeller returns the lines sold by the seller
func (o *Order) ItemsOfSeller(sellerID uuid.UUID) []OrderItem {
	var items []OrderItem
	for i := range o.Items {
		if o.Items[i].SellerID == sellerID {
			items = append(items, o.Items[i])
		}
	}
	return items
}
