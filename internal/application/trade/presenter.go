package trade

import (
	"context"

	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/samber/lo"
)

// OrderPresenter renders orders with their products
type OrderPresenter struct {
	products *appcatalog.ProductPresenter
}

// NewOrderPresenter creates an OrderPresenter
func NewOrderPresenter(products *appcatalog.ProductPresenter) *OrderPresenter {
	return &OrderPresenter{products: products}
}

// Orders renders orders loading every referenced product once
func (p *OrderPresenter) Orders(ctx context.Context, orders []trade.Order) ([]OrderResponse, error) {
	var productIDs []uuid.UUID
	for i := range orders {
		for _, item := range orders[i].Items {
			productIDs = append(productIDs, item.ProductID)
		}
	}
	products, err := p.products.ByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	return lo.Map(orders, func(o trade.Order, _ int) OrderResponse {
		return OrderResponse{
			ID:              o.ID,
			BuyerID:         o.BuyerID,
			Status:          o.Status.String(),
			TotalPrice:      appcatalog.FormatPrice(o.TotalPrice),
			CreatedAt:       o.CreatedAt,
			UpdatedAt:       o.UpdatedAt,
			ContactName:     o.ContactName,
			ContactPhone:    o.ContactPhone.String(),
			DeliveryMethod:  o.Method,
			DeliveryAddress: o.Address,
			Items: lo.Map(o.Items, func(item trade.OrderItem, _ int) OrderItemResponse {
				return OrderItemResponse{
					ID:           item.ID,
					Product:      products[item.ProductID],
					ProductID:    item.ProductID,
					SellerID:     item.SellerID,
					Quantity:     item.Quantity,
					Price:        appcatalog.FormatPrice(item.Price),
					Subtotal:     appcatalog.FormatPrice(item.Subtotal()),
					ProductImage: p.products.ImageURL(ctx, item.ProductImage),
				}
			}),
		}
	}), nil
}

// Order renders a single order
func (p *OrderPresenter) Order(ctx context.Context, order *trade.Order) (*OrderResponse, error) {
	rendered, err := p.Orders(ctx, []trade.Order{*order})
	if err != nil {
		return nil, err
	}
	return &rendered[0], nil
}
