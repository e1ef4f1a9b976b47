package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrEmptyCart is returned when checking out a cart without items
var ErrEmptyCart = shared.NewDomainError("EMPTY_CART", "Cart is empty")

// Metrics records order activity
type Metrics interface {
	OrderPlaced(ctx context.Context, total decimal.Decimal, items int)
	OrderStatusChanged(ctx context.Context, from, to, actor string)
}

// CheckoutService turns a buyer's cart into an order
type CheckoutService struct {
	scope     trade.TransactionScope
	orderRepo trade.OrderRepository
	presenter *OrderPresenter
	metrics   Metrics
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. metrics may be nil.
func NewCheckoutService(
	scope trade.TransactionScope,
	orderRepo trade.OrderRepository,
	presenter *OrderPresenter,
	metrics Metrics,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		scope:     scope,
		orderRepo: orderRepo,
		presenter: presenter,
		metrics:   metrics,
		logger:    logger,
	}
}

// EnsureCartReady fails with ErrEmptyCart when the buyer has nothing to
// check out. Handlers call it before validating the request body.
func (s *CheckoutService) EnsureCartReady(ctx context.Context, buyerID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos trade.CheckoutRepos) error {
		_, err := checkoutCart(ctx, repos.Carts, buyerID)
		return err
	})
}

func checkoutCart(ctx context.Context, carts cart.Repository, buyerID uuid.UUID) (*cart.Cart, error) {
	c, err := carts.FindByOwner(ctx, cart.ForUser(buyerID))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	return c, nil
}

// Checkout places an order from the buyer's cart. The order with its items
// is created and the cart emptied in one transaction; the cart row stays.
func (s *CheckoutService) Checkout(ctx context.Context, buyerID uuid.UUID, req CheckoutRequest) (_ *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "CheckoutService", "Checkout",
		attribute.String("buyer.id", buyerID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	var order *trade.Order
	err = s.scope.Execute(ctx, func(repos trade.CheckoutRepos) error {
		c, err := checkoutCart(ctx, repos.Carts, buyerID)
		if err != nil {
			return err
		}

		// An empty cart is reported ahead of any contact field problem
		phone, err := valueobject.ParsePhone(req.ContactPhone)
		if err != nil {
			return err
		}
		order, err = trade.NewOrder(buyerID, trade.Delivery{
			ContactName:  req.ContactName,
			ContactPhone: phone,
			Method:       req.DeliveryMethod,
			Address:      req.DeliveryAddress,
		})
		if err != nil {
			return err
		}
		for _, item := range c.Items {
			product, err := repos.Products.FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if _, err := order.AddItem(item.ProductID, product.SellerID, item.Quantity, item.Price); err != nil {
				return err
			}
		}
		order.RecalculateTotal()

		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		return repos.Carts.ClearItems(ctx, c.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.String("total", order.TotalPrice.StringFixed(2)),
		zap.Int("items", len(order.Items)))
	if s.metrics != nil {
		s.metrics.OrderPlaced(ctx, order.TotalPrice, len(order.Items))
	}

	placed, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return s.presenter.Order(ctx, placed)
}
