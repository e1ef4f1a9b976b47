package trade

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/marketplace/backend/internal/infrastructure/export"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// exportPageSize is the batch size used to walk a seller's orders
const exportPageSize = 200

// OrderService lists orders and changes their status for buyers, sellers
// and administrators
type OrderService struct {
	orderRepo trade.OrderRepository
	policy    trade.TransitionPolicy
	presenter *OrderPresenter
	metrics   Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService. metrics may be nil.
func NewOrderService(
	orderRepo trade.OrderRepository,
	policy trade.TransitionPolicy,
	presenter *OrderPresenter,
	metrics Metrics,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		policy:    policy,
		presenter: presenter,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Policy returns the status transition policy in force
func (s *OrderService) Policy() trade.TransitionPolicy {
	return s.policy
}

// List returns the orders visible to the actor in scope, newest first
func (s *OrderService) List(ctx context.Context, actor Actor, scope Scope, filter OrderListFilter) (*appcatalog.ListResult[OrderResponse], error) {
	domainFilter := trade.OrderFilter{Filter: appcatalog.PageFilter(filter.Page, filter.PageSize)}
	if strings.TrimSpace(filter.Status) != "" {
		status, err := trade.ParseStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		domainFilter.Status = &status
	}
	switch scope {
	case ScopeBuyer:
		domainFilter.BuyerID = &actor.UserID
	case ScopeSeller:
		domainFilter.SellerID = &actor.UserID
	}

	orders, total, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	items, err := s.presenter.Orders(ctx, orders)
	if err != nil {
		return nil, err
	}
	return appcatalog.NewListResult(items, total, domainFilter.Filter), nil
}

// Get returns one order visible to the actor in scope
func (s *OrderService) Get(ctx context.Context, actor Actor, scope Scope, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.load(ctx, actor, scope, id)
	if err != nil {
		return nil, err
	}
	return s.presenter.Order(ctx, order)
}

// UpdateStatus moves an order to a new status under the configured
// transition policy. Setting the current status again succeeds unchanged.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, scope Scope, id uuid.UUID, req UpdateStatusRequest) (_ *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "OrderService", "UpdateStatus",
		attribute.String("order.id", id.String()),
		attribute.String("order.status.to", req.Status))
	defer func() { telemetry.EndSpan(span, err) }()

	status, err := trade.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	order, err := s.load(ctx, actor, scope, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	changed, err := order.ChangeStatus(s.policy, status)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return nil, err
		}
		s.logger.Info("Order status changed",
			zap.String("order_id", order.ID.String()),
			zap.String("from", from.String()),
			zap.String("to", status.String()),
			zap.String("actor_id", actor.UserID.String()),
			zap.String("actor_role", actor.Role.String()))
		if s.metrics != nil {
			s.metrics.OrderStatusChanged(ctx, from.String(), status.String(), actor.Role.String())
		}
	}
	return s.presenter.Order(ctx, order)
}

// ExportForSeller renders the seller's order lines as an xlsx workbook.
// Only lines of the seller's own products are included.
func (s *OrderService) ExportForSeller(ctx context.Context, sellerID uuid.UUID, filter OrderListFilter) (*Export, error) {
	domainFilter := trade.OrderFilter{SellerID: &sellerID, Filter: shared.DefaultFilter()}
	domainFilter.PageSize = exportPageSize
	if strings.TrimSpace(filter.Status) != "" {
		status, err := trade.ParseStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		domainFilter.Status = &status
	}

	var rows []export.OrderRow
	for {
		orders, total, err := s.orderRepo.FindAll(ctx, domainFilter)
		if err != nil {
			return nil, err
		}
		for i := range orders {
			rows = append(rows, exportRows(&orders[i], sellerID)...)
		}
		if len(orders) == 0 || int64(domainFilter.Page*domainFilter.PageSize) >= total {
			break
		}
		domainFilter.Page++
	}

	data, err := export.OrdersWorkbook(rows)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Seller orders exported",
		zap.String("seller_id", sellerID.String()),
		zap.Int("rows", len(rows)))
	return &Export{
		Filename:    export.Filename("orders", s.now()),
		ContentType: export.ContentTypeXLSX,
		Data:        data,
	}, nil
}

// load fetches an order and checks the actor may see it in scope. Buyers
// get not found for foreign orders; sellers without items in the order are
// forbidden.
func (s *OrderService) load(ctx context.Context, actor Actor, scope Scope, id uuid.UUID) (*trade.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch scope {
	case ScopeBuyer:
		if !order.IsBoughtBy(actor.UserID) {
			return nil, shared.ErrNotFound
		}
	case ScopeSeller:
		if !order.HasSeller(actor.UserID) {
			return nil, shared.NewDomainError("FORBIDDEN", "Order has none of your products")
		}
	}
	return order, nil
}

func exportRows(order *trade.Order, sellerID uuid.UUID) []export.OrderRow {
	items := order.ItemsOfSeller(sellerID)
	rows := make([]export.OrderRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, export.OrderRow{
			OrderID:         order.ID.String(),
			CreatedAt:       order.CreatedAt,
			Status:          order.Status.String(),
			ContactName:     order.ContactName,
			ContactPhone:    order.ContactPhone.String(),
			DeliveryMethod:  order.Method,
			DeliveryAddress: order.Address,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			Price:           appcatalog.FormatPrice(item.Price),
			Subtotal:        appcatalog.FormatPrice(item.Subtotal()),
		})
	}
	return rows
}
