package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName scopes the marketplace instruments
const MeterName = "github.com/marketplace/backend"

var (
	attrFromStatus = attribute.Key("order.status.from")
	attrToStatus   = attribute.Key("order.status.to")
	attrActor      = attribute.Key("actor.role")
	attrCartOwner  = attribute.Key("cart.owner")
)

// MarketplaceMetrics records checkout, order lifecycle and cart activity
type MarketplaceMetrics struct {
	ordersPlaced  metric.Int64Counter
	orderItems    metric.Int64Counter
	revenue       metric.Float64Counter
	orderValue    metric.Float64Histogram
	statusChanges metric.Int64Counter
	cartAdds      metric.Int64Counter
}

// NewMarketplaceMetrics creates the instruments on meter
func NewMarketplaceMetrics(meter metric.Meter) (*MarketplaceMetrics, error) {
	m := &MarketplaceMetrics{}
	var err error

	if m.ordersPlaced, err = meter.Int64Counter("marketplace.orders.placed",
		metric.WithDescription("Orders created by checkout"), metric.WithUnit("{order}")); err != nil {
		return nil, err
	}
	if m.orderItems, err = meter.Int64Counter("marketplace.orders.items",
		metric.WithDescription("Order lines created by checkout"), metric.WithUnit("{item}")); err != nil {
		return nil, err
	}
	if m.revenue, err = meter.Float64Counter("marketplace.orders.revenue",
		metric.WithDescription("Sum of order totals at checkout")); err != nil {
		return nil, err
	}
	if m.orderValue, err = meter.Float64Histogram("marketplace.orders.value",
		metric.WithDescription("Distribution of order totals"),
		metric.WithExplicitBucketBoundaries(100, 500, 1000, 5000, 20000, 100000)); err != nil {
		return nil, err
	}
	if m.statusChanges, err = meter.Int64Counter("marketplace.orders.status_changes",
		metric.WithDescription("Order status transitions"), metric.WithUnit("{change}")); err != nil {
		return nil, err
	}
	if m.cartAdds, err = meter.Int64Counter("marketplace.cart.items_added",
		metric.WithDescription("Units added to carts"), metric.WithUnit("{unit}")); err != nil {
		return nil, err
	}
	return m, nil
}

// OrderPlaced records a completed checkout
func (m *MarketplaceMetrics) OrderPlaced(ctx context.Context, total decimal.Decimal, items int) {
	value := total.InexactFloat64()
	m.ordersPlaced.Add(ctx, 1)
	m.orderItems.Add(ctx, int64(items))
	m.revenue.Add(ctx, value)
	m.orderValue.Record(ctx, value)
}

// OrderStatusChanged records a status transition made by actor
func (m *MarketplaceMetrics) OrderStatusChanged(ctx context.Context, from, to, actor string) {
	m.statusChanges.Add(ctx, 1, metric.WithAttributes(
		attrFromStatus.String(from),
		attrToStatus.String(to),
		attrActor.String(actor),
	))
}

// CartItemAdded records quantity units added to a user or session cart
func (m *MarketplaceMetrics) CartItemAdded(ctx context.Context, quantity int, anonymous bool) {
	owner := "user"
	if anonymous {
		owner = "session"
	}
	m.cartAdds.Add(ctx, int64(quantity), metric.WithAttributes(attrCartOwner.String(owner)))
}
