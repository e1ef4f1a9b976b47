package telemetry

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func newTestMetrics(t *testing.T) (*MarketplaceMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMarketplaceMetrics(provider.Meter(MeterName))
	require.NoError(t, err)
	return m, reader
}

func TestMarketplaceMetrics_OrderPlaced(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.OrderPlaced(ctx, decimal.RequireFromString("26.50"), 2)
	m.OrderPlaced(ctx, decimal.RequireFromString("1000"), 1)

	got := collect(t, reader)

	placed := got["marketplace.orders.placed"].Data.(metricdata.Sum[int64])
	require.Len(t, placed.DataPoints, 1)
	assert.Equal(t, int64(2), placed.DataPoints[0].Value)

	items := got["marketplace.orders.items"].Data.(metricdata.Sum[int64])
	assert.Equal(t, int64(3), items.DataPoints[0].Value)

	revenue := got["marketplace.orders.revenue"].Data.(metricdata.Sum[float64])
	assert.InDelta(t, 1026.5, revenue.DataPoints[0].Value, 1e-9)

	value := got["marketplace.orders.value"].Data.(metricdata.Histogram[float64])
	assert.Equal(t, uint64(2), value.DataPoints[0].Count)
}

func TestMarketplaceMetrics_StatusAndCart(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.OrderStatusChanged(ctx, "pending", "paid", "seller")
	m.OrderStatusChanged(ctx, "pending", "paid", "seller")
	m.OrderStatusChanged(ctx, "paid", "shipped", "admin")
	m.CartItemAdded(ctx, 3, true)
	m.CartItemAdded(ctx, 1, false)

	got := collect(t, reader)

	changes := got["marketplace.orders.status_changes"].Data.(metricdata.Sum[int64])
	require.Len(t, changes.DataPoints, 2)
	for _, dp := range changes.DataPoints {
		to, _ := dp.Attributes.Value(attribute.Key("order.status.to"))
		switch to.AsString() {
		case "paid":
			assert.Equal(t, int64(2), dp.Value)
		case "shipped":
			assert.Equal(t, int64(1), dp.Value)
			actor, _ := dp.Attributes.Value(attribute.Key("actor.role"))
			assert.Equal(t, "admin", actor.AsString())
		default:
			t.Fatalf("unexpected status %q", to.AsString())
		}
	}

	adds := got["marketplace.cart.items_added"].Data.(metricdata.Sum[int64])
	byOwner := map[string]int64{}
	for _, dp := range adds.DataPoints {
		owner, _ := dp.Attributes.Value(attribute.Key("cart.owner"))
		byOwner[owner.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"session": 3, "user": 1}, byOwner)
}
