// Package analytics holds the seller analytics read model. Figures are
// aggregated on demand; nothing here is persisted.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// DailyWindow is the number of calendar days in the daily series, today included
const DailyWindow = 30

// ProductRevenue is a product's sales figure
type ProductRevenue struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int64
	Revenue   decimal.Decimal
}

// ProductRating is a product's review summary
type ProductRating struct {
	ProductID    uuid.UUID
	Name         string
	AvgRating    float64
	ReviewsCount int64
}

// DailyPoint is one day of the daily series
type DailyPoint struct {
	Date    time.Time
	Revenue decimal.Decimal
	Orders  int64
}

// ProductCounts summarizes the seller's catalog
type ProductCounts struct {
	Total     int64
	Published int64
}

// OrderCounts summarizes orders containing the seller's items
type OrderCounts struct {
	Orders       int64
	Pending      int64
	UnitsSold    int64
	UniqueBuyers int64
}

// PriceStats describes the seller's product prices
type PriceStats struct {
	Avg decimal.Decimal
	Min decimal.Decimal
	Max decimal.Decimal
}

// ReviewStats summarizes reviews of the seller's products
type ReviewStats struct {
	Count     int64
	AvgRating float64
}

// Repository runs the aggregate queries behind the seller report
type Repository interface {
	ProductCounts(ctx context.Context, sellerID uuid.UUID) (ProductCounts, error)
	OrderCounts(ctx context.Context, sellerID uuid.UUID) (OrderCounts, error)

	// RevenueByStatus sums price × quantity of the seller's items per order status
	RevenueByStatus(ctx context.Context, sellerID uuid.UUID) (map[trade.OrderStatus]decimal.Decimal, error)
	TopProducts(ctx context.Context, sellerID uuid.UUID, limit int) ([]ProductRevenue, error)

	// DailySales returns revenue and distinct orders per day for days in
	// [from, to); days without sales are absent.
	DailySales(ctx context.Context, sellerID uuid.UUID, from, to time.Time) ([]DailyPoint, error)
	ReviewStats(ctx context.Context, sellerID uuid.UUID) (ReviewStats, error)

	// ProductRatings returns reviewed products ordered by average rating,
	// best first when ascending is false.
	ProductRatings(ctx context.Context, sellerID uuid.UUID, limit int, ascending bool) ([]ProductRating, error)
	PriceStats(ctx context.Context, sellerID uuid.UUID) (PriceStats, error)

	// Prices returns every product price of the seller
	Prices(ctx context.Context, sellerID uuid.UUID) ([]decimal.Decimal, error)
}
