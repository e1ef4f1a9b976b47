package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/analytics"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAnalyticsRepository implements analytics.Repository with SQL aggregates
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GormAnalyticsRepository
func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// ProductCounts counts the seller's products
func (r *GormAnalyticsRepository) ProductCounts(ctx context.Context, sellerID uuid.UUID) (analytics.ProductCounts, error) {
	var result struct {
		Total     int64
		Published int64
	}
	err := r.db.WithContext(ctx).Table("products").
		Select(`
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_published THEN 1 ELSE 0 END), 0) AS published
		`).
		Where("seller_id = ?", sellerID).
		Scan(&result).Error
	return analytics.ProductCounts{Total: result.Total, Published: result.Published}, err
}

// OrderCounts counts distinct orders, pending orders, units and buyers
func (r *GormAnalyticsRepository) OrderCounts(ctx context.Context, sellerID uuid.UUID) (analytics.OrderCounts, error) {
	var result struct {
		Orders       int64
		Pending      int64
		UnitsSold    int64
		UniqueBuyers int64
	}
	err := r.db.WithContext(ctx).Table("order_items oi").
		Select(`
			COUNT(DISTINCT oi.order_id) AS orders,
			COUNT(DISTINCT CASE WHEN o.status = ? THEN oi.order_id END) AS pending,
			COALESCE(SUM(oi.quantity), 0) AS units_sold,
			COUNT(DISTINCT o.buyer_id) AS unique_buyers
		`, trade.OrderStatusPending).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("oi.seller_id = ?", sellerID).
		Scan(&result).Error
	return analytics.OrderCounts{
		Orders:       result.Orders,
		Pending:      result.Pending,
		UnitsSold:    result.UnitsSold,
		UniqueBuyers: result.UniqueBuyers,
	}, err
}

// RevenueByStatus sums item revenue per order status
func (r *GormAnalyticsRepository) RevenueByStatus(ctx context.Context, sellerID uuid.UUID) (map[trade.OrderStatus]decimal.Decimal, error) {
	var rows []struct {
		Status  string
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).Table("order_items oi").
		Select("o.status AS status, COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("oi.seller_id = ?", sellerID).
		Group("o.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[trade.OrderStatus]decimal.Decimal, len(rows))
	for _, row := range rows {
		result[trade.OrderStatus(row.Status)] = row.Revenue
	}
	return result, nil
}

// TopProducts returns the seller's best products by revenue
func (r *GormAnalyticsRepository) TopProducts(ctx context.Context, sellerID uuid.UUID, limit int) ([]analytics.ProductRevenue, error) {
	var rows []struct {
		ProductID uuid.UUID
		Name      string
		Quantity  int64
		Revenue   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Table("order_items oi").
		Select(`
			oi.product_id AS product_id,
			p.name AS name,
			COALESCE(SUM(oi.quantity), 0) AS quantity,
			COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue
		`).
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("oi.seller_id = ?", sellerID).
		Group("oi.product_id, p.name").
		Order("revenue DESC, quantity DESC, oi.product_id").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]analytics.ProductRevenue, len(rows))
	for i, row := range rows {
		result[i] = analytics.ProductRevenue{
			ProductID: row.ProductID,
			Name:      row.Name,
			Quantity:  row.Quantity,
			Revenue:   row.Revenue,
		}
	}
	return result, nil
}

// DailySales aggregates the seller's revenue and orders per calendar day of
// from's location, for orders created in [from, to).
func (r *GormAnalyticsRepository) DailySales(ctx context.Context, sellerID uuid.UUID, from, to time.Time) ([]analytics.DailyPoint, error) {
	sellerOrders := r.db.Model(&models.OrderItemModel{}).Select("order_id").Where("seller_id = ?", sellerID)

	var orders []models.OrderModel
	if err := r.db.WithContext(ctx).
		Select("id", "created_at").
		Where("id IN (?)", sellerOrders).
		Where("created_at >= ? AND created_at < ?", from, to).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []analytics.DailyPoint{}, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	var revenues []struct {
		OrderID uuid.UUID
		Revenue decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("order_items").
		Select("order_id, COALESCE(SUM(price * quantity), 0) AS revenue").
		Where("seller_id = ? AND order_id IN ?", sellerID, ids).
		Group("order_id").
		Scan(&revenues).Error; err != nil {
		return nil, err
	}
	revenueByOrder := make(map[uuid.UUID]decimal.Decimal, len(revenues))
	for _, rv := range revenues {
		revenueByOrder[rv.OrderID] = rv.Revenue
	}

	loc := from.Location()
	byDay := make(map[time.Time]*analytics.DailyPoint)
	var days []time.Time
	for i := range orders {
		t := orders[i].CreatedAt.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		point, ok := byDay[day]
		if !ok {
			point = &analytics.DailyPoint{Date: day, Revenue: decimal.Zero}
			byDay[day] = point
			days = append(days, day)
		}
		point.Orders++
		point.Revenue = point.Revenue.Add(revenueByOrder[orders[i].ID])
	}

	result := make([]analytics.DailyPoint, 0, len(days))
	for _, d := range days {
		result = append(result, *byDay[d])
	}
	return result, nil
}

// ReviewStats counts reviews of the seller's products and averages ratings
func (r *GormAnalyticsRepository) ReviewStats(ctx context.Context, sellerID uuid.UUID) (analytics.ReviewStats, error) {
	var result struct {
		Count     int64
		AvgRating float64
	}
	err := r.db.WithContext(ctx).Table("reviews r").
		Select("COUNT(r.id) AS count, COALESCE(AVG(r.rating), 0) AS avg_rating").
		Joins("JOIN products p ON p.id = r.product_id").
		Where("p.seller_id = ?", sellerID).
		Scan(&result).Error
	return analytics.ReviewStats{Count: result.Count, AvgRating: result.AvgRating}, err
}

// ProductRatings ranks reviewed products by average rating
func (r *GormAnalyticsRepository) ProductRatings(ctx context.Context, sellerID uuid.UUID, limit int, ascending bool) ([]analytics.ProductRating, error) {
	order := "avg_rating DESC, reviews_count DESC, p.id"
	if ascending {
		order = "avg_rating ASC, reviews_count DESC, p.id"
	}
	var rows []struct {
		ProductID    uuid.UUID
		Name         string
		AvgRating    float64
		ReviewsCount int64
	}
	err := r.db.WithContext(ctx).Table("reviews r").
		Select("p.id AS product_id, p.name AS name, AVG(r.rating) AS avg_rating, COUNT(r.id) AS reviews_count").
		Joins("JOIN products p ON p.id = r.product_id").
		Where("p.seller_id = ?", sellerID).
		Group("p.id, p.name").
		Order(order).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]analytics.ProductRating, len(rows))
	for i, row := range rows {
		result[i] = analytics.ProductRating{
			ProductID:    row.ProductID,
			Name:         row.Name,
			AvgRating:    row.AvgRating,
			ReviewsCount: row.ReviewsCount,
		}
	}
	return result, nil
}

// PriceStats returns average, minimum and maximum product price
func (r *GormAnalyticsRepository) PriceStats(ctx context.Context, sellerID uuid.UUID) (analytics.PriceStats, error) {
	var result struct {
		AvgPrice decimal.Decimal
		MinPrice decimal.Decimal
		MaxPrice decimal.Decimal
	}
	err := r.db.WithContext(ctx).Table("products").
		Select(`
			COALESCE(AVG(price), 0) AS avg_price,
			COALESCE(MIN(price), 0) AS min_price,
			COALESCE(MAX(price), 0) AS max_price
		`).
		Where("seller_id = ?", sellerID).
		Scan(&result).Error
	return analytics.PriceStats{Avg: result.AvgPrice, Min: result.MinPrice, Max: result.MaxPrice}, err
}

// Prices returns every product price of the seller
func (r *GormAnalyticsRepository) Prices(ctx context.Context, sellerID uuid.UUID) ([]decimal.Decimal, error) {
	var prices []decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("seller_id = ?", sellerID).
		Pluck("price", &prices).Error
	return prices, err
}

var _ analytics.Repository = (*GormAnalyticsRepository)(nil)
