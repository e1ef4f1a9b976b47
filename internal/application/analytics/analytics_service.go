package analytics

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/analytics"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	topProductsLimit   = 10
	ratedProductsLimit = 5
)

// Service builds the seller dashboard report
type Service struct {
	repo   analytics.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new analytics Service
func NewService(repo analytics.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// SellerReport aggregates the seller's catalog, sales and reviews. Nothing is
// cached; every call queries the store.
func (s *Service) SellerReport(ctx context.Context, sellerID uuid.UUID) (*SellerReport, error) {
	report := &SellerReport{}

	if err := s.fillCatalog(ctx, sellerID, report); err != nil {
		return nil, err
	}
	if err := s.fillSales(ctx, sellerID, report); err != nil {
		return nil, err
	}
	if err := s.fillDaily(ctx, sellerID, report); err != nil {
		return nil, err
	}
	if err := s.fillReviews(ctx, sellerID, report); err != nil {
		return nil, err
	}

	s.logger.Debug("Seller report built",
		zap.String("seller_id", sellerID.String()),
		zap.Int64("orders", report.OrdersCount))
	return report, nil
}

func (s *Service) fillCatalog(ctx context.Context, sellerID uuid.UUID, report *SellerReport) error {
	counts, err := s.repo.ProductCounts(ctx, sellerID)
	if err != nil {
		return err
	}
	report.ProductsCount = counts.Total
	report.PublishedCount = counts.Published
	report.DraftCount = counts.Total - counts.Published
	report.PublishedByStatus = []StatusCountResponse{
		{Status: "published", Count: report.PublishedCount},
		{Status: "draft", Count: report.DraftCount},
	}

	prices, err := s.repo.PriceStats(ctx, sellerID)
	if err != nil {
		return err
	}
	report.AvgProductPrice = money(prices.Avg)
	report.MinProductPrice = money(prices.Min)
	report.MaxProductPrice = money(prices.Max)

	all, err := s.repo.Prices(ctx, sellerID)
	if err != nil {
		return err
	}
	report.PriceRanges = analytics.BucketPrices(all)
	return nil
}

func (s *Service) fillSales(ctx context.Context, sellerID uuid.UUID, report *SellerReport) error {
	orders, err := s.repo.OrderCounts(ctx, sellerID)
	if err != nil {
		return err
	}
	report.OrdersCount = orders.Orders
	report.PendingOrders = orders.Pending
	report.TotalUnitsSold = orders.UnitsSold
	report.UniqueBuyers = orders.UniqueBuyers
	if orders.Orders > 0 {
		report.AvgOrderSize = round2(float64(orders.UnitsSold) / float64(orders.Orders))
	}

	byStatus, err := s.repo.RevenueByStatus(ctx, sellerID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	report.RevenueByStatus = make(map[string]float64, len(trade.AllStatuses))
	for _, status := range trade.AllStatuses {
		revenue, ok := byStatus[status]
		if !ok {
			revenue = decimal.Zero
		}
		report.RevenueByStatus[status.String()] = money(revenue)
		total = total.Add(revenue)
	}
	report.TotalRevenue = money(total)

	top, err := s.repo.TopProducts(ctx, sellerID, topProductsLimit)
	if err != nil {
		return err
	}
	report.TopProducts = lo.Map(top, func(p analytics.ProductRevenue, _ int) TopProductResponse {
		return TopProductResponse{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Revenue:   money(p.Revenue),
		}
	})
	return nil
}

func (s *Service) fillDaily(ctx context.Context, sellerID uuid.UUID, report *SellerReport) error {
	days := analytics.DaySeries(s.now())
	points, err := s.repo.DailySales(ctx, sellerID, days[0], days[len(days)-1].AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	report.Daily = lo.Map(analytics.FillDaily(days, points), func(p analytics.DailyPoint, _ int) DailyResponse {
		return DailyResponse{
			Date:    p.Date.Format(time.DateOnly),
			Revenue: money(p.Revenue),
			Orders:  p.Orders,
		}
	})
	return nil
}

func (s *Service) fillReviews(ctx context.Context, sellerID uuid.UUID, report *SellerReport) error {
	stats, err := s.repo.ReviewStats(ctx, sellerID)
	if err != nil {
		return err
	}
	report.ReviewsCount = stats.Count
	report.AvgRating = round2(stats.AvgRating)

	best, err := s.repo.ProductRatings(ctx, sellerID, ratedProductsLimit, false)
	if err != nil {
		return err
	}
	worst, err := s.repo.ProductRatings(ctx, sellerID, ratedProductsLimit, true)
	if err != nil {
		return err
	}
	report.BestProducts = lo.Map(best, toRated)
	report.WorstProducts = lo.Map(worst, toRated)
	return nil
}

func toRated(p analytics.ProductRating, _ int) RatedProductResponse {
	return RatedProductResponse{
		ProductID:    p.ProductID,
		Name:         p.Name,
		AvgRating:    round2(p.AvgRating),
		ReviewsCount: p.ReviewsCount,
	}
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
