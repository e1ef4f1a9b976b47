package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analyticsFixture struct {
	*seed
	lamp  *catalog.Product
	cable *catalog.Product
	day   time.Time
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	s := newSeed(t)
	ctx := context.Background()

	second, err := identity.NewUser("second", "", testPassword, identity.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(s.db).Create(ctx, second))
	rival, err := identity.NewUser("rival", "", testPassword, identity.RoleSeller)
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(s.db).Create(ctx, rival))

	f := &analyticsFixture{
		seed:  s,
		lamp:  s.product(t, "Lamp", "12.5"),
		cable: s.product(t, "Cable", "0.25"),
		day:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	draft := s.product(t, "Draft", "1500.5")
	draft.Unpublish()
	require.NoError(t, NewGormProductRepository(s.db).Save(ctx, draft))

	foreign, err := catalog.NewProduct(rival.ID, s.category.ID, "Foreign", "", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(s.db).Save(ctx, foreign))

	s.placeOrder(t, s.buyer.ID, trade.OrderStatusPending, f.day.Add(10*time.Hour),
		orderLine{product: f.lamp, quantity: 2},
		orderLine{product: f.cable, quantity: 4},
	)
	s.placeOrder(t, s.buyer.ID, trade.OrderStatusCompleted, f.day.Add(15*time.Hour),
		orderLine{product: f.lamp, quantity: 1},
		orderLine{product: foreign, quantity: 1},
	)
	s.placeOrder(t, second.ID, trade.OrderStatusCanceled, f.day.Add(57*time.Hour),
		orderLine{product: f.cable, quantity: 2},
	)
	s.placeOrder(t, second.ID, trade.OrderStatusPaid, f.day.Add(60*time.Hour),
		orderLine{product: foreign, quantity: 3},
	)

	reviews := NewGormReviewRepository(s.db)
	for _, r := range []struct {
		product *catalog.Product
		user    *identity.User
		rating  int
	}{
		{f.lamp, s.buyer, 5},
		{f.lamp, second, 4},
		{f.cable, s.buyer, 2},
		{foreign, s.buyer, 1},
	} {
		rv, err := review.NewReview(r.product.ID, r.user.ID, r.rating, "")
		require.NoError(t, err)
		require.NoError(t, reviews.Save(ctx, rv))
	}
	return f
}

func TestGormAnalyticsRepository_Counts(t *testing.T) {
	f := newAnalyticsFixture(t)
	repo := NewGormAnalyticsRepository(f.db)
	ctx := context.Background()

	products, err := repo.ProductCounts(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), products.Total)
	assert.Equal(t, int64(2), products.Published)

	orders, err := repo.OrderCounts(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), orders.Orders)
	assert.Equal(t, int64(1), orders.Pending)
	assert.Equal(t, int64(9), orders.UnitsSold)
	assert.Equal(t, int64(2), orders.UniqueBuyers)
}

func TestGormAnalyticsRepository_Revenue(t *testing.T) {
	f := newAnalyticsFixture(t)
	repo := NewGormAnalyticsRepository(f.db)
	ctx := context.Background()

	byStatus, err := repo.RevenueByStatus(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.True(t, byStatus[trade.OrderStatusPending].Equal(decimal.RequireFromString("26")))
	assert.True(t, byStatus[trade.OrderStatusCompleted].Equal(decimal.RequireFromString("12.5")))
	assert.True(t, byStatus[trade.OrderStatusCanceled].Equal(decimal.RequireFromString("0.5")))
	_, ok := byStatus[trade.OrderStatusPaid]
	assert.False(t, ok)

	total := decimal.Zero
	for _, v := range byStatus {
		total = total.Add(v)
	}
	assert.True(t, total.Equal(decimal.RequireFromString("39")))

	top, err := repo.TopProducts(ctx, f.seller.ID, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, f.lamp.ID, top[0].ProductID)
	assert.Equal(t, "Lamp", top[0].Name)
	assert.Equal(t, int64(3), top[0].Quantity)
	assert.True(t, top[0].Revenue.Equal(decimal.RequireFromString("37.5")))
	assert.Equal(t, int64(6), top[1].Quantity)
	assert.True(t, top[1].Revenue.Equal(decimal.RequireFromString("1.5")))

	limited, err := repo.TopProducts(ctx, f.seller.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGormAnalyticsRepository_DailySales(t *testing.T) {
	f := newAnalyticsFixture(t)
	repo := NewGormAnalyticsRepository(f.db)

	points, err := repo.DailySales(context.Background(), f.seller.ID, f.day, f.day.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, points, 2)

	byDay := map[string]int{}
	for i, p := range points {
		byDay[p.Date.Format(time.DateOnly)] = i
	}
	first := points[byDay["2024-03-01"]]
	assert.Equal(t, int64(2), first.Orders)
	assert.True(t, first.Revenue.Equal(decimal.RequireFromString("38.5")))

	third := points[byDay["2024-03-03"]]
	assert.Equal(t, int64(1), third.Orders)
	assert.True(t, third.Revenue.Equal(decimal.RequireFromString("0.5")))

	none, err := repo.DailySales(context.Background(), f.seller.ID, f.day.AddDate(0, 1, 0), f.day.AddDate(0, 2, 0))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormAnalyticsRepository_Reviews(t *testing.T) {
	f := newAnalyticsFixture(t)
	repo := NewGormAnalyticsRepository(f.db)
	ctx := context.Background()

	stats, err := repo.ReviewStats(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	assert.InDelta(t, 11.0/3.0, stats.AvgRating, 0.0001)

	best, err := repo.ProductRatings(ctx, f.seller.ID, 5, false)
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, f.lamp.ID, best[0].ProductID)
	assert.InDelta(t, 4.5, best[0].AvgRating, 0.0001)
	assert.Equal(t, int64(2), best[0].ReviewsCount)

	worst, err := repo.ProductRatings(ctx, f.seller.ID, 5, true)
	require.NoError(t, err)
	require.Len(t, worst, 2)
	assert.Equal(t, f.cable.ID, worst[0].ProductID)
}

func TestGormAnalyticsRepository_Prices(t *testing.T) {
	f := newAnalyticsFixture(t)
	repo := NewGormAnalyticsRepository(f.db)
	ctx := context.Background()

	stats, err := repo.PriceStats(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.True(t, stats.Min.Equal(decimal.RequireFromString("0.25")))
	assert.True(t, stats.Max.Equal(decimal.RequireFromString("1500.5")))
	assert.InDelta(t, 504.4166, stats.Avg.InexactFloat64(), 0.001)

	prices, err := repo.Prices(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.Len(t, prices, 3)
}

func TestGormAnalyticsRepository_EmptySeller(t *testing.T) {
	s := newSeed(t)
	repo := NewGormAnalyticsRepository(s.db)
	ctx := context.Background()

	orders, err := repo.OrderCounts(ctx, s.seller.ID)
	require.NoError(t, err)
	assert.Zero(t, orders.Orders)
	assert.Zero(t, orders.UnitsSold)

	stats, err := repo.PriceStats(ctx, s.seller.ID)
	require.NoError(t, err)
	assert.True(t, stats.Avg.IsZero())

	reviews, err := repo.ReviewStats(ctx, s.seller.ID)
	require.NoError(t, err)
	assert.Zero(t, reviews.Count)
	assert.Zero(t, reviews.AvgRating)
}
