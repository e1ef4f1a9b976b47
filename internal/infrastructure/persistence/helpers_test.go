package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory sqlite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	database, err := NewDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database.DB
}

// seed holds fixtures shared by repository tests
type seed struct {
	db       *gorm.DB
	buyer    *identity.User
	seller   *identity.User
	category *catalog.Category
}

// testPassword satisfies the password policy
const testPassword = "password123"

func newSeed(t *testing.T) *seed {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()
	users := NewGormUserRepository(db)

	buyer, err := identity.NewUser("buyer", "buyer@example.com", testPassword, identity.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, buyer))

	seller, err := identity.NewUser("seller", "seller@example.com", testPassword, identity.RoleSeller)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, seller))

	category, err := catalog.NewCategory("Electronics", "", nil)
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(ctx, category))

	return &seed{db: db, buyer: buyer, seller: seller, category: category}
}

func (s *seed) product(t *testing.T, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(s.seller.ID, s.category.ID, name, "", decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(s.db).Save(context.Background(), p))
	return p
}

func (s *seed) order(t *testing.T, status trade.OrderStatus, lines ...orderLine) *trade.Order {
	t.Helper()
	return s.placeOrder(t, s.buyer.ID, status, time.Time{}, lines...)
}

// placeOrder stores an order; a non-zero createdAt overrides the creation time
func (s *seed) placeOrder(t *testing.T, buyerID uuid.UUID, status trade.OrderStatus, createdAt time.Time, lines ...orderLine) *trade.Order {
	t.Helper()
	phone, err := valueobject.ParsePhone("9991234567")
	require.NoError(t, err)
	o, err := trade.NewOrder(buyerID, trade.Delivery{
		ContactName: "Buyer", ContactPhone: phone, Method: "courier", Address: "Main st 1",
	})
	require.NoError(t, err)
	o.Status = status
	if !createdAt.IsZero() {
		o.CreatedAt = createdAt
		o.UpdatedAt = createdAt
	}
	for _, l := range lines {
		_, err := o.AddItem(l.product.ID, l.product.SellerID, l.quantity, l.product.Price)
		require.NoError(t, err)
	}
	o.RecalculateTotal()
	require.NoError(t, NewGormOrderRepository(s.db).Create(context.Background(), o))
	return o
}

type orderLine struct {
	product  *catalog.Product
	quantity int
}
