package trade

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type statusChange struct {
	from, to, actor string
}

type fakeMetrics struct {
	placed  []decimal.Decimal
	changes []statusChange
}

func (f *fakeMetrics) OrderPlaced(_ context.Context, total decimal.Decimal, _ int) {
	f.placed = append(f.placed, total)
}

func (f *fakeMetrics) OrderStatusChanged(_ context.Context, from, to, actor string) {
	f.changes = append(f.changes, statusChange{from: from, to: to, actor: actor})
}

type tradeFixture struct {
	db        *gorm.DB
	buyer     *identity.User
	seller    *identity.User
	other     *identity.User
	category  *catalog.Category
	metrics   *fakeMetrics
	carts     *persistence.GormCartRepository
	orders    *persistence.GormOrderRepository
	presenter *OrderPresenter
	checkout  *CheckoutService
}

func newTradeFixture(t *testing.T) *tradeFixture {
	t.Helper()
	database, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	db := database.DB
	ctx := context.Background()
	users := persistence.NewGormUserRepository(db)

	newUser := func(name string, role identity.Role) *identity.User {
		u, err := identity.NewUser(name, name+"@example.com", "password123", role)
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, u))
		return u
	}

	category, err := catalog.NewCategory("Lighting", "", nil)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCategoryRepository(db).Save(ctx, category))

	products := persistence.NewGormProductRepository(db)
	productPresenter := appcatalog.NewProductPresenter(products, persistence.NewGormImageRepository(db), appcatalog.NewMediaURLs("/media/"))

	f := &tradeFixture{
		db:        db,
		buyer:     newUser("buyer", identity.RoleCustomer),
		seller:    newUser("seller", identity.RoleSeller),
		other:     newUser("other", identity.RoleSeller),
		category:  category,
		metrics:   &fakeMetrics{},
		carts:     persistence.NewGormCartRepository(db),
		orders:    persistence.NewGormOrderRepository(db),
		presenter: NewOrderPresenter(productPresenter),
	}
	f.checkout = NewCheckoutService(persistence.NewGormTransactionScope(db), f.orders, f.presenter, f.metrics, zap.NewNop())
	return f
}

func (f *tradeFixture) orderService(policy trade.TransitionPolicy) *OrderService {
	return NewOrderService(f.orders, policy, f.presenter, f.metrics, zap.NewNop())
}

func (f *tradeFixture) product(t *testing.T, seller *identity.User, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(seller.ID, f.category.ID, name, "", decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductRepository(f.db).Save(context.Background(), p))
	return p
}

func (f *tradeFixture) image(t *testing.T, product *catalog.Product, path string) {
	t.Helper()
	img, err := catalog.NewImage(product.ID, path)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormImageRepository(f.db).Save(context.Background(), img))
}

// fillCart puts quantity units of each product into the user's cart
func (f *tradeFixture) fillCart(t *testing.T, user *identity.User, lines map[*catalog.Product]int) *cart.Cart {
	t.Helper()
	ctx := context.Background()
	owner := cart.ForUser(user.ID)
	c, err := f.carts.FindByOwner(ctx, owner)
	if err != nil {
		c, err = cart.New(owner)
		require.NoError(t, err)
		require.NoError(t, f.carts.Create(ctx, c))
	}
	for p, qty := range lines {
		item, err := c.Add(p.ID, qty, p.Price)
		require.NoError(t, err)
		require.NoError(t, f.carts.SaveItem(ctx, item))
	}
	return c
}

func (f *tradeFixture) placeOrder(t *testing.T, user *identity.User, lines map[*catalog.Product]int) *OrderResponse {
	t.Helper()
	f.fillCart(t, user, lines)
	resp, err := f.checkout.Checkout(context.Background(), user.ID, validCheckout())
	require.NoError(t, err)
	return resp
}

func (f *tradeFixture) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.OrderModel{}).Count(&n).Error)
	return n
}

func validCheckout() CheckoutRequest {
	return CheckoutRequest{
		ContactName:     " Anna ",
		ContactPhone:    "8 (999) 123-45-67",
		DeliveryMethod:  "courier",
		DeliveryAddress: "Main st 1",
	}
}
