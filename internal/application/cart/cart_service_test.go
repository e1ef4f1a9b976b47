package cart

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordedAdd struct {
	quantity  int
	anonymous bool
}

type fakeMetrics struct {
	adds []recordedAdd
}

func (f *fakeMetrics) CartItemAdded(_ context.Context, quantity int, anonymous bool) {
	f.adds = append(f.adds, recordedAdd{quantity: quantity, anonymous: anonymous})
}

type cartFixture struct {
	db       *gorm.DB
	svc      *Service
	metrics  *fakeMetrics
	seller   *identity.User
	category *catalog.Category
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	database, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	db := database.DB
	ctx := context.Background()

	seller, err := identity.NewUser("seller", "seller@example.com", "password123", identity.RoleSeller)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormUserRepository(db).Create(ctx, seller))

	category, err := catalog.NewCategory("Lighting", "", nil)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCategoryRepository(db).Save(ctx, category))

	products := persistence.NewGormProductRepository(db)
	presenter := appcatalog.NewProductPresenter(products, persistence.NewGormImageRepository(db), appcatalog.NewMediaURLs("/media/"))
	metrics := &fakeMetrics{}

	return &cartFixture{
		db:       db,
		svc:      NewService(persistence.NewGormCartRepository(db), products, presenter, metrics, zap.NewNop()),
		metrics:  metrics,
		seller:   seller,
		category: category,
	}
}

func (f *cartFixture) product(t *testing.T, name, price string, published bool) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(f.seller.ID, f.category.ID, name, "", decimal.RequireFromString(price))
	require.NoError(t, err)
	p.SetPublished(published)
	require.NoError(t, persistence.NewGormProductRepository(f.db).Save(context.Background(), p))
	return p
}

func TestService_Resolve_IsIdempotent(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	owner := cart.ForSession(NewSessionKey())

	first, err := f.svc.Resolve(ctx, owner)
	require.NoError(t, err)
	second, err := f.svc.Resolve(ctx, owner)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.IsEmpty())

	other, err := f.svc.Resolve(ctx, cart.ForSession(NewSessionKey()))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestService_Resolve_RequiresIdentity(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.svc.Resolve(context.Background(), cart.Identity{})

	assert.ErrorIs(t, err, cart.ErrNoIdentity)
}

func TestNewSessionKey(t *testing.T) {
	key := NewSessionKey()
	assert.Len(t, key, 32)
	assert.LessOrEqual(t, len(key), cart.MaxSessionKeyLength)
	assert.NotEqual(t, key, NewSessionKey())
}

func TestService_Add_MergesAndRefreshesPrice(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	owner := cart.ForSession(NewSessionKey())
	lamp := f.product(t, "Lamp", "10", true)

	resp, err := f.svc.Add(ctx, owner, AddItemRequest{ProductID: lamp.ID})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Quantity)

	require.NoError(t, lamp.SetPrice(decimal.RequireFromString("12.5")))
	require.NoError(t, persistence.NewGormProductRepository(f.db).Save(ctx, lamp))

	qty := 2
	resp, err = f.svc.Add(ctx, owner, AddItemRequest{ProductID: lamp.ID, Quantity: &qty})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "12.50", item.Price)
	assert.Equal(t, "37.50", item.Subtotal)
	assert.Equal(t, "37.50", resp.TotalPrice)
	assert.Equal(t, "Lamp", item.Product.Name)

	assert.Equal(t, []recordedAdd{{quantity: 1, anonymous: true}, {quantity: 2, anonymous: true}}, f.metrics.adds)
}

func TestService_Add_TotalIsSumOfSubtotals(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	owner := cart.ForSession(NewSessionKey())
	a := f.product(t, "A", "1.25", true)
	b := f.product(t, "B", "3.10", true)

	two := 2
	_, err := f.svc.Add(ctx, owner, AddItemRequest{ProductID: a.ID, Quantity: &two})
	require.NoError(t, err)
	resp, err := f.svc.Add(ctx, owner, AddItemRequest{ProductID: b.ID})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "5.60", resp.TotalPrice)
}

func TestService_Add_RejectsUnavailableProducts(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	owner := cart.ForSession(NewSessionKey())
	draft := f.product(t, "Draft", "10", false)

	for _, id := range []uuid.UUID{draft.ID, uuid.New()} {
		_, err := f.svc.Add(ctx, owner, AddItemRequest{ProductID: id})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
	}
	assert.Empty(t, f.metrics.adds)
}

func TestService_Add_InvalidQuantity(t *testing.T) {
	f := newCartFixture(t)
	lamp := f.product(t, "Lamp", "10", true)
	zero := 0

	_, err := f.svc.Add(context.Background(), cart.ForSession(NewSessionKey()), AddItemRequest{ProductID: lamp.ID, Quantity: &zero})

	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
}

func TestService_Add_QuantityCap(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	owner := cart.ForSession(NewSessionKey())
	lamp := f.product(t, "Lamp", "10", true)

	huge := math.MaxInt
	_, err := f.svc.Add(ctx, owner, AddItemRequest{ProductID: lamp.ID, Quantity: &huge})
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	capped := cart.MaxQuantity
	resp, err := f.svc.Add(ctx, owner, AddItemRequest{ProductID: lamp.ID, Quantity: &capped})
	require.NoError(t, err)
	itemID := resp.Items[0].ID

	one := 1
	_, err = f.svc.Add(ctx, owner, AddItemRequest{ProductID: lamp.ID, Quantity: &one})
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	_, err = f.svc.UpdateQuantity(ctx, owner, itemID, cart.MaxQuantity+1)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	reloaded, err := f.svc.Get(ctx, owner)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, cart.MaxQuantity, reloaded.Items[0].Quantity)
	assert.Equal(t, "100000.00", reloaded.TotalPrice)
}

func TestService_UpdateQuantity(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	owner := cart.ForSession(NewSessionKey())
	lamp := f.product(t, "Lamp", "10", true)

	resp, err := f.svc.Add(ctx, owner, AddItemRequest{ProductID: lamp.ID})
	require.NoError(t, err)
	itemID := resp.Items[0].ID

	resp, err = f.svc.UpdateQuantity(ctx, owner, itemID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, "50.00", resp.TotalPrice)

	resp, err = f.svc.UpdateQuantity(ctx, owner, itemID, 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, "0.00", resp.TotalPrice)

	reloaded, err := f.svc.Get(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)
}

func TestService_Remove_OnlyOwnItems(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	mine := cart.ForSession(NewSessionKey())
	theirs := cart.ForSession(NewSessionKey())
	lamp := f.product(t, "Lamp", "10", true)

	resp, err := f.svc.Add(ctx, theirs, AddItemRequest{ProductID: lamp.ID})
	require.NoError(t, err)
	foreignItem := resp.Items[0].ID

	_, err = f.svc.Remove(ctx, mine, foreignItem)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	resp, err = f.svc.Remove(ctx, theirs, foreignItem)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}
