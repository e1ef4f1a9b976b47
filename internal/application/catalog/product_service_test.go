package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productFixture struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	images     *MockImageRepository
	svc        *ProductService
}

func newProductFixture() *productFixture {
	f := &productFixture{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		images:     new(MockImageRepository),
	}
	presenter := NewProductPresenter(f.products, f.images, NewMediaURLs("/media/"))
	f.svc = NewProductService(f.products, f.categories, presenter, zap.NewNop())
	return f
}

func newTestProduct(t *testing.T, sellerID uuid.UUID, price string, published bool) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sellerID, uuid.New(), "Desk lamp", "Warm light", decimal.RequireFromString(price))
	require.NoError(t, err)
	p.SetPublished(published)
	return p
}

func TestProductService_Create(t *testing.T) {
	f := newProductFixture()
	sellerID := uuid.New()
	categoryID := uuid.New()
	price := decimal.RequireFromString("19.9")

	f.categories.On("FindByID", mock.Anything, categoryID).Return(&catalog.Category{}, nil)
	f.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	f.images.On("FindByProduct", mock.Anything, mock.Anything).Return([]catalog.Image{}, nil)

	resp, err := f.svc.Create(context.Background(), sellerID, CreateProductRequest{
		Name:        "  Desk lamp ",
		Price:       &price,
		CategoryID:  categoryID,
		IsPublished: lo.ToPtr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, "Desk lamp", resp.Name)
	assert.Equal(t, "19.90", resp.Price)
	assert.Equal(t, sellerID, resp.SellerID)
	assert.True(t, resp.IsPublished)
	assert.Empty(t, resp.Images)
}

func TestProductService_Create_UnknownCategory(t *testing.T) {
	f := newProductFixture()
	categoryID := uuid.New()
	price := decimal.NewFromInt(5)

	f.categories.On("FindByID", mock.Anything, categoryID).Return(nil, shared.ErrNotFound)

	_, err := f.svc.Create(context.Background(), uuid.New(), CreateProductRequest{
		Name:       "Lamp",
		Price:      &price,
		CategoryID: categoryID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Update_ForeignProduct(t *testing.T) {
	f := newProductFixture()
	product := newTestProduct(t, uuid.New(), "10", true)

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := f.svc.Update(context.Background(), uuid.New(), product.ID, UpdateProductRequest{Name: lo.ToPtr("Mine now")})

	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Update_PartialFields(t *testing.T) {
	f := newProductFixture()
	sellerID := uuid.New()
	product := newTestProduct(t, sellerID, "10", false)
	price := decimal.RequireFromString("12.5")

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.products.On("Save", mock.Anything, product).Return(nil)
	f.images.On("FindByProduct", mock.Anything, product.ID).Return([]catalog.Image{}, nil)

	resp, err := f.svc.Update(context.Background(), sellerID, product.ID, UpdateProductRequest{
		Price:       &price,
		IsPublished: lo.ToPtr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, "Desk lamp", resp.Name)
	assert.Equal(t, "Warm light", resp.Description)
	assert.Equal(t, "12.50", resp.Price)
	assert.True(t, resp.IsPublished)
}

func TestProductService_List_PublishedOnlyWithOrdering(t *testing.T) {
	f := newProductFixture()
	product := newTestProduct(t, uuid.New(), "30", true)
	img := catalog.Image{BaseEntity: shared.NewBaseEntity(), ProductID: product.ID, Path: "products/lamp.png"}

	f.products.On("FindAll", mock.Anything, mock.MatchedBy(func(filter catalog.ProductFilter) bool {
		return filter.PublishedOnly && filter.OrderBy == "price" && filter.OrderDir == "desc" && filter.PageSize == 5
	})).Return([]catalog.Product{*product}, int64(11), nil)
	f.images.On("FindByProducts", mock.Anything, []uuid.UUID{product.ID}).Return([]catalog.Image{img}, nil)

	result, err := f.svc.List(context.Background(), ProductListFilter{Ordering: "-price", PageSize: 5})

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(11), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	require.Len(t, result.Items[0].Images, 1)
	assert.Equal(t, "/media/products/lamp.png", result.Items[0].Images[0].ImageURL)
}

func TestProductService_List_InvalidCategory(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.List(context.Background(), ProductListFilter{CategoryID: "not-a-uuid"})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestProductService_GetByID_Visibility(t *testing.T) {
	sellerID := uuid.New()

	tests := []struct {
		name    string
		viewer  Viewer
		wantErr bool
	}{
		{name: "anonymous", viewer: Viewer{}, wantErr: true},
		{name: "other customer", viewer: Viewer{UserID: uuid.New(), Role: identity.RoleCustomer}, wantErr: true},
		{name: "owner", viewer: Viewer{UserID: sellerID, Role: identity.RoleSeller}},
		{name: "admin", viewer: Viewer{UserID: uuid.New(), Role: identity.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProductFixture()
			product := newTestProduct(t, sellerID, "10", false)
			f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
			f.images.On("FindByProduct", mock.Anything, product.ID).Return([]catalog.Image{}, nil)

			resp, err := f.svc.GetByID(context.Background(), product.ID, tt.viewer)

			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, product.ID, resp.ID)
		})
	}
}

func TestProductService_Delete_Ordered(t *testing.T) {
	f := newProductFixture()
	sellerID := uuid.New()
	product := newTestProduct(t, sellerID, "10", true)

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.products.On("Delete", mock.Anything, product.ID).Return(shared.ErrInUse)

	err := f.svc.Delete(context.Background(), sellerID, product.ID)

	assert.ErrorIs(t, err, shared.ErrInUse)
}

func TestProductPresenter_UsesRequestMediaBase(t *testing.T) {
	f := newProductFixture()
	presenter := NewProductPresenter(f.products, f.images, NewMediaURLs("/media/"))
	ctx := WithMediaBase(context.Background(), AbsoluteMediaBase("/media/", "https", "shop.example.com"))

	assert.Equal(t, "https://shop.example.com/media/products/a.jpg", presenter.ImageURL(ctx, "products/a.jpg"))
	assert.Equal(t, "/media/products/a.jpg", presenter.ImageURL(context.Background(), "products/a.jpg"))
	assert.Equal(t, "http://cdn.example.com/m", AbsoluteMediaBase("http://cdn.example.com/m", "https", "shop.example.com"))
}
