package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Viewer is the caller of a read operation; the zero value is anonymous
type Viewer struct {
	UserID uuid.UUID
	Role   identity.Role
}

// IsAnonymous reports whether no user is signed in
func (v Viewer) IsAnonymous() bool {
	return v.UserID == uuid.Nil
}

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	presenter    *ProductPresenter
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	presenter *ProductPresenter,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		presenter:    presenter,
		logger:       logger,
	}
}

// List returns published products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*ListResult[ProductResponse], error) {
	domainFilter, err := s.toDomainFilter(filter)
	if err != nil {
		return nil, err
	}
	domainFilter.PublishedOnly = true
	return s.list(ctx, domainFilter)
}

// ListForSeller returns the seller's own products, published or not
func (s *ProductService) ListForSeller(ctx context.Context, sellerID uuid.UUID, filter ProductListFilter) (*ListResult[ProductResponse], error) {
	domainFilter, err := s.toDomainFilter(filter)
	if err != nil {
		return nil, err
	}
	domainFilter.SellerID = &sellerID
	domainFilter.IsPublished = filter.IsPublished
	return s.list(ctx, domainFilter)
}

// GetByID returns a product. Unpublished products are visible to their
// seller and to administrators only.
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID, viewer Viewer) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsPublished && viewer.Role != identity.RoleAdmin && !product.IsOwnedBy(viewer.UserID) {
		return nil, shared.ErrNotFound
	}
	return s.presenter.Product(ctx, product)
}

// GetForSeller returns one of the seller's products
func (s *ProductService) GetForSeller(ctx context.Context, sellerID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsOwnedBy(sellerID) {
		return nil, shared.ErrNotFound
	}
	return s.presenter.Product(ctx, product)
}

// Create adds a product owned by the seller
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (_ *ProductResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ProductService", "Create",
		attribute.String("seller.id", sellerID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	if req.Price == nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price is required")
	}
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(sellerID, req.CategoryID, req.Name, req.Description, *req.Price)
	if err != nil {
		return nil, err
	}
	if req.IsPublished != nil {
		product.SetPublished(*req.IsPublished)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()))

	return s.presenter.Product(ctx, product)
}

// Update changes a product. Only the owning seller may update it.
func (s *ProductService) Update(ctx context.Context, sellerID, id uuid.UUID, req UpdateProductRequest) (_ *ProductResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ProductService", "Update",
		attribute.String("product.id", id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	product, err := s.owned(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name, description := product.Name, product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		if err := product.SetCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.IsPublished != nil {
		product.SetPublished(*req.IsPublished)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.presenter.Product(ctx, product)
}

// Delete removes a product. Products that were ordered cannot be deleted.
func (s *ProductService) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	if _, err := s.owned(ctx, sellerID, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrInUse) {
			return shared.NewDomainError("IN_USE", "Product has been ordered and cannot be deleted")
		}
		return err
	}
	s.logger.Info("Product deleted",
		zap.String("product_id", id.String()),
		zap.String("seller_id", sellerID.String()))
	return nil
}

// owned loads a product and checks the seller owns it
func (s *ProductService) owned(ctx context.Context, sellerID, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsOwnedBy(sellerID) {
		s.logger.Warn("Seller tried to modify a foreign product",
			zap.String("product_id", id.String()),
			zap.String("seller_id", sellerID.String()))
		return nil, shared.NewDomainError("FORBIDDEN", "You can only manage your own products")
	}
	return product, nil
}

func (s *ProductService) ensureCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	return nil
}

func (s *ProductService) toDomainFilter(filter ProductListFilter) (catalog.ProductFilter, error) {
	domainFilter := catalog.ProductFilter{Filter: PageFilter(filter.Page, filter.PageSize)}
	domainFilter.Search = filter.Search
	applyOrdering(&domainFilter.Filter, filter.Ordering)

	categoryID, err := parseOptionalID(filter.CategoryID, "category")
	if err != nil {
		return domainFilter, err
	}
	sellerID, err := parseOptionalID(filter.SellerID, "seller")
	if err != nil {
		return domainFilter, err
	}
	domainFilter.CategoryID = categoryID
	domainFilter.SellerID = sellerID
	return domainFilter, nil
}

func (s *ProductService) list(ctx context.Context, filter catalog.ProductFilter) (*ListResult[ProductResponse], error) {
	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.presenter.Products(ctx, products)
	if err != nil {
		return nil, err
	}
	return NewListResult(items, total, filter.Filter), nil
}
