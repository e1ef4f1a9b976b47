package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// FavoriteService manages a user's favorite products
type FavoriteService struct {
	favoriteRepo catalog.FavoriteRepository
	productRepo  catalog.ProductRepository
	presenter    *ProductPresenter
	logger       *zap.Logger
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(
	favoriteRepo catalog.FavoriteRepository,
	productRepo catalog.ProductRepository,
	presenter *ProductPresenter,
	logger *zap.Logger,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
		presenter:    presenter,
		logger:       logger,
	}
}

// List returns the user's favorites, newest first
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*ListResult[FavoriteResponse], error) {
	filter := PageFilter(page, pageSize)
	favorites, total, err := s.favoriteRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	products, err := s.presenter.ByIDs(ctx, lo.Map(favorites, func(f catalog.Favorite, _ int) uuid.UUID {
		return f.ProductID
	}))
	if err != nil {
		return nil, err
	}

	items := lo.Map(favorites, func(f catalog.Favorite, _ int) FavoriteResponse {
		return FavoriteResponse{ID: f.ID, Product: products[f.ProductID], CreatedAt: f.CreatedAt}
	})
	return NewListResult(items, total, filter), nil
}

// Add marks a published product as favorite. Adding it twice is rejected.
func (s *FavoriteService) Add(ctx context.Context, userID, productID uuid.UUID) (*FavoriteResponse, error) {
	product, err := s.publishedProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	favorite := catalog.NewFavorite(userID, productID)
	if err := s.favoriteRepo.Save(ctx, favorite); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product is already in favorites")
		}
		return nil, err
	}
	return s.render(ctx, favorite, product)
}

// Delete removes one of the user's favorites
func (s *FavoriteService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	favorite, err := s.favoriteRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if favorite.UserID != userID {
		return shared.ErrNotFound
	}
	return s.favoriteRepo.Delete(ctx, id)
}

// Toggle adds the product to favorites or removes it when already there
func (s *FavoriteService) Toggle(ctx context.Context, userID, productID uuid.UUID) (*ToggleFavoriteResult, error) {
	existing, err := s.favoriteRepo.FindByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		if err := s.favoriteRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &ToggleFavoriteResult{IsFavorite: false}, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	favorite, err := s.Add(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	return &ToggleFavoriteResult{IsFavorite: true, Favorite: favorite}, nil
}

func (s *FavoriteService) publishedProduct(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}
	if !product.IsPublished {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is not available")
	}
	return product, nil
}

func (s *FavoriteService) render(ctx context.Context, favorite *catalog.Favorite, product *catalog.Product) (*FavoriteResponse, error) {
	productResp, err := s.presenter.Product(ctx, product)
	if err != nil {
		return nil, err
	}
	return &FavoriteResponse{ID: favorite.ID, Product: *productResp, CreatedAt: favorite.CreatedAt}, nil
}
