package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Metrics records cart activity
type Metrics interface {
	CartItemAdded(ctx context.Context, quantity int, anonymous bool)
}

// NewSessionKey issues a key for an anonymous cart
func NewSessionKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Service manages the cart of a user or an anonymous session
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	presenter   *appcatalog.ProductPresenter
	metrics     Metrics
	logger      *zap.Logger
}

// NewService creates a new cart Service. metrics may be nil.
func NewService(
	cartRepo cart.Repository,
	productRepo catalog.ProductRepository,
	presenter *appcatalog.ProductPresenter,
	metrics Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		presenter:   presenter,
		metrics:     metrics,
		logger:      logger,
	}
}

// Resolve returns the identity's cart, creating it on first use
func (s *Service) Resolve(ctx context.Context, owner cart.Identity) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByOwner(ctx, owner)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c, err = cart.New(owner)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Create(ctx, c); err != nil {
		// another request created it first
		if errors.Is(err, shared.ErrAlreadyExists) {
			return s.cartRepo.FindByOwner(ctx, owner)
		}
		return nil, err
	}
	s.logger.Debug("Cart created", zap.String("cart_id", c.ID.String()), zap.Stringer("owner", owner))
	return c, nil
}

// Get returns the identity's cart
func (s *Service) Get(ctx context.Context, owner cart.Identity) (*Response, error) {
	c, err := s.Resolve(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, c)
}

// Add puts a published product into the cart. Adding a product already in
// the cart increments its quantity and refreshes the price.
func (s *Service) Add(ctx context.Context, owner cart.Identity, req AddItemRequest) (*Response, error) {
	quantity := lo.FromPtrOr(req.Quantity, 1)
	if quantity < 1 || quantity > cart.MaxQuantity {
		return nil, cart.ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}
	if !product.IsPublished {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is not available")
	}

	c, err := s.Resolve(ctx, owner)
	if err != nil {
		return nil, err
	}
	item, err := c.Add(product.ID, quantity, product.Price)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CartItemAdded(ctx, quantity, !owner.IsAuthenticated())
	}
	return s.render(ctx, c)
}

// UpdateQuantity sets the quantity of a line; zero or less removes it
func (s *Service) UpdateQuantity(ctx context.Context, owner cart.Identity, itemID uuid.UUID, quantity int) (*Response, error) {
	c, err := s.Resolve(ctx, owner)
	if err != nil {
		return nil, err
	}
	item, ok := c.FindItem(itemID)
	if !ok {
		return nil, shared.ErrNotFound
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(ctx, c.ID, itemID); err != nil {
			return nil, err
		}
		c.RemoveItem(itemID)
		return s.render(ctx, c)
	}

	if err := item.SetQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return s.render(ctx, c)
}

// Remove deletes a line of the identity's cart
func (s *Service) Remove(ctx context.Context, owner cart.Identity, itemID uuid.UUID) (*Response, error) {
	c, err := s.Resolve(ctx, owner)
	if err != nil {
		return nil, err
	}
	if _, ok := c.FindItem(itemID); !ok {
		return nil, shared.ErrNotFound
	}
	if err := s.cartRepo.DeleteItem(ctx, c.ID, itemID); err != nil {
		return nil, err
	}
	c.RemoveItem(itemID)
	return s.render(ctx, c)
}

func (s *Service) render(ctx context.Context, c *cart.Cart) (*Response, error) {
	products, err := s.presenter.ByIDs(ctx, lo.Map(c.Items, func(item cart.Item, _ int) uuid.UUID {
		return item.ProductID
	}))
	if err != nil {
		return nil, err
	}
	return toResponse(c, products), nil
}
