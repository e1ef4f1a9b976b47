package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Service handles product reviews
type Service struct {
	reviewRepo  review.Repository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewService creates a new review Service
func NewService(reviewRepo review.Repository, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// List returns reviews, optionally of one product, newest first
func (s *Service) List(ctx context.Context, filter ListFilter) (*appcatalog.ListResult[Response], error) {
	domainFilter := review.Filter{Filter: appcatalog.PageFilter(filter.Page, filter.PageSize)}
	if filter.ProductID != "" {
		id, err := uuid.Parse(filter.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product id")
		}
		domainFilter.ProductID = &id
	}

	reviews, total, err := s.reviewRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	items := lo.Map(reviews, func(r review.Review, _ int) Response { return ToResponse(&r) })
	return appcatalog.NewListResult(items, total, domainFilter.Filter), nil
}

// GetByID returns one review
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	r, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(r)
	return &resp, nil
}

// Create adds the user's review of a product. A user reviews a product once.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*Response, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByProductAndUser(ctx, req.ProductID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, review.ErrAlreadyReviewed
	}

	r, err := review.NewReview(req.ProductID, userID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("Review created",
		zap.String("review_id", r.ID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("rating", r.Rating))

	return s.GetByID(ctx, r.ID)
}

// Update changes the user's own review
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateReviewRequest) (*Response, error) {
	r, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := r.Update(lo.FromPtrOr(req.Rating, r.Rating), lo.FromPtrOr(req.Comment, r.Comment)); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToResponse(r)
	return &resp, nil
}

// Delete removes the user's own review
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, id)
}

func (s *Service) owned(ctx context.Context, userID, id uuid.UUID) (*review.Review, error) {
	r, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsWrittenBy(userID) {
		return nil, shared.NewDomainError("FORBIDDEN", "You can only change your own reviews")
	}
	return r, nil
}
