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

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List returns every category
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(categories, func(c catalog.Category, _ int) CategoryResponse {
		return ToCategoryResponse(&c)
	}), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Create creates a category; an omitted slug is generated from the name
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if req.ParentID != nil {
		if err := s.ensureParent(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	category, err := catalog.NewCategory(req.Name, req.Slug, req.ParentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, category.Slug, nil); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("slug", category.Slug))

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Update changes a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Slug != nil {
		slug := category.Slug
		if req.Slug != nil {
			slug = *req.Slug
		}
		if err := category.Update(lo.FromPtrOr(req.Name, category.Name), slug); err != nil {
			return nil, err
		}
		if err := s.ensureSlugFree(ctx, category.Slug, &category.ID); err != nil {
			return nil, err
		}
	}

	switch {
	case req.ClearParent:
		if err := category.SetParent(nil); err != nil {
			return nil, err
		}
	case req.ParentID != nil:
		if err := s.ensureParent(ctx, *req.ParentID); err != nil {
			return nil, err
		}
		if err := s.ensureNotDescendant(ctx, category.ID, *req.ParentID); err != nil {
			return nil, err
		}
		if err := category.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category and its children. Categories holding products
// cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrInUse) {
			return shared.NewDomainError("IN_USE", "Category has products and cannot be deleted")
		}
		return err
	}
	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}

func (s *CategoryService) ensureParent(ctx context.Context, parentID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_PARENT", "Parent category not found")
		}
		return err
	}
	return nil
}

func (s *CategoryService) ensureSlugFree(ctx context.Context, slug string, excludeID *uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	}
	return nil
}

// ensureNotDescendant rejects moving a category below its own subtree
func (s *CategoryService) ensureNotDescendant(ctx context.Context, id, parentID uuid.UUID) error {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	parents := make(map[uuid.UUID]*uuid.UUID, len(categories))
	for i := range categories {
		parents[categories[i].ID] = categories[i].ParentID
	}
	for i, cur := 0, &parentID; cur != nil && i <= len(categories); i, cur = i+1, parents[*cur] {
		if *cur == id {
			return shared.NewDomainError("INVALID_PARENT", "Category cannot be moved below itself")
		}
	}
	return nil
}
