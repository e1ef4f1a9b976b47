package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every category ordered by name
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]catalog.Category, len(rows))
	for i := range rows {
		categories[i] = *rows[i].ToDomain()
	}
	return categories, nil
}

// ExistsBySlug reports whether another category uses the slug
func (r *GormCategoryRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	model := &models.CategoryModel{}
	model.FromDomain(category)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes the category with its descendants. Fails with ErrInUse
// when any category of the subtree still has products.
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := r.subtree(tx, id)
		if err != nil {
			return err
		}

		var products int64
		if err := tx.Model(&models.ProductModel{}).Where("category_id IN ?", ids).Count(&products).Error; err != nil {
			return err
		}
		if products > 0 {
			return shared.ErrInUse
		}

		// children first so the parent reference never dangles
		for i := len(ids) - 1; i > 0; i-- {
			if err := tx.Delete(&models.CategoryModel{}, "id = ?", ids[i]).Error; err != nil {
				return translateError(err)
			}
		}
		return deleted(tx.Delete(&models.CategoryModel{}, "id = ?", id))
	})
}

// subtree returns id followed by all descendant ids, breadth first
func (r *GormCategoryRepository) subtree(tx *gorm.DB, id uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{id}
	frontier := []uuid.UUID{id}
	seen := map[uuid.UUID]bool{id: true}
	for len(frontier) > 0 {
		var children []uuid.UUID
		if err := tx.Model(&models.CategoryModel{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, c := range children {
			if !seen[c] {
				seen[c] = true
				ids = append(ids, c)
				frontier = append(frontier, c)
			}
		}
	}
	return ids, nil
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
