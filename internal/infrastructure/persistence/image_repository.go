package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormImageRepository implements catalog.ImageRepository using GORM
type GormImageRepository struct {
	db *gorm.DB
}

// NewGormImageRepository creates a new GormImageRepository
func NewGormImageRepository(db *gorm.DB) *GormImageRepository {
	return &GormImageRepository{db: db}
}

// FindByID finds an image by ID
func (r *GormImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Image, error) {
	var model models.ImageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByProduct lists a product's images in upload order
func (r *GormImageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Image, error) {
	var rows []models.ImageModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toImages(rows), nil
}

// FindByProducts returns the images of the given products, oldest first
func (r *GormImageRepository) FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]catalog.Image, error) {
	if len(productIDs) == 0 {
		return []catalog.Image{}, nil
	}
	var rows []models.ImageModel
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toImages(rows), nil
}

// FirstByProducts returns the earliest image per product
func (r *GormImageRepository) FirstByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]catalog.Image, error) {
	result := make(map[uuid.UUID]catalog.Image, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	var rows []models.ImageModel
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		if _, ok := result[rows[i].ProductID]; !ok {
			result[rows[i].ProductID] = *rows[i].ToDomain()
		}
	}
	return result, nil
}

// FindAll lists all images, newest first
func (r *GormImageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Image, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ImageModel{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.ImageModel
	if err := paginate(query, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, CreatedAtSortFields, "created_at")).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toImages(rows), total, nil
}

// Save inserts or updates an image
func (r *GormImageRepository) Save(ctx context.Context, image *catalog.Image) error {
	model := &models.ImageModel{}
	model.FromDomain(image)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes an image
func (r *GormImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.ImageModel{}, "id = ?", id))
}

func toImages(rows []models.ImageModel) []catalog.Image {
	images := make([]catalog.Image, len(rows))
	for i := range rows {
		images[i] = *rows[i].ToDomain()
	}
	return images
}

var _ catalog.ImageRepository = (*GormImageRepository)(nil)
