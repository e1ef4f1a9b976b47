package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFavoriteRepository implements catalog.FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GormFavoriteRepository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// FindByID finds a favorite by ID
func (r *GormFavoriteRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Favorite, error) {
	var model models.FavoriteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByUserAndProduct finds the favorite linking a user and a product
func (r *GormFavoriteRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*catalog.Favorite, error) {
	var model models.FavoriteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByUser lists a user's favorites, newest first
func (r *GormFavoriteRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.Favorite, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FavoriteModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.FavoriteModel
	if err := paginate(query, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, CreatedAtSortFields, "created_at")).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	favorites := make([]catalog.Favorite, len(rows))
	for i := range rows {
		favorites[i] = *rows[i].ToDomain()
	}
	return favorites, total, nil
}

// Save inserts a favorite; a duplicate (user, product) yields ErrAlreadyExists
func (r *GormFavoriteRepository) Save(ctx context.Context, favorite *catalog.Favorite) error {
	model := &models.FavoriteModel{}
	model.FromDomain(favorite)
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// Delete removes a favorite
func (r *GormFavoriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.FavoriteModel{}, "id = ?", id))
}

var _ catalog.FavoriteRepository = (*GormFavoriteRepository)(nil)
