package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements review.Repository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// reviewRow carries the author's username alongside the review
type reviewRow struct {
	models.ReviewModel
	Username string
}

func (r *GormReviewRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = reviews.user_id")
}

// FindByID finds a review by ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var row reviewRow
	if err := r.baseQuery(ctx).Where("reviews.id = ?", id).Take(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return row.toDomain(), nil
}

// FindAll lists reviews newest first
func (r *GormReviewRepository) FindAll(ctx context.Context, filter review.Filter) ([]review.Review, int64, error) {
	count := r.db.WithContext(ctx).Model(&models.ReviewModel{})
	query := r.baseQuery(ctx)
	if filter.ProductID != nil {
		count = count.Where("product_id = ?", *filter.ProductID)
		query = query.Where("reviews.product_id = ?", *filter.ProductID)
	}
	if filter.UserID != nil {
		count = count.Where("user_id = ?", *filter.UserID)
		query = query.Where("reviews.user_id = ?", *filter.UserID)
	}

	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, ReviewSortFields, "created_at")
	dir := ValidateSortOrder(filter.OrderDir)
	var rows []reviewRow
	if err := paginate(query, filter.Filter).
		Order("reviews." + sortField + " " + dir + ", reviews.id " + dir).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	reviews := make([]review.Review, len(rows))
	for i := range rows {
		reviews[i] = *rows[i].toDomain()
	}
	return reviews, total, nil
}

// ExistsByProductAndUser reports whether the user already reviewed the product
func (r *GormReviewRepository) ExistsByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	return count > 0, err
}

// Save inserts or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, rv *review.Review) error {
	model := &models.ReviewModel{}
	model.FromDomain(rv)
	err := translateError(r.db.WithContext(ctx).Save(model).Error)
	if errors.Is(err, shared.ErrAlreadyExists) {
		return review.ErrAlreadyReviewed
	}
	return err
}

// Delete removes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.ReviewModel{}, "id = ?", id))
}

func (row *reviewRow) toDomain() *review.Review {
	rv := row.ReviewModel.ToDomain()
	rv.Username = row.Username
	return rv
}

var _ review.Repository = (*GormReviewRepository)(nil)
