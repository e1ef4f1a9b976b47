package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByOwner loads the identity's cart with items in insertion order
func (r *GormCartRepository) FindByOwner(ctx context.Context, owner cart.Identity) (*cart.Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC, id ASC")
	})
	if userID, ok := owner.UserID(); ok {
		query = query.Where("user_id = ?", userID)
	} else {
		key, _ := owner.SessionKey()
		query = query.Where("session_key = ? AND user_id IS NULL", key)
	}

	var model models.CartModel
	if err := query.First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Create inserts an empty cart. A concurrent insert for the same identity
// surfaces as ErrAlreadyExists.
func (r *GormCartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model := &models.CartModel{}
	model.FromDomain(c)
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error)
}

// SaveItem inserts or updates a cart line
func (r *GormCartRepository) SaveItem(ctx context.Context, item *cart.Item) error {
	model := &models.CartItemModel{}
	model.FromDomain(item)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// DeleteItem removes a line only if it belongs to the cart
func (r *GormCartRepository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItemModel{}))
}

// ClearItems deletes all lines of a cart
func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItemModel{}).Error
}

var _ cart.Repository = (*GormCartRepository)(nil)
