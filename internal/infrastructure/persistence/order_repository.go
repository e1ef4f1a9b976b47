package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	orders := []trade.Order{*model.ToDomain()}
	if err := r.decorateItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// FindAll lists orders newest first with items
func (r *GormOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if filter.BuyerID != nil {
		query = query.Where("buyer_id = ?", *filter.BuyerID)
	}
	if filter.SellerID != nil {
		query = query.Where("id IN (?)",
			r.db.Model(&models.OrderItemModel{}).Select("order_id").Where("seller_id = ?", *filter.SellerID))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := paginate(query, filter.Filter).
		Preload("Items", preloadItems).
		Order(orderClause(filter.OrderBy, filter.OrderDir, OrderSortFields, "created_at")).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]trade.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	if err := r.decorateItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Create inserts the order row and every item
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	model := &models.OrderModel{}
	model.FromDomain(order)
	model.Items = make([]models.OrderItemModel, len(order.Items))
	for i := range order.Items {
		model.Items[i].FromDomain(&order.Items[i])
		model.Items[i].OrderID = order.ID
	}
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// Save updates the mutable order columns
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":      order.Status,
			"total_price": order.TotalPrice,
			"updated_at":  order.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// decorateItems fills product names and first image paths for display
func (r *GormOrderRepository) decorateItems(ctx context.Context, orders []trade.Order) error {
	seen := make(map[uuid.UUID]bool)
	var productIDs []uuid.UUID
	for i := range orders {
		for _, item := range orders[i].Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}
	if len(productIDs) == 0 {
		return nil
	}

	var products []models.ProductModel
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return err
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	images, err := NewGormImageRepository(r.db).FirstByProducts(ctx, productIDs)
	if err != nil {
		return err
	}

	for i := range orders {
		for j := range orders[i].Items {
			item := &orders[i].Items[j]
			item.ProductName = names[item.ProductID]
			if img, ok := images[item.ProductID]; ok {
				item.ProductImage = img.Path
			}
		}
	}
	return nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
