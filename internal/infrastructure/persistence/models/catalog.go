package models

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for catalog.Category
type CategoryModel struct {
	BaseModel
	Name     string     `gorm:"type:varchar(255);not null"`
	Slug     string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the model to a domain category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Slug:       m.Slug,
		ParentID:   m.ParentID,
	}
}

// FromDomain populates the model from a domain category
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Slug = c.Slug
	m.ParentID = c.ParentID
}

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	IsPublished bool            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		CategoryID:  m.CategoryID,
		SellerID:    m.SellerID,
		IsPublished: m.IsPublished,
	}
}

// FromDomain populates the model from a domain product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.CategoryID = p.CategoryID
	m.SellerID = p.SellerID
	m.IsPublished = p.IsPublished
}

// ImageModel is the persistence model for catalog.Image
type ImageModel struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Path      string    `gorm:"type:varchar(500);not null"`
}

// TableName returns the table name for GORM
func (ImageModel) TableName() string {
	return "product_images"
}

// ToDomain converts the model to a domain image
func (m *ImageModel) ToDomain() *catalog.Image {
	return &catalog.Image{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		Path:       m.Path,
	}
}

// FromDomain populates the model from a domain image
func (m *ImageModel) FromDomain(i *catalog.Image) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.ProductID = i.ProductID
	m.Path = i.Path
}

// FavoriteModel is the persistence model for catalog.Favorite
type FavoriteModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_product,priority:2"`
}

// TableName returns the table name for GORM
func (FavoriteModel) TableName() string {
	return "favorites"
}

// ToDomain converts the model to a domain favorite
func (m *FavoriteModel) ToDomain() *catalog.Favorite {
	return &catalog.Favorite{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ProductID:  m.ProductID,
	}
}

// FromDomain populates the model from a domain favorite
func (m *FavoriteModel) FromDomain(f *catalog.Favorite) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.UserID = f.UserID
	m.ProductID = f.ProductID
}
