package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceScale is the number of fraction digits kept for prices
const PriceScale = 2

// MaxPrice is the largest price a NUMERIC(10,2) column holds
var MaxPrice = decimal.RequireFromString("99999999.99")

// Product is an item a seller offers in the catalog
type Product struct {
	shared.BaseEntity
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  uuid.UUID
	SellerID    uuid.UUID
	IsPublished bool
}

// NewProduct creates a published product owned by sellerID
func NewProduct(sellerID, categoryID uuid.UUID, name, description string, price decimal.Decimal) (*Product, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller is required")
	}

	p := &Product{
		BaseEntity:  shared.NewBaseEntity(),
		SellerID:    sellerID,
		IsPublished: true,
	}
	if err := p.Update(name, description); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetCategory(categoryID); err != nil {
		return nil, err
	}
	return p, nil
}

// Update changes the descriptive fields
func (p *Product) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 255 characters")
	}
	p.Name = name
	p.Description = description
	p.Touch()
	return nil
}

// SetPrice validates and stores the price rounded to two digits
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	price = price.Round(PriceScale)
	if price.GreaterThan(MaxPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Price exceeds the maximum allowed value")
	}
	p.Price = price
	p.Touch()
	return nil
}

// SetCategory assigns the required category
func (p *Product) SetCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	p.CategoryID = categoryID
	p.Touch()
	return nil
}

// Publish makes the product visible in the public catalog
func (p *Product) Publish() {
	p.IsPublished = true
	p.Touch()
}

// Unpublish hides the product from the public catalog
func (p *Product) Unpublish() {
	p.IsPublished = false
	p.Touch()
}

// SetPublished sets the published flag
func (p *Product) SetPublished(published bool) {
	if published {
		p.Publish()
		return
	}
	p.Unpublish()
}

// IsOwnedBy reports whether the seller owns the product
func (p *Product) IsOwnedBy(sellerID uuid.UUID) bool {
	return p.SellerID == sellerID
}
