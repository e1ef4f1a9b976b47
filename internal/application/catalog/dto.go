package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=255"`
	Slug     string     `json:"slug" binding:"omitempty,max=255"`
	ParentID *uuid.UUID `json:"parent"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name     *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Slug     *string    `json:"slug" binding:"omitempty,max=255"`
	ParentID *uuid.UUID `json:"parent"`
	// ClearParent moves the category to the root
	ClearParent bool `json:"clear_parent"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=255"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	CategoryID  uuid.UUID        `json:"category" binding:"required"`
	IsPublished *bool            `json:"is_published"`
}

// UpdateProductRequest represents a request to update a product; nil
// fields are left untouched
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID       `json:"category"`
	IsPublished *bool            `json:"is_published"`
}

// ProductListFilter represents filter options for product lists
type ProductListFilter struct {
	Search      string `form:"search"`
	CategoryID  string `form:"category" binding:"omitempty,uuid"`
	SellerID    string `form:"seller" binding:"omitempty,uuid"`
	IsPublished *bool  `form:"is_published"`
	Ordering    string `form:"ordering" binding:"omitempty,oneof=price -price created_at -created_at"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ImageResponse represents a product image
type ImageResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product"`
	Image     string    `json:"image"`
	ImageURL  string    `json:"image_url"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       string          `json:"price"`
	CategoryID  uuid.UUID       `json:"category"`
	SellerID    uuid.UUID       `json:"seller"`
	IsPublished bool            `json:"is_published"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Images      []ImageResponse `json:"images"`
}

// RegisterImageRequest attaches an already stored file to a product
type RegisterImageRequest struct {
	ProductID uuid.UUID `json:"product" binding:"required"`
	Image     string    `json:"image" binding:"required,max=500"`
}

// UploadImageInput is a multipart image upload
type UploadImageInput struct {
	ProductID uuid.UUID
	Filename  string
	Data      []byte
}

// FavoriteRequest names the product to add or toggle
type FavoriteRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// FavoriteResponse is a favorite with its product
type FavoriteResponse struct {
	ID        uuid.UUID       `json:"id"`
	Product   ProductResponse `json:"product"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToggleFavoriteResult tells whether the product is a favorite after the toggle
type ToggleFavoriteResult struct {
	IsFavorite bool              `json:"is_favorite"`
	Favorite   *FavoriteResponse `json:"favorite,omitempty"`
}

// ListResult is one page of items
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewListResult wraps a page of items
func NewListResult[T any](items []T, total int64, filter shared.Filter) *ListResult[T] {
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &ListResult[T]{
		Items:      page.Items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

// ToCategoryResponse converts a domain Category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		ParentID: c.ParentID,
	}
}

// FormatPrice renders a price with two fraction digits
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(catalog.PriceScale)
}

// PageFilter builds a shared filter from request paging values
func PageFilter(page, pageSize int) shared.Filter {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	return f
}

// parseOptionalID parses an optional id filter
func parseOptionalID(raw, field string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid "+field+" id")
	}
	return &id, nil
}

// applyOrdering maps "price", "-price", "created_at" or "-created_at"
func applyOrdering(f *shared.Filter, ordering string) {
	ordering = strings.TrimSpace(ordering)
	if ordering == "" {
		return
	}
	f.OrderDir = "asc"
	if strings.HasPrefix(ordering, "-") {
		f.OrderDir = "desc"
		ordering = ordering[1:]
	}
	f.OrderBy = ordering
}
