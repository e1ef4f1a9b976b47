package cart

import (
	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/samber/lo"
)

// AddItemRequest adds a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  *int      `json:"quantity" binding:"omitempty,min=1,max=10000"`
}

// UpdateItemRequest sets the quantity of a line; zero or less removes it
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=10000"`
}

// ItemResponse is a cart line with its product
type ItemResponse struct {
	ID        uuid.UUID                  `json:"id"`
	Product   appcatalog.ProductResponse `json:"product"`
	ProductID uuid.UUID                  `json:"product_id"`
	Quantity  int                        `json:"quantity"`
	Price     string                     `json:"price"`
	Subtotal  string                     `json:"subtotal"`
}

// Response is the full cart returned by every cart operation
type Response struct {
	ID         uuid.UUID      `json:"id"`
	Items      []ItemResponse `json:"items"`
	TotalPrice string         `json:"total_price"`
}

func toResponse(c *cart.Cart, products map[uuid.UUID]appcatalog.ProductResponse) *Response {
	return &Response{
		ID: c.ID,
		Items: lo.Map(c.Items, func(item cart.Item, _ int) ItemResponse {
			return ItemResponse{
				ID:        item.ID,
				Product:   products[item.ProductID],
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     appcatalog.FormatPrice(item.Price),
				Subtotal:  appcatalog.FormatPrice(item.Subtotal()),
			}
		}),
		TotalPrice: appcatalog.FormatPrice(c.TotalPrice()),
	}
}
