package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/cart"
	domaincart "github.com/marketplace/backend/internal/domain/cart"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// CartHandler handles shopping cart HTTP requests for users and anonymous
// sessions alike
type CartHandler struct {
	BaseHandler
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get godoc
// @Summary      Get cart
// @Description  Returns the caller's cart, creating an empty one on first use
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session header string false "Anonymous cart key"
// @Success      200 {object} APIResponse[cart.Response]
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	resp, err := h.cartService.Get(c.Request.Context(), owner)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Add godoc
// @Summary      Add cart item
// @Description  Adds a published product; an existing line has its quantity increased
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Anonymous cart key"
// @Param        request body cart.AddItemRequest true "Item"
// @Success      201 {object} APIResponse[cart.Response]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	var req cart.AddItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.cartService.Add(c.Request.Context(), owner, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateQuantity godoc
// @Summary      Update cart item quantity
// @Description  A quantity of zero or less removes the line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Anonymous cart key"
// @Param        item_id path string true "Cart item ID"
// @Param        request body cart.UpdateItemRequest true "Quantity"
// @Success      200 {object} APIResponse[cart.Response]
// @Failure      404 {object} ErrorResponse
// @Router       /cart/{item_id} [patch]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "item_id")
	if !ok {
		return
	}
	var req cart.UpdateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.cartService.UpdateQuantity(c.Request.Context(), owner, itemID, *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Remove godoc
// @Summary      Remove cart item
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session header string false "Anonymous cart key"
// @Param        item_id path string true "Cart item ID"
// @Success      200 {object} APIResponse[cart.Response]
// @Failure      404 {object} ErrorResponse
// @Router       /cart/{item_id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "item_id")
	if !ok {
		return
	}

	resp, err := h.cartService.Remove(c.Request.Context(), owner, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *CartHandler) owner(c *gin.Context) (domaincart.Identity, bool) {
	owner, ok := middleware.GetCartIdentity(c)
	if !ok {
		h.BadRequest(c, "Cart session is missing")
		return domaincart.Identity{}, false
	}
	return owner, true
}
