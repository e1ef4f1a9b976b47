package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/trade"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order HTTP requests. One handler value serves one
// audience, selected by its scope.
type OrderHandler struct {
	BaseHandler
	orderService    *trade.OrderService
	checkoutService *trade.CheckoutService
	scope           trade.Scope
}

// NewOrderHandler creates a buyer order handler, which also places orders
func NewOrderHandler(orderService *trade.OrderService, checkoutService *trade.CheckoutService) *OrderHandler {
	return &OrderHandler{orderService: orderService, checkoutService: checkoutService, scope: trade.ScopeBuyer}
}

// NewSellerOrderHandler creates a handler over orders containing the
// seller's products
func NewSellerOrderHandler(orderService *trade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, scope: trade.ScopeSeller}
}

// NewAdminOrderHandler creates a handler over every order
func NewAdminOrderHandler(orderService *trade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, scope: trade.ScopeAdmin}
}

// List godoc
// @Summary      List orders
// @Description  Buyers see their own orders, sellers the orders containing their products, administrators every order
// @Tags         orders
// @Produce      json
// @Param        status query string false "Order status"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]trade.OrderResponse]
// @Security     BearerAuth
// @Router       /orders [get]
// @Router       /sellers/orders [get]
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter trade.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	result, err := h.orderService.List(c.Request.Context(), actor, h.scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[trade.OrderResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
// @Router       /sellers/orders/{id} [get]
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), actor, h.scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Checkout godoc
// @Summary      Place order
// @Description  Turns the caller's cart into a pending order and empties the cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body trade.CheckoutRequest true "Contact and delivery"
// @Success      201 {object} APIResponse[trade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	buyerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	if err := h.checkoutService.EnsureCartReady(c.Request.Context(), buyerID); err != nil {
		h.HandleError(c, err)
		return
	}
	var req trade.CheckoutRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// UpdateStatus godoc
// @Summary      Update order status
// @Description  Allowed transitions depend on the configured status policy
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body trade.UpdateStatusRequest true "New status"
// @Success      200 {object} APIResponse[trade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/status [patch]
// @Router       /sellers/orders/{id}/status [patch]
// @Router       /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), actor, h.scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Export godoc
// @Summary      Export seller orders
// @Description  Spreadsheet with one row per order line of the seller's products
// @Tags         seller
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status query string false "Order status"
// @Success      200 {file} file
// @Security     BearerAuth
// @Router       /sellers/orders/export [get]
func (h *OrderHandler) Export(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var filter trade.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	out, err := h.orderService.ExportForSeller(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

func (h *OrderHandler) actor(c *gin.Context) (trade.Actor, bool) {
	userID, ok := h.currentUser(c)
	if !ok {
		return trade.Actor{}, false
	}
	return trade.Actor{UserID: userID, Role: middleware.GetJWTRole(c)}, true
}
