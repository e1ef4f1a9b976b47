package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product HTTP requests, both the public catalog
// and the seller's own listings
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List godoc
// @Summary      List products
// @Description  Published products only
// @Tags         products
// @Produce      json
// @Param        search query string false "Name or description contains"
// @Param        category query string false "Category ID"
// @Param        seller query string false "Seller ID"
// @Param        ordering query string false "price, -price, created_at or -created_at"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalog.ProductResponse]
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalog.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get product
// @Description  Unpublished products are visible to their seller and administrators
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	viewer := catalog.Viewer{Role: middleware.GetJWTRole(c)}
	viewer.UserID, _ = middleware.GetUserUUID(c)

	product, err := h.productService.GetByID(c.Request.Context(), id, viewer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListOwn godoc
// @Summary      List own products
// @Description  The seller's products, published or not
// @Tags         seller
// @Produce      json
// @Param        is_published query bool false "Filter by publication"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalog.ProductResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sellers/products [get]
func (h *ProductHandler) ListOwn(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var filter catalog.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	result, err := h.productService.ListForSeller(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetOwn godoc
// @Summary      Get own product
// @Tags         seller
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sellers/products/{id} [get]
func (h *ProductHandler) GetOwn(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetForSeller(c.Request.Context(), sellerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create godoc
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateProductRequest true "Product"
// @Success      201 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products [post]
// @Router       /sellers/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req catalog.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update godoc
// @Summary      Update product
// @Description  Only the owning seller may change a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body catalog.UpdateProductRequest true "Product fields"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [put]
// @Router       /products/{id} [patch]
// @Router       /sellers/products/{id} [put]
// @Router       /sellers/products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), sellerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @Summary      Delete product
// @Description  Products that appear in orders cannot be deleted
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [delete]
// @Router       /sellers/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), sellerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
