package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/catalog"
)

// PageQuery represents plain pagination query parameters
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// FavoriteHandler handles favorite HTTP requests
type FavoriteHandler struct {
	BaseHandler
	favoriteService *catalog.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favoriteService *catalog.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// List godoc
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalog.FavoriteResponse]
// @Security     BearerAuth
// @Router       /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var query PageQuery
	if !h.bindQuery(c, &query) {
		return
	}

	result, err := h.favoriteService.List(c.Request.Context(), userID, query.Page, query.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Add godoc
// @Summary      Add favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        request body catalog.FavoriteRequest true "Product"
// @Success      201 {object} APIResponse[catalog.FavoriteResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /favorites [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req catalog.FavoriteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	favorite, err := h.favoriteService.Add(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, favorite)
}

// Toggle godoc
// @Summary      Toggle favorite
// @Description  Adds the product to favorites, or removes it when already there
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        request body catalog.FavoriteRequest true "Product"
// @Success      200 {object} APIResponse[catalog.ToggleFavoriteResult]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /favorites/toggle [post]
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req catalog.FavoriteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.favoriteService.Toggle(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete favorite
// @Tags         favorites
// @Param        id path string true "Favorite ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /favorites/{id} [delete]
func (h *FavoriteHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.favoriteService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
