package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/review"
)

// ReviewHandler handles product review HTTP requests
type ReviewHandler struct {
	BaseHandler
	reviewService *review.Service
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *review.Service) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List godoc
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Param        product_id query string false "Product ID"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]review.Response]
// @Router       /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	var filter review.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	result, err := h.reviewService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get review
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Review ID"
// @Success      200 {object} APIResponse[review.Response]
// @Failure      404 {object} ErrorResponse
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.reviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Create godoc
// @Summary      Create review
// @Description  A user reviews a product once
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body review.CreateReviewRequest true "Review"
// @Success      201 {object} APIResponse[review.Response]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req review.CreateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	r, err := h.reviewService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// Update godoc
// @Summary      Update review
// @Description  Only the author may change a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id path string true "Review ID"
// @Param        request body review.UpdateReviewRequest true "Review fields"
// @Success      200 {object} APIResponse[review.Response]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reviews/{id} [put]
// @Router       /reviews/{id} [patch]
func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req review.UpdateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	r, err := h.reviewService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Delete godoc
// @Summary      Delete review
// @Tags         reviews
// @Param        id path string true "Review ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
