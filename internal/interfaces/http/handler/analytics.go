package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/analytics"
)

// AnalyticsHandler serves seller dashboards
type AnalyticsHandler struct {
	BaseHandler
	analyticsService *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// SellerReport godoc
// @Summary      Seller analytics
// @Description  Catalog counts, sales totals, the last 30 days of revenue and review statistics
// @Tags         seller
// @Produce      json
// @Success      200 {object} APIResponse[analytics.SellerReport]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sellers/analytics [get]
func (h *AnalyticsHandler) SellerReport(c *gin.Context) {
	sellerID, ok := h.currentUser(c)
	if !ok {
		return
	}

	report, err := h.analyticsService.SellerReport(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
