// internal/handlers/analytics.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopora/backend/internal/services"
	"github.com/shopora/backend/internal/utils"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GET /analytics/top-products (admin)
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, err := h.analyticsService.TopProducts(limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, products)
}

// GET /analytics/top-customers (admin)
func (h *AnalyticsHandler) TopCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	customers, err := h.analyticsService.TopCustomers(limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, customers)
}

// GET /analytics/sales-stats (admin)
func (h *AnalyticsHandler) SalesStats(c *gin.Context) {
	stats, err := h.analyticsService.SalesStats()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, stats)
}
