// internal/handlers/shipping.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopora/backend/internal/services"
	"github.com/shopora/backend/internal/utils"
)

type ShippingHandler struct {
	shippingService *services.ShippingService
}

func NewShippingHandler(shippingService *services.ShippingService) *ShippingHandler {
	return &ShippingHandler{shippingService: shippingService}
}

// GET /shipping
func (h *ShippingHandler) GetRates(c *gin.Context) {
	rates, err := h.shippingService.GetAllRates()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, rates)
}

// GET /shipping/price?city=...
func (h *ShippingHandler) GetPriceForCity(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		utils.BadRequestResponse(c, "city query parameter is required", nil)
		return
	}

	price, err := h.shippingService.PriceFor(nil, city)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"city": city, "price": price})
}

// POST /shipping (admin)
func (h *ShippingHandler) CreateRate(c *gin.Context) {
	var req services.ShippingRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	rate, err := h.shippingService.CreateRate(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, rate)
}

// PUT /shipping/:id (admin)
func (h *ShippingHandler) UpdateRate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.ShippingRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	rate, err := h.shippingService.UpdateRate(id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, rate)
}

// DELETE /shipping/:id (admin)
func (h *ShippingHandler) DeleteRate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.shippingService.DeleteRate(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
