// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopora/backend/internal/middleware"
	"github.com/shopora/backend/internal/services"
	"github.com/shopora/backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	result, err := h.orderService.CreateOrder(userID, &req)
	if err != nil {
		middleware.RecordCheckoutOperation("create_order", false)
		utils.HandleError(c, err)
		return
	}

	middleware.RecordCheckoutOperation("create_order", true)
	utils.CreatedResponse(c, result)
}

// GET /orders (admin)
func (h *OrderHandler) GetOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.orderService.GetAllOrders(params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, *result)
}

// GET /orders/my-orders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetMyOrders(userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, orders)
}

// GET /orders/:id (owner or admin)
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(orderID, userID, currentRole(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, order)
}

// PUT /orders/:id (admin status transition)
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(orderID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, order)
}

// PUT /orders/:id/pay
func (h *OrderHandler) PayOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	order, err := h.orderService.PayOrder(orderID, userID, currentRole(c), &req)
	if err != nil {
		middleware.RecordCheckoutOperation("pay_order", false)
		utils.HandleError(c, err)
		return
	}

	middleware.RecordCheckoutOperation("pay_order", true)
	utils.SuccessResponse(c, order)
}

// DELETE /orders/:id (admin)
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(orderID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
