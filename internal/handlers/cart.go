// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopora/backend/internal/middleware"
	"github.com/shopora/backend/internal/services"
	"github.com/shopora/backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, cart)
}

// POST /cart
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	cart, err := h.cartService.AddItem(userID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, cart)
}

// PUT /cart/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	var req services.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(userID, productID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, cart)
}

// DELETE /cart/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(userID, productID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, cart)
}

// DELETE /cart/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(userID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "cart cleared"})
}

// CouponHandler covers coupon administration and cart application.
type CouponHandler struct {
	couponService *services.CouponService
}

func NewCouponHandler(couponService *services.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// POST /coupons (admin)
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req services.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	coupon, err := h.couponService.CreateCoupon(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.CreatedResponse(c, coupon)
}

// GET /coupons (admin)
func (h *CouponHandler) GetCoupons(c *gin.Context) {
	coupons, err := h.couponService.GetAllCoupons()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, coupons)
}

// GET /coupons/apply/:code
// Read-only probe: reports whether the code is currently redeemable without
// touching the cart.
func (h *CouponHandler) ProbeCoupon(c *gin.Context) {
	coupon, active, err := h.couponService.GetCouponByCode(c.Param("code"), timeNow())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"coupon": coupon, "active": active})
}

// PUT /coupons/:id (admin)
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	coupon, err := h.couponService.UpdateCoupon(id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, coupon)
}

// DELETE /coupons/:id (admin)
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.couponService.DeleteCoupon(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// POST /coupons/apply/:code
func (h *CouponHandler) ApplyCoupon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.couponService.ApplyCoupon(userID, c.Param("code"), timeNow())
	if err != nil {
		middleware.RecordCheckoutOperation("apply_coupon", false)
		utils.HandleError(c, err)
		return
	}

	middleware.RecordCheckoutOperation("apply_coupon", true)
	utils.SuccessResponse(c, result)
}
