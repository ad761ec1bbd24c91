// internal/services/coupon_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/models"
	"github.com/shopora/backend/internal/pricing"
	"github.com/shopora/backend/internal/utils"
)

type CouponService struct {
	db          *gorm.DB
	cartService *CartService
}

type CouponRequest struct {
	Code      string            `json:"code" validate:"required,min=2,max=50"`
	Type      models.CouponType `json:"type" validate:"required,oneof=percent fixed"`
	Value     float64           `json:"value" validate:"required,gte=0"`
	StartsAt  time.Time         `json:"starts_at" validate:"required"`
	ExpiresAt time.Time         `json:"expires_at" validate:"required"`
}

// ApplyCouponResult carries the pricing breakdown the apply endpoint returns.
type ApplyCouponResult struct {
	CartID         uuid.UUID         `json:"cart_id"`
	Items          []models.CartItem `json:"items"`
	Coupon         *models.Coupon    `json:"coupon"`
	BaseTotal      float64           `json:"base_total"`
	Discount       float64           `json:"discount"`
	TotalPrice     float64           `json:"total_price"`
	AlreadyApplied bool              `json:"already_applied"`
}

func NewCouponService(db *gorm.DB, cartService *CartService) *CouponService {
	return &CouponService{db: db, cartService: cartService}
}

func (s *CouponService) validateRequest(req *CouponRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperrors.Validation("invalid coupon payload", utils.GetValidationErrors(err))
	}
	if !req.StartsAt.Before(req.ExpiresAt) {
		return apperrors.CouponInvalid("starts_at must be before expires_at")
	}
	if req.Type == models.CouponTypePercent && req.Value > 100 {
		return apperrors.CouponInvalid("percent coupon value must be between 0 and 100")
	}
	return nil
}

func (s *CouponService) CreateCoupon(req *CouponRequest) (*models.Coupon, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	var existing models.Coupon
	if err := s.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("coupon code already exists")
	}

	coupon := &models.Coupon{
		Code:      req.Code,
		Type:      req.Type,
		Value:     req.Value,
		StartsAt:  req.StartsAt,
		ExpiresAt: req.ExpiresAt,
	}
	if err := s.db.Create(coupon).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

func (s *CouponService) GetAllCoupons() ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := s.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch coupons: %w", err)
	}
	return coupons, nil
}

func (s *CouponService) GetCoupon(id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("coupon")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &coupon, nil
}

// GetCouponByCode is the admin probe: it returns the coupon together with its
// derived active flag. Active status is a function of the clock, never stored.
func (s *CouponService) GetCouponByCode(code string, now time.Time) (*models.Coupon, bool, error) {
	var coupon models.Coupon
	if err := s.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperrors.NotFound("coupon")
		}
		return nil, false, fmt.Errorf("database error: %w", err)
	}
	return &coupon, coupon.ActiveAt(now), nil
}

func (s *CouponService) UpdateCoupon(id uuid.UUID, req *CouponRequest) (*models.Coupon, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	coupon, err := s.GetCoupon(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"code":       req.Code,
		"type":       req.Type,
		"value":      req.Value,
		"starts_at":  req.StartsAt,
		"expires_at": req.ExpiresAt,
	}
	if err := s.db.Model(coupon).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	return coupon, nil
}

func (s *CouponService) DeleteCoupon(id uuid.UUID) error {
	res := s.db.Delete(&models.Coupon{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("coupon")
	}
	return nil
}

// ApplyCoupon validates the coupon window and rewrites the cart total as
// max(0, baseTotal - discount), with baseTotal recomputed from live prices.
// Re-applying the coupon already on the cart is an idempotent no-op; applying
// a different coupon replaces the previous one (last wins, never stacking).
// The whole check-recompute-persist sequence runs under the cart row lock.
func (s *CouponService) ApplyCoupon(userID uuid.UUID, code string, now time.Time) (*ApplyCouponResult, error) {
	var coupon models.Coupon
	if err := s.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("coupon")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !coupon.ActiveAt(now) {
		return nil, apperrors.CouponExpired()
	}

	result := &ApplyCouponResult{Coupon: &coupon}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartService.lockCart(tx, userID)
		if err != nil {
			return err
		}
		result.CartID = cart.ID
		result.AlreadyApplied = cart.CouponID != nil && *cart.CouponID == coupon.ID

		baseTotal, err := s.cartService.RecalcTotal(tx, cart)
		if err != nil {
			return err
		}

		discount := pricing.Discount(pricing.DiscountKind(coupon.Type), coupon.Value, baseTotal)
		finalTotal := pricing.ApplyDiscount(baseTotal, discount)

		if err := tx.Model(cart).Updates(map[string]interface{}{
			"coupon_id":   coupon.ID,
			"total_price": finalTotal,
		}).Error; err != nil {
			return fmt.Errorf("failed to apply coupon: %w", err)
		}

		result.BaseTotal = baseTotal
		result.Discount = discount
		result.TotalPrice = finalTotal
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("cart_id = ?", result.CartID).
		Preload("Product").Find(&result.Items).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	return result, nil
}
