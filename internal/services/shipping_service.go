// internal/services/shipping_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/models"
	"github.com/shopora/backend/internal/utils"
)

type ShippingService struct {
	db *gorm.DB
}

type ShippingRateRequest struct {
	City  string  `json:"city" validate:"required,min=2,max=100"`
	Price float64 `json:"price" validate:"gte=0"`
}

func NewShippingService(db *gorm.DB) *ShippingService {
	return &ShippingService{db: db}
}

func (s *ShippingService) CreateRate(req *ShippingRateRequest) (*models.ShippingRate, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid shipping rate payload", utils.GetValidationErrors(err))
	}

	city := strings.TrimSpace(req.City)
	var existing models.ShippingRate
	if err := s.db.Where("LOWER(city) = LOWER(?)", city).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("shipping rate for this city already exists")
	}

	rate := &models.ShippingRate{City: city, Price: req.Price}
	if err := s.db.Create(rate).Error; err != nil {
		return nil, fmt.Errorf("failed to create shipping rate: %w", err)
	}
	return rate, nil
}

func (s *ShippingService) GetAllRates() ([]models.ShippingRate, error) {
	var rates []models.ShippingRate
	if err := s.db.Order("city ASC").Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch shipping rates: %w", err)
	}
	return rates, nil
}

func (s *ShippingService) GetRate(id uuid.UUID) (*models.ShippingRate, error) {
	var rate models.ShippingRate
	if err := s.db.First(&rate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("shipping rate")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &rate, nil
}

func (s *ShippingService) UpdateRate(id uuid.UUID, req *ShippingRateRequest) (*models.ShippingRate, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid shipping rate payload", utils.GetValidationErrors(err))
	}

	rate, err := s.GetRate(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"city":  strings.TrimSpace(req.City),
		"price": req.Price,
	}
	if err := s.db.Model(rate).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update shipping rate: %w", err)
	}
	return rate, nil
}

func (s *ShippingService) DeleteRate(id uuid.UUID) error {
	res := s.db.Delete(&models.ShippingRate{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete shipping rate: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("shipping rate")
	}
	return nil
}

// PriceFor resolves the shipping cost for a destination city. Cities without
// a configured rate ship for free rather than failing the checkout.
func (s *ShippingService) PriceFor(tx *gorm.DB, city string) (float64, error) {
	if tx == nil {
		tx = s.db
	}
	var rate models.ShippingRate
	err := tx.Where("LOWER(city) = LOWER(?)", strings.TrimSpace(city)).First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to resolve shipping rate: %w", err)
	}
	return rate.Price, nil
}
