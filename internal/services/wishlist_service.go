// internal/services/wishlist_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/models"
)

type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

func (s *WishlistService) GetWishlist(userID uuid.UUID) (*models.Wishlist, error) {
	wishlist, err := s.getOrCreate(s.db, userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Preload("Products").Preload("Products.Images").
		First(wishlist, "id = ?", wishlist.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	return wishlist, nil
}

func (s *WishlistService) AddProduct(userID, productID uuid.UUID) (*models.Wishlist, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	wishlist, err := s.getOrCreate(s.db, userID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Table("wishlist_products").
		Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, apperrors.BadRequest("product is already in your wishlist")
	}

	if err := s.db.Model(wishlist).Association("Products").Append(&product); err != nil {
		return nil, fmt.Errorf("failed to add product to wishlist: %w", err)
	}
	return s.GetWishlist(userID)
}

// RemoveProduct is a silent no-op when the product is not on the list.
func (s *WishlistService) RemoveProduct(userID, productID uuid.UUID) (*models.Wishlist, error) {
	wishlist, err := s.getOrCreate(s.db, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(wishlist).Association("Products").
		Delete(&models.Product{BaseModel: models.BaseModel{ID: productID}}); err != nil {
		return nil, fmt.Errorf("failed to remove product from wishlist: %w", err)
	}
	return s.GetWishlist(userID)
}

func (s *WishlistService) getOrCreate(tx *gorm.DB, userID uuid.UUID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := tx.Where("user_id = ?", userID).First(&wishlist).Error
	if err == nil {
		return &wishlist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	wishlist = models.Wishlist{UserID: userID}
	if err := tx.Create(&wishlist).Error; err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}
	return &wishlist, nil
}
