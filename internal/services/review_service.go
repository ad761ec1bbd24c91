// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/models"
	"github.com/shopora/backend/internal/pricing"
	"github.com/shopora/backend/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment" validate:"max=2000"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview gates on purchase history: the user must have a delivered order
// containing the product. One review per (product, user); the product's
// aggregate rating is recomputed in the same transaction.
func (s *ReviewService) CreateReview(userID uuid.UUID, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid review payload", utils.GetValidationErrors(err))
	}

	var review *models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("product")
			}
			return fmt.Errorf("database error: %w", err)
		}

		var purchased int64
		err := tx.Model(&models.OrderItem{}).
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.user_id = ? AND orders.order_status = ? AND order_items.product_id = ?",
				userID, models.OrderStatusDelivered, req.ProductID).
			Count(&purchased).Error
		if err != nil {
			return fmt.Errorf("failed to check purchase history: %w", err)
		}
		if purchased == 0 {
			return apperrors.Forbidden("you can only review products from delivered orders")
		}

		var existing models.Review
		if err := tx.Where("product_id = ? AND user_id = ?", req.ProductID, userID).
			First(&existing).Error; err == nil {
			return apperrors.Conflict("you have already reviewed this product")
		}

		review = &models.Review{
			ProductID: req.ProductID,
			UserID:    userID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		return s.recalcProductRating(tx, req.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) GetProductReviews(productID uuid.UUID) ([]models.Review, *models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("product")
		}
		return nil, nil, fmt.Errorf("database error: %w", err)
	}

	var reviews []models.Review
	if err := s.db.Where("product_id = ?", productID).
		Preload("User").Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, &product, nil
}

func (s *ReviewService) UpdateReview(reviewID, userID uuid.UUID, req *UpdateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid review payload", utils.GetValidationErrors(err))
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("review")
			}
			return fmt.Errorf("database error: %w", err)
		}
		if review.UserID != userID {
			return apperrors.Forbidden("you can only update your own reviews")
		}

		review.Rating = req.Rating
		review.Comment = req.Comment
		if err := tx.Save(&review).Error; err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}

		return s.recalcProductRating(tx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) DeleteReview(reviewID, userID uuid.UUID, role models.UserRole) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("review")
			}
			return fmt.Errorf("database error: %w", err)
		}
		if review.UserID != userID && role != models.RoleAdmin {
			return apperrors.Forbidden("you can only delete your own reviews")
		}

		// Bypass the soft-delete scope so the (product_id, user_id) unique
		// slot frees up and the user can review the product again later.
		if err := tx.Unscoped().Delete(&review).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		return s.recalcProductRating(tx, review.ProductID)
	})
}

// recalcProductRating rewrites the product's derived aggregate fields from the
// surviving reviews. Deleting the last review resets both to zero.
func (s *ReviewService) recalcProductRating(tx *gorm.DB, productID uuid.UUID) error {
	var ratings []int
	if err := tx.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error; err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}

	average, count := pricing.RatingStats(ratings)
	if err := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"num_reviews":    count,
		}).Error; err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	return nil
}
