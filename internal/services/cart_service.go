// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/models"
	"github.com/shopora/backend/internal/pricing"
	"github.com/shopora/backend/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *CartService) GetCart(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("user_id = ?", userID).
		Preload("Items.Product").Preload("Coupon").
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	cart = models.Cart{UserID: userID}
	if err := s.db.Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return &cart, nil
}

// AddItem puts quantity units of a product into the cart. If the product is
// already present the quantities add up rather than duplicating the line.
func (s *CartService) AddItem(userID uuid.UUID, req *AddItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("product id and a quantity of at least 1 are required", utils.GetValidationErrors(err))
	}

	var cartID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("product")
			}
			return fmt.Errorf("database error: %w", err)
		}

		cart, err := s.lockCart(tx, userID)
		if err != nil {
			return err
		}
		cartID = cart.ID

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity += req.Quantity
			if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{CartID: cart.ID, ProductID: req.ProductID, Quantity: req.Quantity}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to add cart item: %w", err)
			}
		default:
			return fmt.Errorf("database error: %w", err)
		}

		_, err = s.RecalcTotal(tx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.loadCart(cartID)
}

// UpdateItemQuantity replaces (not adds to) an item's quantity.
func (s *CartService) UpdateItemQuantity(userID, productID uuid.UUID, req *UpdateItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("a quantity of at least 1 is required", utils.GetValidationErrors(err))
	}

	var cartID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("product")
			}
			return fmt.Errorf("database error: %w", err)
		}

		cart, err := s.lockCart(tx, userID)
		if err != nil {
			return err
		}
		cartID = cart.ID

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Update("quantity", req.Quantity)
		if res.Error != nil {
			return fmt.Errorf("failed to update cart item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("cart item")
		}

		_, err = s.RecalcTotal(tx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.loadCart(cartID)
}

// RemoveItem drops a product line from the cart. Removing a product that is
// not in the cart is a silent no-op.
func (s *CartService) RemoveItem(userID, productID uuid.UUID) (*models.Cart, error) {
	var cartID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, userID)
		if err != nil {
			return err
		}
		cartID = cart.ID

		if err := removeCartLines(tx, cart.ID, &productID).Error; err != nil {
			return fmt.Errorf("failed to remove cart item: %w", err)
		}

		_, err = s.RecalcTotal(tx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.loadCart(cartID)
}

// Clear empties the cart and zeroes its total unconditionally.
func (s *CartService) Clear(userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, userID)
		if err != nil {
			return err
		}

		if err := removeCartLines(tx, cart.ID, nil).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return tx.Model(cart).Updates(map[string]interface{}{
			"total_price": 0,
			"coupon_id":   nil,
		}).Error
	})
}

// RecalcTotal recomputes the cart total from the items' quantities and the
// current catalog prices, persists it, and returns it. It must run after
// every structural mutation; a deleted product referenced by the cart fails
// the recompute rather than being pruned silently. Callers hold the cart row
// lock when invoked inside a transaction.
func (s *CartService) RecalcTotal(tx *gorm.DB, cart *models.Cart) (float64, error) {
	var items []models.CartItem
	if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return 0, fmt.Errorf("failed to load cart items: %w", err)
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		var product models.Product
		if err := tx.Select("id", "price").First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, apperrors.NotFound("product")
			}
			return 0, fmt.Errorf("database error: %w", err)
		}
		lines = append(lines, pricing.Line{UnitPrice: product.Price, Quantity: item.Quantity})
	}

	total := pricing.ItemsTotal(lines)
	if err := tx.Model(cart).Update("total_price", total).Error; err != nil {
		return 0, fmt.Errorf("failed to persist cart total: %w", err)
	}

	cart.TotalPrice = total
	return total, nil
}

// removeCartLines drops cart line rows outright. The delete must bypass the
// soft-delete scope: a soft-deleted line still occupies the
// (cart_id, product_id) unique slot and would turn re-adding the product
// into a constraint violation. A nil productID drops every line in the cart.
func removeCartLines(tx *gorm.DB, cartID uuid.UUID, productID *uuid.UUID) *gorm.DB {
	q := tx.Unscoped().Where("cart_id = ?", cartID)
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	return q.Delete(&models.CartItem{})
}

// lockCart fetches the user's cart FOR UPDATE, creating it lazily. The row
// lock serializes concurrent read-modify-write sequences on the same cart.
func (s *CartService) lockCart(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	cart = models.Cart{UserID: userID}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return &cart, nil
}

func (s *CartService) loadCart(cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.Preload("Items.Product").Preload("Coupon").
		First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload cart: %w", err)
	}
	return &cart, nil
}
