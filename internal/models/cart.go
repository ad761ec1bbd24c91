// internal/models/cart.go
package models

import "github.com/google/uuid"

// Cart is the per-user staging area of intended purchases. TotalPrice is a
// cache of the last recompute, never a client-settable field; it reflects at
// most one applied coupon (applying a second coupon replaces the first).
type Cart struct {
	BaseModel
	UserID     uuid.UUID  `json:"user_id" gorm:"type:uuid;index;not null"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CouponID   *uuid.UUID `json:"coupon_id" gorm:"type:uuid"`
	TotalPrice float64    `json:"total_price" gorm:"type:decimal(10,2);not null;default:0"`

	Coupon *Coupon `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
}

// CartItem references a live product; its price is always read from the
// catalog at recompute time, never snapshotted here. Lines are hard-deleted:
// a soft-deleted row would keep occupying the (cart_id, product_id) unique
// slot and block re-adding the product.
type CartItem struct {
	BaseModel
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
