// internal/models/wishlist.go
package models

import (
	"github.com/google/uuid"
)

type Wishlist struct {
	BaseModel
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Products []Product `json:"products" gorm:"many2many:wishlist_products"`
}
