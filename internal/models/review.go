// internal/models/review.go
package models

import "github.com/google/uuid"

// Review is one user's verdict on one purchased product. The unique index
// backs the one-review-per-(product,user) rule, but creation also checks it
// explicitly so callers get a clean error instead of a constraint violation.
type Review struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_user"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
