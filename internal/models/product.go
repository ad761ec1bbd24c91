// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:255;not null"`
	Slug        string         `json:"slug" gorm:"size:255;index"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	CategoryID  uuid.UUID      `json:"category_id" gorm:"type:uuid;not null;index"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`

	// Derived rating fields. Written only by the review aggregator.
	AverageRating float64 `json:"average_rating" gorm:"type:decimal(3,2);default:0"`
	NumReviews    int64   `json:"num_reviews" gorm:"default:0"`

	// Relationships
	Category Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	Reviews  []Review       `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductImage is one hosted image of a product; Key is the object-store
// handle used to delete the file when images are replaced.
type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Image     `gorm:"embedded"`
}
