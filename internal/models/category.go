// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"index;size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
	Image       Image  `json:"image" gorm:"embedded;embeddedPrefix:image_"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}
