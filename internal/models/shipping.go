// internal/models/shipping.go
package models

// ShippingRate maps a city to its flat shipping price. Cities absent from the
// table ship free; checkout treats a missing row as price 0, not an error.
type ShippingRate struct {
	BaseModel
	City  string  `json:"city" gorm:"index;size:100;not null"`
	Price float64 `json:"price" gorm:"type:decimal(10,2);not null"`
}
