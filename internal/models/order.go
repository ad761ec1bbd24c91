// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is created once from a snapshot of the cart at checkout. The price
// fields are computed at creation and frozen; only status and the payment /
// delivery flags mutate afterwards.
type Order struct {
	BaseModel
	UserID          uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	Items           []OrderItem  `json:"cart_items" gorm:"foreignKey:OrderID"`
	ShippingAddress OrderAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string       `json:"payment_method" gorm:"size:50;not null"`

	TaxPrice      float64 `json:"tax_price" gorm:"type:decimal(10,2);not null"`
	ShippingPrice float64 `json:"shipping_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice    float64 `json:"total_price" gorm:"type:decimal(10,2);not null"`

	OrderStatus OrderStatus `json:"order_status" gorm:"type:varchar(20);default:'pending';index"`
	IsPaid      bool        `json:"is_paid" gorm:"default:false"`
	PaidAt      *time.Time  `json:"paid_at"`
	IsDelivered bool        `json:"is_delivered" gorm:"default:false"`
	DeliveredAt *time.Time  `json:"delivered_at"`

	PaymentReference string `json:"payment_reference,omitempty" gorm:"size:255"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// OrderAddress is the destination copied onto the order at checkout; a plain
// value, detached from the user's editable address book.
type OrderAddress struct {
	AddressLine1 string `json:"address_line1" gorm:"size:255;not null"`
	AddressLine2 string `json:"address_line2" gorm:"size:255"`
	Phone        string `json:"phone" gorm:"size:50"`
	Country      string `json:"country" gorm:"size:100;not null"`
	City         string `json:"city" gorm:"size:100;not null"`
}

// OrderItem is the frozen copy of one cart line: product reference plus the
// name and unit price as they were at checkout, immune to later catalog edits.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	UnitPrice float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// ApplyStatus moves the order to a new status and runs that status's side
// effects. Delivery is keyed off the explicit enum value, not a string match
// on a free-form label.
func (o *Order) ApplyStatus(status OrderStatus, now time.Time) {
	o.OrderStatus = status

	switch status {
	case OrderStatusDelivered:
		o.IsDelivered = true
		o.DeliveredAt = &now
	}
}

// MarkPaid records payment. Idempotent; the first payment timestamp wins.
func (o *Order) MarkPaid(now time.Time, reference string) {
	if !o.IsPaid {
		o.IsPaid = true
		o.PaidAt = &now
	}
	if reference != "" {
		o.PaymentReference = reference
	}
}
