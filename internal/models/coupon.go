// internal/models/coupon.go
package models

import "time"

type Coupon struct {
	BaseModel
	Code      string     `json:"code" gorm:"index;size:50;not null"`
	Type      CouponType `json:"type" gorm:"type:varchar(10);not null"`
	Value     float64    `json:"value" gorm:"type:decimal(10,2);not null"`
	StartsAt  time.Time  `json:"starts_at" gorm:"not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
}

// ActiveAt reports whether now falls inside the redemption window, inclusive
// at both ends. Active status is derived, never stored.
func (c *Coupon) ActiveAt(now time.Time) bool {
	return !c.StartsAt.After(now) && !c.ExpiresAt.Before(now)
}
