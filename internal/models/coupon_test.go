// internal/models/coupon_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponActiveAt(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	coupon := &Coupon{Code: "SUMMER20", Type: CouponTypePercent, Value: 20, StartsAt: start, ExpiresAt: end}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before window", start.Add(-time.Second), false},
		{"exactly at start", start, true},
		{"inside window", start.AddDate(0, 0, 15), true},
		{"exactly at expiry", end, true},
		{"after window", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coupon.ActiveAt(tt.now))
		})
	}
}
