// internal/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.01, Round2(10.006))
	assert.Equal(t, 10.0, Round2(10.004))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 133.99, Round2(133.994))
}

func TestItemsTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  float64
	}{
		{"empty cart", nil, 0},
		{"single line", []Line{{UnitPrice: 19.99, Quantity: 2}}, 39.98},
		{
			"mixed lines",
			[]Line{
				{UnitPrice: 10, Quantity: 3},
				{UnitPrice: 5.50, Quantity: 1},
			},
			35.50,
		},
		{
			"fractional rounding",
			[]Line{
				{UnitPrice: 0.1, Quantity: 3},
			},
			0.30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ItemsTotal(tt.lines))
		})
	}
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name      string
		kind      DiscountKind
		value     float64
		baseTotal float64
		want      float64
	}{
		{"20 percent of 100", DiscountPercent, 20, 100, 20},
		{"percent rounds to cents", DiscountPercent, 15, 99.99, 15.0},
		{"fixed amount passes through", DiscountFixed, 30, 100, 30},
		{"fixed larger than base still reported whole", DiscountFixed, 30, 20, 30},
		{"zero percent", DiscountPercent, 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Discount(tt.kind, tt.value, tt.baseTotal))
		})
	}
}

func TestApplyDiscount(t *testing.T) {
	// 20% off a 100.00 cart leaves 80.00
	assert.Equal(t, 80.0, ApplyDiscount(100, Discount(DiscountPercent, 20, 100)))

	// a fixed discount larger than the cart clamps at zero, never negative
	assert.Equal(t, 0.0, ApplyDiscount(20, Discount(DiscountFixed, 30, 20)))

	assert.Equal(t, 70.0, ApplyDiscount(100, 30))
	assert.Equal(t, 100.0, ApplyDiscount(100, 0))
}

func TestOrderTotals(t *testing.T) {
	// 14% tax: items 100 + shipping 20 -> tax 14, total 134
	tax, total := OrderTotals(100, 20, 0.14)
	assert.Equal(t, 14.0, tax)
	assert.Equal(t, 134.0, total)

	// free shipping city
	tax, total = OrderTotals(50, 0, 0.14)
	assert.Equal(t, 7.0, tax)
	assert.Equal(t, 57.0, total)

	// zero tax rate
	tax, total = OrderTotals(100, 10, 0)
	assert.Equal(t, 0.0, tax)
	assert.Equal(t, 110.0, total)

	// cents round at the boundary
	tax, total = OrderTotals(99.99, 5.01, 0.14)
	assert.Equal(t, 14.0, tax)
	assert.Equal(t, 119.0, total)
}

func TestRatingStats(t *testing.T) {
	avg, count := RatingStats([]int{5, 4, 3})
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 3, count)

	avg, count = RatingStats([]int{5})
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 1, count)

	// no reviews resets both aggregates
	avg, count = RatingStats(nil)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, count)
}
