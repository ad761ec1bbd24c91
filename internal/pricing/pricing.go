// internal/pricing/pricing.go
package pricing

import "math"

// DiscountKind mirrors models.CouponType without importing models; the two are
// kept in sync by the coupon service.
type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

// Line is one cart position priced at the current catalog price.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemsTotal sums quantity x unit price across lines. An empty slice totals 0.
func ItemsTotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return Round2(total)
}

// Discount computes the raw discount a coupon takes off baseTotal.
// Percent values are interpreted as 0-100.
func Discount(kind DiscountKind, value, baseTotal float64) float64 {
	switch kind {
	case DiscountPercent:
		return Round2(baseTotal * value / 100)
	case DiscountFixed:
		return value
	default:
		return 0
	}
}

// ApplyDiscount clamps the discounted total at zero; a fixed coupon larger
// than the base total never drives the price negative.
func ApplyDiscount(baseTotal, discount float64) float64 {
	return Round2(math.Max(0, baseTotal-discount))
}

// OrderTotals derives the frozen tax and grand total for checkout. Each figure
// is computed from the raw inputs and rounded once.
func OrderTotals(itemsPrice, shippingPrice, taxRate float64) (taxPrice, totalPrice float64) {
	taxPrice = Round2(itemsPrice * taxRate)
	totalPrice = Round2(itemsPrice + taxPrice + shippingPrice)
	return taxPrice, totalPrice
}

// RatingStats reduces a product's review ratings to the denormalized pair
// stored on the product record. No reviews means 0 average.
func RatingStats(ratings []int) (average float64, count int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	var sum int
	for _, r := range ratings {
		sum += r
	}
	return Round2(float64(sum) / float64(len(ratings))), len(ratings)
}
