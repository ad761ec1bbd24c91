// internal/models/order_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, OrderStatus("Delivered").Valid())
	assert.False(t, OrderStatus("unknown").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderApplyStatus(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)

	order := &Order{OrderStatus: OrderStatusPending}
	order.ApplyStatus(OrderStatusShipped, now)
	assert.Equal(t, OrderStatusShipped, order.OrderStatus)
	assert.False(t, order.IsDelivered)
	assert.Nil(t, order.DeliveredAt)

	order.ApplyStatus(OrderStatusDelivered, now)
	assert.Equal(t, OrderStatusDelivered, order.OrderStatus)
	assert.True(t, order.IsDelivered)
	assert.Equal(t, now, *order.DeliveredAt)
}

func TestOrderMarkPaid(t *testing.T) {
	first := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	order := &Order{}
	order.MarkPaid(first, "pi_123")
	assert.True(t, order.IsPaid)
	assert.Equal(t, first, *order.PaidAt)
	assert.Equal(t, "pi_123", order.PaymentReference)

	// re-paying keeps the first timestamp
	order.MarkPaid(second, "")
	assert.Equal(t, first, *order.PaidAt)
	assert.Equal(t, "pi_123", order.PaymentReference)
}
