package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCustomerVerified, OrderCancelled} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("delivered "))
	assert.False(t, ValidOrderStatus("DELIVERED"))
	assert.False(t, ValidOrderStatus(""))
}

func TestValidPaymentStatus(t *testing.T) {
	assert.True(t, ValidPaymentStatus(PaymentPaid))
	assert.False(t, ValidPaymentStatus("part-paid"))
}

func TestPromoDiscountFor(t *testing.T) {
	now := time.Now()

	percent := PromoCode{Code: "SAVE10", Percent: 10, Active: true}
	assert.Equal(t, 200.0, percent.DiscountFor(2000, now))

	flat := PromoCode{Code: "FLAT500", Flat: 500, Active: true}
	assert.Equal(t, 500.0, flat.DiscountFor(2000, now))
	assert.Equal(t, 0.0, flat.DiscountFor(400, now), "flat discount larger than subtotal does not apply")

	inactive := PromoCode{Code: "OLD", Percent: 10}
	assert.Equal(t, 0.0, inactive.DiscountFor(2000, now))

	expired := PromoCode{Code: "GONE", Percent: 10, Active: true, ExpiresAt: now.Add(-time.Hour)}
	assert.Equal(t, 0.0, expired.DiscountFor(2000, now))

	minimum := PromoCode{Code: "BIG", Percent: 10, Active: true, MinSubtotal: 5000}
	assert.Equal(t, 0.0, minimum.DiscountFor(2000, now))
	assert.Equal(t, 600.0, minimum.DiscountFor(6000, now))
}

func TestCartSubtotal(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Price: 1500, Quantity: 2},
		{Price: 900, Quantity: 1},
	}}
	assert.Equal(t, 3900.0, cart.Subtotal())
}
