package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"stitchlk-backend/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		OrderNumber:  "ORD-000042",
		CustomerName: "Nimal Perera",
		Phone:        "0771234567",
		Address:      "12 Temple Road, Kandy",
		Items: []models.CartItem{
			{Name: "Linen Shirt", Size: "M", Color: "white", Quantity: 2, Price: 1500},
			{Name: "Batik Sarong", Quantity: 1, Price: 900},
		},
		Subtotal:     3900,
		DeliveryCost: 300,
		Total:        4200,
	}
}

func TestBuildOrderMessage(t *testing.T) {
	msg := BuildOrderMessage(sampleOrder())

	assert.Contains(t, msg, "New order ORD-000042")
	assert.Contains(t, msg, "Nimal Perera (0771234567)")
	assert.Contains(t, msg, "- Linen Shirt x2 (size M, white) = Rs. 3000.00")
	assert.Contains(t, msg, "- Batik Sarong x1 = Rs. 900.00")
	assert.Contains(t, msg, "Delivery: Rs. 300.00")
	assert.True(t, strings.HasSuffix(msg, "Total: Rs. 4200.00"))
}

func TestBuildOrderMessageWithDiscount(t *testing.T) {
	order := sampleOrder()
	order.PromoCode = "AVURUDU10"
	order.Discount = 390
	order.Total = 3810

	msg := BuildOrderMessage(order)
	assert.Contains(t, msg, "Discount (AVURUDU10): -Rs. 390.00")
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("94770000000", "New order ORD-000042\nTotal: Rs. 4200.00")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/94770000000?text="))
	assert.NotContains(t, link, "\n", "message must be URL-encoded")
	assert.Contains(t, link, "ORD-000042")
}
