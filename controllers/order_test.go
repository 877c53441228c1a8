package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stitchlk-backend/models"
	"stitchlk-backend/services"
)

func TestDeliveryItemsExpandsQuantities(t *testing.T) {
	items := deliveryItems([]models.CartItem{
		{Category: "sarees", Quantity: 3},
		{Category: "shirts", Quantity: 1},
		{Category: "belts", Quantity: 0}, // zero-quantity lines still count as one unit
	})

	assert.Equal(t, []services.DeliveryItem{
		{Category: "sarees"},
		{Category: "sarees"},
		{Category: "sarees"},
		{Category: "shirts"},
		{Category: "belts"},
	}, items)
}

func TestDeliveryItemsEmptyCart(t *testing.T) {
	assert.Empty(t, deliveryItems(nil))
}
