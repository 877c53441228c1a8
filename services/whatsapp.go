package services

import (
	"fmt"
	"net/url"
	"strings"

	"stitchlk-backend/models"
)

// BuildOrderMessage composes the plain-text order summary sent to the shop
// over WhatsApp at checkout completion.
func BuildOrderMessage(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New order %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "Customer: %s (%s)\n", order.CustomerName, order.Phone)
	fmt.Fprintf(&b, "Address: %s\n\n", order.Address)

	for _, item := range order.Items {
		line := fmt.Sprintf("- %s x%d", item.Name, item.Quantity)
		if item.Size != "" {
			line += fmt.Sprintf(" (size %s", item.Size)
			if item.Color != "" {
				line += ", " + item.Color
			}
			line += ")"
		}
		fmt.Fprintf(&b, "%s = Rs. %.2f\n", line, item.Price*float64(item.Quantity))
	}

	fmt.Fprintf(&b, "\nSubtotal: Rs. %.2f\n", order.Subtotal)
	if order.Discount > 0 {
		fmt.Fprintf(&b, "Discount (%s): -Rs. %.2f\n", order.PromoCode, order.Discount)
	}
	fmt.Fprintf(&b, "Delivery: Rs. %.2f\n", order.DeliveryCost)
	fmt.Fprintf(&b, "Total: Rs. %.2f", order.Total)

	return b.String()
}

// WhatsAppLink builds the wa.me deep link that opens a chat with the shop
// number, pre-filled with the given message.
func WhatsAppLink(shopNumber, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", shopNumber, url.QueryEscape(message))
}
