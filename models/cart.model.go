package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a single line inside a user's cart.
type CartItem struct {
	ProductID int64   `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Code      string  `json:"code" bson:"code"`
	Category  string  `json:"category,omitempty" bson:"category,omitempty"`
	Size      string  `json:"size,omitempty" bson:"size,omitempty"`
	Color     string  `json:"color,omitempty" bson:"color,omitempty"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Cart is the per-user staging area of selected items. The document is
// replaced wholesale on every save; total is a cached sum of the lines.
type Cart struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Items     []CartItem         `json:"items" bson:"items"`
	Total     float64            `json:"total" bson:"total"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Subtotal recomputes the sum of the cart lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
