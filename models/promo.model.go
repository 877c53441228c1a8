package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PromoCode is a discount code applied at checkout. Either Percent or Flat is
// set, never both.
type PromoCode struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Code        string             `json:"code" bson:"code"`
	Percent     float64            `json:"percent,omitempty" bson:"percent,omitempty"`
	Flat        float64            `json:"flat,omitempty" bson:"flat,omitempty"`
	MinSubtotal float64            `json:"min_subtotal,omitempty" bson:"min_subtotal,omitempty"`
	ExpiresAt   time.Time          `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	Active      bool               `json:"active" bson:"active"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// DiscountFor returns the discount this code grants on the given subtotal,
// or 0 when the code does not apply.
func (p *PromoCode) DiscountFor(subtotal float64, now time.Time) float64 {
	if !p.Active {
		return 0
	}
	if !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt) {
		return 0
	}
	if subtotal < p.MinSubtotal {
		return 0
	}
	if p.Percent > 0 {
		return subtotal * p.Percent / 100
	}
	if p.Flat > 0 && p.Flat < subtotal {
		return p.Flat
	}
	return 0
}
