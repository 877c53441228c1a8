package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a saved delivery address for a user.
type Address struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Label     string             `json:"label,omitempty" bson:"label,omitempty"`
	Line1     string             `json:"line1" bson:"line1"`
	Line2     string             `json:"line2,omitempty" bson:"line2,omitempty"`
	City      string             `json:"city" bson:"city"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	IsDefault bool               `json:"is_default" bson:"is_default"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// AddressInput is the payload for creating or updating an address.
type AddressInput struct {
	UserID    string `json:"user_id" binding:"required"`
	Label     string `json:"label"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" binding:"required"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default"`
}
