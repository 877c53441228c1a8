package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category defines the structure for a product category.
type Category struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Slug          string             `json:"slug" bson:"slug"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	DeliveryCost  float64            `json:"delivery_cost" bson:"delivery_cost"`
	Subcategories []string           `json:"subcategories,omitempty" bson:"subcategories,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	DeliveryCost  float64  `json:"delivery_cost"`
	Subcategories []string `json:"subcategories"`
}
