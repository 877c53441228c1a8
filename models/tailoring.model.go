package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tailoring order statuses.
const (
	TailoringRequested = "requested"
	TailoringMeasuring = "measuring"
	TailoringStitching = "stitching"
	TailoringFitting   = "fitting"
	TailoringCompleted = "completed"
	TailoringDelivered = "delivered"
)

var tailoringStatuses = map[string]bool{
	TailoringRequested: true,
	TailoringMeasuring: true,
	TailoringStitching: true,
	TailoringFitting:   true,
	TailoringCompleted: true,
	TailoringDelivered: true,
}

// ValidTailoringStatus reports whether s is a known tailoring status.
func ValidTailoringStatus(s string) bool { return tailoringStatuses[s] }

// TailoringOrder is a custom stitching request from the tailoring sub-module.
type TailoringOrder struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TailoringID  int64              `json:"tailoring_id" bson:"tailoring_id"`
	CustomerName string             `json:"customer_name" bson:"customer_name"`
	Phone        string             `json:"phone" bson:"phone"`
	GarmentType  string             `json:"garment_type" bson:"garment_type"`
	Measurements map[string]float64 `json:"measurements" bson:"measurements"`
	FabricNotes  string             `json:"fabric_notes,omitempty" bson:"fabric_notes,omitempty"`
	Quote        float64            `json:"quote,omitempty" bson:"quote,omitempty"`
	Status       string             `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// TailoringInput is the payload for creating a tailoring order.
type TailoringInput struct {
	CustomerName string             `json:"customer_name" binding:"required"`
	Phone        string             `json:"phone" binding:"required"`
	GarmentType  string             `json:"garment_type" binding:"required"`
	Measurements map[string]float64 `json:"measurements"`
	FabricNotes  string             `json:"fabric_notes"`
	Quote        float64            `json:"quote"`
}
