// File: controllers/tailoring.controller.go
package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stitchlk-backend/events"
	"stitchlk-backend/models"
)

// CreateTailoringOrder handles a new custom stitching request.
func (ctrl *Controller) CreateTailoringOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var input models.TailoringInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tailoringID, err := ctrl.NextSequence(ctx, "tailoring_orders")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	order := models.TailoringOrder{
		TailoringID:  tailoringID,
		CustomerName: input.CustomerName,
		Phone:        input.Phone,
		GarmentType:  input.GarmentType,
		Measurements: input.Measurements,
		FabricNotes:  input.FabricNotes,
		Quote:        input.Quote,
		Status:       models.TailoringRequested,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	result, err := ctrl.DB.Collection("tailoring_orders").InsertOne(ctx, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	order.ID = result.InsertedID.(primitive.ObjectID)
	c.JSON(http.StatusCreated, gin.H{"tailoring_order": order})
}

// GetTailoringOrders handles listing tailoring orders, with an optional
// status filter.
func (ctrl *Controller) GetTailoringOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	collection := ctrl.DB.Collection("tailoring_orders")
	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var orderList []models.TailoringOrder
	if err = cursor.All(ctx, &orderList); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tailoring_orders": orderList})
}

// GetTailoringOrder handles fetching one tailoring order.
func (ctrl *Controller) GetTailoringOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tailoring order ID"})
		return
	}

	var order models.TailoringOrder
	collection := ctrl.DB.Collection("tailoring_orders")
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tailoring order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tailoring_order": order})
}

// UpdateTailoringStatus handles moving a tailoring order through its
// workflow and notifies the customer best-effort.
func (ctrl *Controller) UpdateTailoringStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tailoring order ID"})
		return
	}

	var req struct {
		Status string  `json:"status" binding:"required"`
		Quote  float64 `json:"quote"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidTailoringStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tailoring status: " + req.Status})
		return
	}

	set := bson.M{"status": req.Status, "updated_at": time.Now()}
	if req.Quote > 0 {
		set["quote"] = req.Quote
	}

	collection := ctrl.DB.Collection("tailoring_orders")
	var order models.TailoringOrder
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tailoring order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctrl.Events.Publish(events.TailoringUpdate, fmt.Sprintf("TLR-%06d", order.TailoringID), map[string]any{
		"customer": order.CustomerName,
		"phone":    order.Phone,
		"status":   order.Status,
	})

	c.JSON(http.StatusOK, gin.H{"tailoring_order": order})
}
