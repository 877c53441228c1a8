// File: controllers/address.controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stitchlk-backend/models"
)

// GetAddresses handles listing a user's saved addresses.
func (ctrl *Controller) GetAddresses(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := ctrl.DB.Collection("addresses")
	cursor, err := collection.Find(ctx, bson.M{"user_id": c.Param("userId")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var addressList []models.Address
	if err = cursor.All(ctx, &addressList); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addressList})
}

// CreateAddress handles saving a new address. Marking it default clears the
// flag on the user's other addresses.
func (ctrl *Controller) CreateAddress(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var input models.AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := ctrl.DB.Collection("addresses")

	if input.IsDefault {
		_, err := collection.UpdateMany(ctx,
			bson.M{"user_id": input.UserID, "is_default": true},
			bson.M{"$set": bson.M{"is_default": false}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	address := models.Address{
		UserID:    input.UserID,
		Label:     input.Label,
		Line1:     input.Line1,
		Line2:     input.Line2,
		City:      input.City,
		Phone:     input.Phone,
		IsDefault: input.IsDefault,
		CreatedAt: time.Now(),
	}

	result, err := collection.InsertOne(ctx, address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	address.ID = result.InsertedID.(primitive.ObjectID)
	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// UpdateAddress handles editing a saved address.
func (ctrl *Controller) UpdateAddress(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
		return
	}

	var input models.AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := ctrl.DB.Collection("addresses")

	if input.IsDefault {
		_, err := collection.UpdateMany(ctx,
			bson.M{"user_id": input.UserID, "is_default": true, "_id": bson.M{"$ne": objectID}},
			bson.M{"$set": bson.M{"is_default": false}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	update := bson.M{"$set": bson.M{
		"label":      input.Label,
		"line1":      input.Line1,
		"line2":      input.Line2,
		"city":       input.City,
		"phone":      input.Phone,
		"is_default": input.IsDefault,
	}}
	result, err := collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully"})
}

// DeleteAddress handles removing a saved address.
func (ctrl *Controller) DeleteAddress(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
		return
	}

	collection := ctrl.DB.Collection("addresses")
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}
