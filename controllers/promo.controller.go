// File: controllers/promo.controller.go
package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stitchlk-backend/models"
)

// GetPromoCodes handles listing all promo codes.
func (ctrl *Controller) GetPromoCodes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := ctrl.DB.Collection("promo_codes")
	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var codes []models.PromoCode
	if err = cursor.All(ctx, &codes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"promo_codes": codes})
}

// CreatePromoCode handles creating a promo code. An omitted code gets a
// generated one.
func (ctrl *Controller) CreatePromoCode(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var promo models.PromoCode
	if err := c.ShouldBindJSON(&promo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if promo.Percent > 0 && promo.Flat > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Set either percent or flat, not both"})
		return
	}
	if promo.Percent < 0 || promo.Percent > 100 || promo.Flat < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount amount"})
		return
	}

	if promo.Code == "" {
		promo.Code = strings.ToUpper(uuid.NewString()[:8])
	} else {
		promo.Code = strings.ToUpper(promo.Code)
	}
	promo.Active = true
	promo.CreatedAt = time.Now()

	collection := ctrl.DB.Collection("promo_codes")
	result, err := collection.InsertOne(ctx, promo)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Promo code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	promo.ID = result.InsertedID.(primitive.ObjectID)
	c.JSON(http.StatusCreated, gin.H{"promo_code": promo})
}

// ValidatePromoCode handles checking a code against a subtotal and returns
// the discount it would grant.
func (ctrl *Controller) ValidatePromoCode(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		Code     string  `json:"code" binding:"required"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo, err := ctrl.findPromo(ctx, req.Code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promo code not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	discount := promo.DiscountFor(req.Subtotal, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"valid":    discount > 0,
		"discount": discount,
		"total":    req.Subtotal - discount,
	})
}

// DeletePromoCode handles removing a promo code.
func (ctrl *Controller) DeletePromoCode(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promo code ID"})
		return
	}

	collection := ctrl.DB.Collection("promo_codes")
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promo code not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Promo code deleted successfully"})
}
