// File: controllers/cart.controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stitchlk-backend/models"
)

// GetCart handles fetching a user's cart. A user without a cart gets an
// empty one rather than a 404.
func (ctrl *Controller) GetCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID := c.Param("userId")

	var cart models.Cart
	collection := ctrl.DB.Collection("carts")
	err := collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusOK, gin.H{"cart": models.Cart{UserID: userID, Items: []models.CartItem{}}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// SaveCart handles replacing a user's cart wholesale. The cached total is
// recomputed server-side from the lines.
func (ctrl *Controller) SaveCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID := c.Param("userId")

	var cart models.Cart
	if err := c.ShouldBindJSON(&cart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, item := range cart.Items {
		if item.Quantity <= 0 || item.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart line"})
			return
		}
	}

	cart.ID = primitive.NilObjectID
	cart.UserID = userID
	cart.Total = cart.Subtotal()
	cart.UpdatedAt = time.Now()

	collection := ctrl.DB.Collection("carts")
	_, err := collection.ReplaceOne(ctx, bson.M{"user_id": userID}, cart, options.Replace().SetUpsert(true))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// AddToCart handles adding one line to a user's cart, merging with an
// existing line for the same product, size and color.
func (ctrl *Controller) AddToCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID := c.Param("userId")

	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		return
	}

	collection := ctrl.DB.Collection("carts")

	var cart models.Cart
	err := collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cart.UserID = userID

	merged := false
	for i := range cart.Items {
		line := &cart.Items[i]
		if line.ProductID == item.ProductID && line.Size == item.Size && line.Color == item.Color {
			line.Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}
	cart.Total = cart.Subtotal()
	cart.UpdatedAt = time.Now()

	cart.ID = primitive.NilObjectID
	_, err = collection.ReplaceOne(ctx, bson.M{"user_id": userID}, cart, options.Replace().SetUpsert(true))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// RemoveFromCart handles deleting one line from a user's cart.
func (ctrl *Controller) RemoveFromCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID := c.Param("userId")

	var target models.CartItem
	if err := c.ShouldBindJSON(&target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := ctrl.DB.Collection("carts")

	var cart models.Cart
	if err := collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	kept := cart.Items[:0]
	for _, line := range cart.Items {
		if line.ProductID == target.ProductID && line.Size == target.Size && line.Color == target.Color {
			continue
		}
		kept = append(kept, line)
	}
	cart.Items = kept
	cart.Total = cart.Subtotal()
	cart.UpdatedAt = time.Now()

	cart.ID = primitive.NilObjectID
	if _, err := collection.ReplaceOne(ctx, bson.M{"user_id": userID}, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// ClearCart handles emptying a user's cart.
func (ctrl *Controller) ClearCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID := c.Param("userId")

	collection := ctrl.DB.Collection("carts")
	if _, err := collection.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
