// File: controllers/product.controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stitchlk-backend/events"
	"stitchlk-backend/middlewares"
	"stitchlk-backend/models"
)

// GetProducts handles listing products, with optional category and status
// filters.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	collection := ctrl.DB.Collection("products")
	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var productList []models.Product
	if err = cursor.All(ctx, &productList); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": productList})
}

// CreateProduct handles creating a new product.
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if product.Name == "" || product.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and code are required"})
		return
	}
	for _, s := range product.Sizes {
		if s.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
	}

	if product.ImageBase64 != "" && ctrl.Cld != nil {
		uploadResult, err := ctrl.Cld.Upload.Upload(
			context.Background(),
			product.ImageBase64,
			uploader.UploadParams{Folder: "stitchlk/products"},
		)
		if err != nil {
			ctrl.Log.Error().Err(err).Msg("cloudinary upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		product.ImageURL = uploadResult.SecureURL
		product.Image = uploadResult.PublicID
	}

	productID, err := ctrl.NextSequence(ctx, "products")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	product.ProductID = productID
	product.Stock = product.Sizes.TotalStock()
	if product.Status == "" {
		product.Status = models.ProductOutOfStock
		if product.Stock > 0 {
			product.Status = models.ProductInStock
		}
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	product.ImageBase64 = ""

	collection := ctrl.DB.Collection("products")
	result, err := collection.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Product code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	product.ID = result.InsertedID.(primitive.ObjectID)
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetProduct handles fetching one product by ID.
func (ctrl *Controller) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var product models.Product
	collection := ctrl.DB.Collection("products")
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct handles updating a product.
func (ctrl *Controller) UpdateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var updateData models.Product
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, s := range updateData.Sizes {
		if s.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
	}
	if updateData.Status != "" && !models.ValidProductStatus(updateData.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product status: " + updateData.Status})
		return
	}

	if updateData.ImageBase64 != "" && ctrl.Cld != nil {
		uploadResult, err := ctrl.Cld.Upload.Upload(
			context.Background(),
			updateData.ImageBase64,
			uploader.UploadParams{Folder: "stitchlk/products"},
		)
		if err != nil {
			ctrl.Log.Error().Err(err).Msg("cloudinary upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		updateData.ImageURL = uploadResult.SecureURL
		updateData.Image = uploadResult.PublicID
	}

	update := bson.M{"$set": buildProductUpdate(updateData, time.Now())}

	collection := ctrl.DB.Collection("products")
	result, err := collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Product code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// buildProductUpdate assembles the $set document from the fields the caller
// actually supplied. A partial payload must never overwrite identity fields
// such as product_id or created_at with zero values.
func buildProductUpdate(p models.Product, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if p.Name != "" {
		set["name"] = p.Name
	}
	if p.Code != "" {
		set["code"] = p.Code
	}
	if p.Price > 0 {
		set["price"] = p.Price
	}
	if p.Description != "" {
		set["description"] = p.Description
	}
	if p.Category != "" {
		set["category"] = p.Category
	}
	if p.Subcategory != "" {
		set["subcategory"] = p.Subcategory
	}
	if p.Sizes != nil {
		set["sizes"] = p.Sizes
		set["stock"] = p.Sizes.TotalStock()
	}
	if p.Status != "" {
		set["status"] = p.Status
	}
	if p.Image != "" {
		set["image"] = p.Image
	}
	if p.ImageURL != "" {
		set["image_url"] = p.ImageURL
	}
	return set
}

// DeleteProduct handles removing a product.
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	collection := ctrl.DB.Collection("products")
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// RestockProduct handles adding per-size quantities to a product's inventory.
// Only sizes already present on the product are touched; a notification event
// fires best-effort when requested.
func (ctrl *Controller) RestockProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	success := false
	defer func() { middlewares.RecordOrderOperation("restock", success) }()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req models.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for size, qty := range req.Quantities {
		if qty < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity for size " + size + " cannot be negative"})
			return
		}
	}

	collection := ctrl.DB.Collection("products")

	var product models.Product
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	added := product.ApplyRestock(req.Quantities)
	product.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"sizes":      product.Sizes,
		"stock":      product.Stock,
		"status":     product.Status,
		"updated_at": product.UpdatedAt,
	}}
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": objectID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if added > 0 && req.Notify {
		ctrl.Events.Publish(events.StockRestocked, product.Code, map[string]any{
			"product": product.Name,
			"added":   added,
			"stock":   product.Stock,
		})
	}

	success = true
	c.JSON(http.StatusOK, gin.H{"message": "Product restocked", "added": added, "product": product})
}

// GetLowStockProducts handles listing products at or under the given stock
// threshold (default 5).
func (ctrl *Controller) GetLowStockProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	threshold := 5
	if v := c.Query("threshold"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			threshold = n
		}
	}

	collection := ctrl.DB.Collection("products")
	cursor, err := collection.Find(ctx, bson.M{
		"stock":  bson.M{"$lte": threshold},
		"status": bson.M{"$ne": models.ProductDisabled},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var productList []models.Product
	if err = cursor.All(ctx, &productList); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": productList})
}
