// File: controllers/stats.controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"stitchlk-backend/models"
)

// HealthCheck reports the database connection status.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := ctrl.DB.Client().Ping(ctx, nil)
	dbStatus := "connected"
	if err != nil {
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().Unix(),
	})
}

// GetStats aggregates the admin dashboard numbers with $group pipelines.
func (ctrl *Controller) GetStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products := ctrl.DB.Collection("products")
	orders := ctrl.DB.Collection("orders")
	users := ctrl.DB.Collection("users")
	tailoring := ctrl.DB.Collection("tailoring_orders")

	totalProducts, _ := products.CountDocuments(ctx, bson.M{})
	totalOrders, _ := orders.CountDocuments(ctx, bson.M{})
	totalCustomers, _ := users.CountDocuments(ctx, bson.M{"role": models.RoleCustomer})
	pendingTailoring, _ := tailoring.CountDocuments(ctx, bson.M{
		"status": bson.M{"$nin": []string{models.TailoringCompleted, models.TailoringDelivered}},
	})

	inventoryValue, err := ctrl.sumPipeline(ctx, products, []bson.M{
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$multiply": []string{"$price", "$stock"}}},
		}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalRevenue, err := ctrl.sumPipeline(ctx, orders, []bson.M{
		{"$match": bson.M{"payment_status": models.PaymentPaid}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ordersByStatus, err := ctrl.countByStatus(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	revenueByMonth, err := ctrl.revenueByMonth(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats := models.Stats{
		TotalProducts:    totalProducts,
		TotalOrders:      totalOrders,
		TotalCustomers:   totalCustomers,
		TotalRevenue:     totalRevenue,
		InventoryValue:   inventoryValue,
		OrdersByStatus:   ordersByStatus,
		RevenueByMonth:   revenueByMonth,
		PendingTailoring: pendingTailoring,
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// sumPipeline runs an aggregation that groups everything into a single
// document with a "total" field and returns that number, 0 when the
// collection is empty.
func (ctrl *Controller) sumPipeline(ctx context.Context, coll *mongo.Collection, pipeline []bson.M) (float64, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result []bson.M
	if err := cursor.All(ctx, &result); err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, nil
	}

	switch v := result[0]["total"].(type) {
	case float64:
		return v, nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, nil
}

func (ctrl *Controller) revenueByMonth(ctx context.Context) (map[string]float64, error) {
	cursor, err := ctrl.DB.Collection("orders").Aggregate(ctx, []bson.M{
		{"$match": bson.M{"payment_status": models.PaymentPaid}},
		{"$group": bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$created_at"}},
			"total": bson.M{"$sum": "$total"},
		}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Month string  `bson:"_id"`
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	byMonth := make(map[string]float64, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row.Total
	}
	return byMonth, nil
}

func (ctrl *Controller) countByStatus(ctx context.Context) (map[string]int64, error) {
	cursor, err := ctrl.DB.Collection("orders").Aggregate(ctx, []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}
	return byStatus, nil
}
