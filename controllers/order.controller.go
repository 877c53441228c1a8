// File: controllers/order.controller.go
package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stitchlk-backend/events"
	"stitchlk-backend/middlewares"
	"stitchlk-backend/models"
	"stitchlk-backend/services"
)

// resolveOrder finds an order by trying, in this sequence: ObjectID hex,
// numeric business id, order number.
func (ctrl *Controller) resolveOrder(ctx context.Context, id string) (*models.Order, error) {
	collection := ctrl.DB.Collection("orders")

	if objectID, err := primitive.ObjectIDFromHex(id); err == nil {
		var order models.Order
		err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
		if err == nil {
			return &order, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
	}

	if orderID, err := strconv.ParseInt(id, 10, 64); err == nil {
		var order models.Order
		err := collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
		if err == nil {
			return &order, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
	}

	var order models.Order
	err := collection.FindOne(ctx, bson.M{"order_number": strings.ToUpper(id)}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Checkout handles turning a user's cart into an order. The cart must be
// non-empty; the order id comes from the atomic counter; the cart is deleted
// after the order is written. The response carries the WhatsApp deep link the
// storefront redirects to.
func (ctrl *Controller) Checkout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	success := false
	defer func() { middlewares.RecordOrderOperation("checkout", success) }()

	userID := c.Param("userId")

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	carts := ctrl.DB.Collection("carts")
	var cart models.Cart
	err := carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments || (err == nil && len(cart.Items) == 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	subtotal := cart.Subtotal()

	location := req.Location
	if location == "" {
		location = req.Address
	}
	quote := services.CalculateDelivery(ctx, ctrl, services.DeliveryInput{
		Subtotal: subtotal,
		Location: location,
		Weight:   req.Weight,
		Items:    deliveryItems(cart.Items),
	})
	if !quote.Success {
		middlewares.RecordOrderOperation("delivery_quote", false)
	}

	var discount float64
	if req.PromoCode != "" {
		promo, err := ctrl.findPromo(ctx, req.PromoCode)
		if err != nil && err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if promo != nil {
			discount = promo.DiscountFor(subtotal, time.Now())
		}
		if discount == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Promo code is not valid for this order"})
			return
		}
	}

	orderID, err := ctrl.NextSequence(ctx, "orders")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	order := models.Order{
		OrderID:       orderID,
		OrderNumber:   fmt.Sprintf("ORD-%06d", orderID),
		UserID:        userID,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Address:       req.Address,
		Items:         cart.Items,
		Subtotal:      subtotal,
		DeliveryCost:  quote.DeliveryCost,
		Discount:      discount,
		PromoCode:     strings.ToUpper(req.PromoCode),
		Total:         subtotal + quote.DeliveryCost - discount,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if discount == 0 {
		order.PromoCode = ""
	}

	result, err := ctrl.DB.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	// The order exists from here on. A failed cart clear leaves a stale cart
	// behind; it is logged rather than failing the checkout.
	if _, err := carts.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		ctrl.Log.Warn().Err(err).Str("order", order.OrderNumber).Msg("cart clear failed after checkout")
	}

	ctrl.Events.Publish(events.OrderPlaced, order.OrderNumber, map[string]any{
		"customer": order.CustomerName,
		"total":    order.Total,
	})

	message := services.BuildOrderMessage(&order)
	success = true
	c.JSON(http.StatusCreated, gin.H{
		"order":         order,
		"message":       quote.Message,
		"whatsapp_link": services.WhatsAppLink(ctrl.ShopWhatsApp, message),
	})
}

func deliveryItems(items []models.CartItem) []services.DeliveryItem {
	var out []services.DeliveryItem
	for _, line := range items {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		for i := 0; i < qty; i++ {
			out = append(out, services.DeliveryItem{Category: line.Category})
		}
	}
	return out
}

// QuoteDelivery handles a standalone delivery-cost calculation for the
// storefront's checkout preview.
func (ctrl *Controller) QuoteDelivery(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		Subtotal float64           `json:"subtotal"`
		Location string            `json:"location"`
		Weight   float64           `json:"weight"`
		Items    []models.CartItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote := services.CalculateDelivery(ctx, ctrl, services.DeliveryInput{
		Subtotal: req.Subtotal,
		Location: req.Location,
		Weight:   req.Weight,
		Items:    deliveryItems(req.Items),
	})
	c.JSON(http.StatusOK, quote)
}

// GetOrders handles listing orders, newest first, with an optional status
// filter.
func (ctrl *Controller) GetOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	collection := ctrl.DB.Collection("orders")
	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var orderList []models.Order
	if err = cursor.All(ctx, &orderList); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orderList})
}

// GetUserOrders handles listing one user's orders.
func (ctrl *Controller) GetUserOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := ctrl.DB.Collection("orders")
	cursor, err := collection.Find(ctx, bson.M{"user_id": c.Param("userId")},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var orderList []models.Order
	if err = cursor.All(ctx, &orderList); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orderList})
}

// GetOrder handles fetching one order, with its status history, by any of
// its identifiers.
func (ctrl *Controller) GetOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := ctrl.resolveOrder(ctx, c.Param("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var history []models.OrderHistory
	cursor, err := ctrl.DB.Collection("order_history").Find(ctx, bson.M{"order_id": order.OrderID},
		options.Find().SetSort(bson.D{{Key: "changed_at", Value: 1}}))
	if err == nil {
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &history); err != nil {
			ctrl.Log.Warn().Err(err).Int64("order_id", order.OrderID).Msg("failed to load order history")
		}
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "history": history})
}

// UpdateOrderStatus handles changing an order's status. Unknown statuses are
// rejected; any transition between known statuses is accepted. A history
// record is appended only when the status actually changes.
func (ctrl *Controller) UpdateOrderStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	success := false
	defer func() { middlewares.RecordOrderOperation("status_update", success) }()

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status: " + req.Status})
		return
	}

	order, err := ctrl.resolveOrder(ctx, c.Param("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if order.Status == req.Status {
		success = true
		c.JSON(http.StatusOK, gin.H{"message": "Status unchanged", "order": order})
		return
	}

	previous := order.Status
	update := bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now()}}
	if _, err := ctrl.DB.Collection("orders").UpdateOne(ctx, bson.M{"_id": order.ID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	changedBy := req.ChangedBy
	if changedBy == "" {
		changedBy = c.GetString("userID")
	}
	history := models.OrderHistory{
		OrderID:        order.OrderID,
		PreviousStatus: previous,
		NewStatus:      req.Status,
		ChangedBy:      changedBy,
		Note:           req.Note,
		ChangedAt:      time.Now(),
	}
	if _, err := ctrl.DB.Collection("order_history").InsertOne(ctx, history); err != nil {
		// The status write already happened; reporting success here would
		// hide an unaudited change from the admin.
		ctrl.Log.Error().Err(err).Int64("order_id", order.OrderID).Msg("failed to append order history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order status updated but history could not be recorded"})
		return
	}

	order.Status = req.Status
	success = true
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

// UpdatePaymentStatus handles changing an order's payment status.
func (ctrl *Controller) UpdatePaymentStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidPaymentStatus(req.PaymentStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment status: " + req.PaymentStatus})
		return
	}

	order, err := ctrl.resolveOrder(ctx, c.Param("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"$set": bson.M{"payment_status": req.PaymentStatus, "updated_at": time.Now()}}
	if _, err := ctrl.DB.Collection("orders").UpdateOne(ctx, bson.M{"_id": order.ID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
}

// DeleteOrder handles the explicit admin delete; the history records stay.
func (ctrl *Controller) DeleteOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := ctrl.resolveOrder(ctx, c.Param("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := ctrl.DB.Collection("orders").DeleteOne(ctx, bson.M{"_id": order.ID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (ctrl *Controller) findPromo(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := ctrl.DB.Collection("promo_codes").FindOne(ctx, bson.M{"code": strings.ToUpper(code)}).Decode(&promo)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}
