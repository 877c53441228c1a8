package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Transitions between known statuses are free-form (an admin
// can move an order backwards), but unknown strings are rejected at the API.
const (
	OrderPending          = "pending"
	OrderConfirmed        = "confirmed"
	OrderProcessing       = "processing"
	OrderShipped          = "shipped"
	OrderDelivered        = "delivered"
	OrderCustomerVerified = "customer_verified"
	OrderCancelled        = "cancelled"
)

// Payment statuses.
const (
	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

var orderStatuses = map[string]bool{
	OrderPending:          true,
	OrderConfirmed:        true,
	OrderProcessing:       true,
	OrderShipped:          true,
	OrderDelivered:        true,
	OrderCustomerVerified: true,
	OrderCancelled:        true,
}

var paymentStatuses = map[string]bool{
	PaymentUnpaid:   true,
	PaymentPaid:     true,
	PaymentRefunded: true,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool { return orderStatuses[s] }

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool { return paymentStatuses[s] }

// Order is a placed order: a snapshot of the cart at checkout time plus the
// delivery quote and the customer's contact details.
type Order struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrderID       int64              `json:"order_id" bson:"order_id"`
	OrderNumber   string             `json:"order_number" bson:"order_number"`
	UserID        string             `json:"user_id" bson:"user_id"`
	CustomerName  string             `json:"customer_name" bson:"customer_name"`
	Phone         string             `json:"phone" bson:"phone"`
	Address       string             `json:"address" bson:"address"`
	Items         []CartItem         `json:"items" bson:"items"`
	Subtotal      float64            `json:"subtotal" bson:"subtotal"`
	DeliveryCost  float64            `json:"delivery_cost" bson:"delivery_cost"`
	Discount      float64            `json:"discount,omitempty" bson:"discount,omitempty"`
	PromoCode     string             `json:"promo_code,omitempty" bson:"promo_code,omitempty"`
	Total         float64            `json:"total" bson:"total"`
	Status        string             `json:"status" bson:"status"`
	PaymentStatus string             `json:"payment_status" bson:"payment_status"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// OrderHistory is one append-only record of an order status change.
type OrderHistory struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrderID        int64              `json:"order_id" bson:"order_id"`
	PreviousStatus string             `json:"previous_status" bson:"previous_status"`
	NewStatus      string             `json:"new_status" bson:"new_status"`
	ChangedBy      string             `json:"changed_by" bson:"changed_by"`
	Note           string             `json:"note,omitempty" bson:"note,omitempty"`
	ChangedAt      time.Time          `json:"changed_at" bson:"changed_at"`
}

// Counter backs the sequential id allocator. One document per collection,
// bumped with an atomic $inc.
type Counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// CheckoutRequest is the payload for turning a cart into an order.
type CheckoutRequest struct {
	CustomerName string  `json:"customer_name" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Location     string  `json:"location"`
	Weight       float64 `json:"weight"`
	PromoCode    string  `json:"promo_code"`
}

// StatusUpdateRequest is the payload for changing an order's status.
type StatusUpdateRequest struct {
	Status    string `json:"status" binding:"required"`
	ChangedBy string `json:"changed_by"`
	Note      string `json:"note"`
}
