package models

// Stats is the admin dashboard summary.
type Stats struct {
	TotalProducts    int64              `json:"total_products"`
	TotalOrders      int64              `json:"total_orders"`
	TotalCustomers   int64              `json:"total_customers"`
	TotalRevenue     float64            `json:"total_revenue"`
	InventoryValue   float64            `json:"inventory_value"`
	OrdersByStatus   map[string]int64   `json:"orders_by_status"`
	RevenueByMonth   map[string]float64 `json:"revenue_by_month,omitempty"`
	PendingTailoring int64              `json:"pending_tailoring"`
}
