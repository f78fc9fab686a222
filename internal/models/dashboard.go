package models

import "github.com/shopspring/decimal"

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DashboardStats struct {
	ProductCount       int               `json:"product_count"`
	OrderCount         int               `json:"order_count"`
	UserCount          int               `json:"user_count"`
	TotalRevenue       decimal.Decimal   `json:"total_revenue"`
	RecentOrders       []Order           `json:"recent_orders"`
	LowStock           []InventoryRecord `json:"low_stock"`
	ProductsByCategory []CategoryCount   `json:"products_by_category"`
}
