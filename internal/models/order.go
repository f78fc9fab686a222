package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}

	return false
}

// ProductRef is the joined product of an order line item.
type ProductRef struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Product   *ProductRef     `json:"product,omitempty"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
	ContactPhone    string          `json:"contact_phone"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItem     `json:"items,omitempty"`
}

type OrderListParams struct {
	UserID    *uuid.UUID
	Status    OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	SortAsc   *bool
}

// PlaceOrderRequest carries a cart snapshot into the order placement workflow.
type PlaceOrderRequest struct {
	UserID          uuid.UUID
	Items           []CartItem
	TotalAmount     decimal.Decimal
	ShippingAddress string
	ContactPhone    string
	Email           string
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,min=5,max=500"`
	ContactPhone    string `json:"contact_phone" validate:"required,min=6,max=30"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

type OrderAction struct {
	Label  string      `json:"label"`
	Status OrderStatus `json:"status"`
}

type OrderDetail struct {
	Order   *Order        `json:"order"`
	Actions []OrderAction `json:"actions"`
}

type CheckoutView struct {
	Items           []CartItem `json:"items"`
	Total           string     `json:"total"`
	ShippingAddress string     `json:"shipping_address"`
	ContactPhone    string     `json:"contact_phone"`
}
