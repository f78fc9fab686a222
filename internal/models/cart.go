package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a product snapshot plus the quantity the shopper wants.
type CartItem struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Quantity int             `json:"quantity"`
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartView struct {
	Items []CartItem `json:"items"`
	Total string     `json:"total"`
	Count int        `json:"count"`
}
