package models

import (
	"time"

	"github.com/google/uuid"
)

type InventoryProduct struct {
	Name     string       `json:"name"`
	ImageURL string       `json:"image_url"`
	Category *CategoryRef `json:"category,omitempty"`
}

type InventoryRecord struct {
	ID              uuid.UUID         `json:"id"`
	ProductID       uuid.UUID         `json:"product_id"`
	Quantity        int               `json:"quantity"`
	LastRestockDate *time.Time        `json:"last_restock_date,omitempty"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Product         *InventoryProduct `json:"product,omitempty"`
}

type InventoryListParams struct {
	ProductID  *uuid.UUID
	CategoryID *uuid.UUID
	LowStock   *int
	SortBy     string
	SortAsc    *bool
}

type UpdateInventoryRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}
