package service

import (
	"context"

	"github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	repository "github.com/aaravmahajanofficial/shopdesk/internal/repositories"
	"github.com/google/uuid"
)

type InventoryService interface {
	ListInventory(ctx context.Context, params models.InventoryListParams) ([]models.InventoryRecord, error)
	// UpdateStock sets the stock level of a product and records it as a restock.
	UpdateStock(ctx context.Context, productID uuid.UUID, quantity int) (*models.InventoryRecord, error)
	LowStock(ctx context.Context) ([]models.InventoryRecord, error)
}

type inventoryService struct {
	repo      repository.InventoryRepository
	threshold int
}

func NewInventoryService(repo repository.InventoryRepository, lowStockThreshold int) InventoryService {
	return &inventoryService{repo: repo, threshold: lowStockThreshold}
}

func (s *inventoryService) ListInventory(ctx context.Context, params models.InventoryListParams) ([]models.InventoryRecord, error) {
	return s.repo.List(ctx, params)
}

func (s *inventoryService) UpdateStock(ctx context.Context, productID uuid.UUID, quantity int) (*models.InventoryRecord, error) {
	if quantity < 0 {
		return nil, errors.ValidationError("Quantity must not be negative")
	}

	return s.repo.Restock(ctx, productID, quantity)
}

func (s *inventoryService) LowStock(ctx context.Context) ([]models.InventoryRecord, error) {
	return s.repo.LowStock(ctx, s.threshold)
}
