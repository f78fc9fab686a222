package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type InventoryRepository struct {
	mock.Mock
}

func NewInventoryRepository(t testingT) *InventoryRepository {
	m := &InventoryRepository{}
	register(&m.Mock, t)

	return m
}

func (m *InventoryRepository) List(ctx context.Context, params models.InventoryListParams) ([]models.InventoryRecord, error) {
	args := m.Called(ctx, params)
	records, _ := args.Get(0).([]models.InventoryRecord)

	return records, args.Error(1)
}

func (m *InventoryRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error) {
	args := m.Called(ctx, productID)
	record, _ := args.Get(0).(*models.InventoryRecord)

	return record, args.Error(1)
}

func (m *InventoryRepository) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

func (m *InventoryRepository) Restock(ctx context.Context, productID uuid.UUID, quantity int) (*models.InventoryRecord, error) {
	args := m.Called(ctx, productID, quantity)
	record, _ := args.Get(0).(*models.InventoryRecord)

	return record, args.Error(1)
}

func (m *InventoryRepository) LowStock(ctx context.Context, threshold int) ([]models.InventoryRecord, error) {
	args := m.Called(ctx, threshold)
	records, _ := args.Get(0).([]models.InventoryRecord)

	return records, args.Error(1)
}
