package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func NewProductRepository(t testingT) *ProductRepository {
	m := &ProductRepository{}
	register(&m.Mock, t)

	return m
}

func (m *ProductRepository) List(ctx context.Context, params models.ProductListParams) ([]models.Product, error) {
	args := m.Called(ctx, params)
	products, _ := args.Get(0).([]models.Product)

	return products, args.Error(1)
}

func (m *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *ProductRepository) Create(ctx context.Context, product *models.Product, quantity *int) error {
	return m.Called(ctx, product, quantity).Error(0)
}

func (m *ProductRepository) Update(ctx context.Context, product *models.Product, quantity *int) error {
	return m.Called(ctx, product, quantity).Error(0)
}

func (m *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
