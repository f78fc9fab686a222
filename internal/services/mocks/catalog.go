package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func NewProductService(t testingT) *ProductService {
	m := &ProductService{}
	register(&m.Mock, t)

	return m
}

func (m *ProductService) ListProducts(ctx context.Context, params models.ProductListParams) ([]models.Product, error) {
	args := m.Called(ctx, params)
	products, _ := args.Get(0).([]models.Product)

	return products, args.Error(1)
}

func (m *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)
	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)
	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type CategoryService struct {
	mock.Mock
}

func NewCategoryService(t testingT) *CategoryService {
	m := &CategoryService{}
	register(&m.Mock, t)

	return m
}

func (m *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)

	return categories, args.Error(1)
}

func (m *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*models.Category)

	return category, args.Error(1)
}

func (m *CategoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	category, _ := args.Get(0).(*models.Category)

	return category, args.Error(1)
}

func (m *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, id, req)
	category, _ := args.Get(0).(*models.Category)

	return category, args.Error(1)
}

func (m *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type InventoryService struct {
	mock.Mock
}

func NewInventoryService(t testingT) *InventoryService {
	m := &InventoryService{}
	register(&m.Mock, t)

	return m
}

func (m *InventoryService) ListInventory(ctx context.Context, params models.InventoryListParams) ([]models.InventoryRecord, error) {
	args := m.Called(ctx, params)
	records, _ := args.Get(0).([]models.InventoryRecord)

	return records, args.Error(1)
}

func (m *InventoryService) UpdateStock(ctx context.Context, productID uuid.UUID, quantity int) (*models.InventoryRecord, error) {
	args := m.Called(ctx, productID, quantity)
	record, _ := args.Get(0).(*models.InventoryRecord)

	return record, args.Error(1)
}

func (m *InventoryService) LowStock(ctx context.Context) ([]models.InventoryRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.InventoryRecord)

	return records, args.Error(1)
}
