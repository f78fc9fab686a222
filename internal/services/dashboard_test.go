package service_test

import (
	"context"
	"testing"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()

	products := mocks.NewProductRepository(t)
	orders := mocks.NewOrderRepository(t)
	users := mocks.NewUserRepository(t)
	inventory := mocks.NewInventoryRepository(t)

	svc := service.NewDashboardService(products, orders, users, inventory, 10)

	products.On("List", ctx, models.ProductListParams{}).Return([]models.Product{
		{Name: "Lamp", Category: &models.CategoryRef{Name: "Lighting"}},
		{Name: "Bulb", Category: &models.CategoryRef{Name: "Lighting"}},
		{Name: "Gift card"},
	}, nil).Once()

	recent := make([]models.Order, 7)
	for i := range recent {
		recent[i].TotalAmount = decimal.RequireFromString("10.25")
	}
	orders.On("List", ctx, models.OrderListParams{}).Return(recent, nil).Once()

	users.On("CountByRole", ctx).Return(map[models.Role]int{models.RoleAdmin: 1, models.RoleCustomer: 4}, nil).Once()
	inventory.On("LowStock", ctx, 10).Return([]models.InventoryRecord{{Quantity: 3}}, nil).Once()

	stats, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.ProductCount)
	assert.Equal(t, 7, stats.OrderCount)
	assert.Equal(t, 5, stats.UserCount)
	assert.Equal(t, "71.75", stats.TotalRevenue.StringFixed(2))
	assert.Len(t, stats.RecentOrders, 5)
	assert.Len(t, stats.LowStock, 1)
	assert.Equal(t, []models.CategoryCount{
		{Name: "Lighting", Count: 2},
		{Name: "Uncategorized", Count: 1},
	}, stats.ProductsByCategory)
}
