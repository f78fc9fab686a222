package service

import (
	"context"
	"sort"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	repository "github.com/aaravmahajanofficial/shopdesk/internal/repositories"
	"github.com/shopspring/decimal"
)

const recentOrderCount = 5

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	inventory repository.InventoryRepository
	threshold int
}

func NewDashboardService(products repository.ProductRepository, orders repository.OrderRepository, users repository.UserRepository, inventory repository.InventoryRepository, lowStockThreshold int) DashboardService {
	return &dashboardService{products: products, orders: orders, users: users, inventory: inventory, threshold: lowStockThreshold}
}

func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	products, err := s.products.List(ctx, models.ProductListParams{})
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.List(ctx, models.OrderListParams{})
	if err != nil {
		return nil, err
	}

	roles, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.inventory.LowStock(ctx, s.threshold)
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		ProductCount:       len(products),
		OrderCount:         len(orders),
		TotalRevenue:       decimal.Zero,
		RecentOrders:       orders[:min(recentOrderCount, len(orders))],
		LowStock:           lowStock,
		ProductsByCategory: countByCategory(products),
	}

	for _, n := range roles {
		stats.UserCount += n
	}

	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
	}

	return stats, nil
}

func countByCategory(products []models.Product) []models.CategoryCount {
	counts := map[string]int{}

	for _, p := range products {
		name := "Uncategorized"
		if p.Category != nil && p.Category.Name != "" {
			name = p.Category.Name
		}
		counts[name]++
	}

	out := make([]models.CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.CategoryCount{Name: name, Count: n})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}
