package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/shopdesk/internal/cart"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t testingT) *CartRepository {
	m := &CartRepository{}
	register(&m.Mock, t)

	return m
}

func (m *CartRepository) Load(ctx context.Context, owner string) ([]models.CartItem, error) {
	args := m.Called(ctx, owner)
	items, _ := args.Get(0).([]models.CartItem)

	return items, args.Error(1)
}

func (m *CartRepository) Add(ctx context.Context, owner string, product *models.Product) ([]models.CartItem, error) {
	args := m.Called(ctx, owner, product)
	items, _ := args.Get(0).([]models.CartItem)

	return items, args.Error(1)
}

func (m *CartRepository) SetQuantity(ctx context.Context, owner string, itemID uuid.UUID, quantity int) ([]models.CartItem, error) {
	args := m.Called(ctx, owner, itemID, quantity)
	items, _ := args.Get(0).([]models.CartItem)

	return items, args.Error(1)
}

func (m *CartRepository) Remove(ctx context.Context, owner string, itemID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, owner, itemID)
	items, _ := args.Get(0).([]models.CartItem)

	return items, args.Error(1)
}

func (m *CartRepository) Clear(ctx context.Context, owner string) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *CartRepository) Subscribe(ctx context.Context, owner string) <-chan cart.Event {
	args := m.Called(ctx, owner)
	ch, _ := args.Get(0).(<-chan cart.Event)

	return ch
}
