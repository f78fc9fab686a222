package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	register(&m.Mock, t)

	return m
}

func (m *UserRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *UserRepository) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	account, _ := args.Get(0).(*models.Account)

	return account, args.Error(1)
}

func (m *UserRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*models.Account)

	return account, args.Error(1)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *UserRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *UserRepository) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	profile, _ := args.Get(0).(*models.Profile)

	return profile, args.Error(1)
}

func (m *UserRepository) ListProfiles(ctx context.Context, params models.ProfileListParams) ([]models.Profile, error) {
	args := m.Called(ctx, params)
	profiles, _ := args.Get(0).([]models.Profile)

	return profiles, args.Error(1)
}

func (m *UserRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.Profile, error) {
	args := m.Called(ctx, id, role)
	profile, _ := args.Get(0).(*models.Profile)

	return profile, args.Error(1)
}

func (m *UserRepository) CountByRole(ctx context.Context) (map[models.Role]int, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[models.Role]int)

	return counts, args.Error(1)
}
