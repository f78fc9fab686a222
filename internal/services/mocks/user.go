package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func NewUserService(t testingT) *UserService {
	m := &UserService{}
	register(&m.Mock, t)

	return m
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Profile, error) {
	args := m.Called(ctx, req)
	profile, _ := args.Get(0).(*models.Profile)

	return profile, args.Error(1)
}

func (m *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	profile, _ := args.Get(0).(*models.Profile)

	return profile, args.Error(1)
}

func (m *UserService) ListUsers(ctx context.Context, params models.ProfileListParams) ([]models.Profile, error) {
	args := m.Called(ctx, params)
	profiles, _ := args.Get(0).([]models.Profile)

	return profiles, args.Error(1)
}

func (m *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, id, req)
	profile, _ := args.Get(0).(*models.Profile)

	return profile, args.Error(1)
}

func (m *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.Profile, error) {
	args := m.Called(ctx, id, role)
	profile, _ := args.Get(0).(*models.Profile)

	return profile, args.Error(1)
}

func (m *UserService) Stats(ctx context.Context) (*models.UserStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.UserStats)

	return stats, args.Error(1)
}

func (m *UserService) ChangePassword(ctx context.Context, id uuid.UUID, password string) error {
	return m.Called(ctx, id, password).Error(0)
}

func (m *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *UserService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}
