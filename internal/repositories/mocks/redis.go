package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RateLimitRepository struct {
	mock.Mock
}

func NewRateLimitRepository(t testingT) *RateLimitRepository {
	m := &RateLimitRepository{}
	register(&m.Mock, t)

	return m
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

func (m *RateLimitRepository) ResetLoginAttempts(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

type TokenBlacklist struct {
	mock.Mock
}

func NewTokenBlacklist(t testingT) *TokenBlacklist {
	m := &TokenBlacklist{}
	register(&m.Mock, t)

	return m
}

func (m *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

func (m *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)

	return args.Bool(0), args.Error(1)
}

func (m *TokenBlacklist) RevokeUser(ctx context.Context, userID uuid.UUID, ttl time.Duration) error {
	return m.Called(ctx, userID, ttl).Error(0)
}

func (m *TokenBlacklist) IsUserRevoked(ctx context.Context, userID uuid.UUID, issuedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, issuedAt)

	return args.Bool(0), args.Error(1)
}
