package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	repository "github.com/aaravmahajanofficial/shopdesk/internal/repositories"
	"github.com/google/uuid"
)

// ProfileRepository is a UserRepository that reads profiles through the cache.
// Every request resolves its session profile, so this keeps that lookup off
// the database. Writes to a profile evict its entry.
type ProfileRepository struct {
	repository.UserRepository

	cache Cache
	ttl   time.Duration
}

func NewProfileRepository(users repository.UserRepository, cache Cache, ttl time.Duration) *ProfileRepository {
	return &ProfileRepository{UserRepository: users, cache: cache, ttl: ttl}
}

func profileKey(id uuid.UUID) string {
	return Key(ProfileKeyPrefix, id.String())
}

// GetProfile falls back to the database whenever the cache misbehaves.
func (p *ProfileRepository) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := profileKey(id)

	var cached models.Profile
	found, err := p.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Profile cache read failed", slog.String("user_id", id.String()), slog.Any("error", err))
	}
	if found {
		return &cached, nil
	}

	profile, err := p.UserRepository.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, profile, p.ttl); err != nil {
		logger.Warn("Profile cache write failed", slog.String("user_id", id.String()), slog.Any("error", err))
	}

	return profile, nil
}

func (p *ProfileRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	if err := p.UserRepository.UpdateProfile(ctx, profile); err != nil {
		return err
	}

	p.evict(ctx, profile.ID)

	return nil
}

func (p *ProfileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.Profile, error) {
	profile, err := p.UserRepository.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	p.evict(ctx, id)

	return profile, nil
}

func (p *ProfileRepository) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := p.UserRepository.DeleteAccount(ctx, id); err != nil {
		return err
	}

	p.evict(ctx, id)

	return nil
}

func (p *ProfileRepository) evict(ctx context.Context, id uuid.UUID) {
	if err := p.cache.Delete(ctx, profileKey(id)); err != nil {
		// a stale entry lives until its TTL runs out
		middleware.LoggerFromContext(ctx).Warn("Profile cache eviction failed", slog.String("user_id", id.String()), slog.Any("error", err))
	}
}
