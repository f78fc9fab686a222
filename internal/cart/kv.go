package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/redis/go-redis/v9"
)

// KV is the persisted key-value entry the cart lives in.
type KV interface {
	// Get returns the raw value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

type RedisKV struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisKV stores entries with the given TTL; zero keeps them forever.
func NewRedisKV(client *redis.Client, ttl time.Duration) *RedisKV {
	return &RedisKV{client: client, ttl: ttl}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	rctx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	val, err := r.client.Get(rctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}

	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	rctx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	if err := r.client.Set(rctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

func (r *RedisKV) Del(ctx context.Context, key string) error {
	rctx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	if err := r.client.Del(rctx, key).Err(); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

// MemoryKV keeps entries in process memory. Used in tests and single-node runs.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]

	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value

	return nil
}

func (m *MemoryKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)

	return nil
}
