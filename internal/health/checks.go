package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/shopdesk/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// Check is an extra named probe, used for optional third parties.
type Check struct {
	Name    string
	Timeout time.Duration
	Probe   func(ctx context.Context) error
}

// NewHealthHandler reports the backend database and the Redis instance that
// holds carts, rate limits and revoked tokens. Extra checks never fail the
// overall status.
func NewHealthHandler(cfg *config.Config, version string, extra ...Check) (*health.Health, error) {
	opts := []health.Option{
		health.WithComponent(health.Component{
			Name:    "shopdesk",
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				}),
			},
		),
	}

	for _, c := range extra {
		opts = append(opts, health.WithChecks(health.Config{
			Name:      c.Name,
			Timeout:   c.Timeout,
			SkipOnErr: true,
			Check:     c.Probe,
		}))
	}

	h, err := health.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
