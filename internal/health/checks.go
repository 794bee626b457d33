package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-demo/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

type Endpoints struct {
	Catalog *catalog.Catalog
}

// NewHealthHandler checks the catalog always and the backing stores only
// when the configuration selects them.
func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "catalog",
			Timeout:   time.Second,
			SkipOnErr: false,
			Check: func(context.Context) error {
				if endpoints == nil || endpoints.Catalog == nil {
					return errors.New("catalog is not loaded")
				}
				if endpoints.Catalog.Len() == 0 {
					return errors.New("catalog is empty")
				}
				return nil
			},
		},
	}

	if cfg.Auth.Backend == "postgres" {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	if cfg.UsesRedis() {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
