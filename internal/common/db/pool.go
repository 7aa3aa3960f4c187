package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/techchallenge/vehicle-api/internal/common/constants"
	"github.com/techchallenge/vehicle-api/internal/common/logger"
	"github.com/techchallenge/vehicle-api/internal/observability/metrics"
)

type PoolOptions struct {
	// Name labels the pool in logs and metrics ("auth", "vehicles").
	Name        string
	MaxAttempts int
	RetryDelay  time.Duration
}

func DefaultPoolOptions(name string) PoolOptions {
	return PoolOptions{
		Name:        name,
		MaxAttempts: constants.DBPoolMaxAttempts,
		RetryDelay:  constants.DBPoolRetryDelay,
	}
}

// NewPool connects to databaseURL, retrying while the database comes up.
func NewPool(ctx context.Context, log *logger.Logger, databaseURL string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	cfg.MaxConns = constants.DBPoolMaxConns
	cfg.MinConns = constants.DBPoolMinConns
	cfg.MaxConnLifetime = constants.DBPoolConnMaxLifetime
	cfg.MaxConnIdleTime = constants.DBPoolConnMaxIdleTime
	cfg.HealthCheckPeriod = constants.DBPoolHealthCheck
	cfg.ConnConfig.ConnectTimeout = constants.DBPoolConnectTimeout
	if cfg.ConnConfig.RuntimeParams == nil {
		cfg.ConnConfig.RuntimeParams = map[string]string{}
	}
	cfg.ConnConfig.RuntimeParams["application_name"] = constants.DefaultApplicationName

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		pool, err := pgxpool.ConnectConfig(ctx, cfg)
		if err == nil {
			metrics.DBConnectAttempts.WithLabelValues(opts.Name, "success").Inc()
			log.Infof("database pool %q initialized: max=%d, min=%d", opts.Name, cfg.MaxConns, cfg.MinConns)
			return pool, nil
		}

		lastErr = err
		metrics.DBConnectAttempts.WithLabelValues(opts.Name, "failure").Inc()
		log.Warnf("failed to connect to database %q (attempt %d/%d): %v", opts.Name, attempt, maxAttempts, err)

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect to database %q: %w", opts.Name, ctx.Err())
		case <-time.After(opts.RetryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database %q after %d attempts: %w", opts.Name, maxAttempts, lastErr)
}
