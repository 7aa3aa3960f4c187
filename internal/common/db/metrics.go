package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/techchallenge/vehicle-api/internal/common/constants"
	"github.com/techchallenge/vehicle-api/internal/observability/metrics"
)

// StartPoolMetrics samples pool statistics until ctx is cancelled.
func StartPoolMetrics(ctx context.Context, pool *pgxpool.Pool, name string, interval time.Duration) {
	if interval <= 0 {
		interval = constants.DBPoolMetricsInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := pool.Stat()
				metrics.DBPoolAcquiredConnections.WithLabelValues(name).Set(float64(stats.AcquiredConns()))
				metrics.DBPoolIdleConnections.WithLabelValues(name).Set(float64(stats.IdleConns()))
				metrics.DBPoolTotalConnections.WithLabelValues(name).Set(float64(stats.TotalConns()))
			}
		}
	}()
}
