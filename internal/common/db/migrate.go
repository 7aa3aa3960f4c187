package db

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/techchallenge/vehicle-api/internal/common/logger"
)

// Migrate applies the goose migrations found at the root of migrations using a
// database/sql handle built from the pool's connection config.
func Migrate(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool, migrations fs.FS) error {
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	log.Infof("database migrations applied: version=%d", version)
	return nil
}
