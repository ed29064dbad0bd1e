package store

import (
	"context"
	"fmt"

	"github.com/mcclellann/branchdesk/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case config.DriverRedis:
		return NewRedisStore(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.KeyPrefix)
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg.Postgres.DSN)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
