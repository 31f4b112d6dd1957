package app

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/config"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/db"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/logger"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/redis"
)

type infra struct {
	db    *sql.DB
	redis *redis.Client // nil when REDIS_ADDR is unset
}

func setupInfra(ctx context.Context, cfg config.Config) (*infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, sqlDB); err != nil {
		return nil, err
	}
	logger.Named("app").Info("database ready")

	out := &infra{db: sqlDB}

	// Redis is optional: without it refresh rotation stays stateless
	// and revoked tokens are only invalidated by expiry.
	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		out.redis = redisClient
		logger.Named("app").Info("redis ready")
	}

	return out, nil
}

func (i *infra) close() error {
	if i.redis != nil {
		i.redis.Close()
	}
	return i.db.Close()
}
