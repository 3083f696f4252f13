package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pennywise/client/internal/config"
	"github.com/rs/zerolog"
)

// InitRedis connects to Redis. It returns nil when the server cannot be
// reached so callers can fall back to memory.
func InitRedis(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr()).Msg("Redis connection failed, continuing without Redis")
		rdb.Close()
		return nil
	}

	log.Info().Str("addr", cfg.Addr()).Msg("Redis connection established")
	return rdb
}
