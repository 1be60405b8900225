package config

import (
	"context"
	"fmt"

	"restaurante360/services/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil without error when REDIS_ADDR is empty; callers
// treat a nil client as "cache disabled".
func ConnectRedis(ctx context.Context, cfg RedisConfig, log logger.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		log.Info("REDIS_ADDR not set, cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.User,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info("Connected to Redis: %s", res)
	return rdb, nil
}
