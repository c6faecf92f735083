package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coinfolio/coinfolio/internal/config"
)

const pingTimeout = 5 * time.Second

// NewRedisClient connects the cache backing the idempotency and login
// rate-limit middleware, verifying connectivity before the server starts.
// REDIS_URL is optional for the app as a whole (main skips the cache when it
// is unset), so an empty URL here is a caller bug.
func NewRedisClient(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required to build a cache client")
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
