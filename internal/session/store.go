package session

import (
	"context"
	"fmt"

	"autotradespot_backend/platform/config"
	"autotradespot_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// NewStore returns a Redis-backed store when REDIS_URL is configured and an
// in-process store otherwise. The returned close func releases the client.
func NewStore(ctx context.Context, cfg config.SessionConfig, log *logger.Logger) (Store, func() error, error) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not set, sessions are kept in memory")
		return NewMemoryStore(cfg.GetSessionTTL()), func() error { return nil }, nil
	}

	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, cfg.GetSessionTTL()), client.Close, nil
}
