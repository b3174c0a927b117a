package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reco-hub/reco-backend/config"
)

// OpenRedis returns a Redis client for the query cache, or nil when no
// address is configured or the server is unreachable. The cache is optional:
// the service runs uncached rather than failing startup.
func OpenRedis(ctx context.Context, cfg config.CacheConfig) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		log.Printf("redis unreachable at %s, query cache disabled: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return nil
	}

	return client
}
