package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reco-hub/reco-backend/internal/exchange/domain"
)

const (
	queryKeyPrefix = "reco:query:" // Cached query documents: reco:query:{hex_id}
	queryCacheTTL  = 10 * time.Minute
)

// QueryCache is a best-effort read-through cache for single-query fetches.
// Every failure is logged and swallowed: the store remains the source of
// truth and a cold or broken cache only costs an extra read.
type QueryCache struct {
	client *redis.Client
}

func NewQueryCache(client *redis.Client) *QueryCache {
	return &QueryCache{client: client}
}

func (c *QueryCache) Get(ctx context.Context, id string) (*domain.Query, bool) {
	data, err := c.client.Get(ctx, queryKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] get %s: %v", id, err)
		return nil, false
	}

	var q domain.Query
	if err := json.Unmarshal([]byte(data), &q); err != nil {
		log.Printf("[cache] decode %s: %v", id, err)
		return nil, false
	}
	return &q, true
}

func (c *QueryCache) Set(ctx context.Context, q *domain.Query) {
	data, err := json.Marshal(q)
	if err != nil {
		log.Printf("[cache] encode %s: %v", q.ID.Hex(), err)
		return
	}

	if err := c.client.Set(ctx, queryKeyPrefix+q.ID.Hex(), data, queryCacheTTL).Err(); err != nil {
		log.Printf("[cache] set %s: %v", q.ID.Hex(), err)
	}
}

// Invalidate drops the cached document. Called on every mutation that
// touches the query, counter adjustments included.
func (c *QueryCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, queryKeyPrefix+id).Err(); err != nil {
		log.Printf("[cache] invalidate %s: %v", id, err)
	}
}
