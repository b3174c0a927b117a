package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reco-hub/reco-backend/internal/exchange/domain"
)

func newTestCache(t *testing.T) *QueryCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewQueryCache(client)
}

func TestQueryCache_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	q := &domain.Query{
		ID:                  primitive.NewObjectID(),
		ProductName:         "Laptop",
		UserEmail:           "a@x.com",
		RecommendationCount: 3,
	}

	_, ok := cache.Get(ctx, q.ID.Hex())
	assert.False(t, ok, "miss before set")

	cache.Set(ctx, q)

	got, ok := cache.Get(ctx, q.ID.Hex())
	require.True(t, ok)
	assert.Equal(t, q.ID, got.ID)
	assert.Equal(t, "Laptop", got.ProductName)
	assert.Equal(t, int64(3), got.RecommendationCount)
}

func TestQueryCache_Invalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	q := &domain.Query{ID: primitive.NewObjectID(), ProductName: "Laptop"}
	cache.Set(ctx, q)

	cache.Invalidate(ctx, q.ID.Hex())

	_, ok := cache.Get(ctx, q.ID.Hex())
	assert.False(t, ok)
}

func TestQueryCache_CorruptEntryIsAMiss(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewQueryCache(client)
	id := primitive.NewObjectID().Hex()

	require.NoError(t, srv.Set(queryKeyPrefix+id, "not-json"))

	_, ok := cache.Get(context.Background(), id)
	assert.False(t, ok)
}
