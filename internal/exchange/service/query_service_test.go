package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reco-hub/reco-backend/internal/exchange/domain"
	"github.com/reco-hub/reco-backend/internal/exchange/exchangetest"
	"github.com/reco-hub/reco-backend/internal/exchange/service"
)

func newQueryService() (*service.QueryService, *exchangetest.MemQueryStore, *exchangetest.MemRecommendationStore) {
	queries := exchangetest.NewMemQueryStore()
	recs := exchangetest.NewMemRecommendationStore()
	return service.NewQueryService(queries, recs, nil), queries, recs
}

func TestCreateQuery_ServerManagedFields(t *testing.T) {
	svc, _, _ := newQueryService()

	q, err := svc.Create(context.Background(), domain.CreateQueryRequest{
		OwnerEmail:  "a@x.com",
		OwnerName:   "Alice",
		ProductName: "Laptop",
	})
	require.NoError(t, err)

	assert.False(t, q.ID.IsZero())
	assert.Equal(t, "a@x.com", q.UserEmail)
	assert.Equal(t, "Alice", q.UserName)
	assert.Equal(t, int64(0), q.RecommendationCount)
	assert.False(t, q.CreatedAt.IsZero())
}

func TestGetQuery(t *testing.T) {
	svc, _, _ := newQueryService()

	q, err := svc.Create(context.Background(), domain.CreateQueryRequest{
		OwnerEmail:  "a@x.com",
		ProductName: "Laptop",
	})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		got, err := svc.Get(context.Background(), q.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, q.ID, got.ID)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "not-a-hex-id")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("absent id", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "bbbbbbbbbbbbbbbbbbbbbbbb")
		assert.ErrorIs(t, err, domain.ErrQueryNotFound)
	})
}

func TestGetQuery_UsesCache(t *testing.T) {
	queries := exchangetest.NewMemQueryStore()
	recs := exchangetest.NewMemRecommendationStore()
	cache := exchangetest.NewMemQueryCache()
	svc := service.NewQueryService(queries, recs, cache)

	q, err := svc.Create(context.Background(), domain.CreateQueryRequest{
		OwnerEmail:  "a@x.com",
		ProductName: "Laptop",
	})
	require.NoError(t, err)

	before := queries.GetCalls
	_, err = svc.Get(context.Background(), q.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, before+1, queries.GetCalls)
	assert.Equal(t, 1, cache.Sets)

	_, err = svc.Get(context.Background(), q.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, before+1, queries.GetCalls, "second read should be served from cache")
	assert.Equal(t, 1, cache.Hits)
}

func TestListQueries_Search(t *testing.T) {
	svc, _, _ := newQueryService()
	ctx := context.Background()

	for _, name := range []string{"Gaming Laptop", "Phone", "laptop stand"} {
		_, err := svc.Create(ctx, domain.CreateQueryRequest{OwnerEmail: "a@x.com", ProductName: name})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := svc.List(ctx, "LAPTOP")
	require.NoError(t, err)
	assert.Len(t, matched, 2)
}

func TestListByOwner(t *testing.T) {
	svc, _, _ := newQueryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateQueryRequest{OwnerEmail: "a@x.com", ProductName: "Laptop"})
	require.NoError(t, err)

	t.Run("principal mismatch", func(t *testing.T) {
		_, err := svc.ListByOwner(ctx, "b@x.com", "a@x.com")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("owner", func(t *testing.T) {
		items, err := svc.ListByOwner(ctx, "a@x.com", "a@x.com")
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}

func TestUpdateQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("strips server-managed fields", func(t *testing.T) {
		svc, queries, _ := newQueryService()

		q, err := svc.Create(ctx, domain.CreateQueryRequest{
			OwnerEmail:   "a@x.com",
			ProductName:  "Laptop",
			ProductBrand: "OldBrand",
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, q.ID.Hex(), "a@x.com", map[string]any{
			"productBrand":        "NewBrand",
			"userEmail":           "evil@x.com",
			"userName":            "Mallory",
			"recommendationCount": float64(99),
			"createdAt":           "2001-01-01T00:00:00Z",
		})
		require.NoError(t, err)

		assert.Equal(t, "NewBrand", updated.ProductBrand)
		assert.Equal(t, "a@x.com", updated.UserEmail)
		assert.Equal(t, int64(0), updated.RecommendationCount)
		assert.Equal(t, q.CreatedAt, updated.CreatedAt)

		stored, err := queries.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", stored.UserEmail)
	})

	t.Run("non-owner forbidden, document unmodified", func(t *testing.T) {
		svc, queries, _ := newQueryService()

		q, err := svc.Create(ctx, domain.CreateQueryRequest{OwnerEmail: "a@x.com", ProductName: "Laptop"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, q.ID.Hex(), "b@x.com", map[string]any{"productName": "Tablet"})
		assert.ErrorIs(t, err, domain.ErrForbidden)

		stored, err := queries.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, "Laptop", stored.ProductName)
	})

	t.Run("absent id", func(t *testing.T) {
		svc, _, _ := newQueryService()
		_, err := svc.Update(ctx, "bbbbbbbbbbbbbbbbbbbbbbbb", "a@x.com", map[string]any{"productName": "Tablet"})
		assert.ErrorIs(t, err, domain.ErrQueryNotFound)
	})
}

func TestDeleteQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to recommendations", func(t *testing.T) {
		queries := exchangetest.NewMemQueryStore()
		recs := exchangetest.NewMemRecommendationStore()
		qsvc := service.NewQueryService(queries, recs, nil)
		rsvc := service.NewRecommendationService(queries, recs, nil)

		q, err := qsvc.Create(ctx, domain.CreateQueryRequest{OwnerEmail: "a@x.com", ProductName: "Laptop"})
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			_, err := rsvc.Create(ctx, domain.CreateRecommendationRequest{
				RecommenderEmail:       "b@x.com",
				QueryID:                q.ID.Hex(),
				RecommendedProductName: "Thinkpad",
			})
			require.NoError(t, err)
		}

		require.NoError(t, qsvc.Delete(ctx, q.ID.Hex(), "a@x.com"))

		_, err = qsvc.Get(ctx, q.ID.Hex())
		assert.ErrorIs(t, err, domain.ErrQueryNotFound)

		left, err := rsvc.List(ctx, q.ID.Hex())
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc, queries, _ := newQueryService()

		q, err := svc.Create(ctx, domain.CreateQueryRequest{OwnerEmail: "a@x.com", ProductName: "Laptop"})
		require.NoError(t, err)

		err = svc.Delete(ctx, q.ID.Hex(), "b@x.com")
		assert.ErrorIs(t, err, domain.ErrForbidden)

		_, err = queries.GetByID(ctx, q.ID)
		assert.NoError(t, err)
	})

	t.Run("absent id", func(t *testing.T) {
		svc, _, _ := newQueryService()
		err := svc.Delete(ctx, "bbbbbbbbbbbbbbbbbbbbbbbb", "a@x.com")
		assert.ErrorIs(t, err, domain.ErrQueryNotFound)
	})
}
