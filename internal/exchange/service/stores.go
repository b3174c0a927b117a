package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reco-hub/reco-backend/internal/exchange/domain"
)

// QueryStore is the durable collection of query documents.
type QueryStore interface {
	List(ctx context.Context, search string) ([]domain.Query, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Query, error)
	ListByOwner(ctx context.Context, email string) ([]domain.Query, error)
	Insert(ctx context.Context, q *domain.Query) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementRecommendationCount(ctx context.Context, id primitive.ObjectID, delta int64) error
}

// RecommendationStore is the durable collection of recommendation documents.
type RecommendationStore interface {
	List(ctx context.Context, queryID string) ([]domain.Recommendation, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Recommendation, error)
	Insert(ctx context.Context, rec *domain.Recommendation) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByRecommender(ctx context.Context, email string) ([]domain.Recommendation, error)
	ListByQueryOwner(ctx context.Context, email string) ([]domain.Recommendation, error)
	DeleteByQueryID(ctx context.Context, queryID string) (int64, error)
}

// QueryCache caches single-query reads. Implementations are best effort; a
// nil cache disables caching entirely.
type QueryCache interface {
	Get(ctx context.Context, id string) (*domain.Query, bool)
	Set(ctx context.Context, q *domain.Query)
	Invalidate(ctx context.Context, id string)
}
