package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reco-hub/reco-backend/internal/exchange/domain"
)

const recommendationsCollection = "recommendations"

// RecommendationRepository handles MongoDB operations for recommendation documents.
type RecommendationRepository struct {
	col *mongo.Collection
}

func NewRecommendationRepository(db *mongo.Database) *RecommendationRepository {
	return &RecommendationRepository{col: db.Collection(recommendationsCollection)}
}

// List returns recommendations newest-first, optionally filtered by parent
// query id.
func (r *RecommendationRepository) List(ctx context.Context, queryID string) ([]domain.Recommendation, error) {
	filter := bson.M{}
	if queryID != "" {
		filter["queryId"] = queryID
	}
	return r.find(ctx, filter)
}

func (r *RecommendationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrRecommendationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find recommendation: %w", err)
	}
	return &rec, nil
}

func (r *RecommendationRepository) Insert(ctx context.Context, rec *domain.Recommendation) error {
	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid
	}
	return nil
}

func (r *RecommendationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete recommendation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecommendationNotFound
	}
	return nil
}

func (r *RecommendationRepository) ListByRecommender(ctx context.Context, email string) ([]domain.Recommendation, error) {
	return r.find(ctx, bson.M{"recommenderEmail": email})
}

// ListByQueryOwner filters on the query-owner email denormalized onto each
// recommendation at create time.
func (r *RecommendationRepository) ListByQueryOwner(ctx context.Context, email string) ([]domain.Recommendation, error) {
	return r.find(ctx, bson.M{"userEmail": email})
}

// DeleteByQueryID removes every recommendation referencing the given query.
// Used by the query-delete cascade.
func (r *RecommendationRepository) DeleteByQueryID(ctx context.Context, queryID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"queryId": queryID})
	if err != nil {
		return 0, fmt.Errorf("cascade delete recommendations: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *RecommendationRepository) find(ctx context.Context, filter bson.M) ([]domain.Recommendation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find recommendations: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Recommendation, 0, 16)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	return out, nil
}
