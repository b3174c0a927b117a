package repository

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reco-hub/reco-backend/internal/exchange/domain"
)

const queriesCollection = "queries"

// QueryRepository handles MongoDB operations for query documents.
type QueryRepository struct {
	col *mongo.Collection
}

func NewQueryRepository(db *mongo.Database) *QueryRepository {
	return &QueryRepository{col: db.Collection(queriesCollection)}
}

// List returns all queries newest-first. A non-empty search term filters by
// case-insensitive substring match on productName.
func (r *QueryRepository) List(ctx context.Context, search string) ([]domain.Query, error) {
	filter := bson.M{}
	if search != "" {
		filter["productName"] = primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	}

	return r.find(ctx, filter)
}

func (r *QueryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Query, error) {
	var q domain.Query
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrQueryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find query: %w", err)
	}
	return &q, nil
}

func (r *QueryRepository) ListByOwner(ctx context.Context, email string) ([]domain.Query, error) {
	return r.find(ctx, bson.M{"userEmail": email})
}

func (r *QueryRepository) Insert(ctx context.Context, q *domain.Query) error {
	res, err := r.col.InsertOne(ctx, q)
	if err != nil {
		return fmt.Errorf("insert query: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		q.ID = oid
	}
	return nil
}

// Update applies a $set of the given fields. The caller is responsible for
// stripping server-managed keys first.
func (r *QueryRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if len(fields) == 0 {
		return nil
	}

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update query: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQueryNotFound
	}
	return nil
}

func (r *QueryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete query: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrQueryNotFound
	}
	return nil
}

// IncrementRecommendationCount atomically adjusts the denormalized counter.
// A missing parent query is a no-op, not an error: the query may have been
// deleted between the recommendation lookup and this step.
func (r *QueryRepository) IncrementRecommendationCount(ctx context.Context, id primitive.ObjectID, delta int64) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"recommendationCount": delta}})
	if err != nil {
		return fmt.Errorf("increment recommendation count: %w", err)
	}
	return nil
}

func (r *QueryRepository) find(ctx context.Context, filter bson.M) ([]domain.Query, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find queries: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Query, 0, 16)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode queries: %w", err)
	}
	return out, nil
}
