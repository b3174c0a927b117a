package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reco-hub/reco-backend/internal/exchange/domain"
)

// RecommendationService handles business logic for recommendations and keeps
// the parent query's recommendationCount in step with creates and deletes.
//
// The compound operations here (insert-then-increment, lookup-delete-
// decrement) are not transactional. The individual counter updates are
// atomic $inc operations, so concurrent creates and deletes on the same
// query do not lose updates, but a crash between sub-steps can leave the
// counter stale. There is no reconciliation pass.
type RecommendationService struct {
	queries QueryStore
	recs    RecommendationStore
	cache   QueryCache
}

// NewRecommendationService creates a new RecommendationService. cache may be nil.
func NewRecommendationService(queries QueryStore, recs RecommendationStore, cache QueryCache) *RecommendationService {
	return &RecommendationService{
		queries: queries,
		recs:    recs,
		cache:   cache,
	}
}

// List returns recommendations newest-first, optionally filtered by parent
// query id.
func (s *RecommendationService) List(ctx context.Context, queryID string) ([]domain.Recommendation, error) {
	return s.recs.List(ctx, queryID)
}

// Create stores a new recommendation authored by the verified principal and
// increments the parent query's counter.
//
// TODO: verify the referenced query exists before inserting. Today a
// recommendation against a nonexistent query is stored and the increment
// silently matches nothing.
func (s *RecommendationService) Create(ctx context.Context, req domain.CreateRecommendationRequest) (*domain.Recommendation, error) {
	queryOID, err := primitive.ObjectIDFromHex(req.QueryID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	rec := &domain.Recommendation{
		QueryID:     req.QueryID,
		QueryTitle:  req.QueryTitle,
		ProductName: req.ProductName,
		UserEmail:   req.QueryOwnerEmail,

		RecommendationTitle:     req.RecommendationTitle,
		RecommendedProductName:  req.RecommendedProductName,
		RecommendedProductImage: req.RecommendedProductImage,
		RecommendationReason:    req.RecommendationReason,

		RecommenderEmail: req.RecommenderEmail,
		RecommenderName:  req.RecommenderName,

		CreatedAt: time.Now().UTC(),
	}

	if err := s.recs.Insert(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.queries.IncrementRecommendationCount(ctx, queryOID, 1); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, req.QueryID)
	}

	return rec, nil
}

// Delete removes a recommendation and decrements the parent query's counter.
// If the parent query was already deleted the decrement matches nothing and
// is a no-op.
//
// TODO: require the caller to be the recommendation's author. Any
// authenticated user can currently delete any recommendation.
func (s *RecommendationService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	rec, err := s.recs.GetByID(ctx, oid)
	if err != nil {
		return err
	}

	if err := s.recs.Delete(ctx, oid); err != nil {
		return err
	}

	if queryOID, err := primitive.ObjectIDFromHex(rec.QueryID); err == nil {
		if err := s.queries.IncrementRecommendationCount(ctx, queryOID, -1); err != nil {
			return err
		}
		if s.cache != nil {
			s.cache.Invalidate(ctx, rec.QueryID)
		}
	}

	return nil
}

// ListByRecommender returns recommendations authored by email. The caller
// must be that author.
func (s *RecommendationService) ListByRecommender(ctx context.Context, principal, email string) ([]domain.Recommendation, error) {
	if principal != email {
		return nil, domain.ErrForbidden
	}
	return s.recs.ListByRecommender(ctx, email)
}

// ListForOwner returns recommendations targeting queries owned by email,
// using the owner email denormalized onto each recommendation. The caller
// must be that owner.
func (s *RecommendationService) ListForOwner(ctx context.Context, principal, email string) ([]domain.Recommendation, error) {
	if principal != email {
		return nil, domain.ErrForbidden
	}
	return s.recs.ListByQueryOwner(ctx, email)
}
