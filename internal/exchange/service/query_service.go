package service

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reco-hub/reco-backend/internal/exchange/domain"
)

// QueryService handles business logic for queries: ownership checks,
// server-managed fields, and the delete cascade onto recommendations.
type QueryService struct {
	queries QueryStore
	recs    RecommendationStore
	cache   QueryCache
}

// NewQueryService creates a new QueryService. cache may be nil.
func NewQueryService(queries QueryStore, recs RecommendationStore, cache QueryCache) *QueryService {
	return &QueryService{
		queries: queries,
		recs:    recs,
		cache:   cache,
	}
}

// List returns all queries newest-first, optionally filtered by a
// case-insensitive substring match on productName.
func (s *QueryService) List(ctx context.Context, search string) ([]domain.Query, error) {
	return s.queries.List(ctx, search)
}

// Get fetches a single query by its hex id, consulting the cache first.
func (s *QueryService) Get(ctx context.Context, id string) (*domain.Query, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	if s.cache != nil {
		if q, ok := s.cache.Get(ctx, id); ok {
			return q, nil
		}
	}

	q, err := s.queries.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, q)
	}
	return q, nil
}

// Create stores a new query. createdAt, the counter, and the owner identity
// are set here unconditionally; anything the client supplied for them is
// ignored.
func (s *QueryService) Create(ctx context.Context, req domain.CreateQueryRequest) (*domain.Query, error) {
	q := &domain.Query{
		QueryTitle:       req.QueryTitle,
		ProductName:      req.ProductName,
		ProductBrand:     req.ProductBrand,
		ProductImage:     req.ProductImage,
		BoycottingReason: req.BoycottingReason,

		UserEmail: req.OwnerEmail,
		UserName:  req.OwnerName,
		UserPhoto: req.OwnerPhoto,

		CreatedAt:           time.Now().UTC(),
		RecommendationCount: 0,
	}

	if err := s.queries.Insert(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListByOwner returns the given owner's queries. The caller must be that
// owner.
func (s *QueryService) ListByOwner(ctx context.Context, principal, email string) ([]domain.Query, error) {
	if principal != email {
		return nil, domain.ErrForbidden
	}
	return s.queries.ListByOwner(ctx, email)
}

// Update applies a partial update on behalf of principal. Server-managed
// fields are stripped from the client payload before the $set.
func (s *QueryService) Update(ctx context.Context, id, principal string, fields map[string]any) (*domain.Query, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	existing, err := s.queries.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if existing.UserEmail != principal {
		return nil, domain.ErrForbidden
	}

	update := bson.M{}
	for k, v := range fields {
		update[k] = v
	}
	for _, k := range domain.ServerManagedQueryFields {
		delete(update, k)
	}

	if len(update) > 0 {
		if err := s.queries.Update(ctx, oid, update); err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Invalidate(ctx, id)
		}
	}

	return s.queries.GetByID(ctx, oid)
}

// Delete removes a query owned by principal, then cascades to every
// recommendation referencing it. The cascade is best effort: the query is
// already gone, so a failure here is logged and drift is left for external
// repair.
func (s *QueryService) Delete(ctx context.Context, id, principal string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	existing, err := s.queries.GetByID(ctx, oid)
	if err != nil {
		return err
	}
	if existing.UserEmail != principal {
		return domain.ErrForbidden
	}

	if err := s.queries.Delete(ctx, oid); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}

	if n, err := s.recs.DeleteByQueryID(ctx, id); err != nil {
		log.Printf("[queries] cascade delete for %s failed: %v", id, err)
	} else if n > 0 {
		log.Printf("[queries] deleted %s and %d recommendations", id, n)
	}

	return nil
}
