// Package exchangetest provides in-memory store implementations for tests.
// They mirror the Mongo repositories' semantics: sentinel not-found errors,
// newest-first listings, and counter increments that silently match nothing
// when the parent query is gone.
package exchangetest

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reco-hub/reco-backend/internal/exchange/domain"
)

type MemQueryStore struct {
	Docs     map[primitive.ObjectID]*domain.Query
	GetCalls int
}

func NewMemQueryStore() *MemQueryStore {
	return &MemQueryStore{Docs: make(map[primitive.ObjectID]*domain.Query)}
}

func (f *MemQueryStore) List(_ context.Context, search string) ([]domain.Query, error) {
	out := make([]domain.Query, 0, len(f.Docs))
	for _, q := range f.Docs {
		if search == "" || strings.Contains(strings.ToLower(q.ProductName), strings.ToLower(search)) {
			out = append(out, *q)
		}
	}
	sortQueriesNewestFirst(out)
	return out, nil
}

func (f *MemQueryStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Query, error) {
	f.GetCalls++
	doc, ok := f.Docs[id]
	if !ok {
		return nil, domain.ErrQueryNotFound
	}
	q := *doc
	return &q, nil
}

func (f *MemQueryStore) ListByOwner(_ context.Context, email string) ([]domain.Query, error) {
	out := make([]domain.Query, 0)
	for _, q := range f.Docs {
		if q.UserEmail == email {
			out = append(out, *q)
		}
	}
	sortQueriesNewestFirst(out)
	return out, nil
}

func (f *MemQueryStore) Insert(_ context.Context, q *domain.Query) error {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	cp := *q
	f.Docs[q.ID] = &cp
	return nil
}

func (f *MemQueryStore) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	doc, ok := f.Docs[id]
	if !ok {
		return domain.ErrQueryNotFound
	}

	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "queryTitle":
			doc.QueryTitle = s
		case "productName":
			doc.ProductName = s
		case "productBrand":
			doc.ProductBrand = s
		case "productImage":
			doc.ProductImage = s
		case "boycottingReason":
			doc.BoycottingReason = s
		case "userEmail":
			doc.UserEmail = s
		case "userName":
			doc.UserName = s
		case "userPhoto":
			doc.UserPhoto = s
		case "recommendationCount":
			if n, ok := v.(float64); ok {
				doc.RecommendationCount = int64(n)
			}
		}
	}
	return nil
}

func (f *MemQueryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.Docs[id]; !ok {
		return domain.ErrQueryNotFound
	}
	delete(f.Docs, id)
	return nil
}

func (f *MemQueryStore) IncrementRecommendationCount(_ context.Context, id primitive.ObjectID, delta int64) error {
	if doc, ok := f.Docs[id]; ok {
		doc.RecommendationCount += delta
	}
	return nil
}

type MemRecommendationStore struct {
	Docs map[primitive.ObjectID]*domain.Recommendation
}

func NewMemRecommendationStore() *MemRecommendationStore {
	return &MemRecommendationStore{Docs: make(map[primitive.ObjectID]*domain.Recommendation)}
}

func (f *MemRecommendationStore) List(_ context.Context, queryID string) ([]domain.Recommendation, error) {
	out := make([]domain.Recommendation, 0)
	for _, r := range f.Docs {
		if queryID == "" || r.QueryID == queryID {
			out = append(out, *r)
		}
	}
	sortRecsNewestFirst(out)
	return out, nil
}

func (f *MemRecommendationStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Recommendation, error) {
	doc, ok := f.Docs[id]
	if !ok {
		return nil, domain.ErrRecommendationNotFound
	}
	r := *doc
	return &r, nil
}

func (f *MemRecommendationStore) Insert(_ context.Context, rec *domain.Recommendation) error {
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	cp := *rec
	f.Docs[rec.ID] = &cp
	return nil
}

func (f *MemRecommendationStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.Docs[id]; !ok {
		return domain.ErrRecommendationNotFound
	}
	delete(f.Docs, id)
	return nil
}

func (f *MemRecommendationStore) ListByRecommender(_ context.Context, email string) ([]domain.Recommendation, error) {
	out := make([]domain.Recommendation, 0)
	for _, r := range f.Docs {
		if r.RecommenderEmail == email {
			out = append(out, *r)
		}
	}
	sortRecsNewestFirst(out)
	return out, nil
}

func (f *MemRecommendationStore) ListByQueryOwner(_ context.Context, email string) ([]domain.Recommendation, error) {
	out := make([]domain.Recommendation, 0)
	for _, r := range f.Docs {
		if r.UserEmail == email {
			out = append(out, *r)
		}
	}
	sortRecsNewestFirst(out)
	return out, nil
}

func (f *MemRecommendationStore) DeleteByQueryID(_ context.Context, queryID string) (int64, error) {
	var n int64
	for id, r := range f.Docs {
		if r.QueryID == queryID {
			delete(f.Docs, id)
			n++
		}
	}
	return n, nil
}

// MemQueryCache records cache traffic for assertions.
type MemQueryCache struct {
	Entries       map[string]*domain.Query
	Hits          int
	Sets          int
	Invalidations []string
}

func NewMemQueryCache() *MemQueryCache {
	return &MemQueryCache{Entries: make(map[string]*domain.Query)}
}

func (f *MemQueryCache) Get(_ context.Context, id string) (*domain.Query, bool) {
	q, ok := f.Entries[id]
	if ok {
		f.Hits++
	}
	return q, ok
}

func (f *MemQueryCache) Set(_ context.Context, q *domain.Query) {
	f.Sets++
	cp := *q
	f.Entries[q.ID.Hex()] = &cp
}

func (f *MemQueryCache) Invalidate(_ context.Context, id string) {
	delete(f.Entries, id)
	f.Invalidations = append(f.Invalidations, id)
}

func sortQueriesNewestFirst(out []domain.Query) {
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
}

func sortRecsNewestFirst(out []domain.Recommendation) {
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
}
