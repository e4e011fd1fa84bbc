// Package geosearch stores geo search executions and answers exact
// (zip, radius) lookups over the FT index.
package geosearch

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Mccullahz/go-getta-job/internal/db"
	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// store is the consumer interface for geo searches (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SearchSorted(ctx context.Context, index, query, sortBy string, desc bool, offset, limit int) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements usecase/geosearch.Repository.
type Repo struct {
	store store
}

// New creates a geo search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save stores a geo search execution. Repeated (zip, radius) pairs are
// expected, every execution is its own record.
func (r *Repo) Save(ctx context.Context, g *domain.GeoResult) error {
	key := domain.Key(domain.CollectionGeoResults, g.ID)
	if err := r.store.HSet(ctx, key, geoToHash(g)); err != nil {
		return fmt.Errorf("hset geo_result %s: %w", g.ID, err)
	}
	return nil
}

// Get retrieves a geo search by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.GeoResult, error) {
	m, err := r.store.HGetAll(ctx, domain.Key(domain.CollectionGeoResults, id))
	if err != nil {
		return domain.GeoResult{}, fmt.Errorf("hgetall geo_result %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.GeoResult{}, domain.ErrNotFound
	}
	return geoFromHash(id, m)
}

// FindByZipRadius returns all executions matching the exact (zip, radius)
// pair, newest first.
func (r *Repo) FindByZipRadius(ctx context.Context, zip string, radius, offset, limit int) ([]domain.GeoResult, error) {
	query := db.TagFilter("zip", zip) + " " + db.NumericEqFilter("radius", radius)
	return r.search(ctx, query, offset, limit)
}

// ListForUser returns all executions of one user, newest first.
func (r *Repo) ListForUser(ctx context.Context, userID string, offset, limit int) ([]domain.GeoResult, error) {
	return r.search(ctx, db.TagFilter("user_id", userID), offset, limit)
}

// CountForUser returns how many geo searches a user has run.
func (r *Repo) CountForUser(ctx context.Context, userID string) (int, error) {
	n, err := r.store.SearchCount(ctx, domain.IndexName(domain.CollectionGeoResults), db.TagFilter("user_id", userID))
	if err != nil {
		return 0, fmt.Errorf("count geo_results of %s: %w", userID, err)
	}
	return n, nil
}

// search pages engine-side by created_at so every page of a newest-first
// listing is cut from the globally sorted order, not from doc-id order.
func (r *Repo) search(ctx context.Context, query string, offset, limit int) ([]domain.GeoResult, error) {
	res, err := r.store.SearchSorted(ctx,
		domain.IndexName(domain.CollectionGeoResults),
		query,
		"created_at", true,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("search geo_results: %w", err)
	}

	prefix := domain.Prefix(domain.CollectionGeoResults)
	results := make([]domain.GeoResult, 0, len(res.Entries))
	for _, e := range res.Entries {
		g, err := geoFromHash(strings.TrimPrefix(e.Key, prefix), e.Fields)
		if err != nil {
			return nil, err
		}
		results = append(results, g)
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].ID < results[j].ID
	})
	return results, nil
}
