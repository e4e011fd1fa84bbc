// Package catalog stores businesses and the jobs scraped from them.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Mccullahz/go-getta-job/internal/db"
	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// store is the consumer interface for the catalog (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchSorted(ctx context.Context, index, query, sortBy string, desc bool, offset, limit int) (*db.SearchResult, error)
}

// Repo implements usecase/catalog.Repository.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SaveBusiness stores a single business.
func (r *Repo) SaveBusiness(ctx context.Context, b *domain.Business) error {
	key := domain.Key(domain.CollectionBusinesses, b.ID)
	if err := r.store.HSet(ctx, key, businessToHash(b)); err != nil {
		return fmt.Errorf("hset business %s: %w", b.ID, err)
	}
	return nil
}

// SaveBusinesses stores a batch of businesses in one round-trip.
func (r *Repo) SaveBusinesses(ctx context.Context, businesses []domain.Business) error {
	if len(businesses) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(businesses))
	for i := range businesses {
		items[i] = db.HashSetItem{
			Key:    domain.Key(domain.CollectionBusinesses, businesses[i].ID),
			Fields: businessToHash(&businesses[i]),
		}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset businesses: %w", err)
	}
	return nil
}

// GetBusiness retrieves a business by ID.
func (r *Repo) GetBusiness(ctx context.Context, id string) (domain.Business, error) {
	m, err := r.store.HGetAll(ctx, domain.Key(domain.CollectionBusinesses, id))
	if err != nil {
		return domain.Business{}, fmt.Errorf("hgetall business %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.Business{}, domain.ErrNotFound
	}
	return businessFromHash(id, m)
}

// GetBusinessesByIDs loads businesses in bulk. IDs without a stored record
// are silently skipped, the caller gets only what exists.
func (r *Repo) GetBusinessesByIDs(ctx context.Context, ids []string) ([]domain.Business, error) {
	if len(ids) == 0 {
		return []domain.Business{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = domain.Key(domain.CollectionBusinesses, id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall businesses: %w", err)
	}

	businesses := make([]domain.Business, 0, len(ids))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		b, err := businessFromHash(ids[i], m)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, nil
}

// BusinessExists reports whether a business record exists.
func (r *Repo) BusinessExists(ctx context.Context, id string) (bool, error) {
	return r.store.Exists(ctx, domain.Key(domain.CollectionBusinesses, id))
}

// ListBusinessesForGeoResult returns all businesses discovered by one geo
// search, sorted by name then ID. Pagination runs over the engine-side
// name order, so pages stay consistent across calls.
func (r *Repo) ListBusinessesForGeoResult(ctx context.Context, geoResultID string, offset, limit int) ([]domain.Business, error) {
	res, err := r.store.SearchSorted(ctx,
		domain.IndexName(domain.CollectionBusinesses),
		db.TagFilter("geo_result_id", geoResultID),
		"name", false,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("search businesses of geo_result %s: %w", geoResultID, err)
	}

	prefix := domain.Prefix(domain.CollectionBusinesses)
	businesses := make([]domain.Business, 0, len(res.Entries))
	for _, e := range res.Entries {
		b, err := businessFromHash(strings.TrimPrefix(e.Key, prefix), e.Fields)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}

	sort.Slice(businesses, func(i, j int) bool {
		if businesses[i].Name != businesses[j].Name {
			return businesses[i].Name < businesses[j].Name
		}
		return businesses[i].ID < businesses[j].ID
	})
	return businesses, nil
}

// SaveJob stores a single job.
func (r *Repo) SaveJob(ctx context.Context, j *domain.Job) error {
	key := domain.Key(domain.CollectionJobs, j.ID)
	if err := r.store.HSet(ctx, key, jobToHash(j)); err != nil {
		return fmt.Errorf("hset job %s: %w", j.ID, err)
	}
	return nil
}

// SaveJobs stores a batch of jobs in one round-trip.
func (r *Repo) SaveJobs(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(jobs))
	for i := range jobs {
		items[i] = db.HashSetItem{
			Key:    domain.Key(domain.CollectionJobs, jobs[i].ID),
			Fields: jobToHash(&jobs[i]),
		}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset jobs: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID.
func (r *Repo) GetJob(ctx context.Context, id string) (domain.Job, error) {
	m, err := r.store.HGetAll(ctx, domain.Key(domain.CollectionJobs, id))
	if err != nil {
		return domain.Job{}, fmt.Errorf("hgetall job %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.Job{}, domain.ErrNotFound
	}
	return jobFromHash(id, m)
}

// GetJobsByIDs loads jobs in bulk, preserving the input order. IDs without a
// stored record are silently skipped.
func (r *Repo) GetJobsByIDs(ctx context.Context, ids []string) ([]domain.Job, error) {
	if len(ids) == 0 {
		return []domain.Job{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = domain.Key(domain.CollectionJobs, id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall jobs: %w", err)
	}

	jobs := make([]domain.Job, 0, len(ids))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		j, err := jobFromHash(ids[i], m)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// JobExists reports whether a job record exists.
func (r *Repo) JobExists(ctx context.Context, id string) (bool, error) {
	return r.store.Exists(ctx, domain.Key(domain.CollectionJobs, id))
}

// ListJobsForBusiness returns all jobs of one business, newest posting
// first. Pagination runs over the engine-side posted_at order.
func (r *Repo) ListJobsForBusiness(ctx context.Context, businessID string, offset, limit int) ([]domain.Job, error) {
	res, err := r.store.SearchSorted(ctx,
		domain.IndexName(domain.CollectionJobs),
		db.TagFilter("business_id", businessID),
		"posted_at", true,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("search jobs of business %s: %w", businessID, err)
	}

	prefix := domain.Prefix(domain.CollectionJobs)
	jobs := make([]domain.Job, 0, len(res.Entries))
	for _, e := range res.Entries {
		j, err := jobFromHash(strings.TrimPrefix(e.Key, prefix), e.Fields)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	sort.Slice(jobs, func(i, j int) bool {
		if !jobs[i].PostedAt.Equal(jobs[j].PostedAt) {
			return jobs[i].PostedAt.After(jobs[j].PostedAt)
		}
		return jobs[i].ID < jobs[j].ID
	})
	return jobs, nil
}

// JobMatch is one full-text hit with its relevance score.
type JobMatch struct {
	Job   domain.Job
	Score float64
}

// SearchJobsByTitle runs a scored full-text search over job titles.
// Results come back by descending score, ties broken by job ID.
func (r *Repo) SearchJobsByTitle(ctx context.Context, title string, topK int) ([]JobMatch, error) {
	res, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: domain.IndexName(domain.CollectionJobs),
		Field:     "title",
		Query:     title,
		TopK:      topK,
	})
	if err != nil {
		return nil, fmt.Errorf("search jobs by title: %w", err)
	}

	prefix := domain.Prefix(domain.CollectionJobs)
	matches := make([]JobMatch, 0, len(res.Entries))
	for _, e := range res.Entries {
		j, err := jobFromHash(strings.TrimPrefix(e.Key, prefix), e.Fields)
		if err != nil {
			return nil, err
		}
		matches = append(matches, JobMatch{Job: j, Score: e.Score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Job.ID < matches[j].Job.ID
	})
	return matches, nil
}
