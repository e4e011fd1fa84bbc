// Package jobresult stores query execution snapshots, each an ordered list
// of the job IDs one query matched.
package jobresult

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Mccullahz/go-getta-job/internal/db"
	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// store is the consumer interface for job results (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SearchSorted(ctx context.Context, index, query, sortBy string, desc bool, offset, limit int) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements usecase/results.Repository.
type Repo struct {
	store store
}

// New creates a job result repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save stores one query execution. Executions are never deduplicated, a
// rerun of the same query gets its own record.
func (r *Repo) Save(ctx context.Context, jr *domain.JobResult) error {
	fields, err := resultToHash(jr)
	if err != nil {
		return err
	}
	key := domain.Key(domain.CollectionJobResults, jr.ID)
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset job_result %s: %w", jr.ID, err)
	}
	return nil
}

// Get retrieves a job result by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.JobResult, error) {
	m, err := r.store.HGetAll(ctx, domain.Key(domain.CollectionJobResults, id))
	if err != nil {
		return domain.JobResult{}, fmt.Errorf("hgetall job_result %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.JobResult{}, domain.ErrNotFound
	}
	return resultFromHash(id, m)
}

// ListForUser returns the executions of one user, newest first. The engine
// sorts by the created_at field; ties are broken by ID so the order is stable.
func (r *Repo) ListForUser(ctx context.Context, userID string, offset, limit int) ([]domain.JobResult, error) {
	res, err := r.store.SearchSorted(ctx,
		domain.IndexName(domain.CollectionJobResults),
		db.TagFilter("user_id", userID),
		"created_at", true,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("search job_results of %s: %w", userID, err)
	}

	prefix := domain.Prefix(domain.CollectionJobResults)
	results := make([]domain.JobResult, 0, len(res.Entries))
	for _, e := range res.Entries {
		jr, err := resultFromHash(strings.TrimPrefix(e.Key, prefix), e.Fields)
		if err != nil {
			return nil, err
		}
		results = append(results, jr)
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].ID < results[j].ID
	})
	return results, nil
}

// LatestForUser returns the most recent execution of one user.
// Returns domain.ErrNotFound when the user has none.
func (r *Repo) LatestForUser(ctx context.Context, userID string) (domain.JobResult, error) {
	results, err := r.ListForUser(ctx, userID, 0, 1)
	if err != nil {
		return domain.JobResult{}, err
	}
	if len(results) == 0 {
		return domain.JobResult{}, domain.ErrNotFound
	}
	return results[0], nil
}

// CountForUser returns how many executions a user has stored.
func (r *Repo) CountForUser(ctx context.Context, userID string) (int, error) {
	n, err := r.store.SearchCount(ctx, domain.IndexName(domain.CollectionJobResults), db.TagFilter("user_id", userID))
	if err != nil {
		return 0, fmt.Errorf("count job_results of %s: %w", userID, err)
	}
	return n, nil
}
