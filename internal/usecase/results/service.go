// Package results records query execution snapshots and serves per-user
// result history.
package results

import (
	"context"
	"fmt"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
	"github.com/Mccullahz/go-getta-job/internal/metrics"
	"github.com/Mccullahz/go-getta-job/internal/schema"
)

// Service handles result snapshots.
type Service struct {
	repo            Repository
	jobs            JobReader
	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
}

// New creates a results service.
func New(repo Repository, jobs JobReader) *Service {
	return &Service{
		repo:            repo,
		jobs:            jobs,
		defaultPageSize: 20,
		maxPageSize:     100,
		now:             time.Now,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Record stores one query execution snapshot. The job ID list keeps its
// order, it reflects the ranking at execution time. Reruns of the same query
// always produce a new snapshot.
func (s *Service) Record(ctx context.Context, userID, queryTitle string, jobIDs []string) (domain.JobResult, error) {
	jr := domain.JobResult{
		ID:         domain.NewID(),
		UserID:     userID,
		Jobs:       jobIDs,
		QueryTitle: queryTitle,
		CreatedAt:  s.now().UTC(),
	}
	if jr.Jobs == nil {
		jr.Jobs = []string{}
	}

	if err := schema.Validate(domain.CollectionJobResults, jr.Doc()); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(domain.CollectionJobResults).Inc()
		return domain.JobResult{}, err
	}

	if err := s.repo.Save(ctx, &jr); err != nil {
		return domain.JobResult{}, fmt.Errorf("save job result: %w", err)
	}

	metrics.DocumentWritesTotal.WithLabelValues(domain.CollectionJobResults).Inc()
	return jr, nil
}

// Get retrieves a snapshot by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.JobResult, error) {
	return s.repo.Get(ctx, id)
}

// ListForUser returns a user's snapshots, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string, offset, limit int) ([]domain.JobResult, error) {
	return s.repo.ListForUser(ctx, userID, offset, s.clampLimit(limit))
}

// LatestForUser returns a user's most recent snapshot.
func (s *Service) LatestForUser(ctx context.Context, userID string) (domain.JobResult, error) {
	return s.repo.LatestForUser(ctx, userID)
}

// CountForUser returns how many snapshots a user has.
func (s *Service) CountForUser(ctx context.Context, userID string) (int, error) {
	return s.repo.CountForUser(ctx, userID)
}

// ResolveJobs loads the job records behind one snapshot, in snapshot order.
// Jobs deleted since the snapshot was taken are skipped.
func (s *Service) ResolveJobs(ctx context.Context, resultID string) ([]domain.Job, error) {
	jr, err := s.repo.Get(ctx, resultID)
	if err != nil {
		return nil, err
	}
	return s.jobs.GetJobsByIDs(ctx, jr.Jobs)
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultPageSize
	}
	if limit > s.maxPageSize {
		return s.maxPageSize
	}
	return limit
}
