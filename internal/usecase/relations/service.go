// Package relations manages the starred and applied links between users and
// jobs. Each (user, job) pair carries at most one link per kind; the
// conditional write in the repository makes concurrent duplicates impossible.
package relations

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Mccullahz/go-getta-job/internal/domain"
	"github.com/Mccullahz/go-getta-job/internal/logger"
	"github.com/Mccullahz/go-getta-job/internal/metrics"
	"github.com/Mccullahz/go-getta-job/internal/schema"
)

// Service handles starred and applied job links.
type Service struct {
	starred Repository
	applied Repository
	jobs    JobChecker
	now     func() time.Time
}

// New creates a relations service.
func New(starred, applied Repository, jobs JobChecker) *Service {
	return &Service{
		starred: starred,
		applied: applied,
		jobs:    jobs,
		now:     time.Now,
	}
}

// Star links a job to a user's starred list.
// Returns domain.ErrAlreadyExists when the job is already starred.
func (s *Service) Star(ctx context.Context, userID, jobID string) error {
	return s.add(ctx, s.starred, domain.CollectionStarredJobs, userID, jobID)
}

// Unstar removes a job from a user's starred list.
// Returns domain.ErrNotFound when the job was not starred.
func (s *Service) Unstar(ctx context.Context, userID, jobID string) error {
	return s.starred.Remove(ctx, userID, jobID)
}

// ListStarred returns a user's starred jobs, oldest first.
func (s *Service) ListStarred(ctx context.Context, userID string) ([]domain.Relation, error) {
	return s.starred.List(ctx, userID)
}

// MarkApplied links a job to a user's applied list.
// Returns domain.ErrAlreadyExists when the application is already recorded.
func (s *Service) MarkApplied(ctx context.Context, userID, jobID string) error {
	return s.add(ctx, s.applied, domain.CollectionAppliedJobs, userID, jobID)
}

// UnmarkApplied removes a job from a user's applied list.
// Returns domain.ErrNotFound when no application was recorded.
func (s *Service) UnmarkApplied(ctx context.Context, userID, jobID string) error {
	return s.applied.Remove(ctx, userID, jobID)
}

// ListApplied returns a user's applied jobs, oldest first.
func (s *Service) ListApplied(ctx context.Context, userID string) ([]domain.Relation, error) {
	return s.applied.List(ctx, userID)
}

func (s *Service) add(ctx context.Context, repo Repository, collection, userID, jobID string) error {
	at := s.now().UTC()

	doc := map[string]any{
		"user_id":   userID,
		"job_id":    jobID,
		"timestamp": at,
	}
	if err := schema.Validate(collection, doc); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(collection).Inc()
		return err
	}

	exists, err := s.jobs.JobExists(ctx, jobID)
	if err == nil && !exists {
		logger.FromContext(ctx).Warn("relation references unknown job",
			zap.String("collection", collection),
			zap.String("user_id", userID),
			zap.String("job_id", jobID))
		metrics.ReferentialWarningsTotal.WithLabelValues(collection, domain.CollectionJobs).Inc()
	}

	if err := repo.Add(ctx, userID, jobID, at); err != nil {
		return err
	}
	metrics.DocumentWritesTotal.WithLabelValues(collection).Inc()
	return nil
}
