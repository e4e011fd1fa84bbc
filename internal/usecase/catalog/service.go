// Package catalog ingests businesses and jobs and serves catalog queries,
// including the full-text job title search.
//
// Parent references are advisory: a business naming an unknown geo search,
// or a job naming an unknown business, is logged and counted but still
// written. The scraping collaborator delivers records out of order, so a
// missing parent usually means "not arrived yet", not "invalid".
package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Mccullahz/go-getta-job/internal/domain"
	"github.com/Mccullahz/go-getta-job/internal/logger"
	"github.com/Mccullahz/go-getta-job/internal/metrics"
	repocatalog "github.com/Mccullahz/go-getta-job/internal/repository/catalog"
	"github.com/Mccullahz/go-getta-job/internal/schema"
)

// Service handles catalog ingestion and queries.
type Service struct {
	repo            Repository
	geo             GeoReader
	defaultPageSize int
	maxPageSize     int
	maxTopK         int
}

// New creates a catalog service.
func New(repo Repository, geo GeoReader) *Service {
	return &Service{
		repo:            repo,
		geo:             geo,
		defaultPageSize: 20,
		maxPageSize:     100,
		maxTopK:         50,
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

// WithMaxTopK caps the result size of title searches.
func (s *Service) WithMaxTopK(maxTopK int) *Service {
	if maxTopK > 0 {
		s.maxTopK = maxTopK
	}
	return s
}

// AddBusiness validates and stores one business. A missing parent geo search
// is warned about but does not block the write.
func (s *Service) AddBusiness(ctx context.Context, b domain.Business) (domain.Business, error) {
	if b.ID == "" {
		b.ID = domain.NewID()
	}

	if err := schema.Validate(domain.CollectionBusinesses, b.Doc()); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(domain.CollectionBusinesses).Inc()
		return domain.Business{}, err
	}

	s.warnMissingGeoResult(ctx, b.GeoResultID, b.ID)

	if err := s.repo.SaveBusiness(ctx, &b); err != nil {
		return domain.Business{}, fmt.Errorf("save business: %w", err)
	}
	metrics.DocumentWritesTotal.WithLabelValues(domain.CollectionBusinesses).Inc()
	return b, nil
}

// AddBusinesses validates and stores a batch. Validation runs over the whole
// batch before any write, one bad record rejects the batch.
func (s *Service) AddBusinesses(ctx context.Context, businesses []domain.Business) ([]domain.Business, error) {
	for i := range businesses {
		if businesses[i].ID == "" {
			businesses[i].ID = domain.NewID()
		}
		if err := schema.Validate(domain.CollectionBusinesses, businesses[i].Doc()); err != nil {
			metrics.ValidationFailuresTotal.WithLabelValues(domain.CollectionBusinesses).Inc()
			return nil, fmt.Errorf("business %d: %w", i, err)
		}
	}

	for i := range businesses {
		s.warnMissingGeoResult(ctx, businesses[i].GeoResultID, businesses[i].ID)
	}

	if err := s.repo.SaveBusinesses(ctx, businesses); err != nil {
		return nil, fmt.Errorf("save businesses: %w", err)
	}
	metrics.DocumentWritesTotal.WithLabelValues(domain.CollectionBusinesses).Add(float64(len(businesses)))
	return businesses, nil
}

// GetBusiness retrieves a business by ID.
func (s *Service) GetBusiness(ctx context.Context, id string) (domain.Business, error) {
	return s.repo.GetBusiness(ctx, id)
}

// GetBusinessesByIDs loads businesses in bulk, skipping unknown IDs.
func (s *Service) GetBusinessesByIDs(ctx context.Context, ids []string) ([]domain.Business, error) {
	return s.repo.GetBusinessesByIDs(ctx, ids)
}

// ListBusinessesForGeoResult returns the businesses one geo search found.
func (s *Service) ListBusinessesForGeoResult(ctx context.Context, geoResultID string, offset, limit int) ([]domain.Business, error) {
	return s.repo.ListBusinessesForGeoResult(ctx, geoResultID, offset, s.clampLimit(limit))
}

// AddJob validates and stores one job. A missing parent business is warned
// about but does not block the write.
func (s *Service) AddJob(ctx context.Context, j domain.Job) (domain.Job, error) {
	if j.ID == "" {
		j.ID = domain.NewID()
	}

	if err := schema.Validate(domain.CollectionJobs, j.Doc()); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(domain.CollectionJobs).Inc()
		return domain.Job{}, err
	}

	s.warnMissingBusiness(ctx, j.BusinessID, j.ID)

	if err := s.repo.SaveJob(ctx, &j); err != nil {
		return domain.Job{}, fmt.Errorf("save job: %w", err)
	}
	metrics.DocumentWritesTotal.WithLabelValues(domain.CollectionJobs).Inc()
	return j, nil
}

// AddJobs validates and stores a batch. Validation runs over the whole batch
// before any write, one bad record rejects the batch.
func (s *Service) AddJobs(ctx context.Context, jobs []domain.Job) ([]domain.Job, error) {
	for i := range jobs {
		if jobs[i].ID == "" {
			jobs[i].ID = domain.NewID()
		}
		if err := schema.Validate(domain.CollectionJobs, jobs[i].Doc()); err != nil {
			metrics.ValidationFailuresTotal.WithLabelValues(domain.CollectionJobs).Inc()
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
	}

	for i := range jobs {
		s.warnMissingBusiness(ctx, jobs[i].BusinessID, jobs[i].ID)
	}

	if err := s.repo.SaveJobs(ctx, jobs); err != nil {
		return nil, fmt.Errorf("save jobs: %w", err)
	}
	metrics.DocumentWritesTotal.WithLabelValues(domain.CollectionJobs).Add(float64(len(jobs)))
	return jobs, nil
}

// GetJob retrieves a job by ID.
func (s *Service) GetJob(ctx context.Context, id string) (domain.Job, error) {
	return s.repo.GetJob(ctx, id)
}

// GetJobsByIDs loads jobs in bulk, skipping unknown IDs.
func (s *Service) GetJobsByIDs(ctx context.Context, ids []string) ([]domain.Job, error) {
	return s.repo.GetJobsByIDs(ctx, ids)
}

// ListJobsForBusiness returns the jobs of one business, newest posting first.
func (s *Service) ListJobsForBusiness(ctx context.Context, businessID string, offset, limit int) ([]domain.Job, error) {
	return s.repo.ListJobsForBusiness(ctx, businessID, offset, s.clampLimit(limit))
}

// SearchJobsByTitle runs a relevance-ranked full-text search over job titles.
func (s *Service) SearchJobsByTitle(ctx context.Context, title string, topK int) ([]repocatalog.JobMatch, error) {
	if topK <= 0 {
		topK = s.defaultPageSize
	}
	if topK > s.maxTopK {
		topK = s.maxTopK
	}
	metrics.SearchQueriesTotal.WithLabelValues(domain.IndexName(domain.CollectionJobs)).Inc()
	return s.repo.SearchJobsByTitle(ctx, title, topK)
}

func (s *Service) warnMissingGeoResult(ctx context.Context, geoResultID, businessID string) {
	if geoResultID == "" {
		return
	}
	if _, err := s.geo.Get(ctx, geoResultID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.FromContext(ctx).Warn("business references unknown geo result",
				zap.String("business_id", businessID),
				zap.String("geo_result_id", geoResultID))
			metrics.ReferentialWarningsTotal.WithLabelValues(domain.CollectionBusinesses, domain.CollectionGeoResults).Inc()
		}
	}
}

func (s *Service) warnMissingBusiness(ctx context.Context, businessID, jobID string) {
	if businessID == "" {
		return
	}
	exists, err := s.repo.BusinessExists(ctx, businessID)
	if err == nil && !exists {
		logger.FromContext(ctx).Warn("job references unknown business",
			zap.String("job_id", jobID),
			zap.String("business_id", businessID))
		metrics.ReferentialWarningsTotal.WithLabelValues(domain.CollectionJobs, domain.CollectionBusinesses).Inc()
	}
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
