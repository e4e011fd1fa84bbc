// Package geosearch records geo search executions and answers history
// lookups over them.
package geosearch

import (
	"context"
	"fmt"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
	"github.com/Mccullahz/go-getta-job/internal/metrics"
	"github.com/Mccullahz/go-getta-job/internal/schema"
)

// Service handles geo search recording and history.
type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
}

// New creates a geo search service.
func New(repo Repository) *Service {
	return &Service{
		repo:            repo,
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

// Record validates and stores one geo search execution. Identical
// (zip, radius) pairs are recorded again on purpose, history keeps every run.
func (s *Service) Record(ctx context.Context, userID, zip string, radius int) (domain.GeoResult, error) {
	g := domain.GeoResult{
		ID:        domain.NewID(),
		UserID:    userID,
		Zip:       zip,
		Radius:    radius,
		CreatedAt: s.now().UTC(),
	}

	if err := schema.Validate(domain.CollectionGeoResults, g.Doc()); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(domain.CollectionGeoResults).Inc()
		return domain.GeoResult{}, err
	}

	if err := s.repo.Save(ctx, &g); err != nil {
		return domain.GeoResult{}, fmt.Errorf("save geo result: %w", err)
	}

	metrics.DocumentWritesTotal.WithLabelValues(domain.CollectionGeoResults).Inc()
	return g, nil
}

// Get retrieves a geo search execution by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.GeoResult, error) {
	return s.repo.Get(ctx, id)
}

// FindByZipRadius returns past executions with the exact same zip and radius,
// newest first.
func (s *Service) FindByZipRadius(ctx context.Context, zip string, radius, offset, limit int) ([]domain.GeoResult, error) {
	metrics.SearchQueriesTotal.WithLabelValues(domain.IndexName(domain.CollectionGeoResults)).Inc()
	return s.repo.FindByZipRadius(ctx, zip, radius, offset, s.clampLimit(limit))
}

// ListForUser returns the geo search history of one user, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string, offset, limit int) ([]domain.GeoResult, error) {
	return s.repo.ListForUser(ctx, userID, offset, s.clampLimit(limit))
}

// CountForUser returns the size of a user's geo search history.
func (s *Service) CountForUser(ctx context.Context, userID string) (int, error) {
	return s.repo.CountForUser(ctx, userID)
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
