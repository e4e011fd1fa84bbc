package catalog

import (
	"context"

	"github.com/Mccullahz/go-getta-job/internal/domain"
	repo "github.com/Mccullahz/go-getta-job/internal/repository/catalog"
)

// Repository defines the storage contract for businesses and jobs.
type Repository interface {
	SaveBusiness(ctx context.Context, b *domain.Business) error
	SaveBusinesses(ctx context.Context, businesses []domain.Business) error
	GetBusiness(ctx context.Context, id string) (domain.Business, error)
	GetBusinessesByIDs(ctx context.Context, ids []string) ([]domain.Business, error)
	BusinessExists(ctx context.Context, id string) (bool, error)
	ListBusinessesForGeoResult(ctx context.Context, geoResultID string, offset, limit int) ([]domain.Business, error)

	SaveJob(ctx context.Context, j *domain.Job) error
	SaveJobs(ctx context.Context, jobs []domain.Job) error
	GetJob(ctx context.Context, id string) (domain.Job, error)
	GetJobsByIDs(ctx context.Context, ids []string) ([]domain.Job, error)
	JobExists(ctx context.Context, id string) (bool, error)
	ListJobsForBusiness(ctx context.Context, businessID string, offset, limit int) ([]domain.Job, error)
	SearchJobsByTitle(ctx context.Context, title string, topK int) ([]repo.JobMatch, error)
}

// GeoReader answers existence checks against recorded geo searches.
type GeoReader interface {
	Get(ctx context.Context, id string) (domain.GeoResult, error)
}
