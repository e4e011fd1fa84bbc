package geosearch

import (
	"context"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// Repository defines the storage contract for geo search executions.
type Repository interface {
	Save(ctx context.Context, g *domain.GeoResult) error
	Get(ctx context.Context, id string) (domain.GeoResult, error)
	FindByZipRadius(ctx context.Context, zip string, radius, offset, limit int) ([]domain.GeoResult, error)
	ListForUser(ctx context.Context, userID string, offset, limit int) ([]domain.GeoResult, error)
	CountForUser(ctx context.Context, userID string) (int, error)
}
