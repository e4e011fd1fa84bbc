package results

import (
	"context"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// Repository defines the storage contract for query execution snapshots.
type Repository interface {
	Save(ctx context.Context, jr *domain.JobResult) error
	Get(ctx context.Context, id string) (domain.JobResult, error)
	ListForUser(ctx context.Context, userID string, offset, limit int) ([]domain.JobResult, error)
	LatestForUser(ctx context.Context, userID string) (domain.JobResult, error)
	CountForUser(ctx context.Context, userID string) (int, error)
}

// JobReader hydrates job IDs into full job records.
type JobReader interface {
	GetJobsByIDs(ctx context.Context, ids []string) ([]domain.Job, error)
}
