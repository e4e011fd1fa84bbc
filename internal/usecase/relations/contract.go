package relations

import (
	"context"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// Repository defines the storage contract for one relation kind.
type Repository interface {
	Add(ctx context.Context, userID, jobID string, at time.Time) error
	Remove(ctx context.Context, userID, jobID string) error
	List(ctx context.Context, userID string) ([]domain.Relation, error)
}

// JobChecker answers existence checks against the job catalog.
type JobChecker interface {
	JobExists(ctx context.Context, id string) (bool, error)
}
