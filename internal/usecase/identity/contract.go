package identity

import (
	"context"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// Repository defines the storage contract for user accounts.
type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Delete(ctx context.Context, id string) error
}
