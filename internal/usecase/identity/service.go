// Package identity registers accounts and resolves them by ID or email.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
	"github.com/Mccullahz/go-getta-job/internal/metrics"
	"github.com/Mccullahz/go-getta-job/internal/schema"
)

// Service handles account registration and lookup.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates an identity service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Register validates and stores a new account. The caller provides an
// already-hashed password; this layer never sees plaintext credentials.
// Returns domain.ErrDuplicateEmail when the email is taken.
func (s *Service) Register(ctx context.Context, username, email, passwordHash string) (domain.User, error) {
	u := domain.User{
		ID:           domain.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}

	if err := schema.Validate(domain.CollectionUsers, u.Doc()); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(domain.CollectionUsers).Inc()
		return domain.User{}, err
	}

	if err := s.repo.Create(ctx, &u); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	metrics.DocumentWritesTotal.WithLabelValues(domain.CollectionUsers).Inc()
	return u, nil
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	return s.repo.Get(ctx, id)
}

// GetByEmail retrieves a user by email, case-insensitively.
func (s *Service) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// Delete removes a user account and frees their email for re-registration.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
