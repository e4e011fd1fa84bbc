package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	createFn     func(ctx context.Context, u *domain.User) error
	getFn        func(ctx context.Context, id string) (domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (domain.User, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockRepo) Create(ctx context.Context, u *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func TestRegister_Success(t *testing.T) {
	var stored *domain.User
	repo := &mockRepo{
		createFn: func(_ context.Context, u *domain.User) error {
			stored = u
			return nil
		},
	}

	svc := New(repo)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	u, err := svc.Register(context.Background(), "alice", "alice@example.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.ID == "" {
		t.Error("expected a generated ID")
	}
	if stored == nil || stored.ID != u.ID {
		t.Error("user not stored")
	}
	if !u.CreatedAt.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("CreatedAt = %v", u.CreatedAt)
	}
}

func TestRegister_ValidationFailure(t *testing.T) {
	created := false
	repo := &mockRepo{
		createFn: func(_ context.Context, _ *domain.User) error {
			created = true
			return nil
		},
	}

	// Missing email fails schema validation before any write.
	_, err := New(repo).Register(context.Background(), "alice", "", "$2a$10$hash")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if created {
		t.Error("repository write attempted for invalid user")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockRepo{
		createFn: func(_ context.Context, _ *domain.User) error {
			return domain.ErrDuplicateEmail
		},
	}

	_, err := New(repo).Register(context.Background(), "alice", "alice@example.com", "$2a$10$hash")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestGetByEmail_Passthrough(t *testing.T) {
	repo := &mockRepo{
		getByEmailFn: func(_ context.Context, email string) (domain.User, error) {
			if email != "alice@example.com" {
				t.Errorf("email = %q", email)
			}
			return domain.User{ID: "u1"}, nil
		},
	}

	u, err := New(repo).GetByEmail(context.Background(), "alice@example.com")
	if err != nil || u.ID != "u1" {
		t.Errorf("GetByEmail = (%+v, %v)", u, err)
	}
}
