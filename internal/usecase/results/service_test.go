package results

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	saveFn          func(ctx context.Context, jr *domain.JobResult) error
	getFn           func(ctx context.Context, id string) (domain.JobResult, error)
	listForUserFn   func(ctx context.Context, userID string, offset, limit int) ([]domain.JobResult, error)
	latestForUserFn func(ctx context.Context, userID string) (domain.JobResult, error)
}

func (m *mockRepo) Save(ctx context.Context, jr *domain.JobResult) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, jr)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domain.JobResult, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.JobResult{}, domain.ErrNotFound
}

func (m *mockRepo) ListForUser(ctx context.Context, userID string, offset, limit int) ([]domain.JobResult, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, userID, offset, limit)
	}
	return nil, nil
}

func (m *mockRepo) LatestForUser(ctx context.Context, userID string) (domain.JobResult, error) {
	if m.latestForUserFn != nil {
		return m.latestForUserFn(ctx, userID)
	}
	return domain.JobResult{}, domain.ErrNotFound
}

func (m *mockRepo) CountForUser(_ context.Context, _ string) (int, error) {
	return 0, nil
}

// mockJobs implements JobReader for tests.
type mockJobs struct {
	getJobsByIDsFn func(ctx context.Context, ids []string) ([]domain.Job, error)
}

func (m *mockJobs) GetJobsByIDs(ctx context.Context, ids []string) ([]domain.Job, error) {
	if m.getJobsByIDsFn != nil {
		return m.getJobsByIDsFn(ctx, ids)
	}
	return nil, nil
}

func TestRecord_Success(t *testing.T) {
	var stored *domain.JobResult
	repo := &mockRepo{
		saveFn: func(_ context.Context, jr *domain.JobResult) error {
			stored = jr
			return nil
		},
	}

	svc := New(repo, &mockJobs{})
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	jr, err := svc.Record(context.Background(), "u1", "engineer", []string{"j2", "j1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jr.ID == "" {
		t.Error("expected a generated ID")
	}
	if stored == nil || len(stored.Jobs) != 2 || stored.Jobs[0] != "j2" {
		t.Errorf("stored = %+v, want job order preserved", stored)
	}
}

func TestRecord_EmptyJobListAllowed(t *testing.T) {
	var stored *domain.JobResult
	repo := &mockRepo{
		saveFn: func(_ context.Context, jr *domain.JobResult) error {
			stored = jr
			return nil
		},
	}

	_, err := New(repo, &mockJobs{}).Record(context.Background(), "u1", "unicorn wrangler", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Jobs == nil || len(stored.Jobs) != 0 {
		t.Errorf("Jobs = %#v, want empty non-nil slice", stored.Jobs)
	}
}

func TestRecord_ValidationFailure(t *testing.T) {
	saved := false
	repo := &mockRepo{
		saveFn: func(_ context.Context, _ *domain.JobResult) error {
			saved = true
			return nil
		},
	}

	// Empty query title fails schema validation.
	_, err := New(repo, &mockJobs{}).Record(context.Background(), "u1", "", []string{"j1"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if saved {
		t.Error("repository write attempted for invalid result")
	}
}

func TestResolveJobs(t *testing.T) {
	repo := &mockRepo{
		getFn: func(_ context.Context, id string) (domain.JobResult, error) {
			if id != "r1" {
				t.Errorf("id = %q", id)
			}
			return domain.JobResult{ID: "r1", Jobs: []string{"j1", "j2"}}, nil
		},
	}
	jobs := &mockJobs{
		getJobsByIDsFn: func(_ context.Context, ids []string) ([]domain.Job, error) {
			if len(ids) != 2 {
				t.Errorf("ids = %v", ids)
			}
			return []domain.Job{{ID: "j1"}, {ID: "j2"}}, nil
		},
	}

	got, err := New(repo, jobs).ResolveJobs(context.Background(), "r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d jobs, want 2", len(got))
	}
}

func TestResolveJobs_ResultNotFound(t *testing.T) {
	_, err := New(&mockRepo{}, &mockJobs{}).ResolveJobs(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListForUser_ClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &mockRepo{
		listForUserFn: func(_ context.Context, _ string, _, limit int) ([]domain.JobResult, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	svc := New(repo, &mockJobs{}).WithPagination(10, 50)

	if _, err := svc.ListForUser(context.Background(), "u1", 0, 999); err != nil {
		t.Fatal(err)
	}
	if gotLimit != 50 {
		t.Errorf("limit = %d, want clamped 50", gotLimit)
	}
}
