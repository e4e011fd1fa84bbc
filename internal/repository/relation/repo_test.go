package relation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

func TestAdd_Success(t *testing.T) {
	var gotKey, gotField, gotValue string
	s := &mockStore{
		hsetNXFn: func(_ context.Context, key, field, value string) (bool, error) {
			gotKey, gotField, gotValue = key, field, value
			return true, nil
		},
	}

	at := time.UnixMilli(1700000000000)
	err := New(s, KindStarred).Add(context.Background(), "u1", "job-1", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "getta:starred_jobs:u1" {
		t.Errorf("key = %q", gotKey)
	}
	if gotField != "job-1" {
		t.Errorf("field = %q", gotField)
	}
	if gotValue != "1700000000000" {
		t.Errorf("value = %q, want unix millis", gotValue)
	}
}

func TestAdd_Duplicate(t *testing.T) {
	s := &mockStore{
		hsetNXFn: func(_ context.Context, _, _, _ string) (bool, error) {
			return false, nil
		},
	}

	err := New(s, KindStarred).Add(context.Background(), "u1", "job-1", time.Now())
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestAdd_AppliedUsesOwnKeyspace(t *testing.T) {
	var gotKey string
	s := &mockStore{
		hsetNXFn: func(_ context.Context, key, _, _ string) (bool, error) {
			gotKey = key
			return true, nil
		},
	}

	err := New(s, KindApplied).Add(context.Background(), "u1", "job-1", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "getta:applied_jobs:u1" {
		t.Errorf("key = %q", gotKey)
	}
}

func TestRemove_Success(t *testing.T) {
	s := &mockStore{
		hdelFn: func(_ context.Context, key string, fields ...string) (int64, error) {
			if key != "getta:starred_jobs:u1" || len(fields) != 1 || fields[0] != "job-1" {
				t.Errorf("HDel(%q, %v)", key, fields)
			}
			return 1, nil
		},
	}

	err := New(s, KindStarred).Remove(context.Background(), "u1", "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRemove_NotFound(t *testing.T) {
	s := &mockStore{
		hdelFn: func(_ context.Context, _ string, _ ...string) (int64, error) {
			return 0, nil
		},
	}

	err := New(s, KindStarred).Remove(context.Background(), "u1", "absent")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestList_SortedOldestFirst(t *testing.T) {
	s := &mockStore{
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{
				"job-c": "3000",
				"job-a": "1000",
				"job-b": "2000",
			}, nil
		},
	}

	relations, err := New(s, KindStarred).List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"job-a", "job-b", "job-c"}
	if len(relations) != len(wantOrder) {
		t.Fatalf("got %d relations, want %d", len(relations), len(wantOrder))
	}
	for i, want := range wantOrder {
		if relations[i].JobID != want {
			t.Errorf("relations[%d].JobID = %q, want %q", i, relations[i].JobID, want)
		}
		if relations[i].UserID != "u1" {
			t.Errorf("relations[%d].UserID = %q", i, relations[i].UserID)
		}
	}
}

func TestList_TiesBrokenByJobID(t *testing.T) {
	s := &mockStore{
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{
				"job-z": "1000",
				"job-a": "1000",
			}, nil
		},
	}

	relations, err := New(s, KindApplied).List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if relations[0].JobID != "job-a" || relations[1].JobID != "job-z" {
		t.Errorf("order = [%s %s], want [job-a job-z]", relations[0].JobID, relations[1].JobID)
	}
}

func TestList_Empty(t *testing.T) {
	s := &mockStore{}

	relations, err := New(s, KindStarred).List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(relations) != 0 {
		t.Errorf("relations = %v, want empty", relations)
	}
}

func TestList_BadTimestamp(t *testing.T) {
	s := &mockStore{
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{"job-1": "not-a-number"}, nil
		},
	}

	_, err := New(s, KindStarred).List(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
}
