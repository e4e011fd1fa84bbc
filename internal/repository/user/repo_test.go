package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/db"
	"github.com/Mccullahz/go-getta-job/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "Alice@Example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.UnixMilli(1700000000000).UTC(),
	}
}

func TestCreate_Success(t *testing.T) {
	var reservedKey, reservedID string
	var hashKey string
	var fields map[string]string

	s := &mockStore{
		setNXFn: func(_ context.Context, key string, value []byte) (bool, error) {
			reservedKey, reservedID = key, string(value)
			return true, nil
		},
		hsetFn: func(_ context.Context, key string, f map[string]string) error {
			hashKey, fields = key, f
			return nil
		},
	}

	if err := New(s).Create(context.Background(), testUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reservedKey != "getta:users:email:alice@example.com" {
		t.Errorf("reservation key = %q, want lowercased email key", reservedKey)
	}
	if reservedID != "u1" {
		t.Errorf("reservation value = %q, want user ID", reservedID)
	}
	if hashKey != "getta:users:u1" {
		t.Errorf("hash key = %q", hashKey)
	}
	if fields["email"] != "Alice@Example.com" {
		t.Errorf("stored email = %q, want original casing", fields["email"])
	}
	if fields["created_at"] != "1700000000000" {
		t.Errorf("created_at = %q, want unix millis", fields["created_at"])
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	hsetCalled := false
	s := &mockStore{
		setNXFn: func(_ context.Context, _ string, _ []byte) (bool, error) {
			return false, nil
		},
		hsetFn: func(_ context.Context, _ string, _ map[string]string) error {
			hsetCalled = true
			return nil
		},
	}

	err := New(s).Create(context.Background(), testUser())
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
	if hsetCalled {
		t.Error("HSET must not run when the email reservation is lost")
	}
}

func TestCreate_RollsBackReservationOnHSetFailure(t *testing.T) {
	var deleted string
	hsetErr := errors.New("connection reset")

	s := &mockStore{
		hsetFn: func(_ context.Context, _ string, _ map[string]string) error {
			return hsetErr
		},
		delFn: func(_ context.Context, key string) error {
			deleted = key
			return nil
		},
	}

	err := New(s).Create(context.Background(), testUser())
	if !errors.Is(err, hsetErr) {
		t.Errorf("err = %v, want wrapped hset error", err)
	}
	if deleted != "getta:users:email:alice@example.com" {
		t.Errorf("rolled back key = %q, want email reservation", deleted)
	}
}

func TestGet_Success(t *testing.T) {
	s := &mockStore{
		hgetAllFn: func(_ context.Context, key string) (map[string]string, error) {
			if key != "getta:users:u1" {
				t.Errorf("key = %q", key)
			}
			return map[string]string{
				"username":      "alice",
				"email":         "alice@example.com",
				"password_hash": "$2a$10$hash",
				"created_at":    "1700000000000",
			}, nil
		},
	}

	u, err := New(s).Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" || u.Username != "alice" {
		t.Errorf("user = %+v", u)
	}
	if !u.CreatedAt.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("CreatedAt = %v", u.CreatedAt)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := &mockStore{}

	_, err := New(s).Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetByEmail_CaseInsensitive(t *testing.T) {
	s := &mockStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			if key != "getta:users:email:alice@example.com" {
				t.Errorf("lookup key = %q, want lowercased", key)
			}
			return []byte("u1"), nil
		},
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{
				"username":   "alice",
				"email":      "alice@example.com",
				"created_at": "1700000000000",
			}, nil
		},
	}

	u, err := New(s).GetByEmail(context.Background(), "ALICE@example.COM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" {
		t.Errorf("ID = %q", u.ID)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	s := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return nil, db.ErrKeyNotFound
		},
	}

	_, err := New(s).GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete_ReleasesReservation(t *testing.T) {
	var deleted []string
	s := &mockStore{
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{
				"username":   "alice",
				"email":      "Alice@Example.com",
				"created_at": "1700000000000",
			}, nil
		},
		delFn: func(_ context.Context, key string) error {
			deleted = append(deleted, key)
			return nil
		},
	}

	if err := New(s).Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != 2 {
		t.Fatalf("deleted %v, want user hash and email reservation", deleted)
	}
	if deleted[0] != "getta:users:u1" || deleted[1] != "getta:users:email:alice@example.com" {
		t.Errorf("deleted = %v", deleted)
	}
}
