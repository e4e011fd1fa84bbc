// Package user stores accounts and enforces the unique-email invariant.
//
// Uniqueness rests on a reservation key per lowercased email, written with
// SET NX before the account hash. Two concurrent registrations with the same
// email race on that single key, so exactly one wins.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mccullahz/go-getta-job/internal/db"
	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// store is the consumer interface for accounts (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Get(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
}

// Repo implements usecase/identity.Repository.
type Repo struct {
	store store
}

// New creates a user repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a user: SET NX on the email reservation key, then HSET the
// account hash. On HSET failure the reservation is rolled back via DEL.
// Returns domain.ErrDuplicateEmail when the email is already registered.
func (r *Repo) Create(ctx context.Context, u *domain.User) error {
	reservation := emailKey(u.Email)

	won, err := r.store.SetNX(ctx, reservation, []byte(u.ID))
	if err != nil {
		return fmt.Errorf("reserve email %s: %w", u.Email, err)
	}
	if !won {
		return domain.ErrDuplicateEmail
	}

	if err := r.store.HSet(ctx, domain.Key(domain.CollectionUsers, u.ID), userToHash(u)); err != nil {
		cleanupErr := r.store.Del(ctx, reservation)
		return errors.Join(fmt.Errorf("hset user %s: %w", u.ID, err), cleanupErr)
	}
	return nil
}

// Get retrieves a user by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.User, error) {
	m, err := r.store.HGetAll(ctx, domain.Key(domain.CollectionUsers, id))
	if err != nil {
		return domain.User{}, fmt.Errorf("hgetall user %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.User{}, domain.ErrNotFound
	}
	return userFromHash(id, m)
}

// GetByEmail resolves the reservation key to a user ID, then loads the user.
// Lookup is case-insensitive, matching the uniqueness rule.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, err := r.store.Get(ctx, emailKey(email))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("resolve email %s: %w", email, err)
	}
	return r.Get(ctx, string(id))
}

// Delete removes a user and releases their email reservation.
func (r *Repo) Delete(ctx context.Context, id string) error {
	u, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.store.Del(ctx, domain.Key(domain.CollectionUsers, id)); err != nil {
		return fmt.Errorf("del user %s: %w", id, err)
	}
	if err := r.store.Del(ctx, emailKey(u.Email)); err != nil {
		return fmt.Errorf("release email %s: %w", u.Email, err)
	}
	return nil
}

func emailKey(email string) string {
	return domain.KeyPrefix + "users:email:" + strings.ToLower(strings.TrimSpace(email))
}
