// Package relation stores user-to-job links (starred and applied).
//
// Each user gets one hash per kind with the job ID as the field name, so a
// link either exists or it does not. HSETNX makes the insert conditional in a
// single command, which is what keeps concurrent duplicate stars down to one
// winner without any locking.
package relation

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// Kind selects which relation collection a repository manages.
type Kind string

// Relation kinds.
const (
	KindStarred Kind = domain.CollectionStarredJobs
	KindApplied Kind = domain.CollectionAppliedJobs
)

// store is the consumer interface for relations (ISP).
type store interface {
	HSetNX(ctx context.Context, key, field, value string) (bool, error)
	HDel(ctx context.Context, key string, fields ...string) (int64, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo implements usecase/relations.Repository for one relation kind.
type Repo struct {
	store store
	kind  Kind
}

// New creates a relation repository for the given kind.
func New(s store, kind Kind) *Repo {
	return &Repo{store: s, kind: kind}
}

// Kind returns the relation kind this repository manages.
func (r *Repo) Kind() Kind {
	return r.kind
}

// Add links a job to a user at the given time.
// Returns domain.ErrAlreadyExists when the link is already present.
func (r *Repo) Add(ctx context.Context, userID, jobID string, at time.Time) error {
	value := strconv.FormatInt(at.UnixMilli(), 10)

	set, err := r.store.HSetNX(ctx, r.key(userID), jobID, value)
	if err != nil {
		return fmt.Errorf("hsetnx %s %s/%s: %w", r.kind, userID, jobID, err)
	}
	if !set {
		return domain.ErrAlreadyExists
	}
	return nil
}

// Remove unlinks a job from a user.
// Returns domain.ErrNotFound when no such link exists.
func (r *Repo) Remove(ctx context.Context, userID, jobID string) error {
	removed, err := r.store.HDel(ctx, r.key(userID), jobID)
	if err != nil {
		return fmt.Errorf("hdel %s %s/%s: %w", r.kind, userID, jobID, err)
	}
	if removed == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all links of a user, oldest first. Ties on the timestamp are
// broken by job ID so the order is stable.
func (r *Repo) List(ctx context.Context, userID string) ([]domain.Relation, error) {
	m, err := r.store.HGetAll(ctx, r.key(userID))
	if err != nil {
		return nil, fmt.Errorf("hgetall %s %s: %w", r.kind, userID, err)
	}

	relations := make([]domain.Relation, 0, len(m))
	for jobID, value := range m {
		millis, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp of %s %s/%s: %w", r.kind, userID, jobID, err)
		}
		relations = append(relations, domain.Relation{
			UserID:    userID,
			JobID:     jobID,
			CreatedAt: time.UnixMilli(millis).UTC(),
		})
	}

	sort.Slice(relations, func(i, j int) bool {
		if !relations[i].CreatedAt.Equal(relations[j].CreatedAt) {
			return relations[i].CreatedAt.Before(relations[j].CreatedAt)
		}
		return relations[i].JobID < relations[j].JobID
	})
	return relations, nil
}

func (r *Repo) key(userID string) string {
	return domain.Key(string(r.kind), userID)
}
