// Package bootstrap creates the search indexes the repositories depend on.
// EnsureIndexes is idempotent and safe to run on every startup.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Mccullahz/go-getta-job/internal/db"
	"github.com/Mccullahz/go-getta-job/internal/domain"
	"github.com/Mccullahz/go-getta-job/internal/logger"
)

type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// IndexDefinitions returns the FT index for every searchable collection.
func IndexDefinitions() ([]*db.IndexDefinition, error) {
	builders := []*db.IndexBuilder{
		db.NewIndex(domain.IndexName(domain.CollectionGeoResults)).
			Prefix(domain.Prefix(domain.CollectionGeoResults)).
			Tag("zip").
			Numeric("radius").
			Tag("user_id").
			Numeric("created_at").Sortable(),

		db.NewIndex(domain.IndexName(domain.CollectionBusinesses)).
			Prefix(domain.Prefix(domain.CollectionBusinesses)).
			Tag("name").Sortable().
			Tag("geo_result_id").
			Numeric("lat").
			Numeric("lon"),

		db.NewIndex(domain.IndexName(domain.CollectionJobs)).
			Prefix(domain.Prefix(domain.CollectionJobs)).
			Text("title").
			Tag("business_id").
			Numeric("posted_at").Sortable(),

		db.NewIndex(domain.IndexName(domain.CollectionJobResults)).
			Prefix(domain.Prefix(domain.CollectionJobResults)).
			Tag("user_id").
			Text("query_title").
			Numeric("created_at").Sortable(),
	}

	defs := make([]*db.IndexDefinition, 0, len(builders))
	for _, b := range builders {
		def, err := b.Build()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// EnsureIndexes creates every missing index. Indexes that already exist,
// including ones created concurrently by another instance, are left as is.
func EnsureIndexes(ctx context.Context, s store) error {
	log := logger.FromContext(ctx)

	defs, err := IndexDefinitions()
	if err != nil {
		return fmt.Errorf("build index definitions: %w", err)
	}

	for _, def := range defs {
		exists, err := s.IndexExists(ctx, def.Name)
		if err != nil {
			return fmt.Errorf("probe index %s: %w", def.Name, err)
		}
		if exists {
			log.Debug("index already present", zap.String("index", def.Name))
			continue
		}

		if err := s.CreateIndex(ctx, def); err != nil {
			if errors.Is(err, db.ErrIndexExists) {
				continue
			}
			return fmt.Errorf("create index %s: %w", def.Name, err)
		}
		log.Info("index created", zap.String("index", def.Name))
	}
	return nil
}

// RebuildIndexes drops and recreates every index, picking up schema changes
// such as new fields. Documents are untouched; the engine reindexes them in
// the background after FT.CREATE.
func RebuildIndexes(ctx context.Context, s store) error {
	log := logger.FromContext(ctx)

	defs, err := IndexDefinitions()
	if err != nil {
		return fmt.Errorf("build index definitions: %w", err)
	}

	for _, def := range defs {
		err := s.DropIndex(ctx, def.Name)
		if err != nil {
			if errors.Is(err, db.ErrIndexNotFound) {
				continue
			}
			return fmt.Errorf("drop index %s: %w", def.Name, err)
		}
		log.Info("index dropped", zap.String("index", def.Name))
	}
	return EnsureIndexes(ctx, s)
}
