// Package gettajob is the embeddable entry point to the job search document
// store. The API collaborator constructs one Client and reaches every
// service through it; cmd/jobstore uses the same wiring for bootstrap.
package gettajob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Mccullahz/go-getta-job/internal/bootstrap"
	"github.com/Mccullahz/go-getta-job/internal/db"
	dbRedis "github.com/Mccullahz/go-getta-job/internal/db/redis"
	logpkg "github.com/Mccullahz/go-getta-job/internal/logger"
	catalogrepo "github.com/Mccullahz/go-getta-job/internal/repository/catalog"
	geosearchrepo "github.com/Mccullahz/go-getta-job/internal/repository/geosearch"
	jobresultrepo "github.com/Mccullahz/go-getta-job/internal/repository/jobresult"
	relationrepo "github.com/Mccullahz/go-getta-job/internal/repository/relation"
	userrepo "github.com/Mccullahz/go-getta-job/internal/repository/user"
	"github.com/Mccullahz/go-getta-job/internal/seed"
	cataloguc "github.com/Mccullahz/go-getta-job/internal/usecase/catalog"
	geosearchuc "github.com/Mccullahz/go-getta-job/internal/usecase/geosearch"
	identityuc "github.com/Mccullahz/go-getta-job/internal/usecase/identity"
	relationsuc "github.com/Mccullahz/go-getta-job/internal/usecase/relations"
	resultsuc "github.com/Mccullahz/go-getta-job/internal/usecase/results"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the job store entry point.
type Client struct {
	store        db.Store
	logger       *zap.Logger
	seedDir      string
	identitySvc  *identityuc.Service
	geoSvc       *geosearchuc.Service
	catalogSvc   *cataloguc.Service
	resultsSvc   *resultsuc.Service
	relationsSvc *relationsuc.Service
}

// New creates a Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("gettajob: database address required (use WithRedis or WithAddrs)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("gettajob: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("gettajob: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	users := userrepo.New(store)
	geo := geosearchrepo.New(store)
	catalog := catalogrepo.New(store)
	results := jobresultrepo.New(store)
	starred := relationrepo.New(store, relationrepo.KindStarred)
	applied := relationrepo.New(store, relationrepo.KindApplied)

	geoSvc := geosearchuc.New(geo).
		WithPagination(cfg.defaultPageSize, cfg.maxPageSize)
	catalogSvc := cataloguc.New(catalog, geo).
		WithPagination(cfg.defaultPageSize, cfg.maxPageSize).
		WithMaxTopK(cfg.maxTopK)
	resultsSvc := resultsuc.New(results, catalog).
		WithPagination(cfg.defaultPageSize, cfg.maxPageSize)

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		store:        store,
		logger:       logger,
		seedDir:      cfg.seedDir,
		identitySvc:  identityuc.New(users),
		geoSvc:       geoSvc,
		catalogSvc:   catalogSvc,
		resultsSvc:   resultsSvc,
		relationsSvc: relationsuc.New(starred, applied, catalog),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndexes creates the search indexes. Idempotent, safe on every start.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	return bootstrap.EnsureIndexes(logpkg.ContextWithLogger(ctx, c.logger), c.store)
}

// RebuildIndexes drops and recreates the search indexes, picking up schema
// changes. Stored documents are untouched.
func (c *Client) RebuildIndexes(ctx context.Context) error {
	return bootstrap.RebuildIndexes(logpkg.ContextWithLogger(ctx, c.logger), c.store)
}

// Seed loads initial documents from the configured seed directory.
// Returns the number of documents written; a zero with nil error means no
// seed directory or no files were found.
func (c *Client) Seed(ctx context.Context) (int, error) {
	return seed.New(c.store, c.seedDir).Load(logpkg.ContextWithLogger(ctx, c.logger))
}

// Reseed purges the seedable collections and loads the seed files again.
// Starred and applied links survive, they are never seeded.
func (c *Client) Reseed(ctx context.Context) (int, error) {
	return seed.New(c.store, c.seedDir).Reseed(logpkg.ContextWithLogger(ctx, c.logger))
}

// Identity returns the account service.
func (c *Client) Identity() *identityuc.Service {
	return c.identitySvc
}

// GeoSearches returns the geo search history service.
func (c *Client) GeoSearches() *geosearchuc.Service {
	return c.geoSvc
}

// Catalog returns the business and job catalog service.
func (c *Client) Catalog() *cataloguc.Service {
	return c.catalogSvc
}

// Results returns the query snapshot service.
func (c *Client) Results() *resultsuc.Service {
	return c.resultsSvc
}

// Relations returns the starred and applied jobs service.
func (c *Client) Relations() *relationsuc.Service {
	return c.relationsSvc
}
