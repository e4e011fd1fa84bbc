// Command jobstore bootstraps the document store: it creates the search
// indexes and loads seed data, then exits. Run it once per deployment before
// the API collaborator starts.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/Mccullahz/go-getta-job/internal/bootstrap"
	"github.com/Mccullahz/go-getta-job/internal/config"
	dbRedis "github.com/Mccullahz/go-getta-job/internal/db/redis"
	logpkg "github.com/Mccullahz/go-getta-job/internal/logger"
	"github.com/Mccullahz/go-getta-job/internal/metrics"
	"github.com/Mccullahz/go-getta-job/internal/seed"
	"github.com/Mccullahz/go-getta-job/internal/version"
)

func main() {
	reindex := flag.Bool("reindex", false, "drop and recreate the search indexes")
	reseed := flag.Bool("reseed", false, "purge the seeded collections and load the seed files again")
	flag.Parse()

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting jobstore bootstrap",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("seed_dir", cfg.Seed.Dir),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := logpkg.ContextWithLogger(context.Background(), logger)
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.Register()

	ensure := bootstrap.EnsureIndexes
	if *reindex {
		ensure = bootstrap.RebuildIndexes
	}
	if err := ensure(ctx, store); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}
	logger.Info("Indexes ready")

	loader := seed.New(store, cfg.Seed.Dir)
	load := loader.Load
	if *reseed {
		load = loader.Reseed
	}
	loaded, err := load(ctx)
	if err != nil {
		logger.Fatal("Failed to load seed data", zap.Error(err))
	}
	logger.Info("Bootstrap complete", zap.Int("seeded_documents", loaded))
}
