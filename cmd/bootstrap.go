package cmd

import (
	"context"
	"fmt"

	"content-sweeper/core/audit"
	"content-sweeper/core/config"
	"content-sweeper/core/corpus"
	"content-sweeper/core/database"
	"content-sweeper/core/logger"
	"content-sweeper/core/metrics"
	"content-sweeper/core/scanner"
	"content-sweeper/core/storage"
	"content-sweeper/feature/orphans"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment is what every command builds before doing any work.
type environment struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   storage.Client
	db       *gorm.DB
	recorder *audit.Recorder
	metrics  *metrics.Metrics
}

// loadEnvironment is replaced in tests to run commands against a mocked store.
var loadEnvironment = newEnvironment

// newEnvironment loads and validates configuration, then creates the logger, the
// storage client and, when enabled, the audit ledger. sections names the
// configuration sections the command depends on.
func newEnvironment(ctx context.Context, sections ...string) (*environment, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(sections...); err != nil {
		return nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	client, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	env := &environment{
		cfg:     cfg,
		logger:  logg,
		client:  client,
		metrics: metrics.New(),
	}

	// The ledger is optional: failures are logged and the run continues without it.
	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional audit database connection failed", zap.Error(err))
		} else {
			rec := audit.NewRecorder(conn, logg)
			if err := rec.Migrate(); err != nil {
				logg.Warn("Audit ledger disabled", zap.Error(err))
			} else {
				env.db = conn
				env.recorder = rec
				logg.Debug("Connected to audit database", zap.String("driver", cfg.Database.Driver))
			}
		}
	}

	return env, nil
}

// bucket returns the configured bucket.
func (e *environment) bucket() *storage.Bucket {
	return storage.NewBucket(e.client, e.cfg.Storage.Bucket, e.cfg.Storage.Prefix, e.logger)
}

// orphansService builds the scan/destroy service from configuration.
func (e *environment) orphansService() (*orphans.Service, error) {
	c, err := corpus.Open(e.cfg.Content.Path, e.cfg.Content.Workers, e.logger)
	if err != nil {
		return nil, err
	}

	return orphans.NewService(orphans.Options{
		Bucket:          e.bucket(),
		Corpus:          c,
		Scanner:         scanner.New(e.cfg.Storage.BaseURL(), e.cfg.Content.Workers, e.logger),
		OutputDir:       e.cfg.Output.Dir,
		CleanupWorkers:  e.cfg.Cleanup.Workers,
		Recorder:        e.recorder,
		Metrics:         e.metrics,
		MetricsTextfile: e.cfg.Metrics.Textfile,
		Logger:          e.logger,
	}), nil
}

// manifestService builds a service without a corpus, for runs that only read the
// manifest: destroy and the review server.
func (e *environment) manifestService() *orphans.Service {
	return orphans.NewService(orphans.Options{
		Bucket:          e.bucket(),
		OutputDir:       e.cfg.Output.Dir,
		CleanupWorkers:  e.cfg.Cleanup.Workers,
		Recorder:        e.recorder,
		Metrics:         e.metrics,
		MetricsTextfile: e.cfg.Metrics.Textfile,
		Logger:          e.logger,
	})
}

func (e *environment) close() {
	if e.db != nil {
		if sqlDB, err := e.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = e.logger.Sync()
}
