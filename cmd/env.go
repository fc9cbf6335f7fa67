package cmd

import (
	"context"
	"fmt"

	"travel-admin/core/config"
	"travel-admin/core/database"
	"travel-admin/core/logger"
	"travel-admin/core/storage"
	"travel-admin/feature/links"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment bundles the dependencies shared by the CLI commands.
type environment struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	service *links.Service
}

// newEnvironment loads configuration and connects to the database.
// Unlike the server, CLI commands cannot run without a database.
func newEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	archive, err := openArchive(ctx, cfg)
	if err != nil {
		l.Warn("Report archive unavailable", zap.Error(err))
	}

	return &environment{
		cfg:     cfg,
		logger:  l,
		db:      db,
		service: links.NewService(links.NewStore(db), cfg.Reconcile, archive, nil, l),
	}, nil
}

// Close releases the database pool and flushes the logger.
func (e *environment) Close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.logger.Sync()
}

// openArchive returns nil when report archiving is disabled.
func openArchive(ctx context.Context, cfg *config.Config) (*links.Archive, error) {
	if !cfg.Reconcile.ArchiveReports {
		return nil, nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		return nil, err
	}

	return links.NewArchive(client, cfg.Storage.Bucket, cfg.Reconcile.ArchivePrefix), nil
}
