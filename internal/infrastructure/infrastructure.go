// Package infrastructure assembles the shared systems every domain needs:
// lifecycle coordination, logging, metrics, database access, and optional
// blob storage.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/migrations"
	"github.com/JaimeStill/promptvault/pkg/database"
	"github.com/JaimeStill/promptvault/pkg/lifecycle"
	"github.com/JaimeStill/promptvault/pkg/metrics"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

// MetricsNamespace prefixes every exported Prometheus metric.
const MetricsNamespace = "promptvault"

// Infrastructure holds the core systems required by all domain modules.
// Storage is nil when no storage connection string is configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   *metrics.Collector
	Database  database.System
	Storage   storage.System

	dbConfig *database.Config
	logClose func() error
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger, closeLog, err := NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	collector := metrics.New(MetricsNamespace)
	if err := collector.RegisterDB(cfg.Database.Driver, db.Connection()); err != nil {
		closeLog()
		return nil, fmt.Errorf("metrics init failed: %w", err)
	}

	var store storage.System
	if cfg.Storage.Enabled() {
		store, err = storage.New(&cfg.Storage, logger)
		if err != nil {
			closeLog()
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
	} else {
		logger.Info("storage disabled, archives unavailable")
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Metrics:   collector,
		Database:  db,
		Storage:   store,
		dbConfig:  &cfg.Database,
		logClose:  closeLog,
	}, nil
}

// Migrate applies pending schema migrations over a dedicated connection.
func (i *Infrastructure) Migrate() error {
	if err := database.Migrate(i.dbConfig, migrations.FS, i.Logger.With("system", "migrate")); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	return nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}

	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		if err := i.logClose(); err != nil {
			i.Logger.Error("log file close failed", "error", err)
		}
	})

	return nil
}
