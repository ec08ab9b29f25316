package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/JaimeStill/promptvault/pkg/query"
)

// NewMigrator opens a dedicated connection for cfg and returns a migrator
// reading scripts from the dialect-named directory of fsys (e.g. sqlite/).
// Closing the migrator closes that connection.
func NewMigrator(cfg *Config, fsys fs.FS) (*migrate.Migrate, error) {
	source, err := iofs.New(fsys, string(cfg.Dialect()))
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	db, err := open(cfg)
	if err != nil {
		source.Close()
		return nil, err
	}

	var driver migratedb.Driver
	switch cfg.Dialect() {
	case query.Postgres:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	default:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	}
	if err != nil {
		source.Close()
		db.Close()
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.Driver, driver)
	if err != nil {
		source.Close()
		driver.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return m, nil
}

// Migrate applies all pending up migrations.
func Migrate(cfg *Config, fsys fs.FS, logger *slog.Logger) error {
	m, err := NewMigrator(cfg, fsys)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration version: %w", err)
	}

	logger.Info("migrations applied", "driver", cfg.Driver, "version", version, "dirty", dirty)
	return nil
}
