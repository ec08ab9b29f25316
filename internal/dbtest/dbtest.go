// Package dbtest provides migrated SQLite databases for repository tests.
package dbtest

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/promptvault/migrations"
	"github.com/JaimeStill/promptvault/pkg/database"
	"github.com/JaimeStill/promptvault/pkg/query"
)

// Logger discards all output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Open creates a migrated SQLite database under t.TempDir and closes it when
// the test ends.
func Open(t *testing.T) (*sql.DB, query.Dialect) {
	t.Helper()

	cfg := &database.Config{Path: filepath.Join(t.TempDir(), "test.db")}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize db config: %v", err)
	}

	if err := database.Migrate(cfg, migrations.FS, Logger()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sys, err := database.New(cfg, Logger())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	db := sys.Connection()
	t.Cleanup(func() { db.Close() })

	return db, sys.Dialect()
}
