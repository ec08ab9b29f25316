package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/migrations"
	"github.com/JaimeStill/promptvault/pkg/database"
)

func main() {
	var (
		driver  = flag.String("driver", "", "Database driver: sqlite or postgres (default from config)")
		dsn     = flag.String("dsn", "", "SQLite file path or postgres:// URL (default from config)")
		up      = flag.Bool("up", false, "Run all up migrations")
		down    = flag.Bool("down", false, "Run all down migrations")
		steps   = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version = flag.Bool("version", false, "Print current migration version")
		force   = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := cfg.Database
	if err := applyFlags(&db, *driver, *dsn); err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	m, err := database.NewMigrator(&db, migrations.FS)
	if err != nil {
		log.Fatalf("failed to create migrator: %v", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			log.Fatalf("failed to force version: %v", err)
		}
		fmt.Printf("forced to version %d\n", *force)
	case *up:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run up migrations: %v", err)
		}
		fmt.Println("migrations applied successfully")
	case *down:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run down migrations: %v", err)
		}
		fmt.Println("migrations reverted successfully")
	case *steps != 0:
		if err := m.Steps(*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run migrations: %v", err)
		}
		fmt.Printf("applied %d migration steps\n", *steps)
	default:
		fmt.Println("usage: migrate [-driver sqlite|postgres] [-dsn <path-or-url>] [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
	}
}

// applyFlags overrides the configured connection with command line values.
func applyFlags(cfg *database.Config, driver, dsn string) error {
	if driver != "" {
		cfg.Driver = driver
	}
	if dsn == "" {
		return cfg.Finalize(nil)
	}

	if cfg.Driver != "postgres" {
		cfg.Path = dsn
		return cfg.Finalize(nil)
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("dsn scheme %q, want postgres", u.Scheme)
	}

	cfg.Host = u.Hostname()
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("dsn port: %w", err)
		}
		cfg.Port = port
	}
	if name := u.Path; len(name) > 1 {
		cfg.Name = name[1:]
	}
	if u.User != nil {
		cfg.User = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			cfg.Password = pw
		}
	}
	if mode := u.Query().Get("sslmode"); mode != "" {
		cfg.SSLMode = mode
	}

	return cfg.Finalize(nil)
}
