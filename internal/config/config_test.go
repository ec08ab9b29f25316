package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "127.0.0.1"
port = 5000
read_timeout = "30s"
write_timeout = "2m"

[database]
driver = "sqlite"
path = "data/prompts.db"

[storage]
container_name = "archives"

[api]
base_path = "/api"
max_body_size = "2MB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[web]
style_dir = "styles"

[logging]
level = "debug"
format = "json"
`

const overlayConfig = `
[server]
port = 9090

[database]
path = "prod.db"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

// isolate clears variables that would leak host settings into Load.
func isolate(t *testing.T) string {
	t.Helper()
	for _, env := range []string{
		config.EnvPromptVaultEnv,
		config.EnvCommonStylePath,
		config.EnvWebClipboardHeadless,
		"PROMPTVAULT_STORAGE_CONNECTION_STRING",
		"PROMPTVAULT_OPENAPI_TITLE",
		storage.EnvAzureConnectionString,
	} {
		t.Setenv(env, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"server addr", cfg.Server.Addr(), "127.0.0.1:5000"},
		{"db path", cfg.Database.Path, "data/prompts.db"},
		{"storage container", cfg.Storage.ContainerName, "archives"},
		{"storage disabled", cfg.Storage.Enabled(), false},
		{"api base path", cfg.API.BasePath, "/api"},
		{"api max body", cfg.API.MaxBodySizeBytes(), int64(2 << 20)},
		{"default page size", cfg.API.Pagination.DefaultPageSize, 25},
		{"max page size", cfg.API.Pagination.MaxPageSize, 50},
		{"style dir", cfg.Web.StyleDir, "styles"},
		{"headless", cfg.Web.ClipboardHeadless, false},
		{"log level", cfg.Logging.SlogLevel(), slog.LevelDebug},
		{"log format", cfg.Logging.Format, "json"},
		{"shutdown timeout", cfg.ShutdownTimeoutDuration(), 30 * time.Second},
		{"server write timeout", cfg.Server.Timeouts().Write, 2 * time.Minute},
		{"server header timeout default", cfg.Server.Timeouts().ReadHeader, 10 * time.Second},
		{"env", cfg.Env(), "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	t.Setenv(config.EnvPromptVaultEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Path != "prod.db" {
		t.Errorf("db path: got %s, want prod.db (from overlay)", cfg.Database.Path)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server host: got %s, want 127.0.0.1 (from base)", cfg.Server.Host)
	}
	if cfg.Env() != "staging" {
		t.Errorf("env: got %s, want staging", cfg.Env())
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	t.Setenv(config.EnvPromptVaultVersion, "2.0.0")
	t.Setenv(config.EnvServerPort, "3000")
	t.Setenv("PROMPTVAULT_DB_PATH", "/data/env.db")
	t.Setenv("PROMPTVAULT_PAGINATION_DEFAULT_PAGE_SIZE", "10")
	t.Setenv(config.EnvAPIMaxBodySize, "512KB")
	t.Setenv(config.EnvLogLevel, "WARN")
	t.Setenv("PROMPTVAULT_OPENAPI_TITLE", "Team Prompts")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Database.Path != "/data/env.db" {
		t.Errorf("db path: got %s, want /data/env.db", cfg.Database.Path)
	}
	if cfg.API.Pagination.DefaultPageSize != 10 {
		t.Errorf("default page size: got %d, want 10", cfg.API.Pagination.DefaultPageSize)
	}
	if got := cfg.API.MaxBodySizeBytes(); got != 512*1024 {
		t.Errorf("max body size: got %d, want %d", got, 512*1024)
	}
	if cfg.Logging.SlogLevel() != slog.LevelWarn {
		t.Errorf("log level: got %v, want WARN", cfg.Logging.SlogLevel())
	}
	if cfg.API.OpenAPI.Title != "Team Prompts" {
		t.Errorf("openapi title: got %s, want Team Prompts", cfg.API.OpenAPI.Title)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"port", cfg.Server.Port, 5000},
		{"driver", cfg.Database.Driver, "sqlite"},
		{"db path", cfg.Database.Path, "prompts.db"},
		{"base path", cfg.API.BasePath, "/api"},
		{"max body", cfg.API.MaxBodySizeBytes(), int64(1 << 20)},
		{"default page size", cfg.API.Pagination.DefaultPageSize, 20},
		{"max page size", cfg.API.Pagination.MaxPageSize, 100},
		{"openapi title", cfg.API.OpenAPI.Title, "PromptVault API"},
		{"style dir", cfg.Web.StyleDir, "./common_style"},
		{"log level", cfg.Logging.Level, "info"},
		{"log format", cfg.Logging.Format, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestCommonStylePathEnablesHeadless(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvCommonStylePath, "/app/common_style")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Web.StyleDir != "/app/common_style" {
		t.Errorf("style dir: got %s, want /app/common_style", cfg.Web.StyleDir)
	}
	if !cfg.Web.ClipboardHeadless {
		t.Error("COMMON_STYLE_PATH should enable headless clipboard mode")
	}
}

func TestHeadlessExplicitOverride(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvCommonStylePath, "/app/common_style")
	t.Setenv(config.EnvWebClipboardHeadless, "false")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Web.ClipboardHeadless {
		t.Error("explicit PROMPTVAULT_CLIPBOARD_HEADLESS=false should win")
	}
}

func TestStorageEnabledFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PROMPTVAULT_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !cfg.Storage.Enabled() {
		t.Error("storage should be enabled")
	}
	if cfg.Storage.ContainerName != "promptvault" {
		t.Errorf("container: got %s, want promptvault", cfg.Storage.ContainerName)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, config.BaseConfigFile, `[server`)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{"invalid port", "[server]\nport = 99999", "invalid port"},
		{"invalid read_timeout", "[server]\nread_timeout = \"bad\"", "invalid read_timeout"},
		{"invalid shutdown_timeout", "shutdown_timeout = \"soon\"", "invalid shutdown_timeout"},
		{"zero idle_timeout", "[server]\nidle_timeout = \"0s\"", "idle_timeout must be positive"},
		{"unknown driver", "[database]\ndriver = \"mysql\"", "invalid driver"},
		{"postgres without name", "[database]\ndriver = \"postgres\"\nuser = \"u\"", "name required"},
		{"bad body size", "[api]\nmax_body_size = \"huge\"", "invalid max_body_size"},
		{"short session key", "[web]\nsession_key = \"short\"", "session_key"},
		{"bad log format", "[logging]\nformat = \"xml\"", "invalid format"},
		{"bad log level", "[logging]\nlevel = \"loud\"", "invalid level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeConfig(t, dir, config.BaseConfigFile, tt.config)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	t.Setenv(config.EnvPromptVaultVersion, "")
	os.Unsetenv(config.EnvPromptVaultVersion)
	writeConfig(t, dir, config.DotEnvFile, "PROMPTVAULT_VERSION=9.9.9\n")

	if err := config.LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Version != "9.9.9" {
		t.Errorf("version: got %s, want 9.9.9", cfg.Version)
	}
}

func TestLoadDotEnvMissing(t *testing.T) {
	isolate(t)
	if err := config.LoadDotEnv(); err != nil {
		t.Errorf("LoadDotEnv() without .env error = %v, want nil", err)
	}
}

func TestServerTimeoutEnvOverride(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	t.Setenv(config.EnvServerIdleTimeout, "45s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := cfg.Server.Timeouts().Idle; got != 45*time.Second {
		t.Errorf("idle timeout: got %v, want 45s", got)
	}
	if cfg.Server.IdleTimeout != "45s" {
		t.Errorf("idle timeout field: got %q, want 45s", cfg.Server.IdleTimeout)
	}
}
