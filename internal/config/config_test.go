package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "DATABASE_DRIVER=sqlite\nDATABASE_URL=library.db\nPORT=9090\nNEWEST_GAMES_LIMIT=3\nCORS_ALLOWED_ORIGINS=http://a.test,http://b.test\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DatabaseDriver != DriverSQLite || cfg.DatabaseURL != "library.db" {
		t.Fatalf("unexpected database settings: %+v", cfg)
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Addr())
	}
	if cfg.NewestGamesLimit != 3 {
		t.Fatalf("expected newest limit 3, got %d", cfg.NewestGamesLimit)
	}
	if got := cfg.AllowedOrigins(); len(got) != 2 || got[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", got)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
}

func TestLoadConfigEnvOverridesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/games")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DatabaseDriver != DriverPostgres {
		t.Fatalf("expected postgres default, got %q", cfg.DatabaseDriver)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected env log level, got %q", cfg.LogLevel)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
}

func TestLoadConfigRejectsMissingDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_URL", "x")
	t.Setenv("DATABASE_DRIVER", "oracle")
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
