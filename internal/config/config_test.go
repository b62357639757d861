package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Scorer.Timeout.Std() != 30*time.Second {
		t.Fatalf("scorer timeout = %v", cfg.Scorer.Timeout)
	}
	if cfg.Auth.SessionTTL.Std() != 7*24*time.Hour {
		t.Fatalf("session ttl = %v", cfg.Auth.SessionTTL)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
  shutdownTimeout: 5s
database:
  host: db.internal
  port: 5433
  name: corneal
scorer:
  addr: "scorer:50051"
  timeout: 12s
auth:
  jwtAudience: corneal-api
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout.Std() != 5*time.Second {
		t.Fatalf("shutdown timeout = %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Fatalf("database = %+v", cfg.Database)
	}
	if cfg.Scorer.Addr != "scorer:50051" || cfg.Scorer.Timeout.Std() != 12*time.Second {
		t.Fatalf("scorer = %+v", cfg.Scorer)
	}
	if cfg.Auth.JWTAudience != "corneal-api" {
		t.Fatalf("jwt audience = %q", cfg.Auth.JWTAudience)
	}
	// untouched fields keep their defaults
	if cfg.Database.SSLMode != "disable" {
		t.Fatalf("ssl mode = %q", cfg.Database.SSLMode)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("redis:\n  addr: file:6379\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("REDIS_ADDR", "env:6379")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Redis.Addr != "env:6379" {
		t.Fatalf("redis addr = %q", cfg.Redis.Addr)
	}
	if cfg.Database.Port != 15432 {
		t.Fatalf("db port = %d", cfg.Database.Port)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("jwt secret = %q", cfg.Auth.JWTSecret)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := defaults()
	cfg.Database.Host = "db"
	cfg.Database.Password = "hunter2"

	want := "host=db port=5432 user=postgres password=hunter2 dbname=corneal_ai sslmode=disable"
	if dsn := cfg.PostgresDSN(); dsn != want {
		t.Fatalf("dsn = %q, want %q", dsn, want)
	}
}
