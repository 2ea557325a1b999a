package config

import (
	"os"
	"testing"
)

func TestConfigLoad_LocalDefaults(t *testing.T) {
	_ = os.Unsetenv("KEYWORD_BACKEND_BUILD_TARGET")
	_ = os.Unsetenv("KEYWORD_BACKEND_DB_DRIVER")
	_ = os.Unsetenv("KEYWORD_BACKEND_SQLITE_PATH")
	_ = os.Unsetenv("KEYWORD_BACKEND_POSTGRES_DSN")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.BuildTarget != "local" || cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SQLitePath == "" {
		t.Fatal("sqlite path should be derived for the local target")
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.HTTPPort)
	}
}

func TestConfigLoad_CloudRequiresDSN(t *testing.T) {
	_ = os.Setenv("KEYWORD_BACKEND_BUILD_TARGET", "cloud")
	defer func() { _ = os.Unsetenv("KEYWORD_BACKEND_BUILD_TARGET") }()
	_ = os.Unsetenv("KEYWORD_BACKEND_POSTGRES_DSN")

	if _, err := New(); err == nil {
		t.Fatal("expected error for cloud target without a postgres DSN")
	}

	_ = os.Setenv("KEYWORD_BACKEND_POSTGRES_DSN", "postgres://localhost/keywords")
	defer func() { _ = os.Unsetenv("KEYWORD_BACKEND_POSTGRES_DSN") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("driver = %q, want postgres", cfg.DBDriver)
	}
}

func TestConfigLoad_RejectsUnknownTarget(t *testing.T) {
	_ = os.Setenv("KEYWORD_BACKEND_BUILD_TARGET", "mainframe")
	defer func() { _ = os.Unsetenv("KEYWORD_BACKEND_BUILD_TARGET") }()

	if _, err := New(); err == nil {
		t.Fatal("expected error for unknown build target")
	}
}

func TestConfig_DevModeDisabledInProduction(t *testing.T) {
	cfg := &Config{Environment: EnvProduction, DevMode: true}
	if cfg.IsDevMode() {
		t.Fatal("dev mode must not be honored in production")
	}
}
