package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected development env, got %s", cfg.Env)
	}
	if cfg.Migrations {
		t.Fatalf("migrations should default off")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/x")
	t.Setenv("MIGRATIONS", "1")
	cfg := Load()
	if cfg.Port != "9090" || cfg.DatabaseDSN != "postgres://u:p@db:5432/x" || !cfg.Migrations {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestParseBoolInvalid(t *testing.T) {
	t.Setenv("SOME_FLAG", "maybe")
	if ParseBool("SOME_FLAG", true) != true {
		t.Fatalf("invalid value should fall back to default")
	}
}
