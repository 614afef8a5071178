package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, name := range []string{"MEAL_PLAN_TRANSPORT", "MEAL_PLAN_PORT", "MEAL_PLAN_DB_PATH", "GATEWAY_TIMEOUT", "OPENROUTER_MODEL"} {
		t.Setenv(name, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Transport != "http" || cfg.Port != 8011 || cfg.DBPath != "/data/meal-plan.db" || cfg.GatewayTimeout != 60*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "MEAL_PLAN_PORT=9090\nMEAL_PLAN_CATALOG_PATH=/etc/catalog.yaml\nGATEWAY_TIMEOUT=5s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	// godotenv never overrides variables that are already set.
	t.Setenv("MEAL_PLAN_PORT", "7070")
	t.Setenv("MEAL_PLAN_CATALOG_PATH", "")
	t.Setenv("GATEWAY_TIMEOUT", "")
	os.Unsetenv("MEAL_PLAN_CATALOG_PATH")
	os.Unsetenv("GATEWAY_TIMEOUT")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("expected environment to win, got port %d", cfg.Port)
	}
	if cfg.CatalogPath != "/etc/catalog.yaml" {
		t.Errorf("expected catalog path from .env, got %q", cfg.CatalogPath)
	}
	if cfg.GatewayTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.GatewayTimeout)
	}
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("MEAL_PLAN_PORT", "eighty")
	t.Setenv("GATEWAY_TIMEOUT", "soon")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8011 || cfg.GatewayTimeout != 60*time.Second {
		t.Errorf("expected defaults for unparseable values, got %+v", cfg)
	}
}
