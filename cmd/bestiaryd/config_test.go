package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.APIAddr != defaultAPIAddr {
		t.Errorf("api-addr = %q, want %q", cfg.APIAddr, defaultAPIAddr)
	}
	if cfg.PageSize != 20 {
		t.Errorf("page-size = %d, want 20", cfg.PageSize)
	}
	if cfg.RefreshInterval != 0 {
		t.Errorf("refresh-interval = %s, want 0", cfg.RefreshInterval)
	}
	if cfg.LoadTimeout != defaultLoadTimeout {
		t.Errorf("load-timeout = %s, want %s", cfg.LoadTimeout, defaultLoadTimeout)
	}
	if cfg.ConfigPath != "" {
		t.Errorf("config path = %q, want empty for a missing file", cfg.ConfigPath)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BESTIARY_PAGE_SIZE", "151")

	path := writeConfig(t, `
page-size: 50
refresh-interval: 5m
load-timeout: 45s
db-path: ~/data/catalog.duckdb
api-addr: 127.0.0.1:8088
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.PageSize != 151 {
		t.Errorf("page-size = %d, want env override 151", cfg.PageSize)
	}
	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("refresh-interval = %s, want 5m", cfg.RefreshInterval)
	}
	if cfg.LoadTimeout != 45*time.Second {
		t.Errorf("load-timeout = %s, want 45s", cfg.LoadTimeout)
	}
	if want := filepath.Join(home, "data", "catalog.duckdb"); cfg.DBPath != want {
		t.Errorf("db-path = %q, want %q", cfg.DBPath, want)
	}
	if cfg.APIAddr != "127.0.0.1:8088" {
		t.Errorf("api-addr = %q", cfg.APIAddr)
	}
	if cfg.ConfigPath != path {
		t.Errorf("config path = %q, want %q", cfg.ConfigPath, path)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		body string
	}{
		{"zero page size", "page-size: 0\n"},
		{"relative base url", "api-base-url: pokeapi.co/api/v2\n"},
		{"negative interval", "refresh-interval: -1s\n"},
		{"negative load timeout", "load-timeout: -5s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
