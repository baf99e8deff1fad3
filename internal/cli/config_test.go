package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := LoadConfig()
	if cfg.DefaultFamily != "slant" {
		t.Errorf("DefaultFamily = %q, want %q", cfg.DefaultFamily, "slant")
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
	if cfg.Mongo.Database != "enigma" {
		t.Errorf("Mongo.Database = %q, want %q", cfg.Mongo.Database, "enigma")
	}
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `
default_family = "tents"
default_size = 10

[server]
addr = "0.0.0.0:9000"

[redis]
addr = "localhost:6379"
db = 2
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := LoadConfig()
	if cfg.DefaultFamily != "tents" {
		t.Errorf("DefaultFamily = %q, want %q", cfg.DefaultFamily, "tents")
	}
	if cfg.DefaultSize != 10 {
		t.Errorf("DefaultSize = %d, want 10", cfg.DefaultSize)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Server.Addr = %q, want overlay", cfg.Server.Addr)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v, want overlay values", cfg.Redis)
	}
	// Untouched sections keep their defaults.
	if cfg.Mongo.Database != "enigma" {
		t.Errorf("Mongo.Database = %q, want default", cfg.Mongo.Database)
	}
}

func TestLoadConfigIgnoresBrokenFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not valid toml ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := LoadConfig()
	if cfg == nil {
		t.Fatal("LoadConfig returned nil for broken file")
	}
	if cfg.DefaultFamily != "slant" {
		t.Errorf("DefaultFamily = %q, want default after broken file", cfg.DefaultFamily)
	}
}
