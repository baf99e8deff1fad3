package cli

import (
	"io"
	"path/filepath"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"generate", "solve", "validate", "play", "dataset", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
		t.Errorf("cacheDir = %q, want %q", dir, want)
	}
}

func TestConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-config", appName); dir != want {
		t.Errorf("configDir = %q, want %q", dir, want)
	}
}

func TestNewCacheFallsBackToNull(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	if c == nil {
		t.Fatal("newCache returned nil cache")
	}
}
