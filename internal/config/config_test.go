package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheBase_XDGSet(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")
	got := cacheBase()
	want := filepath.Join("/custom/cache", "rskel")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCacheBase_HomeDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	got := cacheBase()
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}
	want := filepath.Join(home, ".cache", "rskel")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCacheBase_TmpFallback(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "")
	got := cacheBase()
	// Should use os.TempDir() when HOME is unset
	if !strings.Contains(got, "rskel") {
		t.Errorf("expected rskel in path, got %q", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Edition != "2021" {
		t.Errorf("edition = %q, want 2021", cfg.Render.Edition)
	}
	if cfg.Fetch.Toolchain != "nightly" {
		t.Errorf("toolchain = %q, want nightly", cfg.Fetch.Toolchain)
	}
	if cfg.Fetch.TimeoutSeconds != 300 {
		t.Errorf("timeout = %d, want 300", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Fetch.CacheDir != filepath.Join("/custom/cache", "rskel", "json") {
		t.Errorf("cache dir = %q", cfg.Fetch.CacheDir)
	}
}
