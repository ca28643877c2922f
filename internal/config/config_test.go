package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LISTEN_ADDR", "OUTPUT_PATH", "GIN_MODE", "EXPORT_PATH", "PROJECTS", "MANIFEST_PATH", "LOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.OutputPath != "zola" {
		t.Fatalf("expected default output path, got %q", cfg.OutputPath)
	}
	if cfg.ListenAddr != ":8082" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("expected release gin mode, got %q", cfg.GinMode)
	}
	if cfg.ManifestPath != "" {
		t.Fatalf("expected manifest to be disabled by default")
	}
	if cfg.ContentPath() != filepath.Join("zola", "content") || cfg.StaticPath() != filepath.Join("zola", "static") {
		t.Fatalf("unexpected derived paths %q %q", cfg.ContentPath(), cfg.StaticPath())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("EXPORT_PATH", " /data/export ")
	t.Setenv("OUTPUT_PATH", "/srv/site")
	t.Setenv("PROJECTS", "a,b")
	t.Setenv("PORT", "9000")
	t.Setenv("LISTEN_ADDR", "")

	cfg := Load()
	if cfg.ExportPath != "/data/export" {
		t.Fatalf("expected trimmed export path, got %q", cfg.ExportPath)
	}
	if cfg.Projects != "a,b" {
		t.Fatalf("unexpected projects %q", cfg.Projects)
	}
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected listen addr from port, got %q", cfg.ListenAddr)
	}
	if cfg.ContentPath() != filepath.Join("/srv/site", "content") {
		t.Fatalf("unexpected content path %q", cfg.ContentPath())
	}
}
