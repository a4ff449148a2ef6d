package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mhartmann/schemap/pkg/errors"
	"github.com/mhartmann/schemap/pkg/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
[layout]
algorithm = "grid"
direction = "left_right"

[layout.spacing]
node = 80.0
layer = 120.0

[layout.node_size]
width = 200.0
height = 120.0

[cache]
redis_addr = "localhost:6379"
ttl = "24h"

[database]
url = "postgres://localhost/app"

[server]
addr = ":9000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	opts := cfg.LayoutOptions()
	if opts.Algorithm != layout.AlgorithmGrid {
		t.Errorf("algorithm = %q, want grid", opts.Algorithm)
	}
	if opts.Direction != layout.DirectionLeftRight {
		t.Errorf("direction = %q, want left_right", opts.Direction)
	}
	if opts.Spacing.Node != 80 || opts.Spacing.Layer != 120 {
		t.Errorf("spacing = %+v, want node 80, layer 120", opts.Spacing)
	}
	if cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("cache TTL = %v, want 24h", cfg.Cache.TTL.Duration)
	}
	if cfg.ServerAddr() != ":9000" {
		t.Errorf("ServerAddr() = %q, want :9000", cfg.ServerAddr())
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerAddr() != DefaultServerAddr {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), DefaultServerAddr)
	}
	// Zero layout options defer to the engine built-ins.
	if opts := cfg.LayoutOptions(); opts.Algorithm != "" {
		t.Errorf("algorithm = %q, want unset", opts.Algorithm)
	}
}

func TestLoad_InvalidAlgorithm(t *testing.T) {
	path := writeConfig(t, `
[layout]
algorithm = "spiral"
`)

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, `[layout`)

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}
