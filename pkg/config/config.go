// Package config loads schemap configuration from a TOML file.
//
// Configuration is an explicit value: it is loaded once at startup and passed
// to the components that need it (layout engine defaults, cache, database,
// server). There is no global configuration state.
//
// The default location is <user config dir>/schemap/config.toml; a missing
// file yields the built-in defaults rather than an error, so the tool works
// out of the box.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mhartmann/schemap/pkg/errors"
	"github.com/mhartmann/schemap/pkg/layout"
)

// Duration wraps time.Duration so TOML values can be written as "24h" or
// "90m" strings.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is the root configuration.
type Config struct {
	Layout   LayoutConfig   `toml:"layout"`
	Cache    CacheConfig    `toml:"cache"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// LayoutConfig carries default layout options. Unset fields fall back to the
// engine's built-in defaults.
type LayoutConfig struct {
	Algorithm string         `toml:"algorithm"`
	Direction string         `toml:"direction"`
	Spacing   SpacingConfig  `toml:"spacing"`
	NodeSize  NodeSizeConfig `toml:"node_size"`
}

// SpacingConfig mirrors layout.Spacing.
type SpacingConfig struct {
	Node  float64 `toml:"node"`
	Layer float64 `toml:"layer"`
	Edge  float64 `toml:"edge"`
}

// NodeSizeConfig mirrors layout.NodeSize.
type NodeSizeConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// CacheConfig configures the layout/schema cache.
type CacheConfig struct {
	// Dir is the file cache directory. Empty means the default under the
	// user cache dir.
	Dir string `toml:"dir"`
	// RedisAddr switches the cache to Redis when non-empty (host:port).
	RedisAddr string `toml:"redis_addr"`
	// TTL bounds entry lifetime; zero means no expiration.
	TTL Duration `toml:"ttl"`
}

// DatabaseConfig configures the introspection source.
type DatabaseConfig struct {
	// URL is a PostgreSQL connection string (postgres://...).
	URL string `toml:"url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultServerAddr is used when [server].addr is unset.
const DefaultServerAddr = ":8466"

// DefaultPath returns the default config file location, or empty when the
// user config dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "schemap", "config.toml")
}

// Load reads the config file at path. An empty path means DefaultPath().
// A missing file is not an error: the zero Config is returned, which maps to
// built-in defaults everywhere.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if a := c.Layout.Algorithm; a != "" && !layout.Algorithm(a).IsValid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown layout algorithm %q", a)
	}
	if d := c.Layout.Direction; d != "" && !layout.Direction(d).IsValid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown layout direction %q", d)
	}
	return nil
}

// LayoutOptions converts the config's layout section to engine default
// options. Zero-valued fields stay zero and defer to the engine's built-ins.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		Algorithm: layout.Algorithm(c.Layout.Algorithm),
		Direction: layout.Direction(c.Layout.Direction),
		Spacing: layout.Spacing{
			Node:  c.Layout.Spacing.Node,
			Layer: c.Layout.Spacing.Layer,
			Edge:  c.Layout.Spacing.Edge,
		},
		NodeSize: layout.NodeSize{
			Width:  c.Layout.NodeSize.Width,
			Height: c.Layout.NodeSize.Height,
		},
	}
}

// ServerAddr returns the configured listen address or the default.
func (c *Config) ServerAddr() string {
	if c.Server.Addr != "" {
		return c.Server.Addr
	}
	return DefaultServerAddr
}
