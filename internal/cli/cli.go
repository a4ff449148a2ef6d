// Package cli implements the schemap command-line interface.
//
// This package provides commands for introspecting database schemas, parsing
// SQL DDL files, computing entity-relationship layouts, serving the HTTP API,
// and managing the local result cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a diagram layout from a schema file, SQL file, or database
//   - introspect: Extract a schema from a PostgreSQL database
//   - serve: Run the HTTP layout API
//   - cache: Manage the local layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mhartmann/schemap/pkg/buildinfo"
	"github.com/mhartmann/schemap/pkg/cache"
	"github.com/mhartmann/schemap/pkg/config"
	"github.com/mhartmann/schemap/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "schemap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "schemap",
		Short:        "Schemap lays out database schemas as entity-relationship diagrams",
		Long:         `Schemap computes entity-relationship diagram layouts from database schemas. It reads schemas from PostgreSQL databases, SQL DDL files, or JSON schema files, positions the tables with one of four layout algorithms, and writes the result as JSON or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: <user config dir>/schemap/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.introspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configured (or default) config file.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// newEngine creates a layout engine seeded with the config file defaults.
func (c *CLI) newEngine(cfg *config.Config) *layout.Engine {
	return layout.NewEngine(cfg.LayoutOptions(), layout.WithLogger(c.Logger))
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the cache backend selected by config: Redis when
// [cache].redis_addr is set, the file cache otherwise, and the null cache
// when caching is disabled or the cache dir is unavailable.
func (c *CLI) newCache(cmd *cobra.Command, cfg *config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNull()
	}
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(cmd.Context(), cfg.Cache.RedisAddr)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "addr", cfg.Cache.RedisAddr, "err", err)
			return cache.NewNull()
		}
		return rc
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNull()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNull()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/schemap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
