package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhartmann/schemap/pkg/cache"
	"github.com/mhartmann/schemap/pkg/errors"
	"github.com/mhartmann/schemap/pkg/export"
	"github.com/mhartmann/schemap/pkg/layout"
	"github.com/mhartmann/schemap/pkg/schema"
	"github.com/mhartmann/schemap/pkg/source/postgres"
	"github.com/mhartmann/schemap/pkg/source/sqlfile"
)

// layoutFlags holds the per-call layout option overrides.
type layoutFlags struct {
	algorithm    string
	direction    string
	nodeSpacing  float64
	layerSpacing float64
	edgeSpacing  float64
	nodeWidth    float64
	nodeHeight   float64
}

// options converts the flag values to layout options, validating the
// selectors. Unset flags stay zero and defer to the engine defaults.
func (f *layoutFlags) options() (layout.Options, error) {
	if f.algorithm != "" && !layout.Algorithm(f.algorithm).IsValid() {
		return layout.Options{}, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm: %s", f.algorithm)
	}
	if f.direction != "" && !layout.Direction(f.direction).IsValid() {
		return layout.Options{}, errors.New(errors.ErrCodeInvalidDirection, "unknown direction: %s", f.direction)
	}
	return layout.Options{
		Algorithm: layout.Algorithm(f.algorithm),
		Direction: layout.Direction(f.direction),
		Spacing: layout.Spacing{
			Node:  f.nodeSpacing,
			Layer: f.layerSpacing,
			Edge:  f.edgeSpacing,
		},
		NodeSize: layout.NodeSize{
			Width:  f.nodeWidth,
			Height: f.nodeHeight,
		},
	}, nil
}

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		format  string
		dbURL   string
		noCache bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [schema.json|schema.sql ...]",
		Short: "Compute a diagram layout from a schema",
		Long: `Compute an entity-relationship diagram layout from a schema.

The schema comes from one or more input files (JSON schema files or SQL DDL
files, merged when multiple are given) or from a live PostgreSQL database via
--db. The positioned layout is written as JSON (default) or Graphviz DOT.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && dbURL == "" {
				return errors.New(errors.ErrCodeInvalidInput, "no input: give schema files or --db")
			}
			opts, err := flags.options()
			if err != nil {
				return err
			}
			if !export.Format(format).IsValid() {
				return errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
			}
			return c.runLayout(cmd, args, dbURL, opts, export.Format(format), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json (default), dot")
	cmd.Flags().StringVar(&dbURL, "db", "", "introspect a PostgreSQL database instead of reading files")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVarP(&flags.algorithm, "algorithm", "a", "", "layout algorithm: hierarchical, force_directed, grid, circular")
	cmd.Flags().StringVarP(&flags.direction, "direction", "d", "", "layout direction: top_down, bottom_up, left_right, right_left")
	cmd.Flags().Float64Var(&flags.nodeSpacing, "node-spacing", 0, "spacing between nodes")
	cmd.Flags().Float64Var(&flags.layerSpacing, "layer-spacing", 0, "spacing between layers")
	cmd.Flags().Float64Var(&flags.edgeSpacing, "edge-spacing", 0, "spacing between parallel edges")
	cmd.Flags().Float64Var(&flags.nodeWidth, "node-width", 0, "node width")
	cmd.Flags().Float64Var(&flags.nodeHeight, "node-height", 0, "node height")

	return cmd
}

// runLayout loads the schema, computes the layout, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, inputs []string, dbURL string, opts layout.Options, format export.Format, output string, noCache bool) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	s, err := c.loadSchema(ctx, inputs, dbURL)
	if err != nil {
		return err
	}

	store := c.newCache(cmd, cfg, noCache)
	defer store.Close()

	engine := c.newEngine(cfg)
	result, cacheHit, err := c.computeLayout(ctx, engine, store, cfg.Cache.TTL.Duration, s, opts)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutputPath(inputs, format)
	}
	if err := export.WriteFile(result, s, format, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(s.Tables), len(s.Relations), cacheHit)
	printNewline()
	printNextStep("Serve the API", "schemap serve")

	return nil
}

// loadSchema reads the schema from the database or from input files, merging
// multiple files into one schema.
func (c *CLI) loadSchema(ctx context.Context, inputs []string, dbURL string) (*schema.Schema, error) {
	if dbURL != "" {
		spinner := newSpinner(ctx, "Introspecting database...")
		spinner.Start()
		s, err := postgres.Introspect(ctx, dbURL)
		if err != nil {
			spinner.StopWithError("Introspection failed")
			return nil, err
		}
		spinner.Stop()
		return s, nil
	}

	parts := make([]*schema.Schema, 0, len(inputs))
	for _, input := range inputs {
		var (
			s   *schema.Schema
			err error
		)
		if strings.EqualFold(filepath.Ext(input), ".sql") {
			s, err = sqlfile.ParseFile(input)
		} else {
			s, err = schema.ReadFile(input)
		}
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return schema.Merge(parts...), nil
}

// computeLayout returns the cached result when available, computing and
// caching it otherwise.
func (c *CLI) computeLayout(ctx context.Context, engine *layout.Engine, store cache.Cache, ttl time.Duration, s *schema.Schema, opts layout.Options) (*layout.Result, bool, error) {
	serialized, err := schema.Marshal(s)
	if err != nil {
		return nil, false, err
	}
	key := cache.LayoutKey(cache.Hash(serialized), engine.Resolve(opts))

	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		var cached layout.Result
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, true, nil
		}
	}

	progress := newProgress(c.Logger)
	result := engine.Optimize(engine.Apply(s, opts))
	progress.done(fmt.Sprintf("Positioned %d tables", result.Metadata.NodeCount))

	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(ctx, key, data, ttl); err != nil {
			c.Logger.Debug("cache write failed", "err", err)
		}
	}
	return result, false, nil
}

// defaultOutputPath derives the output file name from the first input.
func defaultOutputPath(inputs []string, format export.Format) string {
	base := "schema"
	if len(inputs) > 0 {
		base = strings.TrimSuffix(inputs[0], filepath.Ext(inputs[0]))
	}
	return base + ".layout." + string(format)
}
