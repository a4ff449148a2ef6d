package layout

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhartmann/schemap/pkg/schema"
)

// =============================================================================
// Engine - Layout Facade
// =============================================================================

// Engine dispatches layout requests to one of the four algorithms, merging
// per-call option overrides over its configured defaults.
//
// The defaults are fixed at construction and never mutated afterwards, so a
// single Engine is safe for concurrent use as long as callers do not mutate
// a schema or options value while a call is in flight.
type Engine struct {
	defaults Options
	logger   *log.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for per-call debug output.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an Engine whose defaults are the given options merged
// over the built-in defaults. Pass a zero Options value to use the built-in
// defaults unchanged.
func NewEngine(defaults Options, opts ...EngineOption) *Engine {
	e := &Engine{
		defaults: defaults.withDefaults(DefaultOptions()),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Defaults returns the engine's fully-populated default options.
func (e *Engine) Defaults() Options {
	return e.defaults
}

// Resolve returns opts with every unset field filled from the engine
// defaults. This is the exact options value a subsequent Apply call with opts
// would use, which makes it suitable as a cache key component.
func (e *Engine) Resolve(opts Options) Options {
	return opts.withDefaults(e.defaults)
}

// Apply computes a layout for the schema. Unset fields in opts (including
// nested spacing and node-size sub-fields) fall back to the engine defaults;
// an unknown algorithm or direction falls back the same way.
//
// Apply is total for well-typed input: an empty schema produces an empty
// result, dangling relations are skipped during positioning, and cyclic
// relation graphs terminate. It never returns an error.
func (e *Engine) Apply(s *schema.Schema, opts Options) *Result {
	merged := opts.withDefaults(e.defaults)
	start := time.Now()

	var nodes []PositionedNode
	layerCount := 0
	switch merged.Algorithm {
	case AlgorithmForceDirected:
		nodes = ForceDirected(s, merged)
	case AlgorithmGrid:
		nodes = Grid(s, merged)
	case AlgorithmCircular:
		nodes = Circular(s, merged)
	case AlgorithmHierarchical:
		nodes, layerCount = Hierarchical(s, merged)
	default:
		// withDefaults already replaced invalid selectors, but keep the
		// fallback so the switch stays total.
		nodes, layerCount = Hierarchical(s, merged)
	}

	edges := BuildEdges(s.Relations)
	elapsed := time.Since(start)

	e.logger.Debug("layout computed",
		"algorithm", merged.Algorithm,
		"direction", merged.Direction,
		"nodes", len(nodes),
		"edges", len(edges),
		"elapsed", elapsed.Round(time.Microsecond))

	return &Result{
		Nodes:  nodes,
		Edges:  edges,
		Bounds: ComputeBounds(nodes),
		Metadata: Metadata{
			Algorithm:       merged.Algorithm,
			Direction:       merged.Direction,
			NodeCount:       len(nodes),
			EdgeCount:       len(edges),
			LayerCount:      layerCount,
			ExecutionTimeMs: float64(elapsed.Nanoseconds()) / 1e6,
		},
	}
}

// Optimize is the extension point for post-layout refinement such as
// edge-crossing reduction. It currently returns the result unchanged; keep
// calls to it in place so a future implementation slots in without touching
// callers.
func (e *Engine) Optimize(r *Result) *Result {
	return r
}
