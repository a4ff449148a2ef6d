package layout

import (
	"testing"

	"github.com/mhartmann/schemap/pkg/schema"
)

var allAlgorithms = []Algorithm{
	AlgorithmHierarchical,
	AlgorithmForceDirected,
	AlgorithmGrid,
	AlgorithmCircular,
}

func TestEngine_DefaultsApplied(t *testing.T) {
	e := NewEngine(Options{})

	got := e.Defaults()
	want := DefaultOptions()
	if got != want {
		t.Errorf("Defaults() = %+v, want %+v", got, want)
	}
}

func TestEngine_PartialOptionMerge(t *testing.T) {
	e := NewEngine(Options{Spacing: Spacing{Layer: 200}})

	// Per-call override of one sub-field only; everything else falls back to
	// engine defaults, which themselves fall back to built-ins.
	r := e.Apply(blogSchema(), Options{Spacing: Spacing{Node: 50}})

	if r.Metadata.Algorithm != AlgorithmHierarchical {
		t.Errorf("algorithm = %q, want hierarchical", r.Metadata.Algorithm)
	}
	// Layer spacing comes from the engine defaults (200, not 150).
	posts := nodeByID(t, r.Nodes, "posts")
	if posts.Position.Y != 200 {
		t.Errorf("posts.Y = %v, want 200", posts.Position.Y)
	}
}

func TestEngine_UnknownAlgorithmFallsBack(t *testing.T) {
	e := NewEngine(Options{})

	r := e.Apply(blogSchema(), Options{Algorithm: "banana"})

	if r.Metadata.Algorithm != AlgorithmHierarchical {
		t.Errorf("algorithm = %q, want hierarchical", r.Metadata.Algorithm)
	}
	if r.Metadata.LayerCount != 3 {
		t.Errorf("layerCount = %d, want 3", r.Metadata.LayerCount)
	}
}

func TestEngine_EmptySchema(t *testing.T) {
	e := NewEngine(Options{})
	empty := &schema.Schema{Tables: []schema.Table{}, Relations: []schema.Relation{}}

	for _, alg := range allAlgorithms {
		t.Run(string(alg), func(t *testing.T) {
			r := e.Apply(empty, Options{Algorithm: alg})
			if len(r.Nodes) != 0 || len(r.Edges) != 0 {
				t.Errorf("got %d nodes, %d edges, want 0, 0", len(r.Nodes), len(r.Edges))
			}
			if r.Bounds != (BoundingBox{}) {
				t.Errorf("bounds = %+v, want zero box", r.Bounds)
			}
		})
	}
}

func TestEngine_CompletenessAndContainment(t *testing.T) {
	e := NewEngine(Options{})
	s := gridSchema()

	for _, alg := range allAlgorithms {
		t.Run(string(alg), func(t *testing.T) {
			r := e.Apply(s, Options{Algorithm: alg})

			if len(r.Nodes) != len(s.Tables) {
				t.Errorf("len(nodes) = %d, want %d", len(r.Nodes), len(s.Tables))
			}
			if len(r.Edges) != len(s.Relations) {
				t.Errorf("len(edges) = %d, want %d", len(r.Edges), len(s.Relations))
			}
			if r.Metadata.NodeCount != len(r.Nodes) || r.Metadata.EdgeCount != len(r.Edges) {
				t.Errorf("metadata counts %d/%d do not match result %d/%d",
					r.Metadata.NodeCount, r.Metadata.EdgeCount, len(r.Nodes), len(r.Edges))
			}

			for _, n := range r.Nodes {
				if n.Position.X < r.Bounds.X || n.Position.Y < r.Bounds.Y ||
					n.Position.X+n.Size.Width > r.Bounds.X+r.Bounds.Width ||
					n.Position.Y+n.Size.Height > r.Bounds.Y+r.Bounds.Height {
					t.Errorf("node %s at %+v escapes bounds %+v", n.ID, n.Position, r.Bounds)
				}
			}
		})
	}
}

func TestEngine_Deterministic(t *testing.T) {
	e := NewEngine(Options{})
	s := gridSchema()

	for _, alg := range allAlgorithms {
		t.Run(string(alg), func(t *testing.T) {
			first := e.Apply(s, Options{Algorithm: alg})
			second := e.Apply(s, Options{Algorithm: alg})

			for i := range first.Nodes {
				if first.Nodes[i] != second.Nodes[i] {
					t.Errorf("node %d differs across runs: %+v vs %+v",
						i, first.Nodes[i], second.Nodes[i])
				}
			}
		})
	}
}

func TestEngine_HierarchicalLayerOrdering(t *testing.T) {
	e := NewEngine(Options{})
	s := blogSchema()

	r := e.Apply(s, Options{})

	layers := make(map[string]int, len(r.Nodes))
	for _, n := range r.Nodes {
		layers[n.ID] = n.Layer
	}
	// For acyclically related tables the target must sit strictly above.
	for _, rel := range s.Relations {
		if layers[rel.TargetTableID] >= layers[rel.SourceTableID] {
			t.Errorf("relation %s: layer(%s)=%d not below layer(%s)=%d",
				rel.ID, rel.SourceTableID, layers[rel.SourceTableID],
				rel.TargetTableID, layers[rel.TargetTableID])
		}
	}
}

func TestEngine_OptimizeIsIdentity(t *testing.T) {
	e := NewEngine(Options{})
	r := e.Apply(blogSchema(), Options{})

	if got := e.Optimize(r); got != r {
		t.Error("Optimize() should return the result unchanged")
	}
}
