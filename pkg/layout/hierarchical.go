package layout

import "github.com/mhartmann/schemap/pkg/schema"

// Hierarchical places each table's dependencies (the tables it references via
// foreign key) in layers closer to the root than the table itself, then
// positions layers along the main axis with per-layer centering on the cross
// axis.
//
// It returns the positioned nodes together with the number of layers.
//
// # Algorithm
//
// Layering is a topological BFS in the style of Kahn's algorithm:
//
//  1. For each table, collect the set of tables it depends on (targets of its
//     outgoing relations). Self-references and relations to unknown table IDs
//     are ignored.
//  2. Layer 0 is every table with no dependencies. If none exists (the whole
//     graph is cyclic), the first table in input order seeds layer 0.
//  3. Each subsequent layer is formed from the unassigned tables whose every
//     dependency is already assigned. A pass that assigns nothing (a cycle
//     stall) force-assigns the first unassigned table to guarantee progress.
//
// # Positioning
//
// Within a layer, nodes sit on the cross axis at Spacing.Node pitch; layers
// are separated on the main axis by Spacing.Layer. The widest layer sets the
// total cross-axis extent and narrower layers are centered within it. The
// direction selects the main axis and its sign. Each node records its layer
// index and in-layer rank.
//
// # Determinism
//
// No randomness anywhere; iteration follows table input order, so identical
// input yields identical output.
func Hierarchical(s *schema.Schema, opts Options) ([]PositionedNode, int) {
	opts = opts.withDefaults(DefaultOptions())

	if len(s.Tables) == 0 {
		return []PositionedNode{}, 0
	}

	layers := assignLayers(s)

	maxLen := 0
	for _, layer := range layers {
		if len(layer) > maxLen {
			maxLen = len(layer)
		}
	}
	totalCross := float64(maxLen-1) * opts.Spacing.Node

	nodes := make([]PositionedNode, 0, len(s.Tables))
	for li, layer := range layers {
		main := float64(li) * opts.Spacing.Layer
		offset := (totalCross - float64(len(layer)-1)*opts.Spacing.Node) / 2
		for rank, id := range layer {
			cross := offset + float64(rank)*opts.Spacing.Node
			nodes = append(nodes, PositionedNode{
				ID:       id,
				Position: opts.Direction.oriented(main, cross),
				Size:     Size{Width: opts.NodeSize.Width, Height: opts.NodeSize.Height},
				Layer:    li,
				Rank:     rank,
			})
		}
	}

	return nodes, len(layers)
}

// assignLayers computes the ordered layer sequence for a schema.
// Forward progress is guaranteed for arbitrary (including fully cyclic)
// relation graphs via forced assignment on stalls.
func assignLayers(s *schema.Schema) [][]string {
	known := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		known[t.ID] = true
	}

	dependsOn := make(map[string]map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		dependsOn[t.ID] = map[string]bool{}
	}
	for _, r := range s.Relations {
		if r.IsSelfReferential() || !known[r.SourceTableID] || !known[r.TargetTableID] {
			continue
		}
		dependsOn[r.SourceTableID][r.TargetTableID] = true
	}

	assigned := make(map[string]bool, len(s.Tables))
	var layers [][]string

	var roots []string
	for _, t := range s.Tables {
		if len(dependsOn[t.ID]) == 0 {
			roots = append(roots, t.ID)
		}
	}
	if len(roots) == 0 {
		// Pure cycle: seed with the first table to guarantee progress.
		roots = []string{s.Tables[0].ID}
	}
	for _, id := range roots {
		assigned[id] = true
	}
	layers = append(layers, roots)

	for len(assigned) < len(s.Tables) {
		var next []string
		for _, t := range s.Tables {
			if assigned[t.ID] {
				continue
			}
			ready := true
			for dep := range dependsOn[t.ID] {
				if !assigned[dep] {
					ready = false
					break
				}
			}
			if ready {
				next = append(next, t.ID)
			}
		}

		if len(next) == 0 {
			// Cycle stall: force-assign the first unassigned table.
			for _, t := range s.Tables {
				if !assigned[t.ID] {
					next = []string{t.ID}
					break
				}
			}
		}

		for _, id := range next {
			assigned[id] = true
		}
		layers = append(layers, next)
	}

	return layers
}
