package layout

import (
	"math"
	"slices"

	"github.com/mhartmann/schemap/pkg/schema"
)

// Grid places tables row-major into a near-square grid, ordered by
// connectivity: the most-connected table occupies the first cell. Degree is
// the number of relations touching a table as source or target; ties keep
// input order. The grid has ceil(sqrt(tableCount)) columns, with cell pitch
// node size plus spacing (Spacing.Node across, Spacing.Layer along the main
// axis). O(n log n) in the table count.
func Grid(s *schema.Schema, opts Options) []PositionedNode {
	opts = opts.withDefaults(DefaultOptions())

	n := len(s.Tables)
	if n == 0 {
		return []PositionedNode{}
	}

	degree := make(map[string]int, n)
	for _, r := range s.Relations {
		degree[r.SourceTableID]++
		degree[r.TargetTableID]++
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return degree[s.Tables[b].ID] - degree[s.Tables[a].ID]
	})

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	crossPitch := opts.NodeSize.Width + opts.Spacing.Node
	mainPitch := opts.NodeSize.Height + opts.Spacing.Layer

	nodes := make([]PositionedNode, n)
	for k, idx := range order {
		row, col := k/cols, k%cols
		nodes[k] = PositionedNode{
			ID:       s.Tables[idx].ID,
			Position: opts.Direction.oriented(float64(row)*mainPitch, float64(col)*crossPitch),
			Size:     Size{Width: opts.NodeSize.Width, Height: opts.NodeSize.Height},
		}
	}
	return nodes
}
