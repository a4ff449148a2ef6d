package layout

import "github.com/mhartmann/schemap/pkg/schema"

// =============================================================================
// Geometry Utilities
// =============================================================================

// BuildEdges materializes one PositionedEdge per relation, independent of the
// layout algorithm. Relations whose endpoints are missing from the schema's
// tables are still materialized (the edge count always equals the relation
// count); it is the positioning step that skips dangling IDs.
//
// Note: passing dangling relations through unvalidated mirrors the behavior
// of the rendering layers this feeds; whether that silence is desirable is
// under review.
func BuildEdges(relations []schema.Relation) []PositionedEdge {
	edges := make([]PositionedEdge, len(relations))
	for i, r := range relations {
		e := PositionedEdge{
			ID:     r.ID,
			Source: r.SourceTableID,
			Target: r.TargetTableID,
		}
		if r.SourceColumn != "" {
			e.SourceHandle = r.SourceColumn + "-source"
		}
		if r.TargetColumn != "" {
			e.TargetHandle = r.TargetColumn + "-target"
		}
		edges[i] = e
	}
	return edges
}

// ComputeBounds returns the minimal axis-aligned box containing every node
// rectangle (position through position+size). Zero nodes yield the zero box
// at the origin, never infinities or NaN.
func ComputeBounds(nodes []PositionedNode) BoundingBox {
	if len(nodes) == 0 {
		return BoundingBox{}
	}

	minX := nodes[0].Position.X
	minY := nodes[0].Position.Y
	maxX := nodes[0].Position.X + nodes[0].Size.Width
	maxY := nodes[0].Position.Y + nodes[0].Size.Height

	for _, n := range nodes[1:] {
		if n.Position.X < minX {
			minX = n.Position.X
		}
		if n.Position.Y < minY {
			minY = n.Position.Y
		}
		if x := n.Position.X + n.Size.Width; x > maxX {
			maxX = x
		}
		if y := n.Position.Y + n.Size.Height; y > maxY {
			maxY = y
		}
	}

	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
