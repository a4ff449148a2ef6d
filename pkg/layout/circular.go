package layout

import (
	"math"

	"github.com/mhartmann/schemap/pkg/schema"
)

// Circular places tables evenly on a circle, starting at the top (−90°) and
// proceeding clockwise in input order. The radius is max(200, c/2π) where
// c = tableCount × (node width + Spacing.Node), so neighboring tables never
// overlap along the circumference. Direction has no effect.
func Circular(s *schema.Schema, opts Options) []PositionedNode {
	opts = opts.withDefaults(DefaultOptions())

	n := len(s.Tables)
	if n == 0 {
		return []PositionedNode{}
	}

	circumference := float64(n) * (opts.NodeSize.Width + opts.Spacing.Node)
	radius := math.Max(200, circumference/(2*math.Pi))

	nodes := make([]PositionedNode, n)
	for i, t := range s.Tables {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		nodes[i] = PositionedNode{
			ID:       t.ID,
			Position: Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)},
			Size:     Size{Width: opts.NodeSize.Width, Height: opts.NodeSize.Height},
		}
	}
	return nodes
}
