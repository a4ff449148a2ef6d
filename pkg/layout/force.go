package layout

import (
	"math"

	"github.com/mhartmann/schemap/pkg/schema"
)

// Force-directed simulation constants.
const (
	forceIterations    = 100
	repulsionStrength  = 5000.0
	springStrength     = 0.01
	initialTemperature = 100.0
	coolingFactor      = 0.95
)

// ForceDirected arranges tables with a physics simulation: every node pair
// repels with an inverse-square force while relations act as springs pulling
// connected tables toward an ideal separation. Connected clusters settle near
// each other; unrelated tables drift apart.
//
// # Initialization
//
// Nodes start on a circle of radius max(200, tableCount*50) at angle
// 2π·i/tableCount for the i-th table in input order. There is no RNG
// anywhere, so the result is fully deterministic.
//
// # Simulation
//
// Each of the 100 iterations builds a fresh displacement set:
//
//   - every unordered node pair repels with magnitude 5000/distance² along
//     the line joining centers (distance floored to 1)
//   - every relation applies a spring force 0.01·(distance − ideal), where
//     ideal = Spacing.Node + max(node width, node height)
//   - each node's net displacement is clamped to the current temperature
//     before being applied
//   - the temperature starts at 100 and decays by ×0.95 per iteration
//
// After the final iteration the whole layout is translated so its centroid
// sits at the origin.
//
// # Performance
//
// O(iterations × tableCount²). There is no built-in node cap; callers with
// very large schemas should run layout off the critical path.
func ForceDirected(s *schema.Schema, opts Options) []PositionedNode {
	opts = opts.withDefaults(DefaultOptions())

	n := len(s.Tables)
	if n == 0 {
		return []PositionedNode{}
	}

	index := make(map[string]int, n)
	for i, t := range s.Tables {
		index[t.ID] = i
	}

	radius := math.Max(200, float64(n)*50)
	pos := make([]Point, n)
	for i := range pos {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pos[i] = Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}

	ideal := opts.Spacing.Node + math.Max(opts.NodeSize.Width, opts.NodeSize.Height)
	temperature := initialTemperature

	for iter := 0; iter < forceIterations; iter++ {
		disp := make([]Point, n)

		// Pairwise repulsion.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pos[i].X - pos[j].X
				dy := pos[i].Y - pos[j].Y
				dist := math.Hypot(dx, dy)
				if dist < 1 {
					dist = 1
				}
				force := repulsionStrength / (dist * dist)
				ux, uy := dx/dist, dy/dist
				disp[i].X += ux * force
				disp[i].Y += uy * force
				disp[j].X -= ux * force
				disp[j].Y -= uy * force
			}
		}

		// Spring attraction along relations.
		for _, r := range s.Relations {
			si, ok := index[r.SourceTableID]
			if !ok {
				continue
			}
			ti, ok := index[r.TargetTableID]
			if !ok || si == ti {
				continue
			}
			dx := pos[ti].X - pos[si].X
			dy := pos[ti].Y - pos[si].Y
			dist := math.Hypot(dx, dy)
			if dist == 0 {
				continue
			}
			force := springStrength * (dist - ideal)
			ux, uy := dx/dist, dy/dist
			disp[si].X += ux * force
			disp[si].Y += uy * force
			disp[ti].X -= ux * force
			disp[ti].Y -= uy * force
		}

		// Apply displacements, clamped to the current temperature.
		for i := range pos {
			d := math.Hypot(disp[i].X, disp[i].Y)
			if d > temperature && d > 0 {
				scale := temperature / d
				disp[i].X *= scale
				disp[i].Y *= scale
			}
			pos[i].X += disp[i].X
			pos[i].Y += disp[i].Y
		}

		temperature *= coolingFactor
	}

	// Recenter the layout on its centroid.
	var cx, cy float64
	for _, p := range pos {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(n)
	cy /= float64(n)

	nodes := make([]PositionedNode, n)
	for i, t := range s.Tables {
		nodes[i] = PositionedNode{
			ID:       t.ID,
			Position: Point{X: pos[i].X - cx, Y: pos[i].Y - cy},
			Size:     Size{Width: opts.NodeSize.Width, Height: opts.NodeSize.Height},
		}
	}
	return nodes
}
