package layout

// =============================================================================
// Algorithm and Direction Selectors
// =============================================================================

// Algorithm selects which layout algorithm the engine dispatches to.
type Algorithm string

// Supported layout algorithms.
const (
	AlgorithmHierarchical  Algorithm = "hierarchical"
	AlgorithmForceDirected Algorithm = "force_directed"
	AlgorithmGrid          Algorithm = "grid"
	AlgorithmCircular      Algorithm = "circular"
)

// IsValid reports whether a is one of the supported algorithms.
func (a Algorithm) IsValid() bool {
	switch a {
	case AlgorithmHierarchical, AlgorithmForceDirected, AlgorithmGrid, AlgorithmCircular:
		return true
	}
	return false
}

// Direction selects the main axis and its sign for axis-aware algorithms
// (hierarchical and grid). Vertical directions lay layers out along Y,
// horizontal directions along X; bottom_up and right_left negate the
// main-axis coordinate.
type Direction string

// Supported layout directions.
const (
	DirectionTopDown   Direction = "top_down"
	DirectionLeftRight Direction = "left_right"
	DirectionBottomUp  Direction = "bottom_up"
	DirectionRightLeft Direction = "right_left"
)

// IsValid reports whether d is one of the supported directions.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionTopDown, DirectionLeftRight, DirectionBottomUp, DirectionRightLeft:
		return true
	}
	return false
}

// oriented maps a main-axis/cross-axis coordinate pair to screen coordinates.
// Unknown directions behave as top_down, matching the engine's graceful
// handling of malformed selectors.
func (d Direction) oriented(main, cross float64) Point {
	switch d {
	case DirectionLeftRight:
		return Point{X: main, Y: cross}
	case DirectionRightLeft:
		return Point{X: -main, Y: cross}
	case DirectionBottomUp:
		return Point{X: cross, Y: -main}
	default:
		return Point{X: cross, Y: main}
	}
}

// =============================================================================
// Options
// =============================================================================

// Default option values applied by the engine for unset fields.
const (
	DefaultNodeSpacing  = 100.0
	DefaultLayerSpacing = 150.0
	DefaultEdgeSpacing  = 20.0
	DefaultNodeWidth    = 250.0
	DefaultNodeHeight   = 150.0
)

// Spacing controls the distances between diagram elements.
type Spacing struct {
	Node  float64 `json:"node_spacing,omitempty"`
	Layer float64 `json:"layer_spacing,omitempty"`
	Edge  float64 `json:"edge_spacing,omitempty"`
}

// NodeSize is the uniform size assigned to every positioned node.
type NodeSize struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Options configures a layout call. The zero value of any field means
// "unset": the engine merges unset fields (including nested spacing and
// node-size sub-fields) from its configured defaults, so callers only
// specify what they want to override.
type Options struct {
	Algorithm Algorithm `json:"algorithm,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	Spacing   Spacing   `json:"spacing,omitempty"`
	NodeSize  NodeSize  `json:"node_size,omitempty"`
}

// DefaultOptions returns the built-in defaults: hierarchical layout, top-down
// direction, 100/150/20 spacing, and 250x150 nodes.
func DefaultOptions() Options {
	return Options{
		Algorithm: AlgorithmHierarchical,
		Direction: DirectionTopDown,
		Spacing:   Spacing{Node: DefaultNodeSpacing, Layer: DefaultLayerSpacing, Edge: DefaultEdgeSpacing},
		NodeSize:  NodeSize{Width: DefaultNodeWidth, Height: DefaultNodeHeight},
	}
}

// withDefaults returns o with every unset field filled from d.
// The merge is shallow per field; nested Spacing and NodeSize merge per
// sub-field. Unknown algorithm or direction strings are replaced wholesale.
func (o Options) withDefaults(d Options) Options {
	if !o.Algorithm.IsValid() {
		o.Algorithm = d.Algorithm
	}
	if !o.Direction.IsValid() {
		o.Direction = d.Direction
	}
	if o.Spacing.Node == 0 {
		o.Spacing.Node = d.Spacing.Node
	}
	if o.Spacing.Layer == 0 {
		o.Spacing.Layer = d.Spacing.Layer
	}
	if o.Spacing.Edge == 0 {
		o.Spacing.Edge = d.Spacing.Edge
	}
	if o.NodeSize.Width == 0 {
		o.NodeSize.Width = d.NodeSize.Width
	}
	if o.NodeSize.Height == 0 {
		o.NodeSize.Height = d.NodeSize.Height
	}
	return o
}

// =============================================================================
// Geometry Output Types
// =============================================================================

// Point is a 2D coordinate in diagram space (Y grows downward).
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// PositionedNode is the geometric realization of a table. It is produced
// fresh per layout call and never mutated afterwards.
//
// Layer and Rank are only meaningful for hierarchical layouts: Layer is the
// dependency depth and Rank the position within the layer. Both are zero for
// other algorithms.
type PositionedNode struct {
	ID       string `json:"id" bson:"id"`
	Position Point  `json:"position" bson:"position"`
	Size     Size   `json:"size" bson:"size"`
	Layer    int    `json:"layer,omitempty" bson:"layer,omitempty"`
	Rank     int    `json:"rank,omitempty" bson:"rank,omitempty"`
}

// PositionedEdge is the geometric realization of a relation. Source and
// Target are table IDs; the handle fields identify the column anchor on each
// end, in the form "<column>-source" / "<column>-target".
type PositionedEdge struct {
	ID           string `json:"id" bson:"id"`
	Source       string `json:"source" bson:"source"`
	Target       string `json:"target" bson:"target"`
	SourceHandle string `json:"source_handle,omitempty" bson:"source_handle,omitempty"`
	TargetHandle string `json:"target_handle,omitempty" bson:"target_handle,omitempty"`
}

// BoundingBox is the minimal axis-aligned rectangle containing all positioned
// nodes. For an empty layout it is the zero box at the origin.
type BoundingBox struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Metadata describes how a result was produced.
type Metadata struct {
	Algorithm       Algorithm `json:"algorithm" bson:"algorithm"`
	Direction       Direction `json:"direction" bson:"direction"`
	NodeCount       int       `json:"node_count" bson:"node_count"`
	EdgeCount       int       `json:"edge_count" bson:"edge_count"`
	LayerCount      int       `json:"layer_count,omitempty" bson:"layer_count,omitempty"`
	ExecutionTimeMs float64   `json:"execution_time_ms" bson:"execution_time_ms"`
}

// Result is an immutable snapshot of one layout computation. The caller owns
// any persistence or merging across repeated calls.
type Result struct {
	Nodes    []PositionedNode `json:"nodes" bson:"nodes"`
	Edges    []PositionedEdge `json:"edges" bson:"edges"`
	Bounds   BoundingBox      `json:"bounds" bson:"bounds"`
	Metadata Metadata         `json:"metadata" bson:"metadata"`
}
