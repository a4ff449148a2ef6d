package layout

import (
	"testing"

	"github.com/mhartmann/schemap/pkg/schema"
)

func gridSchema() *schema.Schema {
	// Degrees: posts 3, users 2, likes 2, comments 1, tags 0.
	return &schema.Schema{
		Tables: []schema.Table{
			{ID: "users"}, {ID: "posts"}, {ID: "comments"}, {ID: "tags"}, {ID: "likes"},
		},
		Relations: []schema.Relation{
			{ID: "r1", SourceTableID: "posts", TargetTableID: "users"},
			{ID: "r2", SourceTableID: "comments", TargetTableID: "posts"},
			{ID: "r3", SourceTableID: "likes", TargetTableID: "posts"},
			{ID: "r4", SourceTableID: "likes", TargetTableID: "users"},
		},
	}
}

func TestGrid_HighestDegreeFirst(t *testing.T) {
	nodes := Grid(gridSchema(), Options{})

	if len(nodes) != 5 {
		t.Fatalf("len(nodes) = %d, want 5", len(nodes))
	}
	if nodes[0].ID != "posts" {
		t.Errorf("nodes[0].ID = %q, want \"posts\"", nodes[0].ID)
	}
	if p := nodes[0].Position; p.X != 0 || p.Y != 0 {
		t.Errorf("nodes[0] position = %+v, want origin", p)
	}
}

func TestGrid_RowMajorDescendingDegree(t *testing.T) {
	nodes := Grid(gridSchema(), Options{})

	// Stable sort: users (input order) before likes at equal degree.
	wantOrder := []string{"posts", "users", "likes", "comments", "tags"}
	for i, id := range wantOrder {
		if nodes[i].ID != id {
			t.Errorf("nodes[%d].ID = %q, want %q", i, nodes[i].ID, id)
		}
	}

	// 5 tables -> 3 columns. Cell pitch is node size plus spacing.
	crossPitch := DefaultNodeWidth + DefaultNodeSpacing
	mainPitch := DefaultNodeHeight + DefaultLayerSpacing
	wantPos := []Point{
		{X: 0, Y: 0},
		{X: crossPitch, Y: 0},
		{X: 2 * crossPitch, Y: 0},
		{X: 0, Y: mainPitch},
		{X: crossPitch, Y: mainPitch},
	}
	for i, want := range wantPos {
		if nodes[i].Position != want {
			t.Errorf("nodes[%d] position = %+v, want %+v", i, nodes[i].Position, want)
		}
	}
}

func TestGrid_Directions(t *testing.T) {
	tests := []struct {
		direction Direction
		wantLast  Point // position of the 4th node (row 1, col 0)
	}{
		{DirectionTopDown, Point{X: 0, Y: 300}},
		{DirectionBottomUp, Point{X: 0, Y: -300}},
		{DirectionLeftRight, Point{X: 300, Y: 0}},
		{DirectionRightLeft, Point{X: -300, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(string(tt.direction), func(t *testing.T) {
			nodes := Grid(gridSchema(), Options{Direction: tt.direction})
			if got := nodes[3].Position; got != tt.wantLast {
				t.Errorf("nodes[3] position = %+v, want %+v", got, tt.wantLast)
			}
		})
	}
}

func TestGrid_Empty(t *testing.T) {
	nodes := Grid(&schema.Schema{}, Options{})
	if len(nodes) != 0 {
		t.Errorf("len(nodes) = %d, want 0", len(nodes))
	}
}
