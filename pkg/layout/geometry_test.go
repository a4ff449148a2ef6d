package layout

import (
	"testing"

	"github.com/mhartmann/schemap/pkg/schema"
)

func TestBuildEdges(t *testing.T) {
	relations := []schema.Relation{
		{ID: "r1", SourceTableID: "posts", SourceColumn: "user_id", TargetTableID: "users", TargetColumn: "id"},
		{ID: "r2", SourceTableID: "comments", TargetTableID: "ghost"},
	}

	edges := BuildEdges(relations)

	if len(edges) != 2 {
		t.Fatalf("len(edges) = %d, want 2", len(edges))
	}

	want := PositionedEdge{
		ID:           "r1",
		Source:       "posts",
		Target:       "users",
		SourceHandle: "user_id-source",
		TargetHandle: "id-target",
	}
	if edges[0] != want {
		t.Errorf("edges[0] = %+v, want %+v", edges[0], want)
	}

	// Dangling relations are still materialized; only positioning skips them.
	if edges[1].Target != "ghost" {
		t.Errorf("edges[1].Target = %q, want \"ghost\"", edges[1].Target)
	}
	if edges[1].SourceHandle != "" {
		t.Errorf("edges[1].SourceHandle = %q, want empty", edges[1].SourceHandle)
	}
}

func TestComputeBounds(t *testing.T) {
	tests := []struct {
		name  string
		nodes []PositionedNode
		want  BoundingBox
	}{
		{
			name:  "empty",
			nodes: nil,
			want:  BoundingBox{},
		},
		{
			name: "single node",
			nodes: []PositionedNode{
				{Position: Point{X: 10, Y: 20}, Size: Size{Width: 250, Height: 150}},
			},
			want: BoundingBox{X: 10, Y: 20, Width: 250, Height: 150},
		},
		{
			name: "negative coordinates",
			nodes: []PositionedNode{
				{Position: Point{X: -100, Y: -50}, Size: Size{Width: 100, Height: 50}},
				{Position: Point{X: 200, Y: 300}, Size: Size{Width: 100, Height: 50}},
			},
			want: BoundingBox{X: -100, Y: -50, Width: 400, Height: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeBounds(tt.nodes); got != tt.want {
				t.Errorf("ComputeBounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
