// Package export serializes layout results for downstream consumers: pretty
// JSON for rendering frontends and persistence, and Graphviz DOT text for
// interop with graph tooling.
//
// Drawing (SVG/PNG rasterization) deliberately does not live here; the DOT
// output is a text serialization of the positioned diagram, not a rendering.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mhartmann/schemap/pkg/layout"
	"github.com/mhartmann/schemap/pkg/schema"
)

// Format identifies an export format.
type Format string

// Supported export formats.
const (
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
)

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	return f == FormatJSON || f == FormatDOT
}

// WriteJSON writes a layout result as indented JSON.
func WriteJSON(r *layout.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// MarshalJSON serializes a layout result to indented JSON bytes.
func MarshalJSON(r *layout.Result) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteFile writes a layout result to path in the given format.
func WriteFile(r *layout.Result, s *schema.Schema, format Format, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatDOT:
		return WriteDOT(r, s, f)
	default:
		return WriteJSON(r, f)
	}
}

// WriteDOT writes the positioned diagram as a Graphviz digraph. Node
// positions are emitted as pinned pos attributes (in points, Y flipped to
// Graphviz's upward axis) so `neato -n` reproduces the computed geometry;
// labels are record-style with the table name and column list.
func WriteDOT(r *layout.Result, s *schema.Schema, w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("digraph schema {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=record, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range r.Nodes {
		label := nodeLabel(s, n.ID)
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%g,%g!\", width=%g, height=%g];\n",
			n.ID, label,
			n.Position.X, -n.Position.Y,
			n.Size.Width/72, n.Size.Height/72)
	}

	buf.WriteString("\n")
	for _, e := range r.Edges {
		if label := edgeLabel(e); label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Source, e.Target, label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// nodeLabel builds a record label "name|col1|col2|..." from the schema, or
// just the node ID when the table is unknown.
func nodeLabel(s *schema.Schema, id string) string {
	t := s.TableByID(id)
	if t == nil {
		return id
	}
	parts := make([]string, 0, len(t.Columns)+1)
	parts = append(parts, t.Name)
	for _, c := range t.Columns {
		name := c.Name
		if c.IsPrimaryKey {
			name = "*" + name
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "|")
}

// edgeLabel returns the source column driving the relation, if recorded.
func edgeLabel(e layout.PositionedEdge) string {
	return strings.TrimSuffix(e.SourceHandle, "-source")
}
