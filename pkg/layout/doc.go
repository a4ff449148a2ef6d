// Package layout converts a relational schema (tables plus foreign-key
// relations) into concrete 2D diagram geometry: node positions and sizes,
// edge endpoints, and an overall bounding box.
//
// # Architecture
//
// Four independent algorithms share nothing but the geometry helpers:
//
//   - Hierarchical: topological layering by foreign-key dependency, with
//     row/column placement and per-layer centering
//   - ForceDirected: pairwise repulsion plus spring attraction along
//     relations, with deterministic circular initialization
//   - Grid: degree-sorted row-major grid placement
//   - Circular: closed-form even placement on a circle
//
// The Engine facade merges caller-supplied option overrides with configured
// defaults and dispatches to one of the four algorithms.
//
// # Determinism
//
// No algorithm uses randomness. Identical schema and options always produce
// identical geometry, including the force-directed simulation, which seeds
// positions on a circle in table input order and iterates node pairs in a
// fixed order.
//
// # Error Handling
//
// Layout is total for well-typed input. An empty schema yields an empty
// result, relations referencing unknown table IDs are skipped during
// positioning, and cyclic foreign-key graphs terminate via forced layer
// assignment. No layout call returns an error.
package layout
