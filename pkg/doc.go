// Package pkg provides the core libraries for schemap entity-relationship
// diagram layout.
//
// # Overview
//
// Schemap turns database schemas into positioned entity-relationship
// diagrams. The pkg directory is organized into four main areas:
//
//  1. [schema] / [source] - Schema model and extraction (PostgreSQL, SQL DDL)
//  2. [layout] - Layout engine with four positioning algorithms
//  3. [export] / [store] / [cache] - Output, persistence, and caching
//  4. [server] / [config] / [errors] - HTTP API and supporting infrastructure
//
// # Architecture
//
// The typical data flow through schemap:
//
//	PostgreSQL / SQL DDL / JSON schema file
//	         ↓
//	    [source] package (introspect or parse into a schema)
//	         ↓
//	    [layout] package (position tables, build edges, compute bounds)
//	         ↓
//	    [export] package (JSON or Graphviz DOT output)
//
// # Quick Start
//
// Compute a layout for a schema and write it as JSON:
//
//	import (
//	    "os"
//	    "github.com/mhartmann/schemap/pkg/export"
//	    "github.com/mhartmann/schemap/pkg/layout"
//	    "github.com/mhartmann/schemap/pkg/schema"
//	)
//
//	// 1. Load the schema
//	s, _ := schema.ReadFile("schema.json")
//
//	// 2. Compute the layout
//	engine := layout.NewEngine(layout.Options{})
//	result := engine.Apply(s, layout.Options{
//	    Algorithm: layout.AlgorithmHierarchical,
//	    Direction: layout.DirectionLeftRight,
//	})
//
//	// 3. Export
//	export.WriteJSON(result, os.Stdout)
//
// # Main Packages
//
// [schema] - The schema model: tables, columns, and foreign-key relations,
// with JSON serialization and multi-schema merging.
//
// [source/postgres] - Live PostgreSQL introspection over the information
// schema via pgx.
//
// [source/sqlfile] - Tolerant parser for SQL DDL dumps (CREATE TABLE, ALTER
// TABLE ... ADD CONSTRAINT).
//
// [layout] - The layout engine: hierarchical, force-directed, grid, and
// circular algorithms behind a single facade, plus edge building and bounds
// computation.
//
// [export] - Serialization of layout results as indented JSON or Graphviz
// DOT with pinned positions.
//
// [cache] - Content-addressed caching of layouts and schemas with file,
// Redis, and null backends.
//
// [store] - Named layout snapshots with memory and MongoDB backends, used by
// the HTTP API.
//
// [server] - The chi-based HTTP API: layout computation and snapshot CRUD.
//
// [config] - TOML configuration for engine defaults, cache, database, and
// server.
//
// [errors] - Structured errors with machine-readable codes shared by the CLI
// and the API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                          # All tests
//	go test ./pkg/layout/...                   # Specific package
//	SCHEMAP_TEST_DATABASE_URL=... go test ...  # Include live-database tests
//
// [schema]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/schema
// [source]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/source
// [source/postgres]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/source/postgres
// [source/sqlfile]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/source/sqlfile
// [layout]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/layout
// [export]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/export
// [cache]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/cache
// [store]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/store
// [server]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/server
// [config]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/config
// [errors]: https://pkg.go.dev/github.com/mhartmann/schemap/pkg/errors
package pkg
