// Package postgres introspects a live PostgreSQL database into a schema for
// layout: tables, columns, and the foreign-key relations between them.
//
// All structural information comes from information_schema, so any reasonably
// recent PostgreSQL (or compatible) server works. The connection is opened,
// queried, and closed within a single Introspect call.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mhartmann/schemap/pkg/errors"
	"github.com/mhartmann/schemap/pkg/schema"
)

// Introspect connects to the database at dsn (a postgres:// URL or keyword
// DSN), reads its structure, and returns it as a Schema. Tables are ordered
// by schema then name; columns by ordinal position.
func Introspect(ctx context.Context, dsn string, opts ...Option) (*schema.Schema, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConnection, err, "connect to database")
	}
	defer conn.Close(ctx)

	return introspectConn(ctx, conn, o)
}

func introspectConn(ctx context.Context, conn *pgx.Conn, o *options) (*schema.Schema, error) {
	qualify := len(o.schemas) > 1

	out := &schema.Schema{Tables: []schema.Table{}, Relations: []schema.Relation{}}
	for _, name := range o.schemas {
		tables, err := readTables(ctx, conn, name, qualify, o.excludeTables)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDatabase, err, "read tables of %s", name)
		}
		out.Tables = append(out.Tables, tables...)

		relations, err := readRelations(ctx, conn, name, qualify, o.excludeTables)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDatabase, err, "read foreign keys of %s", name)
		}
		out.Relations = append(out.Relations, relations...)
	}

	markForeignKeyColumns(out)
	return out, nil
}

// tableID derives the node identifier for a table. Identifiers are qualified
// with the database schema only when introspecting more than one, so the
// common single-schema case keeps short, readable IDs.
func tableID(schemaName, tableName string, qualify bool) string {
	if qualify {
		return schemaName + "." + tableName
	}
	return tableName
}

func readTables(ctx context.Context, conn *pgx.Conn, schemaName string, qualify bool, exclude map[string]bool) ([]schema.Table, error) {
	const query = `
		SELECT c.table_name, c.column_name, c.data_type, c.is_nullable,
		       COALESCE(tc.constraint_type = 'PRIMARY KEY', false) AS is_pk
		FROM information_schema.columns c
		LEFT JOIN information_schema.key_column_usage kcu
			ON kcu.table_schema = c.table_schema
			AND kcu.table_name = c.table_name
			AND kcu.column_name = c.column_name
		LEFT JOIN information_schema.table_constraints tc
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
			AND tc.constraint_type = 'PRIMARY KEY'
		JOIN information_schema.tables t
			ON t.table_schema = c.table_schema AND t.table_name = c.table_name
		WHERE c.table_schema = $1 AND t.table_type = 'BASE TABLE'
		ORDER BY c.table_name, c.ordinal_position
	`

	rows, err := conn.Query(ctx, query, schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []schema.Table
	var current *schema.Table
	for rows.Next() {
		var tableName, columnName, dataType, isNullable string
		var isPK bool
		if err := rows.Scan(&tableName, &columnName, &dataType, &isNullable, &isPK); err != nil {
			return nil, err
		}
		if exclude[tableName] {
			continue
		}

		id := tableID(schemaName, tableName, qualify)
		if current == nil || current.ID != id {
			tables = append(tables, schema.Table{ID: id, Name: tableName})
			current = &tables[len(tables)-1]
		}
		current.Columns = append(current.Columns, schema.Column{
			ID:           id + "." + columnName,
			Name:         columnName,
			Type:         dataType,
			IsPrimaryKey: isPK,
			IsNullable:   isNullable == "YES",
		})
	}
	return tables, rows.Err()
}

func readRelations(ctx context.Context, conn *pgx.Conn, schemaName string, qualify bool, exclude map[string]bool) ([]schema.Relation, error) {
	const query = `
		SELECT rc.constraint_name,
		       kcu1.table_name, kcu1.column_name,
		       kcu2.table_schema, kcu2.table_name, kcu2.column_name,
		       rc.delete_rule, rc.update_rule
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu1
			ON kcu1.constraint_name = rc.constraint_name
			AND kcu1.table_schema = rc.constraint_schema
		JOIN information_schema.key_column_usage kcu2
			ON kcu2.constraint_name = rc.unique_constraint_name
			AND kcu2.table_schema = rc.unique_constraint_schema
			AND kcu2.ordinal_position = kcu1.ordinal_position
		WHERE kcu1.table_schema = $1
		ORDER BY rc.constraint_name, kcu1.ordinal_position
	`

	rows, err := conn.Query(ctx, query, schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var relations []schema.Relation
	for rows.Next() {
		var constraint, srcTable, srcColumn, dstSchema, dstTable, dstColumn, onDelete, onUpdate string
		if err := rows.Scan(&constraint, &srcTable, &srcColumn, &dstSchema, &dstTable, &dstColumn, &onDelete, &onUpdate); err != nil {
			return nil, err
		}
		if exclude[srcTable] || exclude[dstTable] {
			continue
		}

		id := constraint
		if id == "" {
			id = uuid.NewString()
		} else {
			// Composite keys produce one row per column pair under the same
			// constraint name; keep relation IDs unique.
			id = fmt.Sprintf("%s.%s.%s", schemaName, constraint, srcColumn)
		}

		relations = append(relations, schema.Relation{
			ID:             id,
			SourceTableID:  tableID(schemaName, srcTable, qualify),
			SourceColumn:   srcColumn,
			TargetTableID:  tableID(dstSchema, dstTable, qualify),
			TargetColumn:   dstColumn,
			ConstraintName: constraint,
			OnDelete:       onDelete,
			OnUpdate:       onUpdate,
		})
	}
	return relations, rows.Err()
}

// markForeignKeyColumns sets IsForeignKey on every column that appears as
// the source of a relation.
func markForeignKeyColumns(s *schema.Schema) {
	fk := make(map[string]bool, len(s.Relations))
	for _, r := range s.Relations {
		fk[r.SourceTableID+"."+r.SourceColumn] = true
	}
	for ti := range s.Tables {
		t := &s.Tables[ti]
		for ci := range t.Columns {
			if fk[t.ID+"."+t.Columns[ci].Name] {
				t.Columns[ci].IsForeignKey = true
			}
		}
	}
}
