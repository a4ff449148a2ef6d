// Package schema defines the relational schema model consumed by the layout
// engine: tables, columns, and foreign-key relations.
//
// A Schema is produced by one of the sources (database introspection, SQL
// file parsing) or decoded from JSON, and is treated as read-only by every
// consumer. The layout engine never mutates a Schema; repeated layout calls
// with the same Schema value are safe from concurrent goroutines.
package schema

// =============================================================================
// Schema - Relational Graph Input
// =============================================================================

// Schema is the sole input to the layout engine: a set of tables and the
// foreign-key relations between them.
type Schema struct {
	Tables    []Table    `json:"tables" bson:"tables"`
	Relations []Relation `json:"relations" bson:"relations"`
}

// Table represents a database table: a node in the visualized schema graph.
type Table struct {
	ID      string   `json:"id" bson:"id"`
	Name    string   `json:"name" bson:"name"`
	Columns []Column `json:"columns,omitempty" bson:"columns,omitempty"`
}

// Column represents a single column of a table.
type Column struct {
	ID           string `json:"id" bson:"id"`
	Name         string `json:"name" bson:"name"`
	Type         string `json:"type" bson:"type"`
	IsPrimaryKey bool   `json:"is_primary_key,omitempty" bson:"is_primary_key,omitempty"`
	IsForeignKey bool   `json:"is_foreign_key,omitempty" bson:"is_foreign_key,omitempty"`
	IsNullable   bool   `json:"is_nullable,omitempty" bson:"is_nullable,omitempty"`
}

// Relation represents a foreign-key edge: SourceTableID has a foreign key
// referencing TargetTableID.
type Relation struct {
	ID             string `json:"id" bson:"id"`
	SourceTableID  string `json:"source_table_id" bson:"source_table_id"`
	SourceColumn   string `json:"source_column" bson:"source_column"`
	TargetTableID  string `json:"target_table_id" bson:"target_table_id"`
	TargetColumn   string `json:"target_column" bson:"target_column"`
	ConstraintName string `json:"constraint_name,omitempty" bson:"constraint_name,omitempty"`
	OnDelete       string `json:"on_delete,omitempty" bson:"on_delete,omitempty"`
	OnUpdate       string `json:"on_update,omitempty" bson:"on_update,omitempty"`
}

// =============================================================================
// Lookup Helpers
// =============================================================================

// TableByID returns the table with the given ID, or nil if no such table
// exists. Lookup is linear; schemas are small enough that an index map is
// not worth carrying on the type.
func (s *Schema) TableByID(id string) *Table {
	for i := range s.Tables {
		if s.Tables[i].ID == id {
			return &s.Tables[i]
		}
	}
	return nil
}

// TableByName returns the table with the given name, or nil if none matches.
func (s *Schema) TableByName(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// IsSelfReferential reports whether the relation points from a table to itself.
func (r Relation) IsSelfReferential() bool {
	return r.SourceTableID == r.TargetTableID
}
