package sqlfile

import (
	"testing"

	"github.com/mhartmann/schemap/pkg/schema"
)

const blogDDL = `
-- blog schema
CREATE TABLE users (
    id SERIAL PRIMARY KEY,
    email varchar(255) NOT NULL,
    bio text
);

CREATE TABLE posts (
    id SERIAL PRIMARY KEY,
    user_id integer NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title varchar(255) NOT NULL
);

CREATE TABLE comments (
    id SERIAL,
    post_id integer NOT NULL,
    body text,
    PRIMARY KEY (id),
    CONSTRAINT comments_post_fk FOREIGN KEY (post_id) REFERENCES posts (id) ON DELETE CASCADE ON UPDATE RESTRICT
);
`

func tableByName(t *testing.T, s *schema.Schema, name string) *schema.Table {
	t.Helper()
	tbl := s.TableByName(name)
	if tbl == nil {
		t.Fatalf("table %q not found", name)
	}
	return tbl
}

func TestParseString_Tables(t *testing.T) {
	s := ParseString(blogDDL)

	if len(s.Tables) != 3 {
		t.Fatalf("len(tables) = %d, want 3", len(s.Tables))
	}

	users := tableByName(t, s, "users")
	if len(users.Columns) != 3 {
		t.Fatalf("users has %d columns, want 3", len(users.Columns))
	}
	id := users.Columns[0]
	if !id.IsPrimaryKey || id.IsNullable {
		t.Errorf("users.id = %+v, want primary key, not nullable", id)
	}
	if users.Columns[1].Type != "varchar(255)" {
		t.Errorf("email type = %q, want varchar(255)", users.Columns[1].Type)
	}
	if !users.Columns[2].IsNullable {
		t.Error("bio should be nullable")
	}
}

func TestParseString_InlineReferences(t *testing.T) {
	s := ParseString(blogDDL)

	if len(s.Relations) != 2 {
		t.Fatalf("len(relations) = %d, want 2", len(s.Relations))
	}

	r := s.Relations[0]
	if r.SourceTableID != "posts" || r.SourceColumn != "user_id" {
		t.Errorf("relation source = %s.%s, want posts.user_id", r.SourceTableID, r.SourceColumn)
	}
	if r.TargetTableID != "users" || r.TargetColumn != "id" {
		t.Errorf("relation target = %s.%s, want users.id", r.TargetTableID, r.TargetColumn)
	}
	if r.OnDelete != "CASCADE" {
		t.Errorf("OnDelete = %q, want CASCADE", r.OnDelete)
	}

	posts := tableByName(t, s, "posts")
	if !posts.Columns[1].IsForeignKey {
		t.Error("posts.user_id should be marked as foreign key")
	}
}

func TestParseString_TableConstraint(t *testing.T) {
	s := ParseString(blogDDL)

	r := s.Relations[1]
	if r.ID != "comments_post_fk" || r.ConstraintName != "comments_post_fk" {
		t.Errorf("relation id/constraint = %q/%q, want comments_post_fk", r.ID, r.ConstraintName)
	}
	if r.SourceTableID != "comments" || r.TargetTableID != "posts" {
		t.Errorf("relation = %s -> %s, want comments -> posts", r.SourceTableID, r.TargetTableID)
	}
	if r.OnDelete != "CASCADE" || r.OnUpdate != "RESTRICT" {
		t.Errorf("actions = %q/%q, want CASCADE/RESTRICT", r.OnDelete, r.OnUpdate)
	}

	comments := tableByName(t, s, "comments")
	if !comments.Columns[0].IsPrimaryKey {
		t.Error("comments.id should be primary key via table-level PRIMARY KEY")
	}
}

func TestParseString_AlterTable(t *testing.T) {
	s := ParseString(`
CREATE TABLE a (id integer PRIMARY KEY);
CREATE TABLE b (id integer PRIMARY KEY, a_id integer);
ALTER TABLE ONLY b ADD CONSTRAINT b_a_fk FOREIGN KEY (a_id) REFERENCES public.a(id) ON DELETE SET NULL;
`)

	if len(s.Relations) != 1 {
		t.Fatalf("len(relations) = %d, want 1", len(s.Relations))
	}
	r := s.Relations[0]
	if r.SourceTableID != "b" || r.TargetTableID != "a" {
		t.Errorf("relation = %s -> %s, want b -> a", r.SourceTableID, r.TargetTableID)
	}
	if r.OnDelete != "SET NULL" {
		t.Errorf("OnDelete = %q, want SET NULL", r.OnDelete)
	}
}

func TestParseString_QuotedAndQualifiedNames(t *testing.T) {
	s := ParseString(`CREATE TABLE "public"."order items" ("id" integer PRIMARY KEY);`)

	if len(s.Tables) != 1 {
		t.Fatalf("len(tables) = %d, want 1", len(s.Tables))
	}
	if got := s.Tables[0].Name; got != "order items" {
		t.Errorf("table name = %q, want \"order items\"", got)
	}
}

func TestParseString_SkipsUnknownStatements(t *testing.T) {
	s := ParseString(`
SET search_path TO public;
CREATE INDEX idx_users_email ON users (email);
CREATE TABLE users (id integer PRIMARY KEY);
INSERT INTO users VALUES (1);
`)

	if len(s.Tables) != 1 {
		t.Errorf("len(tables) = %d, want 1", len(s.Tables))
	}
	if len(s.Relations) != 0 {
		t.Errorf("len(relations) = %d, want 0", len(s.Relations))
	}
}

func TestParseString_Empty(t *testing.T) {
	s := ParseString("")
	if len(s.Tables) != 0 || len(s.Relations) != 0 {
		t.Errorf("got %d tables, %d relations, want empty", len(s.Tables), len(s.Relations))
	}
	if s.Tables == nil || s.Relations == nil {
		t.Error("slices should be non-nil")
	}
}
