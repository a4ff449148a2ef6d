// Package sqlfile builds a schema from SQL DDL files (pg_dump output,
// migration files, hand-written CREATE TABLE scripts).
//
// The parser is deliberately tolerant rather than complete: it understands
// CREATE TABLE bodies (columns, PRIMARY KEY, inline REFERENCES, table-level
// FOREIGN KEY constraints) and ALTER TABLE ... ADD ... FOREIGN KEY
// statements, and silently skips everything it cannot parse. A diagram
// of most of a schema beats an error about an exotic statement.
package sqlfile

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/mhartmann/schemap/pkg/errors"
	"github.com/mhartmann/schemap/pkg/schema"
)

// ident matches a bare, double-quoted, or backtick-quoted identifier;
// qualIdent allows a dotted schema qualifier.
const (
	ident     = `(?:"[^"]+"` + "|`[^`]+`" + `|[\w$]+)`
	qualIdent = ident + `(?:\.` + ident + `)*`
)

var (
	createTableRe  = regexp.MustCompile(`(?is)^CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(` + qualIdent + `)\s*\(`)
	alterTableRe   = regexp.MustCompile(`(?is)^ALTER\s+TABLE\s+(?:ONLY\s+)?(` + qualIdent + `)\s+ADD\s+(.*)$`)
	foreignKeyRe   = regexp.MustCompile(`(?is)^(?:CONSTRAINT\s+(` + qualIdent + `)\s+)?FOREIGN\s+KEY\s*\(\s*([^)]+)\)\s*REFERENCES\s+(` + qualIdent + `)\s*(?:\(\s*([^)]+)\))?(.*)$`)
	primaryKeyRe   = regexp.MustCompile(`(?is)^(?:CONSTRAINT\s+` + qualIdent + `\s+)?PRIMARY\s+KEY\s*\(\s*([^)]+)\)`)
	referencesRe   = regexp.MustCompile(`(?i)REFERENCES\s+(` + qualIdent + `)\s*(?:\(\s*(` + ident + `)\s*\))?`)
	onDeleteRe     = regexp.MustCompile(`(?i)ON\s+DELETE\s+(CASCADE|SET\s+NULL|SET\s+DEFAULT|RESTRICT|NO\s+ACTION)`)
	onUpdateRe     = regexp.MustCompile(`(?i)ON\s+UPDATE\s+(CASCADE|SET\s+NULL|SET\s+DEFAULT|RESTRICT|NO\s+ACTION)`)
	lineCommentRe  = regexp.MustCompile(`--[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// keywords that terminate the type portion of a column definition.
var columnKeywords = map[string]bool{
	"NOT": true, "NULL": true, "PRIMARY": true, "DEFAULT": true,
	"REFERENCES": true, "UNIQUE": true, "CHECK": true, "CONSTRAINT": true,
	"GENERATED": true, "AUTO_INCREMENT": true, "COLLATE": true,
}

// ParseFile reads DDL from a .sql file and returns the schema it declares.
func ParseFile(path string) (*schema.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads DDL from r and returns the schema it declares.
func Parse(r io.Reader) (*schema.Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read sql input")
	}
	return ParseString(string(data)), nil
}

// ParseString parses DDL text. It never fails: statements that cannot be
// understood are skipped.
func ParseString(sql string) *schema.Schema {
	sql = lineCommentRe.ReplaceAllString(sql, "")
	sql = blockCommentRe.ReplaceAllString(sql, "")

	p := &parser{out: &schema.Schema{Tables: []schema.Table{}, Relations: []schema.Relation{}}}
	for _, stmt := range splitStatements(sql) {
		p.statement(strings.TrimSpace(stmt))
	}
	p.resolveRelations()
	return p.out
}

type parser struct {
	out *schema.Schema
}

func (p *parser) statement(stmt string) {
	if stmt == "" {
		return
	}
	if m := createTableRe.FindStringSubmatchIndex(stmt); m != nil {
		name := unquoteIdent(stmt[m[2]:m[3]])
		body, ok := parenBody(stmt[m[1]-1:])
		if !ok {
			return
		}
		p.createTable(name, body)
		return
	}
	if m := alterTableRe.FindStringSubmatch(stmt); m != nil {
		table := unquoteIdent(m[1])
		if fk := foreignKeyRe.FindStringSubmatch(strings.TrimSpace(m[2])); fk != nil {
			p.foreignKey(table, fk)
		}
		return
	}
	// Anything else (CREATE INDEX, INSERT, SET, ...) is irrelevant here.
}

func (p *parser) createTable(name, body string) {
	table := schema.Table{ID: name, Name: name, Columns: []schema.Column{}}
	p.out.Tables = append(p.out.Tables, table)
	idx := len(p.out.Tables) - 1

	for _, item := range splitTopLevel(body) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if pk := primaryKeyRe.FindStringSubmatch(item); pk != nil {
			for _, col := range splitIdentList(pk[1]) {
				markPrimaryKey(&p.out.Tables[idx], col)
			}
			continue
		}
		if fk := foreignKeyRe.FindStringSubmatch(item); fk != nil {
			p.foreignKey(name, fk)
			continue
		}
		if isTableConstraint(item) {
			continue
		}
		p.column(idx, item)
	}
}

// column parses a single column definition into the table at idx, plus an
// inline REFERENCES clause if present.
func (p *parser) column(idx int, def string) {
	fields := strings.Fields(def)
	if len(fields) < 2 {
		return
	}

	table := &p.out.Tables[idx]
	name := unquoteIdent(fields[0])

	var typeParts []string
	rest := fields[1:]
	for len(rest) > 0 && !columnKeywords[strings.ToUpper(rest[0])] {
		typeParts = append(typeParts, rest[0])
		rest = rest[1:]
	}
	if len(typeParts) == 0 {
		return
	}

	upper := strings.ToUpper(def)
	col := schema.Column{
		ID:           table.ID + "." + name,
		Name:         name,
		Type:         strings.Join(typeParts, " "),
		IsPrimaryKey: strings.Contains(upper, "PRIMARY KEY"),
		IsNullable:   !strings.Contains(upper, "NOT NULL") && !strings.Contains(upper, "PRIMARY KEY"),
	}
	table.Columns = append(table.Columns, col)

	if ref := referencesRe.FindStringSubmatch(def); ref != nil {
		p.addRelation(schema.Relation{
			ID:            uuid.NewString(),
			SourceTableID: table.ID,
			SourceColumn:  name,
			TargetTableID: unquoteIdent(ref[1]),
			TargetColumn:  unquoteIdent(ref[2]),
			OnDelete:      normalizeAction(onDeleteRe.FindStringSubmatch(def)),
			OnUpdate:      normalizeAction(onUpdateRe.FindStringSubmatch(def)),
		})
	}
}

// foreignKey handles a table-level or ALTER TABLE foreign key clause.
// Composite keys yield one relation per column pair.
func (p *parser) foreignKey(table string, m []string) {
	constraint := unquoteIdent(m[1])
	sourceCols := splitIdentList(m[2])
	target := unquoteIdent(m[3])
	targetCols := splitIdentList(m[4])
	tail := m[5]

	for i, src := range sourceCols {
		var dst string
		if i < len(targetCols) {
			dst = targetCols[i]
		}
		id := constraint
		if id == "" {
			id = uuid.NewString()
		} else if len(sourceCols) > 1 {
			id = constraint + "." + src
		}
		p.addRelation(schema.Relation{
			ID:             id,
			SourceTableID:  table,
			SourceColumn:   src,
			TargetTableID:  target,
			TargetColumn:   dst,
			ConstraintName: constraint,
			OnDelete:       normalizeAction(onDeleteRe.FindStringSubmatch(tail)),
			OnUpdate:       normalizeAction(onUpdateRe.FindStringSubmatch(tail)),
		})
	}
}

func (p *parser) addRelation(r schema.Relation) {
	p.out.Relations = append(p.out.Relations, r)
}

// resolveRelations marks foreign-key columns once all statements are parsed,
// since ALTER TABLE constraints arrive after the CREATE TABLE they touch.
func (p *parser) resolveRelations() {
	fk := make(map[string]bool, len(p.out.Relations))
	for _, r := range p.out.Relations {
		fk[r.SourceTableID+"."+r.SourceColumn] = true
	}
	for ti := range p.out.Tables {
		t := &p.out.Tables[ti]
		for ci := range t.Columns {
			if fk[t.ID+"."+t.Columns[ci].Name] {
				t.Columns[ci].IsForeignKey = true
			}
		}
	}
}

// =============================================================================
// Lexical Helpers
// =============================================================================

// splitStatements splits on semicolons outside quotes.
func splitStatements(sql string) []string {
	var stmts []string
	var b strings.Builder
	var quote rune
	for _, r := range sql {
		switch {
		case quote != 0:
			b.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
			b.WriteRune(r)
		case r == ';':
			stmts = append(stmts, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	stmts = append(stmts, b.String())
	return stmts
}

// parenBody returns the content between the leading '(' of s and its
// matching ')'.
func parenBody(s string) (string, bool) {
	depth := 0
	start := -1
	for i, r := range s {
		switch r {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[start:i], true
			}
		}
	}
	return "", false
}

// splitTopLevel splits a CREATE TABLE body on commas outside parentheses.
func splitTopLevel(body string) []string {
	var items []string
	var b strings.Builder
	depth := 0
	for _, r := range body {
		switch {
		case r == '(':
			depth++
			b.WriteRune(r)
		case r == ')':
			depth--
			b.WriteRune(r)
		case r == ',' && depth == 0:
			items = append(items, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	items = append(items, b.String())
	return items
}

func splitIdentList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if ident := unquoteIdent(strings.TrimSpace(p)); ident != "" {
			out = append(out, ident)
		}
	}
	return out
}

// unquoteIdent strips quoting and a schema qualifier from an identifier.
func unquoteIdent(ident string) string {
	ident = strings.Trim(strings.TrimSpace(ident), "\"`")
	if i := strings.LastIndex(ident, "."); i >= 0 {
		ident = ident[i+1:]
	}
	return strings.Trim(ident, "\"`")
}

func isTableConstraint(item string) bool {
	upper := strings.ToUpper(item)
	for _, prefix := range []string{"CONSTRAINT", "UNIQUE", "CHECK", "INDEX", "KEY ", "EXCLUDE"} {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

func markPrimaryKey(t *schema.Table, col string) {
	for i := range t.Columns {
		if t.Columns[i].Name == col {
			t.Columns[i].IsPrimaryKey = true
			t.Columns[i].IsNullable = false
			return
		}
	}
}

func normalizeAction(m []string) string {
	if len(m) < 2 {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToUpper(m[1])), " ")
}
