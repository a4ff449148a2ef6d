package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mhartmann/schemap/pkg/schema"
)

func pickerTables() []schema.Table {
	return []schema.Table{
		{ID: "users", Name: "users", Columns: []schema.Column{
			{ID: "users.id", Name: "id", IsPrimaryKey: true},
		}},
		{ID: "posts", Name: "posts"},
		{ID: "comments", Name: "comments"},
	}
}

func keyPress(k string) tea.KeyMsg {
	if k == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if k == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if k == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestTableListModel_StartsFullySelected(t *testing.T) {
	m := NewTableListModel(pickerTables())

	names := m.SelectedNames()
	if len(names) != 3 {
		t.Errorf("selected %d tables initially, want 3", len(names))
	}
}

func TestTableListModel_ToggleAndConfirm(t *testing.T) {
	m := NewTableListModel(pickerTables())

	// Move to posts and deselect it.
	next, _ := m.Update(keyPress("j"))
	m = next.(TableListModel)
	next, _ = m.Update(keyPress(" "))
	m = next.(TableListModel)
	next, _ = m.Update(keyPress("enter"))
	m = next.(TableListModel)

	if !m.Accepted {
		t.Error("enter should accept the selection")
	}
	names := m.SelectedNames()
	if names["posts"] {
		t.Error("posts should be deselected")
	}
	if !names["users"] || !names["comments"] {
		t.Error("users and comments should remain selected")
	}
}

func TestTableListModel_SelectAllToggle(t *testing.T) {
	m := NewTableListModel(pickerTables())

	// All selected, so "a" deselects everything.
	next, _ := m.Update(keyPress("a"))
	m = next.(TableListModel)
	if len(m.SelectedNames()) != 0 {
		t.Error("a should deselect all when everything is selected")
	}

	next, _ = m.Update(keyPress("a"))
	m = next.(TableListModel)
	if len(m.SelectedNames()) != 3 {
		t.Error("a should reselect all when nothing is selected")
	}
}

func TestTableListModel_Abort(t *testing.T) {
	m := NewTableListModel(pickerTables())

	next, _ := m.Update(keyPress("esc"))
	m = next.(TableListModel)
	if !m.Aborted {
		t.Error("esc should abort")
	}
}

func TestTableListModel_ViewShowsTables(t *testing.T) {
	m := NewTableListModel(pickerTables())

	view := m.View()
	for _, name := range []string{"users", "posts", "comments"} {
		if !strings.Contains(view, name) {
			t.Errorf("view missing table %q", name)
		}
	}
	if !strings.Contains(view, "3 selected") {
		t.Error("view missing selection count")
	}
}

func TestFilterSchema(t *testing.T) {
	s := &schema.Schema{
		Tables: pickerTables(),
		Relations: []schema.Relation{
			{ID: "r1", SourceTableID: "posts", TargetTableID: "users"},
			{ID: "r2", SourceTableID: "comments", TargetTableID: "posts"},
		},
	}

	out := filterSchema(s, map[string]bool{"users": true, "posts": true})
	if len(out.Tables) != 2 {
		t.Fatalf("kept %d tables, want 2", len(out.Tables))
	}
	if len(out.Relations) != 1 || out.Relations[0].ID != "r1" {
		t.Errorf("relations = %+v, want only r1", out.Relations)
	}
}
