package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mhartmann/schemap/pkg/schema"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// TableListModel - Interactive table selection
// =============================================================================

// TableListModel is the bubbletea model for picking which tables to keep
// after introspection. All tables start selected.
type TableListModel struct {
	Tables   []schema.Table
	Cursor   int
	Checked  []bool
	Aborted  bool
	Accepted bool
	Height   int
	Offset   int
}

// NewTableListModel creates a table list model with every table selected.
func NewTableListModel(tables []schema.Table) TableListModel {
	checked := make([]bool, len(tables))
	for i := range checked {
		checked[i] = true
	}
	return TableListModel{
		Tables:  tables,
		Checked: checked,
		Height:  15,
	}
}

// SelectedNames returns the names of the checked tables.
func (m TableListModel) SelectedNames() map[string]bool {
	names := make(map[string]bool)
	for i, t := range m.Tables {
		if m.Checked[i] {
			names[t.Name] = true
		}
	}
	return names
}

func (m TableListModel) Init() tea.Cmd {
	return nil
}

func (m TableListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Tables)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			if len(m.Checked) > 0 {
				m.Checked[m.Cursor] = !m.Checked[m.Cursor]
			}
		case "a":
			all := true
			for _, c := range m.Checked {
				if !c {
					all = false
					break
				}
			}
			for i := range m.Checked {
				m.Checked[i] = !all
			}
		case "enter":
			m.Accepted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TableListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Tables"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle  a all/none  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Tables) {
		end = len(m.Tables)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := m.Tables[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		check := " "
		if m.Checked[i] {
			check = "✓"
		}

		pk := "—"
		for _, col := range t.Columns {
			if col.IsPrimaryKey {
				pk = col.Name
				break
			}
		}

		rows = append(rows, []string{cursor, check, t.Name, fmt.Sprintf("%d", len(t.Columns)), pk})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Table", "Columns", "Primary Key").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Tables) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor
			isChecked := m.Checked[actualIdx]

			base := lipgloss.NewStyle()
			if isCurrent {
				if isChecked {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorDim).Bold(true)
			}
			if isChecked {
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")

	selected := 0
	for _, c := range m.Checked {
		if c {
			selected++
		}
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", m.Cursor+1, len(m.Tables), selected)))

	return b.String()
}
