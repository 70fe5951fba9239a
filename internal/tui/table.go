package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/pressgen/pkg/api"
)

func recordRows(recs []api.Record) []table.Row {
	rows := make([]table.Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, table.Row{
			shortID(r.ID),
			r.Kind,
			string(r.Source),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(r.Generated.Title, 40),
		})
	}
	return rows
}

func newTable(recs []api.Record) table.Model {
	cols := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Kind", Width: 8},
		{Title: "Source", Width: 9},
		{Title: "Created", Width: 16},
		{Title: "Title", Width: 40},
	}
	rows := recordRows(recs)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(15, max(3, len(rows)+1))),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// BrowseModel lists records and reports the one picked with enter.
type BrowseModel struct {
	table  table.Model
	recs   []api.Record
	picked string
}

func NewBrowse(recs []api.Record) *BrowseModel {
	return &BrowseModel{table: newTable(recs), recs: recs}
}

// Picked is the ID chosen with enter, or "" when the user quit.
func (m *BrowseModel) Picked() string { return m.picked }

func (m *BrowseModel) Init() tea.Cmd { return nil }

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if i := m.table.Cursor(); i >= 0 && i < len(m.recs) {
				m.picked = m.recs[i].ID
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *BrowseModel) View() string {
	if len(m.recs) == 0 {
		return "(no releases)\n"
	}
	return m.table.View() + "\n↑/↓ to navigate • enter to open • q to exit\n"
}

// Browse opens the history table and returns the picked record ID.
func Browse(recs []api.Record) (string, error) {
	final, err := tea.NewProgram(NewBrowse(recs)).Run()
	if err != nil {
		return "", err
	}
	return final.(*BrowseModel).Picked(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
