// Package tui holds the interactive terminal views: the release form and the
// history browser.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/pressgen/internal/release"
)

// ErrCanceled is returned when the user leaves the form without submitting.
var ErrCanceled = errors.New("form canceled")

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	requireStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// input wraps the two bubbles used for single and multi-line fields.
type input struct {
	field release.Field
	line  textinput.Model
	area  textarea.Model
}

func (in *input) value() string {
	if in.field.Multiline {
		return in.area.Value()
	}
	return in.line.Value()
}

func (in *input) focus() tea.Cmd {
	if in.field.Multiline {
		return in.area.Focus()
	}
	return in.line.Focus()
}

func (in *input) blur() {
	if in.field.Multiline {
		in.area.Blur()
		return
	}
	in.line.Blur()
}

func (in *input) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if in.field.Multiline {
		in.area, cmd = in.area.Update(msg)
	} else {
		in.line, cmd = in.line.Update(msg)
	}
	return cmd
}

func (in *input) view() string {
	if in.field.Multiline {
		return in.area.View()
	}
	return in.line.View()
}

// FormModel is the Bubble Tea model behind Run.
type FormModel struct {
	kind     release.Kind
	inputs   []*input
	focus    int
	problem  string
	result   release.Release
	canceled bool
	width    int
}

// NewForm builds a form for kind k prefilled with values keyed by field name.
func NewForm(k release.Kind, values map[string]string) (*FormModel, error) {
	blank, err := release.Empty(k)
	if err != nil {
		return nil, err
	}
	m := &FormModel{kind: k, width: 72}
	for _, f := range blank.Fields() {
		in := &input{field: f}
		if f.Multiline {
			in.area = textarea.New()
			in.area.Placeholder = f.Placeholder
			in.area.ShowLineNumbers = false
			in.area.SetWidth(m.width)
			in.area.SetHeight(4)
			in.area.CharLimit = 0
			in.area.SetValue(values[f.Name])
		} else {
			in.line = textinput.New()
			in.line.Placeholder = firstLine(f.Placeholder)
			in.line.Width = m.width
			in.line.CharLimit = 0
			in.line.SetValue(values[f.Name])
		}
		m.inputs = append(m.inputs, in)
	}
	if len(m.inputs) > 0 {
		m.inputs[0].focus()
	}
	return m, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Values returns the current entries keyed by field name.
func (m *FormModel) Values() map[string]string {
	out := make(map[string]string, len(m.inputs))
	for _, in := range m.inputs {
		out[in.field.Name] = in.value()
	}
	return out
}

// Result is the validated release after a successful submit.
func (m *FormModel) Result() release.Release { return m.result }

// Problem is the last validation message, if any.
func (m *FormModel) Problem() string { return m.problem }

func (m *FormModel) Init() tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	return m.inputs[0].focus()
}

func (m *FormModel) move(delta int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.inputs[m.focus].blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].focus()
}

func (m *FormModel) submit() tea.Cmd {
	rel, err := release.FromValues(m.kind, m.Values())
	if err != nil {
		m.problem = err.Error()
		var verr *release.ValidationError
		if errors.As(err, &verr) && len(verr.Missing) > 0 {
			for i, in := range m.inputs {
				if in.field.Key == verr.Missing[0] {
					m.inputs[m.focus].blur()
					m.focus = i
					return m.inputs[i].focus()
				}
			}
		}
		return nil
	}
	m.problem = ""
	m.result = rel
	return tea.Quit
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(20, msg.Width-4)
		for _, in := range m.inputs {
			if in.field.Multiline {
				in.area.SetWidth(m.width)
			} else {
				in.line.Width = m.width
			}
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		case "ctrl+s":
			return m, m.submit()
		case "tab", "down":
			if msg.String() == "down" && m.inputs[m.focus].field.Multiline {
				break
			}
			return m, m.move(1)
		case "shift+tab", "up":
			if msg.String() == "up" && m.inputs[m.focus].field.Multiline {
				break
			}
			return m, m.move(-1)
		case "enter":
			if !m.inputs[m.focus].field.Multiline {
				if m.focus == len(m.inputs)-1 {
					return m, m.submit()
				}
				return m, m.move(1)
			}
		}
	}
	if len(m.inputs) == 0 {
		return m, nil
	}
	return m, m.inputs[m.focus].update(msg)
}

func (m *FormModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.kind.Label()))
	b.WriteString("\n")
	for i, in := range m.inputs {
		label := labelStyle.Render(in.field.Display)
		if i == m.focus {
			label = focusStyle.Render("› " + in.field.Display)
		}
		b.WriteString(label)
		if in.field.Required {
			b.WriteString(requireStyle.Render(" *"))
		}
		b.WriteString("\n")
		b.WriteString(in.view())
		b.WriteString("\n\n")
	}
	if m.problem != "" {
		b.WriteString(errorStyle.Render(m.problem))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab/shift+tab: move • ctrl+s: generate • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Run opens the form for kind k and returns the validated release.
func Run(k release.Kind, values map[string]string) (release.Release, error) {
	m, err := NewForm(k, values)
	if err != nil {
		return nil, err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	fm := final.(*FormModel)
	if fm.canceled || fm.result == nil {
		return nil, ErrCanceled
	}
	return fm.result, nil
}
