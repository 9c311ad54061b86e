// Package tui is the terminal front end of the dashboard.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyoez/statusboard/sheet"
	"github.com/moyoez/statusboard/tool"
	"github.com/moyoez/statusboard/types"
	"github.com/moyoez/statusboard/view"
)

const (
	maxColWidth = 20
	tableHeight = 10
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("#293241")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

type keyMap struct {
	Toggle key.Binding
	Open   key.Binding
	Reload key.Binding
	Quit   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "show/hide table")),
	Open:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open file")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// loadedMsg carries the result of reading a spreadsheet from disk.
type loadedMsg struct {
	path string
	grid types.Grid
	err  error
}

type model struct {
	view      *view.View
	bars      *Bars
	state     view.State
	table     table.Model
	input     textinput.Model
	prompting bool
	path      string
	status    string
	err       error
}

func newModel(path string) model {
	bars := &Bars{}
	ti := textinput.New()
	ti.Placeholder = "path/to/jobs.xlsx"
	ti.CharLimit = 4096
	ti.Width = 50

	v := view.New(sheet.Decode, bars, 0)
	return model{
		view:  v,
		bars:  bars,
		state: v.Snapshot(),
		table: table.New(table.WithHeight(tableHeight)),
		input: ti,
		path:  path,
	}
}

// Run opens the terminal dashboard, loading path first when it is not empty.
func Run(path string) error {
	p := tea.NewProgram(newModel(path), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		grid, err := sheet.Open(path)
		return loadedMsg{path: path, grid: grid, err: err}
	}
}

func (m model) Init() tea.Cmd {
	if m.path == "" {
		return nil
	}
	return loadCmd(m.path)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			tool.DefaultLogger.Debugf("[TUI] %s: %v", msg.path, msg.err)
			m.err = msg.err
			return m, nil
		}
		state, redrawn := m.view.Apply(filepath.Base(msg.path), msg.grid)
		m.path = msg.path
		m.err = nil
		if redrawn {
			m.status = "chart updated"
		} else {
			m.status = "counts unchanged"
		}
		m.setState(state)
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Toggle):
			m.setState(m.view.Toggle())
			return m, nil
		case key.Matches(msg, keys.Open):
			m.prompting = true
			m.input.SetValue(m.path)
			m.input.Focus()
			return m, textinput.Blink
		case key.Matches(msg, keys.Reload):
			if m.path == "" {
				return m, nil
			}
			return m, loadCmd(m.path)
		}
		if m.state.ShowTable() {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.prompting = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, keys.Submit):
		m.prompting = false
		m.input.Blur()
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			return m, nil
		}
		return m, loadCmd(path)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// setState stores the new state and rebuilds the table when it is shown.
func (m *model) setState(state view.State) {
	m.state = state
	if !state.ShowTable() {
		m.table.Blur()
		return
	}
	cols, rows := tableData(state.Header(), state.Body())
	// rows must be replaced before columns: the table indexes rows by column
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.Focus()
}

// tableData squares ragged rows to one column set; short rows pad with empty cells.
func tableData(header []string, body [][]string) ([]table.Column, []table.Row) {
	width := len(header)
	for _, row := range body {
		width = max(width, len(row))
	}
	cols := make([]table.Column, width)
	for i := range cols {
		title := ""
		if i < len(header) {
			title = header[i]
		}
		cols[i] = table.Column{Title: title, Width: min(max(len(title), 1), maxColWidth)}
	}
	rows := make([]table.Row, len(body))
	for r, row := range body {
		cells := make(table.Row, width)
		copy(cells, row)
		for i, cell := range cells {
			cols[i].Width = min(max(cols[i].Width, len(cell)), maxColWidth)
		}
		rows[r] = cells
	}
	return cols, rows
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Job Status Dashboard"))
	b.WriteString("\n\n")

	if m.state.FileName() != "" {
		b.WriteString(labelStyle.Render(m.state.FileName()))
		b.WriteString("\n\n")
	}
	if m.state.Loaded() {
		c := m.state.Counts()
		fmt.Fprintf(&b, "%s %s %d   %s %d\n\n",
			labelStyle.Render("Status Summary:"),
			labelStyle.Render("SUCCESS:"), c.Success,
			labelStyle.Render("FAILED:"), c.Failed)
	}

	b.WriteString(m.bars.View())
	b.WriteString("\n\n")

	if m.state.ShowTable() {
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
	}

	if m.prompting {
		b.WriteString("Open: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter load • esc cancel"))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	toggleHelp := "show table"
	if m.state.Visible() {
		toggleHelp = "hide table"
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("t %s • o open • r reload • q quit", toggleHelp)))
	return b.String()
}
