package console

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/franvera/fandb/internal/tui/theme"
)

// ExportRequestMsg asks the app to export the current run log to a file.
type ExportRequestMsg struct{}

// StatusNotifyMsg tells the app to show a message in the status bar.
type StatusNotifyMsg struct {
	Message string
}

// Model is the output console: a scrolling text area receiving the formatted
// result blocks streamed from a run, plus row-count and timing telemetry.
type Model struct {
	lines     []string
	rowCount  string
	execTime  string
	scrollY   int
	width     int
	height    int
	focused   bool
	running   bool
	canExport bool
}

// New creates a new console model.
func New() Model {
	return Model{}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused sets the focus state.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// SetRunning toggles the executing indicator.
func (m *Model) SetRunning(r bool) {
	m.running = r
}

// SetExportable enables the export action once a run log exists.
func (m *Model) SetExportable(ok bool) {
	m.canExport = ok
}

// Append adds a block of output and scrolls to the bottom.
func (m *Model) Append(text string) {
	m.lines = append(m.lines, strings.Split(strings.TrimRight(text, "\n"), "\n")...)
	m.scrollToBottom()
}

// SetRowCount sets the row-count telemetry label.
func (m *Model) SetRowCount(text string) {
	m.rowCount = text
}

// SetExecTime sets the timing telemetry label.
func (m *Model) SetExecTime(text string) {
	m.execTime = text
}

// Clear empties the console and telemetry labels.
func (m *Model) Clear() {
	m.lines = nil
	m.rowCount = ""
	m.execTime = ""
	m.scrollY = 0
	m.canExport = false
}

// Text returns the raw console content.
func (m Model) Text() string {
	return strings.Join(m.lines, "\n")
}

func (m *Model) visibleRows() int {
	v := m.height - 2 // title line + padding
	if v < 1 {
		v = 1
	}
	return v
}

func (m *Model) scrollToBottom() {
	maxScroll := len(m.lines) - m.visibleRows()
	if maxScroll < 0 {
		maxScroll = 0
	}
	m.scrollY = maxScroll
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the console.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.scrollY > 0 {
				m.scrollY--
			}
		case "down", "j":
			if m.scrollY < len(m.lines)-1 {
				m.scrollY++
			}
		case "pgup":
			m.scrollY -= m.visibleRows()
			if m.scrollY < 0 {
				m.scrollY = 0
			}
		case "pgdown":
			m.scrollY += m.visibleRows()
			if max := len(m.lines) - 1; m.scrollY > max {
				m.scrollY = max
			}
			if m.scrollY < 0 {
				m.scrollY = 0
			}
		case "g":
			m.scrollY = 0
		case "G":
			m.scrollToBottom()
		case "y":
			return m, m.copyCmd()
		case "e":
			if m.canExport {
				return m, func() tea.Msg { return ExportRequestMsg{} }
			}
		case "ctrl+x":
			m.Clear()
			return m, func() tea.Msg {
				return StatusNotifyMsg{Message: "Results cleared"}
			}
		}
	}

	return m, nil
}

func (m Model) copyCmd() tea.Cmd {
	text := m.Text()
	if text == "" {
		return func() tea.Msg {
			return StatusNotifyMsg{Message: "Nothing to copy"}
		}
	}
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return StatusNotifyMsg{Message: "Copy failed: " + err.Error()}
		}
		return StatusNotifyMsg{Message: "Copied results to clipboard"}
	}
}

// View renders the console.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	header := titleStyle.Render("Results")
	var telemetry []string
	if m.rowCount != "" {
		telemetry = append(telemetry, m.rowCount)
	}
	if m.execTime != "" {
		telemetry = append(telemetry, m.execTime)
	}
	if len(telemetry) > 0 {
		header += "  " + theme.StyleMuted.Render(strings.Join(telemetry, " | "))
	}

	if m.running && len(m.lines) == 0 {
		return header + "\n" + theme.StyleMuted.Render("  Executing query...")
	}

	if len(m.lines) == 0 {
		return header + "\n" + theme.StyleMuted.Render("  Execute a query to see results")
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	visible := m.visibleRows()
	end := m.scrollY + visible
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for i := m.scrollY; i < end; i++ {
		line := m.lines[i]
		if m.width > 2 && lipgloss.Width(line) > m.width-2 {
			line = lipgloss.NewStyle().MaxWidth(m.width - 2).Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	var footer string
	if end < len(m.lines) {
		footer = "\n" + theme.StyleMuted.Render(
			fmt.Sprintf("  ... %d more line(s)", len(m.lines)-end))
	}

	return b.String() + footer
}
