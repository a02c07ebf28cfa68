package statusbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/franvera/fandb/internal/tui/theme"
)

// Model is the status bar component.
type Model struct {
	width      int
	connected  bool
	serverInfo string
	activePane string
	message    string
	running    bool
}

// New creates a new status bar model.
func New() Model {
	return Model{
		activePane: "browser",
	}
}

// SetWidth updates the component width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetConnected updates the connection status display. info is the
// user@host:port summary.
func (m *Model) SetConnected(connected bool, info string) {
	m.connected = connected
	m.serverInfo = info
}

// SetActivePane updates the displayed active pane name.
func (m *Model) SetActivePane(pane string) {
	m.activePane = pane
}

// SetMessage sets a transient status message.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// SetRunning toggles the query-in-flight indicator.
func (m *Model) SetRunning(running bool) {
	m.running = running
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages (status bar has no interactive behavior).
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	style := theme.StyleStatusBar.Width(m.width)

	var connIndicator string
	if m.connected {
		connIndicator = lipgloss.NewStyle().
			Foreground(theme.ColorSuccess).
			Render("●") + " " + m.serverInfo
	} else {
		connIndicator = lipgloss.NewStyle().
			Foreground(theme.ColorError).
			Render("●") + " disconnected"
	}
	if m.running {
		connIndicator += "  " + theme.StyleWarning.Render("running")
	}
	if m.connected && m.activePane != "" {
		connIndicator += "  " + theme.StyleMuted.Render("["+m.activePane+"]")
	}

	hints := "Ctrl+E: Execute │ Tab: Switch pane │ F2: History │ ?: Help │ q: Quit"

	right := hints
	if m.message != "" {
		right = m.message
	}

	leftLen := lipgloss.Width(connIndicator)
	rightLen := lipgloss.Width(right)
	padding := m.width - leftLen - rightLen - 4
	if padding < 1 {
		padding = 1
	}

	return style.Render(connIndicator + strings.Repeat(" ", padding) + right)
}
