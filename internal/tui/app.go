package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/franvera/fandb/internal/app"
	"github.com/franvera/fandb/internal/config"
	"github.com/franvera/fandb/internal/database"
	"github.com/franvera/fandb/internal/exec"
	"github.com/franvera/fandb/internal/history"
	"github.com/franvera/fandb/internal/tui/browser"
	"github.com/franvera/fandb/internal/tui/console"
	"github.com/franvera/fandb/internal/tui/editor"
	"github.com/franvera/fandb/internal/tui/statusbar"
	"github.com/franvera/fandb/internal/tui/theme"
)

// Pane identifies a focusable area.
type Pane int

const (
	PaneBrowser Pane = iota
	PaneEditor
	PaneConsole
)

func (p Pane) String() string {
	switch p {
	case PaneBrowser:
		return "browser"
	case PaneEditor:
		return "editor"
	case PaneConsole:
		return "console"
	default:
		return "unknown"
	}
}

// AppMode tracks the current UI state.
type AppMode int

const (
	ModeConnect AppMode = iota // connection form
	ModeMain                   // main TUI
)

// Overlay tracks a modal layered over the main view.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayConfirm     // destructive-query confirmation
	OverlayHistory     // recent queries
)

// Connection form fields, in focus order.
const (
	fieldHost = iota
	fieldPort
	fieldUser
	fieldPassword
	fieldCount
)

// Custom messages for async operations.
type (
	connectedMsg struct {
		server config.Server
		target database.Target
		err    error
	}
	loginSavedMsg struct {
		err error
	}
	databasesLoadedMsg struct {
		databases []string
		err       error
	}
	tablesLoadedMsg struct {
		database string
		tables   []database.Table
		err      error
	}
	runStartedMsg struct {
		events <-chan exec.Event
		err    error
	}
	engineEventMsg struct {
		event  exec.Event
		events <-chan exec.Event
	}
	logExportedMsg struct {
		path string
		err  error
	}
)

// Model is the top-level bubbletea model orchestrating all components.
type Model struct {
	service   *app.Service
	cfg       *config.Config
	browser   browser.Model
	editor    editor.Model
	console   console.Model
	statusbar statusbar.Model

	inputs     [fieldCount]textinput.Model
	focusField int

	activePane Pane
	mode       AppMode
	overlay    Overlay
	width      int
	height     int
	err        error
	showHelp   bool

	// Pending destructive run awaiting confirmation.
	pendingQuery string
	pendingDBs   []string

	// Log of the last completed run, nil until one finishes.
	currentLog *exec.RunLog

	histCursor int
}

// NewModel creates the top-level model. The connection form is pre-filled
// from the last-login cache and the OS keyring.
func NewModel(service *app.Service, cfg *config.Config) Model {
	m := Model{
		service:    service,
		cfg:        cfg,
		browser:    browser.New(),
		editor:     editor.New(),
		console:    console.New(),
		statusbar:  statusbar.New(),
		activePane: PaneBrowser,
		mode:       ModeConnect,
	}

	labels := [fieldCount]string{"localhost", "5432", "postgres", ""}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 200
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.inputs[fieldPassword].EchoCharacter = '•'

	if last := cfg.LastLogin(); last != nil {
		m.inputs[fieldHost].SetValue(last.Host)
		if last.Port > 0 {
			m.inputs[fieldPort].SetValue(strconv.Itoa(last.Port))
		}
		m.inputs[fieldUser].SetValue(last.Username)
		if password, err := config.LoadPassword(*last); err == nil && password != "" {
			m.inputs[fieldPassword].SetValue(password)
		}
	}
	m.inputs[fieldHost].Focus()

	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if db, ok := browser.IsRequestTablesMsg(msg); ok {
		return m, m.loadTablesCmd(db)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch m.overlay {
		case OverlayConfirm:
			return m.updateConfirm(msg)
		case OverlayHistory:
			return m.updateHistory(msg)
		}

		switch m.mode {
		case ModeConnect:
			return m.updateConnect(msg)
		case ModeMain:
			return m.updateMain(msg)
		}

	case connectedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.statusbar.SetMessage("Connection failed")
			m.setFormEnabled(true)
			return m, nil
		}
		m.err = nil
		m.mode = ModeMain
		m.browser.SetLoading(true)
		m.statusbar.SetConnected(true, msg.target.Username+"@"+msg.target.Addr())
		m.statusbar.SetMessage("Connected successfully")
		m.setFocus(PaneBrowser)
		m.layout()
		return m, tea.Batch(
			m.loadDatabasesCmd(),
			m.saveLoginCmd(msg.server, msg.target.Password),
		)

	case loginSavedMsg:
		if msg.err != nil {
			m.statusbar.SetMessage("Warning: could not save login")
		}
		return m, nil

	case databasesLoadedMsg:
		if msg.err != nil {
			m.browser.SetLoading(false)
			m.statusbar.SetMessage("Error loading databases: " + msg.err.Error())
			return m, nil
		}
		m.browser.SetDatabases(msg.databases)
		m.statusbar.SetMessage(fmt.Sprintf("%d database(s) available", len(msg.databases)))
		return m, nil

	case tablesLoadedMsg:
		if msg.err != nil {
			m.statusbar.SetMessage("Error loading tables from " + msg.database)
			return m, nil
		}
		m.browser.SetTables(msg.database, msg.tables)
		m.editor.SetTableNames(m.browser.TableNames())
		m.statusbar.SetMessage(fmt.Sprintf("Loaded %d tables/views from %s", len(msg.tables), msg.database))
		return m, nil

	case browser.SelectionChangedMsg:
		m.statusbar.SetMessage(fmt.Sprintf("%d database(s) selected", msg.Count))
		return m, nil

	case editor.ExecuteQueryMsg:
		return m.handleExecuteRequest(msg.Query)

	case runStartedMsg:
		if msg.err != nil {
			m.console.SetRunning(false)
			m.statusbar.SetRunning(false)
			m.statusbar.SetMessage(msg.err.Error())
			return m, nil
		}
		return m, listenCmd(msg.events)

	case engineEventMsg:
		return m.handleEngineEvent(msg)

	case console.ExportRequestMsg:
		if m.currentLog == nil {
			m.statusbar.SetMessage("No query results to save")
			return m, nil
		}
		return m, m.exportLogCmd(m.currentLog)

	case console.StatusNotifyMsg:
		m.statusbar.SetMessage(msg.Message)
		return m, nil

	case logExportedMsg:
		if msg.err != nil {
			m.statusbar.SetMessage("Export failed: " + msg.err.Error())
		} else {
			m.statusbar.SetMessage("Log saved to " + msg.path)
		}
		return m, nil
	}

	if m.mode == ModeMain {
		return m.updateComponents(msg)
	}
	return m, nil
}

// --- Connect form ---

func (m Model) updateConnect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.cycleField(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleField(-1)
		return m, nil
	case "enter":
		return m.submitConnect()
	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.inputs[m.focusField], cmd = m.inputs[m.focusField].Update(msg)
	return m, cmd
}

func (m *Model) cycleField(dir int) {
	m.inputs[m.focusField].Blur()
	m.focusField = (m.focusField + dir + fieldCount) % fieldCount
	m.inputs[m.focusField].Focus()
}

func (m Model) submitConnect() (tea.Model, tea.Cmd) {
	host := strings.TrimSpace(m.inputs[fieldHost].Value())
	user := strings.TrimSpace(m.inputs[fieldUser].Value())
	if host == "" {
		m.err = fmt.Errorf("server is required")
		return m, nil
	}
	if user == "" {
		m.err = fmt.Errorf("username is required")
		return m, nil
	}

	port := 5432
	if v := strings.TrimSpace(m.inputs[fieldPort].Value()); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 {
			m.err = fmt.Errorf("invalid port: %s", v)
			return m, nil
		}
		port = p
	}

	server := config.Server{
		Host:     host,
		Port:     port,
		Username: user,
	}
	target := server.Target(m.inputs[fieldPassword].Value())

	m.err = nil
	m.setFormEnabled(false)
	m.statusbar.SetMessage("Connecting...")
	return m, m.connectCmd(server, target)
}

func (m *Model) setFormEnabled(enabled bool) {
	if enabled {
		m.inputs[m.focusField].Focus()
	} else {
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
	}
}

// --- Main mode ---

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if m.activePane != PaneEditor {
			return m, tea.Quit
		}
	case "?":
		if m.activePane != PaneEditor {
			m.showHelp = true
			return m, nil
		}
	case "f2":
		m.overlay = OverlayHistory
		m.histCursor = 0
		return m, nil
	case "ctrl+d":
		return m.disconnect()
	case "tab":
		if m.activePane == PaneEditor {
			var completed bool
			if m.editor, completed = m.editor.Complete(); completed {
				return m, nil
			}
		}
		m.cyclePane()
		return m, nil
	case "shift+tab":
		m.cyclePaneBack()
		return m, nil
	}

	return m.updateComponents(msg)
}

func (m Model) disconnect() (tea.Model, tea.Cmd) {
	if m.service.Running() {
		m.statusbar.SetMessage("Cannot disconnect while a query is running")
		return m, nil
	}
	m.service.Disconnect()
	m.mode = ModeConnect
	m.overlay = OverlayNone
	m.currentLog = nil
	m.browser = browser.New()
	m.console.Clear()
	m.statusbar.SetConnected(false, "")
	m.statusbar.SetMessage("")
	m.setFormEnabled(true)
	return m, textinput.Blink
}

func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.activePane {
	case PaneBrowser:
		m.browser, cmd = m.browser.Update(msg)
	case PaneEditor:
		m.editor, cmd = m.editor.Update(msg)
	case PaneConsole:
		m.console, cmd = m.console.Update(msg)
	}

	return m, cmd
}

func (m *Model) cyclePane() {
	switch m.activePane {
	case PaneBrowser:
		m.setFocus(PaneEditor)
	case PaneEditor:
		m.setFocus(PaneConsole)
	case PaneConsole:
		m.setFocus(PaneBrowser)
	}
}

func (m *Model) cyclePaneBack() {
	switch m.activePane {
	case PaneBrowser:
		m.setFocus(PaneConsole)
	case PaneEditor:
		m.setFocus(PaneBrowser)
	case PaneConsole:
		m.setFocus(PaneEditor)
	}
}

func (m *Model) setFocus(pane Pane) {
	m.activePane = pane
	m.browser.SetFocused(pane == PaneBrowser)
	m.editor.SetFocused(pane == PaneEditor)
	m.console.SetFocused(pane == PaneConsole)
	m.statusbar.SetActivePane(pane.String())
}

// --- Query execution ---

func (m Model) handleExecuteRequest(query string) (tea.Model, tea.Cmd) {
	if m.service.Running() {
		m.statusbar.SetMessage("Query already running")
		return m, nil
	}

	selected := m.browser.Selected()
	if len(selected) == 0 {
		m.statusbar.SetMessage("Select at least one database")
		return m, nil
	}

	destructive, err := m.service.CheckQuery(query)
	if err != nil {
		m.statusbar.SetMessage(err.Error())
		return m, nil
	}

	if destructive {
		m.overlay = OverlayConfirm
		m.pendingQuery = query
		m.pendingDBs = selected
		return m, nil
	}

	return m.startRun(query, selected)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.overlay = OverlayNone
		query, dbs := m.pendingQuery, m.pendingDBs
		m.pendingQuery, m.pendingDBs = "", nil
		return m.startRun(query, dbs)
	case "n", "N", "esc":
		m.overlay = OverlayNone
		m.pendingQuery, m.pendingDBs = "", nil
		m.statusbar.SetMessage("Query cancelled")
		return m, nil
	}
	return m, nil
}

func (m Model) startRun(query string, databases []string) (tea.Model, tea.Cmd) {
	m.console.Clear()
	m.console.SetRunning(true)
	m.currentLog = nil
	m.statusbar.SetRunning(true)
	m.statusbar.SetMessage("Executing query...")

	service := m.service
	return m, func() tea.Msg {
		events, err := service.Run(context.Background(), query, databases)
		return runStartedMsg{events: events, err: err}
	}
}

func listenCmd(events <-chan exec.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return engineEventMsg{event: event, events: events}
	}
}

func (m Model) handleEngineEvent(msg engineEventMsg) (tea.Model, tea.Cmd) {
	switch event := msg.event.(type) {
	case exec.StatusEvent:
		m.statusbar.SetMessage(event.Text)

	case exec.ResultEvent:
		m.console.Append(event.Text)

	case exec.RowCountEvent:
		m.console.SetRowCount(fmt.Sprintf("%d rows from Query %d", event.Rows, event.Statement))

	case exec.SummaryEvent:
		m.console.SetExecTime(fmt.Sprintf("Execution time: %.2fs", event.Elapsed.Seconds()))
		m.statusbar.SetMessage(fmt.Sprintf("Done. Total rows: %d", event.TotalRows))

	case exec.DoneEvent:
		m.currentLog = event.Log
		m.console.SetRunning(false)
		m.console.SetExportable(true)
		m.statusbar.SetRunning(false)
		m.service.RunFinished()
		return m, nil
	}

	return m, listenCmd(msg.events)
}

// --- History overlay ---

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.service.History()

	switch msg.String() {
	case "up", "k":
		if m.histCursor > 0 {
			m.histCursor--
		}
	case "down", "j":
		if m.histCursor < len(entries)-1 {
			m.histCursor++
		}
	case "enter":
		if len(entries) > 0 {
			// Cursor counts from the newest entry.
			entry := entries[len(entries)-1-m.histCursor]
			m.editor.SetQuery(entry.Query)
			m.overlay = OverlayNone
			m.setFocus(PaneEditor)
		}
	case "esc", "f2", "q":
		m.overlay = OverlayNone
	}

	return m, nil
}

// --- Async commands ---

func (m Model) connectCmd(server config.Server, target database.Target) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := service.Connect(ctx, target)
		return connectedMsg{server: server, target: target, err: err}
	}
}

func (m Model) saveLoginCmd(server config.Server, password string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		if err := config.SaveLastLogin(cfg, server); err != nil {
			return loginSavedMsg{err: err}
		}
		if password != "" {
			// Best effort: systems without a keyring still work.
			_ = config.SavePassword(server, password)
		}
		return loginSavedMsg{}
	}
}

func (m Model) loadDatabasesCmd() tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		databases, err := service.LoadDatabases(ctx)
		return databasesLoadedMsg{databases: databases, err: err}
	}
}

func (m Model) loadTablesCmd(db string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		tables, err := service.LoadTables(ctx, db)
		return tablesLoadedMsg{database: db, tables: tables, err: err}
	}
}

func (m Model) exportLogCmd(log *exec.RunLog) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		path := app.DefaultLogFilename(time.Now())
		err := service.ExportLog(log, path)
		return logExportedMsg{path: path, err: err}
	}
}

// --- Layout ---

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	statusHeight := 1
	availHeight := m.height - statusHeight

	browserWidth := m.width / 4
	if browserWidth < 24 {
		browserWidth = 24
	}
	if browserWidth > 38 {
		browserWidth = 38
	}

	rightWidth := m.width - browserWidth - 1

	editorHeight := availHeight * 35 / 100
	if editorHeight < 5 {
		editorHeight = 5
	}
	consoleHeight := availHeight - editorHeight - 1

	m.browser.SetSize(browserWidth, availHeight)
	m.editor.SetSize(rightWidth, editorHeight)
	m.console.SetSize(rightWidth, consoleHeight)
	m.statusbar.SetWidth(m.width)
}

// --- Views ---

// View renders the entire application.
func (m Model) View() string {
	if m.showHelp {
		return m.viewHelp()
	}

	switch m.overlay {
	case OverlayConfirm:
		return m.viewConfirm()
	case OverlayHistory:
		return m.viewHistory()
	}

	if m.mode == ModeConnect {
		return m.viewConnect()
	}
	return m.viewMain()
}

func (m Model) viewConnect() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(1, 0)

	title := titleStyle.Render("fandb")
	subtitle := theme.StyleMuted.Render("Run SQL across every database at once.")

	labels := [fieldCount]string{"Server", "Port", "Username", "Password"}
	fieldStyle := lipgloss.NewStyle().Foreground(theme.ColorPrimary).Width(10)

	var rows []string
	for i := range m.inputs {
		rows = append(rows, fieldStyle.Render(labels[i])+" "+m.inputs[i].View())
	}

	var errMsg string
	if m.err != nil {
		errMsg = "\n" + theme.StyleError.Render("  Error: "+m.err.Error())
	}

	hint := theme.StyleMuted.Render("  Tab: Next field │ Enter: Connect │ Ctrl+C: Quit")

	parts := []string{"", title, subtitle, ""}
	parts = append(parts, rows...)
	if errMsg != "" {
		parts = append(parts, errMsg)
	}
	parts = append(parts, "", hint)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

func (m Model) viewMain() string {
	browserBorder := theme.StyleBorder
	if m.activePane == PaneBrowser {
		browserBorder = theme.StyleActiveBorder
	}

	browserWidth := m.width / 4
	if browserWidth < 24 {
		browserWidth = 24
	}
	if browserWidth > 38 {
		browserWidth = 38
	}

	rightWidth := m.width - browserWidth - 1

	statusHeight := 1
	availHeight := m.height - statusHeight - 2

	browserView := browserBorder.
		Width(browserWidth - 2).
		Height(availHeight).
		Render(m.browser.View())

	editorHeight := availHeight * 35 / 100
	if editorHeight < 5 {
		editorHeight = 5
	}
	consoleHeight := availHeight - editorHeight - 2

	editorBorder := theme.StyleBorder
	if m.activePane == PaneEditor {
		editorBorder = theme.StyleActiveBorder
	}
	editorView := editorBorder.
		Width(rightWidth - 2).
		Height(editorHeight).
		Render(m.editor.View())

	consoleBorder := theme.StyleBorder
	if m.activePane == PaneConsole {
		consoleBorder = theme.StyleActiveBorder
	}
	consoleView := consoleBorder.
		Width(rightWidth - 2).
		Height(consoleHeight).
		Render(m.console.View())

	rightPane := lipgloss.JoinVertical(lipgloss.Left,
		editorView,
		consoleView,
	)

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top,
		browserView,
		rightPane,
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		mainArea,
		m.statusbar.View(),
	)
}

func (m Model) viewConfirm() string {
	warn := theme.StyleWarning.Render("This query may modify or delete data.")

	preview := m.pendingQuery
	if len(preview) > 200 {
		preview = preview[:197] + "..."
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.StyleTitle.Render("Confirm Destructive Query"),
		"",
		warn,
		"",
		theme.StyleMuted.Render(preview),
		"",
		theme.StyleMuted.Render(fmt.Sprintf("Target databases: %s", strings.Join(m.pendingDBs, ", "))),
		"",
		"  "+theme.StyleSuccess.Render("y")+": proceed   "+theme.StyleError.Render("n")+": cancel",
	)

	box := theme.StyleActiveBorder.Padding(1, 2).Render(content)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

func (m Model) viewHistory() string {
	entries := m.service.History()

	var items []string
	if len(entries) == 0 {
		items = append(items, theme.StyleMuted.Render("  No query history yet"))
	}
	// Newest first.
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		pos := len(entries) - 1 - i
		label := fmt.Sprintf("  %s  %s",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			previewLine(entry.Query))
		if pos == m.histCursor {
			label = lipgloss.NewStyle().
				Foreground(theme.ColorHighlight).
				Bold(true).
				Render("> " + strings.TrimPrefix(label, "  "))
		}
		items = append(items, label)
	}

	parts := []string{
		theme.StyleTitle.Render("Recent Queries"),
		"",
	}
	parts = append(parts, items...)
	parts = append(parts, "", theme.StyleMuted.Render("  Enter: Load into editor │ Esc: Close"))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	box := theme.StyleActiveBorder.Padding(1, 2).Render(content)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

// previewLine flattens a query onto one line before shortening it.
func previewLine(query string) string {
	return history.Preview(strings.Join(strings.Fields(query), " "))
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(theme.ColorHighlight).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	descStyle := lipgloss.NewStyle().
		Foreground(theme.ColorMuted)

	help := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("fandb - Keyboard Shortcuts"),
		"",
		sectionStyle.Render("Global"),
		keyStyle.Render("  q / Ctrl+C")+"    "+descStyle.Render("Quit application"),
		keyStyle.Render("  Tab")+"           "+descStyle.Render("Switch between panes"),
		keyStyle.Render("  Shift+Tab")+"     "+descStyle.Render("Switch panes (reverse)"),
		keyStyle.Render("  F2")+"            "+descStyle.Render("Query history"),
		keyStyle.Render("  Ctrl+D")+"        "+descStyle.Render("Disconnect"),
		keyStyle.Render("  ?")+"             "+descStyle.Render("Toggle this help"),
		"",
		sectionStyle.Render("Databases"),
		keyStyle.Render("  ↑/k  ↓/j")+"     "+descStyle.Render("Navigate up/down"),
		keyStyle.Render("  Space")+"         "+descStyle.Render("Toggle database selection"),
		keyStyle.Render("  a")+"             "+descStyle.Render("Select/deselect all"),
		keyStyle.Render("  Enter/→/l")+"     "+descStyle.Render("Expand tables"),
		keyStyle.Render("  ←/h")+"           "+descStyle.Render("Collapse"),
		"",
		sectionStyle.Render("Editor"),
		keyStyle.Render("  Ctrl+E / F5")+"   "+descStyle.Render("Execute against selected databases"),
		keyStyle.Render("  Ctrl+K")+"        "+descStyle.Render("Clear editor"),
		keyStyle.Render("  Ctrl+L")+"        "+descStyle.Render("Uppercase SQL keywords"),
		keyStyle.Render("  Tab")+"           "+descStyle.Render("Complete table names"),
		"",
		sectionStyle.Render("Results"),
		keyStyle.Render("  ↑/k  ↓/j")+"     "+descStyle.Render("Scroll"),
		keyStyle.Render("  PgUp/PgDn g/G")+" "+descStyle.Render("Page / jump"),
		keyStyle.Render("  y")+"             "+descStyle.Render("Copy results to clipboard"),
		keyStyle.Render("  e")+"             "+descStyle.Render("Export run log to file"),
		keyStyle.Render("  Ctrl+X")+"        "+descStyle.Render("Clear results"),
		"",
		theme.StyleMuted.Render("Press any key to close"),
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		help,
	)
}
