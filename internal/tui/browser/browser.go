package browser

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/franvera/fandb/internal/database"
	"github.com/franvera/fandb/internal/tui/theme"
)

// dbNode is one database in the browser, with its selection state and
// lazily loaded tables.
type dbNode struct {
	Name     string
	Selected bool
	Expanded bool
	Loaded   bool
	Tables   []database.Table
}

// flatItem is a visible row in the flattened tree view. table is nil for
// database rows.
type flatItem struct {
	db    *dbNode
	table *database.Table
}

// Model is the database/table browser component. Databases carry a checkbox
// for multi-selection; expanding a database lists its tables and views.
type Model struct {
	dbs     []*dbNode
	items   []flatItem
	cursor  int
	width   int
	height  int
	focused bool
	loading bool
}

// New creates a new browser model.
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

// SetLoading sets the loading state.
func (m *Model) SetLoading(l bool) {
	m.loading = l
}

// SetDatabases populates the browser. Selection and expansion state reset.
func (m *Model) SetDatabases(names []string) {
	m.dbs = nil
	for _, name := range names {
		m.dbs = append(m.dbs, &dbNode{Name: name})
	}
	m.cursor = 0
	m.loading = false
	m.flatten()
}

// SetTables attaches the loaded tables to a database node.
func (m *Model) SetTables(db string, tables []database.Table) {
	for _, node := range m.dbs {
		if node.Name == db {
			node.Tables = tables
			node.Loaded = true
			break
		}
	}
	m.flatten()
}

// Selected returns the checked databases in list order.
func (m Model) Selected() []string {
	var out []string
	for _, node := range m.dbs {
		if node.Selected {
			out = append(out, node.Name)
		}
	}
	return out
}

// AllSelected reports whether every database is checked. False when the
// browser is empty.
func (m Model) AllSelected() bool {
	if len(m.dbs) == 0 {
		return false
	}
	for _, node := range m.dbs {
		if !node.Selected {
			return false
		}
	}
	return true
}

// TableNames returns the names of all loaded tables, for completion.
func (m Model) TableNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, node := range m.dbs {
		for i := range node.Tables {
			name := node.Tables[i].Name
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// requestTablesMsg is sent when a database is expanded and needs table data.
type requestTablesMsg struct {
	Database string
}

// IsRequestTablesMsg reports whether msg asks for a database's tables.
func IsRequestTablesMsg(msg tea.Msg) (db string, ok bool) {
	if m, ok := msg.(requestTablesMsg); ok {
		return m.Database, true
	}
	return "", false
}

// SelectionChangedMsg tells the app the database selection changed.
type SelectionChangedMsg struct {
	Count int
}

func (m *Model) flatten() {
	m.items = nil
	for _, node := range m.dbs {
		m.items = append(m.items, flatItem{db: node})
		if node.Expanded {
			for i := range node.Tables {
				m.items = append(m.items, flatItem{db: node, table: &node.Tables[i]})
			}
		}
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			return m, m.toggleExpand()
		case "left", "h":
			m.collapse()
		case " ":
			return m, m.toggleSelect()
		case "a":
			return m, m.toggleSelectAll()
		}
	}

	return m, nil
}

func (m *Model) toggleExpand() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	item := m.items[m.cursor]
	if item.table != nil {
		return nil
	}

	node := item.db
	if node.Expanded {
		node.Expanded = false
		m.flatten()
		return nil
	}

	node.Expanded = true
	m.flatten()

	if !node.Loaded {
		db := node.Name
		return func() tea.Msg {
			return requestTablesMsg{Database: db}
		}
	}
	return nil
}

func (m *Model) collapse() {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return
	}
	node := m.items[m.cursor].db
	if node.Expanded {
		node.Expanded = false
		m.flatten()
	}
}

func (m *Model) toggleSelect() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	item := m.items[m.cursor]
	if item.table != nil {
		return nil
	}
	item.db.Selected = !item.db.Selected
	return m.selectionChanged()
}

// toggleSelectAll checks every database, or unchecks all when everything is
// already checked.
func (m *Model) toggleSelectAll() tea.Cmd {
	target := !m.AllSelected()
	for _, node := range m.dbs {
		node.Selected = target
	}
	return m.selectionChanged()
}

func (m *Model) selectionChanged() tea.Cmd {
	count := len(m.Selected())
	return func() tea.Msg {
		return SelectionChangedMsg{Count: count}
	}
}

// View renders the browser.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	title := titleStyle.Render("Databases")

	if m.loading {
		return title + "\n" + theme.StyleMuted.Render("  Loading...")
	}

	if len(m.dbs) == 0 {
		return title + "\n" + theme.StyleMuted.Render("  No databases")
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	visibleHeight := m.height - 2
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	scrollOffset := 0
	if m.cursor >= visibleHeight {
		scrollOffset = m.cursor - visibleHeight + 1
	}

	for i := scrollOffset; i < len(m.items) && i < scrollOffset+visibleHeight; i++ {
		b.WriteString(m.renderItem(m.items[i], i == m.cursor))
		if i < scrollOffset+visibleHeight-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderItem(item flatItem, selected bool) string {
	var line string

	if item.table == nil {
		node := item.db
		check := "[ ]"
		if node.Selected {
			check = "[x]"
		}
		arrow := "▶"
		if node.Expanded {
			arrow = "▼"
		}
		line = check + " " + arrow + " " + node.Name
	} else {
		line = "      " + item.table.Name
		if item.table.Type == database.TableTypeView {
			line += " " + theme.StyleMuted.Render("view")
		}
	}

	if m.width > 4 && lipgloss.Width(line) > m.width-2 {
		line = lipgloss.NewStyle().MaxWidth(m.width-4).Render(line) + ".."
	}

	if selected {
		return lipgloss.NewStyle().
			Foreground(theme.ColorHighlight).
			Bold(true).
			Render(line)
	}
	return line
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
