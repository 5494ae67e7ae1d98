package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/chinook/internal/repositories"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TableListView ViewState = iota
	RowListView
)

// maxRows bounds how many rows one table view loads.
const maxRows = 200

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	browser   *repositories.TableBrowser
	width     int
	height    int
	ready     bool
	tableList list.Model
	rowList   list.Model
	table     string
	rowCount  int
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model over the table browser.
func NewModel(ctx context.Context, browser *repositories.TableBrowser) *Model {
	return &Model{
		ctx:     ctx,
		view:    TableListView,
		browser: browser,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by loading the table list.
func (m *Model) Init() tea.Cmd {
	return m.loadTables()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.tableList.Width() == 0 {
			m.tableList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.rowList.Width() == 0 {
			m.rowList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TableListView:
			return m.handleTableListKeys(msg)
		case RowListView:
			return m.handleRowListKeys(msg)
		}

	case tablesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.counts))
		for i, count := range msg.counts {
			items[i] = tableItem{count: count}
		}
		m.tableList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.tableList.Title = "Chinook Tables"
		m.tableList.SetSize(m.width-4, m.height-8)
		m.ready = true
		return m, nil

	case rowsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = TableListView
			return m, nil
		}
		items := make([]list.Item, len(msg.dump.Rows))
		for i, cells := range msg.dump.Rows {
			items[i] = rowItem{columns: msg.dump.Columns, cells: cells}
		}
		m.rowList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.rowList.Title = fmt.Sprintf("Rows in '%s'", msg.table)
		m.rowList.SetSize(m.width-4, m.height-8)
		m.table = msg.table
		m.rowCount = len(msg.dump.Rows)
		m.view = RowListView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	if !m.ready {
		return fmt.Sprintf("%s\n%s", styles.title.Render("Loading Chinook tables..."), styles.help.Render("ctrl+c to quit"))
	}

	switch m.view {
	case TableListView:
		return m.renderTableList()
	case RowListView:
		return m.renderRowList()
	default:
		return ""
	}
}

func (m *Model) handleTableListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.loadTables()
	case "enter":
		selected := m.tableList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(tableItem); ok {
				return m, m.loadRows(item.count.Table)
			}
		}
	}

	var cmd tea.Cmd
	m.tableList, cmd = m.tableList.Update(msg)
	return m, cmd
}

func (m *Model) handleRowListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = TableListView
		return m, nil
	case "r":
		return m, m.loadRows(m.table)
	}

	var cmd tea.Cmd
	m.rowList, cmd = m.rowList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case TableListView:
		m.tableList, cmd = m.tableList.Update(msg)
	case RowListView:
		m.rowList, cmd = m.rowList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadTables() tea.Cmd {
	return func() tea.Msg {
		counts, err := m.browser.Counts(m.ctx)
		return tablesLoadedMsg{counts: counts, err: err}
	}
}

func (m *Model) loadRows(table string) tea.Cmd {
	return func() tea.Msg {
		dump, err := m.browser.Rows(m.ctx, table, maxRows)
		return rowsLoadedMsg{table: table, dump: dump, err: err}
	}
}

func (m *Model) renderTableList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.tableList.View(), helpView)
}

func (m *Model) renderRowList() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	footer := styles.ok.Render(fmt.Sprintf("%d rows loaded", m.rowCount))
	if m.rowCount == maxRows {
		footer = styles.warn.Render(fmt.Sprintf("showing the first %d rows", maxRows))
	}

	return fmt.Sprintf("%s\n\n%s  %s", m.rowList.View(), footer, helpView)
}
