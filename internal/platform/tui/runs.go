package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/journal"
)

// RunLister is the journal view the runs browser needs. *storage.Store implements it.
type RunLister interface {
	RecentRuns(limit int) ([]journal.Run, error)
	DeleteRun(id string) error
}

// RunsKeyMap defines the key bindings for the runs browser.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Verify, k.Delete, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing the run journal.
type RunsModel struct {
	store    RunLister
	limit    int
	runs     []journal.Run
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	status   string
	width    int
	height   int
	quitting bool
}

// NewRunsModel loads the latest limit runs from store.
func NewRunsModel(store RunLister, limit, width, height int) RunsModel {
	m := RunsModel{
		store:  store,
		limit:  limit,
		help:   help.New(),
		keys:   DefaultRunsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a table sized for the current window.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Ended", Width: 12},
		{Title: "Score", Width: 6},
		{Title: "Length", Width: 6},
		{Title: "Ticks", Width: 7},
		{Title: "Reason", Width: 9},
		{Title: "ID", Width: 36},
	}
	// Shrink the ID column on narrow terminals.
	fixed := 12 + 6 + 6 + 7 + 9 + 2*len(columns) + 4
	columns[5].Width = max(8, min(36, m.width-fixed))

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for title, status and help
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

// reload fetches runs from the store and refreshes the table.
func (m *RunsModel) reload() {
	runs, err := m.store.RecentRuns(m.limit)
	if err != nil {
		m.runs = nil
		m.status = fmt.Sprintf("cannot load runs: %v", err)
	} else {
		m.runs = runs
	}
	m.updateTableRows()
}

func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.EndedAt.Format("Jan 02 15:04"),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Length),
			strconv.FormatUint(r.Ticks, 10),
			string(r.Reason),
			r.ID,
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoBottom()
	}
}

// selected returns the run under the cursor.
func (m RunsModel) selected() (journal.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return journal.Run{}, false
	}
	return m.runs[i], true
}

// Init initializes the runs model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			if run, ok := m.selected(); ok {
				m.status = verifyStatus(run)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if run, ok := m.selected(); ok {
				if err := m.store.DeleteRun(run.ID); err != nil {
					m.status = fmt.Sprintf("cannot delete %s: %v", shortID(run.ID), err)
				} else {
					m.status = fmt.Sprintf("deleted %s", shortID(run.ID))
					m.reload()
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(min(cursor, max(0, len(m.runs)-1)))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verifyStatus replays run and describes the outcome.
func verifyStatus(run journal.Run) string {
	start := time.Now()
	st, err := journal.Verify(run)
	if err != nil {
		return fmt.Sprintf("%s: %v", shortID(run.ID), err)
	}
	return fmt.Sprintf("%s: replay matches (score %d, %d ticks, %s)",
		shortID(run.ID), st.Score, st.Ticks, time.Since(start).Round(time.Microsecond))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// View renders the runs browser.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("RECENT RUNS (%d)", len(m.runs))))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No runs recorded yet.\nPlay a game to record one!")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render(m.status))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunRunsBrowser runs the interactive journal browser.
func RunRunsBrowser(store RunLister, limit, width, height int) error {
	p := tea.NewProgram(
		NewRunsModel(store, limit, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
