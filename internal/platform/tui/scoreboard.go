package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/redlight-arcade/internal/storage"
)

// Board layout constants
const (
	boardMaxRows = 100 // Max results to load per view
)

// BoardView selects which results the board lists.
type BoardView int

const (
	ViewBest BoardView = iota
	ViewRecent
)

// String returns the tab label.
func (v BoardView) String() string {
	if v == ViewRecent {
		return "Recent"
	}
	return "Best runs"
}

// BoardKeyMap defines the key bindings for the results board.
type BoardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Switch, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "best/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BoardModel is the Bubble Tea model for the results board.
type BoardModel struct {
	gameID   string
	title    string
	store    *storage.Store
	view     BoardView
	results  []storage.Result
	stats    *storage.GameStats
	progress storage.Progress
	loadErr  error
	table    table.Model
	help     help.Model
	keys     BoardKeyMap
	width    int
	height   int
	quitting bool
}

// NewBoardModel creates a results board for one game.
func NewBoardModel(store *storage.Store, gameID, title string, width, height int) BoardModel {
	h := help.New()
	h.ShowAll = false

	m := BoardModel{
		gameID: gameID,
		title:  title,
		store:  store,
		keys:   DefaultBoardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *BoardModel) createTable() table.Model {
	dateWidth := 14
	if m.width > 80 {
		dateWidth = 20
	}
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Outcome", Width: 16},
		{Title: "Time left", Width: 10},
		{Title: "Played", Width: 9},
		{Title: "Date", Width: dateWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats and help
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

// load reads stats, progress and the current view from the store.
func (m *BoardModel) load() {
	m.results, m.stats, m.loadErr = nil, nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	var err error
	if m.view == ViewRecent {
		m.results, err = m.store.RecentResults(m.gameID, boardMaxRows)
	} else {
		m.results, err = m.store.TopResults(m.gameID, boardMaxRows)
	}
	if err != nil {
		m.loadErr = err
	}

	if stats, err := m.store.GetGameStats(m.gameID); err == nil {
		m.stats = stats
	}
	if p, err := m.store.Progress(m.gameID); err == nil {
		m.progress = p
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded results.
func (m *BoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			outcomeLabel(r),
			fmt.Sprintf("%ds", r.SecondsRemaining),
			formatPlayed(r.ElapsedMs),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func outcomeLabel(r storage.Result) string {
	switch {
	case r.Outcome == storage.OutcomeWon:
		return "Finished"
	case r.Reason == "caught":
		return "Caught on red"
	case r.Reason == "timeout":
		return "Out of time"
	default:
		return "Lost"
	}
}

func formatPlayed(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Init initializes the board model.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if m.view == ViewBest {
				m.view = ViewRecent
			} else {
				m.view = ViewBest
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText(strings.ToUpper(m.title)+" - RESULTS", m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.renderStats(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m BoardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, v := range []BoardView{ViewBest, ViewRecent} {
		if v == m.view {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m BoardModel) renderStats() string {
	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	if m.stats == nil || m.stats.GamesCount == 0 {
		return statsStyle.Render("No games played yet")
	}
	s := m.stats
	return statsStyle.Render(fmt.Sprintf(
		"Played %d  |  Won %d (%.0f%%)  |  Caught %d  |  Timed out %d  |  Best %ds left  |  Cleared %dx",
		s.GamesCount, s.Wins, s.WinRate()*100, s.Caught, s.Timeouts, s.BestSeconds, m.progress.ClearedCount,
	))
}

// renderTableContent renders the table or an empty message.
func (m BoardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Results database unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load results:\n" + m.loadErr.Error())
	case len(m.results) == 0 && m.view == ViewBest:
		return emptyStyle.Render("No finishes recorded yet.\nReach the finish line to set a time!")
	case len(m.results) == 0:
		return emptyStyle.Render("No games recorded yet.")
	}

	return m.table.View()
}

// CurrentView returns the current tab.
func (m BoardModel) CurrentView() BoardView {
	return m.view
}

// Results returns the rows currently listed.
func (m BoardModel) Results() []storage.Result {
	return m.results
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunBoard runs the results board until the user quits.
func RunBoard(store *storage.Store, gameID, title string, width, height int) error {
	model := NewBoardModel(store, gameID, title, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
