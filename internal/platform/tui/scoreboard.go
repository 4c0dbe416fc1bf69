package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zromick/SpikeGame/internal/storage"
)

// maxScores is the number of leaderboard rows loaded.
const maxScores = 50

// LeaderboardKeyMap defines the key bindings for the leaderboard.
type LeaderboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardModel shows the runs recorded in the store.
type LeaderboardModel struct {
	store    *storage.Store
	scores   []storage.Entry
	runs     int
	high     float64
	loadErr  error
	table    table.Model
	help     help.Model
	keys     LeaderboardKeyMap
	width    int
	height   int
	closed   bool
	quitting bool
}

// NewLeaderboardModel creates a leaderboard and loads it from store.
// A nil store shows an empty board.
func NewLeaderboardModel(store *storage.Store, width, height int) LeaderboardModel {
	m := LeaderboardModel{
		store:  store,
		help:   help.New(),
		keys:   DefaultLeaderboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.Reload()
	return m
}

// createTable creates a table sized to the current window.
func (m *LeaderboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 9},
		{Title: "Bonus", Width: 7},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

// Reload fetches the best runs again and resets the cursor.
func (m *LeaderboardModel) Reload() {
	m.scores, m.runs, m.high, m.loadErr = nil, 0, 0, nil
	if m.store != nil {
		m.loadErr = m.load()
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			fmt.Sprintf("%.1f", s.Score),
			fmt.Sprintf("%d", s.Bonus),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *LeaderboardModel) load() error {
	var err error
	if m.scores, err = m.store.TopScores(maxScores); err != nil {
		return err
	}
	if m.runs, err = m.store.Count(); err != nil {
		return err
	}
	m.high, err = m.store.HighScore()
	return err
}

// Open clears the closed flag and reloads the rows.
func (m *LeaderboardModel) Open() {
	m.closed = false
	m.Reload()
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (LeaderboardModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.closed = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.Reload()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("LEADERBOARD"), m.width))
	b.WriteString("\n")
	if m.loadErr == nil && m.runs > 0 {
		subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		summary := fmt.Sprintf("%d runs recorded, best %.1f", m.runs, m.high)
		b.WriteString(centerText(subtitleStyle.Render(summary), m.width))
	}
	b.WriteString("\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.content())))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// content renders the table or a placeholder.
func (m LeaderboardModel) content() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Leaderboard unavailable.")
	case len(m.scores) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// Closed returns true once the user left the leaderboard.
func (m LeaderboardModel) Closed() bool {
	return m.closed
}

// IsQuitting returns true if the user wants to quit entirely.
func (m LeaderboardModel) IsQuitting() bool {
	return m.quitting
}
