package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/zromick/SpikeGame/internal/core"
	"github.com/zromick/SpikeGame/internal/games/spikes"
	"github.com/zromick/SpikeGame/internal/storage"
)

// Options configures a Model.
type Options struct {
	Player string      // name recorded with finished runs
	Logger *log.Logger // nil discards
	Screen core.RuntimeConfig
}

// Model is the Bubble Tea model for one arena.
type Model struct {
	game     *spikes.Game
	screen   *core.Screen
	store    *storage.Store
	player   string
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	hold     holdTracker
	board    LeaderboardModel
	epoch    int    // bumped on every start, stale timer messages are dropped
	runID    string // identifies the current run in the store
	width    int
	height   int
	scores   bool // leaderboard visible
	quitting bool
}

// NewModel creates a model around game. Finished runs are saved to store
// when it is not nil.
func NewModel(game *spikes.Game, store *storage.Store, opts Options) Model {
	if opts.Screen.ScreenW == 0 || opts.Screen.ScreenH == 0 {
		opts.Screen = core.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = "anonymous"
	}

	w, h := opts.Screen.ScreenW, opts.Screen.ScreenH
	return Model{
		game:   game,
		screen: core.NewScreen(w, arenaHeight(h)),
		store:  store,
		player: player,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		board:  NewLeaderboardModel(store, w, h),
		width:  w,
		height: h,
	}
}

// arenaHeight leaves the last line for the controls legend.
func arenaHeight(h int) int {
	return max(h-1, 0)
}

// Init does nothing; the arena waits idle for a start key.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scores {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, arenaHeight(msg.Height))
		m.help.Width = msg.Width
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd

	case stepMsg:
		return m.handleStep(msg)

	case refreshMsg:
		if msg.epoch != m.epoch || m.game.State() != spikes.StatePlaying {
			return m, nil
		}
		m.game.Refresh()
		return m, refreshCmd(m.game.Config().RefreshInterval(), m.epoch)

	case releaseMsg:
		if m.hold.expire(msg.key, msg.seq) {
			m.game.KeyUp(msg.key)
		}
		return m, nil
	}

	if m.scores {
		return m.updateBoard(msg)
	}
	return m, nil
}

// handleKey processes keyboard input on the arena screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		return m.start()

	case key.Matches(msg, m.keys.Scores):
		if m.game.State() != spikes.StatePlaying {
			m.scores = true
			m.board.Open()
		}
		return m, nil
	}

	k := m.keys.Direction(msg)
	switch {
	case k == core.KeyNone || m.game.State() != spikes.StatePlaying:
		return m, nil
	case k.Vertical():
		m.game.KeyDown(k)
		return m, nil
	}

	m.game.KeyDown(k)
	seq, window := m.hold.press(k)
	return m, releaseCmd(window, k, seq)
}

// start begins a new run and arms both timers for its epoch.
func (m Model) start() (tea.Model, tea.Cmd) {
	m.game.Start()
	m.hold.reset()
	m.epoch++
	m.runID = uuid.NewString()
	m.logger.Debug("run started", "run", m.runID)

	cfg := m.game.Config()
	return m, tea.Batch(
		stepCmd(cfg.TickInterval(), m.epoch),
		refreshCmd(cfg.RefreshInterval(), m.epoch),
	)
}

// handleStep advances the simulation. The step timer is re-armed only
// while the run goes on.
func (m Model) handleStep(msg stepMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.epoch || m.game.State() != spikes.StatePlaying {
		return m, nil
	}

	res := m.game.Step()
	if res.Collected > 0 {
		m.logger.Debug("bonus collected", "run", m.runID, "points", res.Collected)
	}
	if res.Ended {
		m.saveRun()
		return m, nil
	}
	return m, stepCmd(m.game.Config().TickInterval(), m.epoch)
}

// saveRun records the finished run. Failures are logged, the game goes on.
func (m Model) saveRun() {
	snap := m.game.Snapshot()
	m.logger.Info("game over", "player", m.player, "score", snap.LastScore, "bonus", snap.Bonus, "rank", snap.LastRank+1)
	if m.store == nil {
		return
	}
	_, err := m.store.SaveScore(storage.Entry{
		RunID:   m.runID,
		Player:  m.player,
		Score:   snap.LastScore,
		Elapsed: snap.Elapsed,
		Bonus:   snap.Bonus,
	})
	if err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

// updateBoard forwards messages to the leaderboard while it is shown.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.Closed() {
		m.scores = false
	}
	return m, cmd
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scores {
		return m.board.View()
	}

	m.game.Render(m.screen)
	legend := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	return RenderScreen(m.screen) + "\n" + centerText(legend, m.width)
}

// Game returns the arena driven by the model.
func (m Model) Game() *spikes.Game {
	return m.game
}

// Run starts the Bubble Tea program on the local terminal.
func Run(game *spikes.Game, store *storage.Store, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, store, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
