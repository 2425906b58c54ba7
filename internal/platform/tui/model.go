package tui

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/input"
	"github.com/vovakirdan/tui-snake/internal/journal"
	"github.com/vovakirdan/tui-snake/internal/layout"
	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/metrics"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// RunStore persists finished runs. *storage.Store implements it.
type RunStore interface {
	SaveRun(run journal.Run) error
}

// Options configures a Model. Zero values get defaults.
type Options struct {
	Config    config.Config
	Runtime   core.RuntimeConfig
	Store     RunStore // nil disables the journal
	Logger    *log.Logger
	Metrics   metrics.Sink
	Scheduler Scheduler
	Title     string
}

// Model is the Bubble Tea model for one game session.
//
// The engine is only touched from Update, which Bubble Tea calls on a
// single goroutine, so it needs no locking.
type Model struct {
	engine   *snake.Engine
	state    snake.State
	cfg      config.Config
	runtime  core.RuntimeConfig
	seeds    *rand.Rand
	sched    Scheduler
	gen      uint64 // current tick stream
	lay      layout.Layout
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	gesture  input.Gesture
	recorder *journal.Recorder
	store    RunStore
	logger   *log.Logger
	metrics  metrics.Sink
	title    string
	best     int
	paused   bool
	message  string
	err      error
	quitting bool
}

// NewModel builds the engine and starts the first game.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}

	rt := opts.Runtime
	if rt.ScreenW == 0 || rt.ScreenH == 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	if rt.TickInterval == 0 {
		rt.TickInterval = cfg.Timing.TickInterval
	}
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	sched := opts.Scheduler
	if sched == nil {
		sched = IntervalScheduler{Interval: rt.TickInterval}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	sink := opts.Metrics
	if sink == nil {
		sink = metrics.Nop{}
	}
	title := opts.Title
	if title == "" {
		title = "Snake"
	}

	seeds := rand.New(rand.NewSource(rt.Seed))
	seed := seeds.Int63()
	engine, err := snake.New(cfg.Engine(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	m := Model{
		engine:   engine,
		state:    engine.State(),
		cfg:      cfg,
		runtime:  rt,
		seeds:    seeds,
		sched:    sched,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		gesture:  input.NewGesture(cfg.Input.CellWidthUnits, cfg.Input.CellHeightUnits, cfg.Input.SwipeThreshold),
		recorder: journal.NewRecorder(cfg.Engine()),
		store:    opts.Store,
		logger:   logger,
		metrics:  sink,
		title:    title,
	}
	m.screen = core.NewScreen(rt.ScreenW, rt.ScreenH-1)
	m.relayout()

	if m.store != nil {
		m.recorder.Begin(seed)
	}
	m.metrics.GameStarted()
	m.logger.Info("game started", "seed", seed, "grid", cfg.Grid.Size)
	return m, nil
}

// Init starts the tick stream.
func (m Model) Init() tea.Cmd {
	return m.sched.Next(m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishRun(journal.EndQuit)
		m.quitting = true
		m.gen++
		return m, tea.Quit

	case key.Matches(msg, m.keys.Restart):
		return m.restart()

	case key.Matches(msg, m.keys.Pause):
		return m.togglePause()
	}

	if d, ok := input.DirectionForKey(msg.String()); ok {
		m.turn(d)
	}
	return m, nil
}

// handleMouse maps button presses and board drags to directions.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if m.lay.PadVisible {
			switch b := m.lay.Pad.Hit(msg.X, msg.Y); b {
			case input.ButtonRestart:
				return m.restart()
			case input.ButtonNone:
			default:
				if d, ok := b.Direction(); ok {
					m.turn(d)
				}
				return m, nil
			}
		}
		if m.lay.OnBoard(msg.X, msg.Y) {
			m.gesture.Press(msg.X, msg.Y)
		}

	case tea.MouseActionRelease:
		if d, ok := m.gesture.Release(msg.X, msg.Y); ok {
			m.turn(d)
		}
	}
	return m, nil
}

// handleResize recomputes the layout. The game itself is untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-1)
	m.relayout()
	m.help.Width = msg.Width
	m.gesture.Cancel()
	return m, nil
}

func (m *Model) relayout() {
	m.lay = layout.Compute(m.runtime.ScreenW, m.runtime.ScreenH-1, m.cfg.Grid.Size, m.cfg.LayoutOptions())
}

// handleTick advances the engine for the current tick stream only.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.paused || m.quitting {
		return m, nil
	}
	if m.state.Over() {
		return m, nil
	}

	before := m.state
	st, err := m.engine.Tick()
	m.state = st
	if err != nil {
		m.logger.Error("food placement failed", "error", err, "length", st.Len(), "grid", st.Grid)
		m.err = err
		m.finishRun(journal.EndFault)
		m.quitting = true
		return m, tea.Quit
	}

	if st.Score > before.Score {
		m.metrics.FoodEaten()
		m.best = max(m.best, st.Score)
	}
	if st.Over() {
		m.metrics.GameOver(st.Score)
		m.logger.Info("game over", "score", st.Score, "length", st.Len(), "ticks", st.Ticks)
		m.finishRun(journal.EndCollision)
		return m, nil
	}
	return m, m.sched.Next(m.gen)
}

// restart starts a new game with a fresh seed and a new tick stream.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if !m.state.Over() {
		m.finishRun(journal.EndRestart)
	}

	seed := m.seeds.Int63()
	m.engine.Reseed(seed)
	st, err := m.engine.Restart()
	m.state = st
	if err != nil {
		m.logger.Error("restart failed", "error", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	if m.store != nil {
		m.recorder.Begin(seed)
	}
	m.metrics.GameStarted()
	m.logger.Info("game started", "seed", seed, "grid", st.Grid)

	m.paused = false
	m.gesture.Cancel()
	m.gen++
	return m, m.sched.Next(m.gen)
}

// togglePause stops or resumes the tick stream. Engine state is untouched.
func (m Model) togglePause() (tea.Model, tea.Cmd) {
	if m.state.Over() {
		return m, nil
	}
	m.paused = !m.paused
	m.gen++
	if m.paused {
		return m, nil
	}
	return m, m.sched.Next(m.gen)
}

// turn forwards a direction and journals it when the engine accepted it.
func (m *Model) turn(d snake.Direction) {
	if m.paused {
		return
	}
	before := m.state.Velocity
	m.state = m.engine.Turn(d)
	if m.state.Velocity != before {
		m.recorder.Direction(m.state.Ticks, d)
	}
}

// finishRun closes the journal entry for the current game, if any.
func (m *Model) finishRun(reason journal.EndReason) {
	run, ok := m.recorder.Finish(m.state, reason)
	if !ok || m.store == nil {
		return
	}
	if err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "run", run.ID, "error", err)
		m.message = "run journal unavailable"
		return
	}
	m.logger.Info("run saved", "run", run.ID, "score", run.Score, "reason", run.Reason)
}

// Close journals the game in progress with reason quit. Call it once the
// program has stopped: a program killed from outside (an SSH disconnect, a
// renderer error) never delivers a quit key to Update. The engine and
// recorder are shared by every copy of the model, so any copy will do.
func (m Model) Close() {
	if !m.recorder.Active() {
		return
	}
	m.state = m.engine.State()
	m.finishRun(journal.EndQuit)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	render.Draw(m.screen, m.state, m.lay, render.UI{
		Title:   m.title,
		Best:    m.best,
		Paused:  m.paused,
		Message: m.message,
	})
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// State returns the latest engine snapshot.
func (m Model) State() snake.State {
	return m.state
}

// Err returns the fatal error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program on the local terminal.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	model.Close()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
