package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dungeon-crawl/internal/core"
	"github.com/vovakirdan/dungeon-crawl/internal/session"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model of the play screen. Nothing happens between
// key presses: every accepted key is one turn.
type Model struct {
	ctx         context.Context
	sess        *session.Session
	screen      *core.Screen
	config      core.RuntimeConfig
	keys        KeyMap
	help        help.Model
	state       core.GameState
	closeDelay  time.Duration
	quitting    bool
	interrupted bool
	backToMenu  bool
	err         error
}

// NewModel creates the play screen for a started session.
func NewModel(ctx context.Context, sess *session.Session, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		ctx:        ctx,
		sess:       sess,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		state:      sess.State(),
		closeDelay: DefaultCloseDelay,
	}
}

// WithCloseDelay returns a copy of m that waits d after game over before
// exiting. Zero or less disables the automatic exit.
func (m Model) WithCloseDelay(d time.Duration) Model {
	m.closeDelay = d
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case closeMsg:
		// A restart in the meantime makes the message stale.
		if m.state.GameOver && msg.runID == m.sess.RunID() {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.interrupted = key.Matches(msg, m.keys.ForceQuit)
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		return m, tea.Quit
	case core.ActionToggleHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case core.ActionRestart:
		return m.restart()
	}

	name, ok := m.keys.GameKey(msg)
	if !ok {
		return m, nil
	}
	res, ok := m.sess.HandleKey(m.ctx, name)
	if !ok {
		return m, nil
	}
	m.state = res.State

	if !m.state.GameOver {
		return m, nil
	}
	m.keys.SetGameOver(true)
	if m.state.Quit() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.closeDelay <= 0 {
		return m, nil
	}
	return m, closeAfter(m.closeDelay, m.sess.RunID())
}

// restart begins a new run with a fresh seed.
func (m Model) restart() (tea.Model, tea.Cmd) {
	cfg := m.config
	cfg.Seed = 0
	if err := m.sess.Start(m.ctx, cfg); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.state = m.sess.State()
	m.quitting = false
	m.keys.SetGameOver(false)
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := helpStyle.Render(m.help.View(m.keys))
	mapH := m.config.ScreenH - lipgloss.Height(helpView)
	if mapH < 1 {
		mapH = 1
	}
	m.screen.Resize(m.config.ScreenW, mapH)
	m.sess.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpView
}

// State returns the last known game summary.
func (m Model) State() core.GameState {
	return m.state
}

// BackToMenu reports whether the user asked to leave the play screen.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Done reports whether the play screen has finished.
func (m Model) Done() bool {
	return m.quitting || m.backToMenu
}

// Interrupted reports whether the user pressed ctrl+c.
func (m Model) Interrupted() bool {
	return m.interrupted
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error {
	return m.err
}

// Result describes how a play screen ended.
type Result struct {
	State       core.GameState
	BackToMenu  bool
	Interrupted bool
}

// Run starts a run on sess and blocks until the play screen closes.
// The run span is closed on return; unfinished runs are not recorded.
func Run(ctx context.Context, sess *session.Session, cfg core.RuntimeConfig, opts ...tea.ProgramOption) (Result, error) {
	if err := sess.Start(ctx, cfg); err != nil {
		return Result{}, err
	}
	defer sess.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(ctx, sess, cfg), opts...)

	finalModel, err := p.Run()
	if err != nil {
		return Result{State: sess.State()}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return Result{State: sess.State()}, nil
	}
	if m.Err() != nil {
		return Result{State: m.State()}, m.Err()
	}
	return Result{State: m.State(), BackToMenu: m.BackToMenu(), Interrupted: m.Interrupted()}, nil
}
