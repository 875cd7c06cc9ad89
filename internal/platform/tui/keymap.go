package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dungeon-crawl/internal/core"
)

// KeyMap holds the key bindings of the play screen.
// Movement, inventory, help, look and quit keys reach the game through
// GameKey; the remaining bindings are platform actions handled by the model.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Inventory key.Binding
	GameHelp  key.Binding
	Look      key.Binding
	Restart   key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	ShowKeys  key.Binding

	gameOver bool
}

// DefaultKeyMap returns the default play bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w/k", "north"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s/j", "south"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a/h", "west"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d/l", "east"),
		),
		Inventory: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "inventory"),
		),
		GameHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "commands"),
		),
		Look: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "look"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new run"),
			key.WithDisabled(),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		ShowKeys: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "more keys"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Restart, k.Quit, k.ShowKeys}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Inventory, k.Look, k.GameHelp},
		{k.Restart, k.Back, k.Quit, k.ShowKeys},
	}
}

// SetGameOver switches the bindings between a running and a finished run.
// Restart is only enabled once the run is over, and q stops being a game
// command.
func (k *KeyMap) SetGameOver(over bool) {
	k.gameOver = over
	k.Restart.SetEnabled(over)
}

// Action maps a key to a platform action. Keys that belong to the game,
// including unbound ones, map to core.ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.ForceQuit):
		return core.ActionQuit
	case key.Matches(msg, k.ShowKeys):
		return core.ActionToggleHelp
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case k.gameOver && key.Matches(msg, k.Quit):
		return core.ActionQuit
	}
	return core.ActionNone
}

// GameKey returns the key name the game understands for msg. Only keys shown
// in the help bar are forwarded, and nothing is forwarded after game over.
func (k KeyMap) GameKey(msg tea.KeyMsg) (string, bool) {
	if k.gameOver {
		return "", false
	}
	switch {
	case key.Matches(msg, k.Up):
		return "up", true
	case key.Matches(msg, k.Down):
		return "down", true
	case key.Matches(msg, k.Left):
		return "left", true
	case key.Matches(msg, k.Right):
		return "right", true
	case key.Matches(msg, k.Inventory):
		return "i", true
	case key.Matches(msg, k.Look):
		return "m", true
	case key.Matches(msg, k.GameHelp):
		return "?", true
	case key.Matches(msg, k.Quit):
		return "q", true
	}
	return "", false
}

// MenuKeyMap holds the key bindings of the level picker.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns the default picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scoreboard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}
