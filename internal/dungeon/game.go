package dungeon

import (
	"fmt"

	"github.com/vovakirdan/dungeon-crawl/internal/config"
	"github.com/vovakirdan/dungeon-crawl/internal/core"
	"github.com/vovakirdan/dungeon-crawl/internal/registry"
)

var (
	configPath       string
	difficultyPreset = config.DifficultyNormal
)

// SetConfigPath sets the YAML file used by every subsequent Reset.
// Empty means the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset applied on top of the loaded config.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game adapts a level and its session to registry.Game.
type Game struct {
	level  Level
	cfg    config.DungeonConfig
	state  *GameState
	engine *Engine
}

// New creates an unstarted game for level. Call Reset before playing.
func New(level Level) *Game {
	return &Game{level: level}
}

func init() {
	for _, lvl := range Levels {
		registry.Register(lvl.ID, func() registry.Game {
			return New(lvl)
		})
	}
}

// ID returns the level ID.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.level.Name
}

// Reset loads the config and starts a fresh session.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	cfg, err := config.LoadDungeon(configPath)
	if err != nil {
		return fmt.Errorf("dungeon: cannot load config: %w", err)
	}
	config.ApplyDungeonPreset(&cfg, difficultyPreset)
	return g.ResetWith(cfg, NewRNG(rc.Seed))
}

// ResetWith starts a fresh session from an explicit config and random source.
func (g *Game) ResetWith(cfg config.DungeonConfig, rng RNG) error {
	w, start, err := g.level.Build(cfg.Placement, rng)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.engine = NewEngine(RulesFromConfig(cfg.Rules), rng)
	g.state = NewGameState(w, NewPlayer(start, cfg.Player.HP, cfg.Player.Inventory))
	g.state.Message = fmt.Sprintf("You enter %s. Collect every coin, then find the gate.", g.level.Name)
	return nil
}

// Handle applies a typed command line.
func (g *Game) Handle(input string) core.StepResult {
	return g.apply(ParseCommand(input))
}

// HandleKey applies a key press. Unbound keys leave the state untouched.
func (g *Game) HandleKey(key string) (core.StepResult, bool) {
	cmd := ParseKey(key)
	if cmd.Kind == CmdUnknown {
		return g.result(), false
	}
	return g.apply(cmd), true
}

func (g *Game) apply(cmd Command) core.StepResult {
	if g.state == nil {
		return core.StepResult{}
	}
	g.engine.Apply(g.state, cmd)
	return g.result()
}

func (g *Game) result() core.StepResult {
	if g.state == nil {
		return core.StepResult{}
	}
	return core.StepResult{State: g.state.Summary(), Message: g.state.Message}
}

// Render draws the session into dst.
func (g *Game) Render(dst *core.Screen) {
	if g.state == nil {
		dst.Clear()
		return
	}
	RenderView(g.state.View(), g.level.Name, dst)
}

// State returns the session summary.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{Outcome: OutcomePlaying.String()}
	}
	return g.state.Summary()
}

// View returns a snapshot of the running session.
func (g *Game) View() View {
	if g.state == nil {
		return View{}
	}
	return g.state.View()
}
