package dungeon

import "github.com/vovakirdan/dungeon-crawl/internal/core"

// Outcome is the session state machine: Playing, then one terminal state.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return core.OutcomePlaying
	case OutcomeWon:
		return core.OutcomeWon
	case OutcomeLost:
		return core.OutcomeLost
	case OutcomeQuit:
		return core.OutcomeQuit
	default:
		return "unknown"
	}
}

// GameState is one play session. It owns its World and Player; nothing else
// holds references to them.
type GameState struct {
	World   *World
	Player  *Player
	Message string // Narration of the last command, overwritten every turn
	IsOver  bool
	DidWin  bool
	Turns   int            // Committed moves
	Flags   map[string]any // Free-form extension point, unused by the rules

	outcome Outcome
}

// NewGameState starts a session on w with p.
func NewGameState(w *World, p *Player) *GameState {
	return &GameState{
		World:  w,
		Player: p,
		Flags:  make(map[string]any),
	}
}

// Outcome returns the session outcome.
func (s *GameState) Outcome() Outcome {
	return s.outcome
}

// finish moves the session into a terminal state. Terminal states are sticky.
func (s *GameState) finish(o Outcome) {
	if s.IsOver {
		return
	}
	s.IsOver = true
	s.DidWin = o == OutcomeWon
	s.outcome = o
}

// Summary converts the session into the platform's summary type.
func (s *GameState) Summary() core.GameState {
	return core.GameState{
		Score:    s.Player.Gold,
		HP:       s.Player.HP,
		Turns:    s.Turns,
		GameOver: s.IsOver,
		Won:      s.DidWin,
		Outcome:  s.outcome.String(),
	}
}

// CellKind classifies a cell for drawing. When several things share a cell
// the player wins, then a monster, then a coin, then the exit.
type CellKind int

const (
	CellFloor CellKind = iota
	CellWall
	CellCoin
	CellMonster
	CellExitLocked
	CellExitOpen
	CellPlayer
)

// View is a read-only snapshot of a session for front ends.
// It shares no memory with the GameState it was taken from.
type View struct {
	Width, Height int
	Cells         [][]CellKind // Indexed [y][x]
	PlayerPos     core.Point
	HP            int
	Gold          int
	Inventory     []string
	CoinsLeft     int
	Turns         int
	Message       string
	IsOver        bool
	DidWin        bool
	Outcome       Outcome
}

// View takes a snapshot of the session.
func (s *GameState) View() View {
	w, p := s.World, s.Player
	v := View{
		Width:     w.width,
		Height:    w.height,
		Cells:     make([][]CellKind, w.height),
		PlayerPos: p.Pos,
		HP:        p.HP,
		Gold:      p.Gold,
		Inventory: append([]string(nil), p.Inventory...),
		CoinsLeft: w.CoinsLeft(),
		Turns:     s.Turns,
		Message:   s.Message,
		IsOver:    s.IsOver,
		DidWin:    s.DidWin,
		Outcome:   s.outcome,
	}

	exitKind := CellExitLocked
	if v.CoinsLeft == 0 {
		exitKind = CellExitOpen
	}
	for y := 0; y < w.height; y++ {
		row := make([]CellKind, w.width)
		for x := 0; x < w.width; x++ {
			pt := core.Pt(x, y)
			switch {
			case pt == p.Pos:
				row[x] = CellPlayer
			case w.HasMonster(pt):
				row[x] = CellMonster
			case w.HasCoin(pt):
				row[x] = CellCoin
			case pt == w.exit:
				row[x] = exitKind
			case w.tiles[y][x] == TileWall:
				row[x] = CellWall
			default:
				row[x] = CellFloor
			}
		}
		v.Cells[y] = row
	}
	return v
}

// At returns the cell kind at (x, y), or CellWall outside the grid.
func (v View) At(x, y int) CellKind {
	if x < 0 || y < 0 || y >= len(v.Cells) || x >= len(v.Cells[y]) {
		return CellWall
	}
	return v.Cells[y][x]
}
