package dungeon

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/dungeon-crawl/internal/config"
	"github.com/vovakirdan/dungeon-crawl/internal/core"
)

// stubRNG makes every roll the same: Float64 returns roll, Intn returns pick
// (mod n) and Shuffle keeps the order it was given.
type stubRNG struct {
	roll float64
	pick int
}

func (r stubRNG) Intn(n int) int { return r.pick % n }

func (r stubRNG) Float64() float64 { return r.roll }

func (r stubRNG) Shuffle(int, func(i, j int)) {}

var (
	alwaysHit  = stubRNG{roll: 0}
	alwaysMiss = stubRNG{roll: 0.999}
)

func newSession(t *testing.T, rules Rules, rng RNG, hp int, rows ...string) (*Engine, *GameState) {
	t.Helper()
	w, start, err := ParseWorld(rows)
	if err != nil {
		t.Fatalf("ParseWorld() failed: %v", err)
	}
	return NewEngine(rules, rng), NewGameState(w, NewPlayer(start, hp, nil))
}

func TestStepBump(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		rows []string
	}{
		{"into wall", West, []string{"#####", "#@.E#", "#####"}},
		{"out of bounds", North, []string{"@.E", "..."}},
		{"out of bounds left", West, []string{"@.E"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, s := newSession(t, DefaultRules(), alwaysHit, 10, tc.rows...)
			before := s.Player.Pos
			coins := s.World.CoinsLeft()

			e.Move(s, tc.dir)

			if s.Message != MsgBump {
				t.Errorf("Message = %q, expected %q", s.Message, MsgBump)
			}
			if s.Player.Pos != before {
				t.Errorf("Pos = %v, expected unchanged %v", s.Player.Pos, before)
			}
			if s.Turns != 0 {
				t.Errorf("Turns = %d, a bump should not cost a turn", s.Turns)
			}
			if s.Player.HP != 10 {
				t.Errorf("HP = %d, expected 10", s.Player.HP)
			}
			if s.World.CoinsLeft() != coins {
				t.Errorf("CoinsLeft = %d, expected unchanged %d", s.World.CoinsLeft(), coins)
			}
		})
	}
}

func TestPickupThenEscape(t *testing.T) {
	e, s := newSession(t, DefaultRules(), alwaysHit, 10,
		".....",
		".@$E.",
		".....",
		".....",
		".....",
	)

	e.Move(s, East)
	if s.Player.Gold != 1 || s.World.CoinsLeft() != 0 {
		t.Fatalf("Gold = %d, CoinsLeft = %d; expected 1 and 0", s.Player.Gold, s.World.CoinsLeft())
	}
	if want := "You pick up a coin! | A cool draft from the east."; s.Message != want {
		t.Errorf("Message = %q, expected %q", s.Message, want)
	}
	if s.IsOver {
		t.Fatal("game should not be over after the pickup")
	}

	e.Move(s, East)
	if !s.IsOver || !s.DidWin {
		t.Fatalf("IsOver = %v, DidWin = %v; expected both true", s.IsOver, s.DidWin)
	}
	if s.Outcome() != OutcomeWon {
		t.Errorf("Outcome = %v, expected won", s.Outcome())
	}
	if s.Message != MsgVictory {
		t.Errorf("Message = %q, expected %q", s.Message, MsgVictory)
	}
	if s.Turns != 2 {
		t.Errorf("Turns = %d, expected 2", s.Turns)
	}
}

func TestSealedGateSkipsMonsterTick(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want string
	}{
		{
			name: "one coin",
			rows: []string{"#######", "#@E..$#", "#.....#", "#M....#", "#######"},
			want: "The exit gate is sealed. Collect 1 more coin. Coins jingle to the east.",
		},
		{
			name: "two coins",
			rows: []string{"#######", "#@E..$#", "#$....#", "#M....#", "#######"},
			want: "The exit gate is sealed. Collect 2 more coins. Coins jingle to the west.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, s := newSession(t, DefaultRules(), alwaysHit, 10, tc.rows...)
			before := s.World.Monsters()

			e.Move(s, East)

			if s.Message != tc.want {
				t.Errorf("Message = %q, expected %q", s.Message, tc.want)
			}
			if s.IsOver {
				t.Error("a sealed gate must not end the game")
			}
			after := s.World.Monsters()
			if len(after) != len(before) || after[0] != before[0] {
				t.Errorf("Monsters moved from %v to %v on a sealed-gate turn", before, after)
			}
			if s.Turns != 1 {
				t.Errorf("Turns = %d, expected 1", s.Turns)
			}
		})
	}
}

func TestAdjacentEncounterKills(t *testing.T) {
	// The monster's only way out is the cell the player leaves,
	// which puts it next to the player after the tick.
	e, s := newSession(t, DefaultRules(), alwaysHit, 1,
		"#####",
		"#@M##",
		"#.###",
		"#E..#",
		"#####",
	)

	e.Move(s, South)

	if !s.IsOver || s.DidWin {
		t.Fatalf("IsOver = %v, DidWin = %v; expected over and lost", s.IsOver, s.DidWin)
	}
	if s.Outcome() != OutcomeLost {
		t.Errorf("Outcome = %v, expected lost", s.Outcome())
	}
	if s.Message != MsgDeath {
		t.Errorf("Message = %q, expected %q", s.Message, MsgDeath)
	}
	if s.Player.HP != 0 {
		t.Errorf("HP = %d, expected 0", s.Player.HP)
	}
	if s.Player.Pos != core.Pt(1, 2) {
		t.Errorf("Pos = %v, the move should commit before damage", s.Player.Pos)
	}
}

func TestFatalCollisionStopsTurn(t *testing.T) {
	e, s := newSession(t, DefaultRules(), alwaysMiss, 2,
		"#####",
		"#@ME#",
		"#####",
	)
	if err := s.World.AddCoin(core.Pt(2, 1)); err != nil {
		t.Fatalf("AddCoin() failed: %v", err)
	}

	e.Move(s, East)

	if !s.IsOver || s.DidWin || s.Message != MsgDeath {
		t.Fatalf("IsOver = %v, DidWin = %v, Message = %q; expected a death", s.IsOver, s.DidWin, s.Message)
	}
	if s.Player.Gold != 0 || !s.World.HasCoin(core.Pt(2, 1)) {
		t.Error("no pickup may happen after a fatal collision")
	}
	if s.Player.HP != 0 {
		t.Errorf("HP = %d, expected clamp at 0", s.Player.HP)
	}
}

func TestCollisionSurvived(t *testing.T) {
	rules := DefaultRules()
	rules.EncounterProbAdjacent = 0
	rules.CoinSenseRadius = 0
	rules.ExitSenseRadius = 0

	e, s := newSession(t, rules, alwaysHit, 10,
		"######",
		"#@M..#",
		"#...E#",
		"######",
	)

	e.Move(s, East)

	want := "You collide with a monster! (-2 HP) You hear skittering nearby..."
	if s.Message != want {
		t.Errorf("Message = %q, expected %q", s.Message, want)
	}
	if s.Player.HP != 8 {
		t.Errorf("HP = %d, expected 8", s.Player.HP)
	}
}

func TestEncounterSkipsResolvedCollision(t *testing.T) {
	e, s := newSession(t, DefaultRules(), alwaysHit, 10, "@.E")
	_ = s.World.AddMonster(s.Player.Pos)

	if note, dead := e.encounter(s, false); note != "" || dead {
		t.Errorf("encounter(allowOnTile=false) = %q, %v; expected nothing", note, dead)
	}
	if s.Player.HP != 10 {
		t.Errorf("HP = %d, expected 10", s.Player.HP)
	}

	note, dead := e.encounter(s, true)
	if dead || note != "A monster claws you! (-2 HP)" {
		t.Errorf("encounter(allowOnTile=true) = %q, %v; expected an on-tile hit", note, dead)
	}
}

func TestEncounterMissAndFlee(t *testing.T) {
	e, s := newSession(t, DefaultRules(), alwaysMiss, 10, "@M.E")
	if note, _ := e.encounter(s, true); note != MsgSkitter {
		t.Errorf("missed encounter note = %q, expected %q", note, MsgSkitter)
	}

	rules := DefaultRules()
	rules.MonstersFlee = true
	e, s = newSession(t, rules, alwaysHit, 10, "@M.E")
	note, _ := e.encounter(s, true)
	if note != "A monster claws you! (-1 HP)" {
		t.Errorf("note = %q, expected an adjacent hit", note)
	}
	if s.World.MonsterCount() != 0 {
		t.Error("a fleeing monster should leave the board after its hit")
	}
}

func TestMonsterTickClaims(t *testing.T) {
	e, s := newSession(t, DefaultRules(), alwaysHit, 10,
		"#####",
		"#M.M#",
		"#####",
		"#@.E#",
		"#####",
	)

	e.tickMonsters(s.World)

	got := s.World.Monsters()
	want := []core.Point{core.Pt(2, 1), core.Pt(3, 1)}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Monsters = %v, expected %v", got, want)
	}
}

func TestMonsterTickKeepsSetValid(t *testing.T) {
	rows := []string{
		"#######",
		"#MMM..#",
		"#MM.#.#",
		"#M...E#",
		"#######",
	}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		e, s := newSession(t, DefaultRules(), rng, 10, rows...)
		before := s.World.MonsterCount()

		e.tickMonsters(s.World)

		after := s.World.Monsters()
		if len(after) > before {
			t.Fatalf("tick grew monster set from %d to %d", before, len(after))
		}
		seen := make(map[core.Point]bool)
		for _, m := range after {
			if seen[m] {
				t.Fatalf("duplicate monster at %v", m)
			}
			seen[m] = true
			if !s.World.IsFloor(m) {
				t.Fatalf("monster on non-floor cell %v", m)
			}
		}
	}
}

func TestHandleCommands(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		inventory []string
		want      string
		over      bool
	}{
		{"quit", "quit", nil, MsgQuit, true},
		{"exit alias", "exit", nil, MsgQuit, true},
		{"q alias", "Q", nil, MsgQuit, true},
		{"help", "help", nil, HelpText, false},
		{"question mark", "?", nil, HelpText, false},
		{"empty inventory", "inv", nil, "Inventory: (empty)", false},
		{"inventory items", "inventory", []string{"torch", "rope"}, "Inventory: torch, rope", false},
		{"look", "  LOOK ", nil, MsgLook, false},
		{"map alias", "map", nil, MsgLook, false},
		{"unknown", "Dance", nil, "Unknown command: 'dance'. Type 'help' for options.", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, s := newSession(t, DefaultRules(), alwaysHit, 10, "@.E")
			s.Player.Inventory = tc.inventory

			e.Handle(s, tc.input)

			if s.Message != tc.want {
				t.Errorf("Message = %q, expected %q", s.Message, tc.want)
			}
			if s.IsOver != tc.over {
				t.Errorf("IsOver = %v, expected %v", s.IsOver, tc.over)
			}
			if s.DidWin {
				t.Error("no command here may win the game")
			}
			if s.Turns != 0 {
				t.Errorf("Turns = %d, non-move commands cost nothing", s.Turns)
			}
		})
	}
}

func TestInputIgnoredAfterGameOver(t *testing.T) {
	e, s := newSession(t, DefaultRules(), alwaysHit, 10, "@.E")
	e.Handle(s, "quit")

	e.Handle(s, "e")
	e.Handle(s, "help")

	if s.Message != MsgQuit {
		t.Errorf("Message = %q, expected it to stay %q", s.Message, MsgQuit)
	}
	if s.Player.Pos != core.Pt(0, 0) {
		t.Errorf("Pos = %v, expected no movement after quit", s.Player.Pos)
	}
	if s.Outcome() != OutcomeQuit {
		t.Errorf("Outcome = %v, expected quit", s.Outcome())
	}

	s.finish(OutcomeWon)
	if s.Outcome() != OutcomeQuit || s.DidWin {
		t.Error("terminal outcomes must be sticky")
	}
}

func TestMoveNarrationDefault(t *testing.T) {
	rules := DefaultRules()
	rules.ExitSenseRadius = 0
	e, s := newSession(t, rules, alwaysHit, 10, "@...........E")

	e.Handle(s, "e")

	if s.Message != MsgMove {
		t.Errorf("Message = %q, expected %q", s.Message, MsgMove)
	}
}

func TestSensesJoinedAfterSeparator(t *testing.T) {
	e, s := newSession(t, DefaultRules(), alwaysHit, 10,
		"@....",
		".....",
		"...$E",
	)

	e.Move(s, South)

	want := "You move. | You hear faint clinks to the east. A cool draft from the east."
	if s.Message != want {
		t.Errorf("Message = %q, expected %q", s.Message, want)
	}
}

func TestRandomWalkInvariants(t *testing.T) {
	dirs := []Direction{North, South, East, West}
	for _, lvl := range Levels {
		t.Run(lvl.ID, func(t *testing.T) {
			rng := rand.New(rand.NewSource(99))
			w, start, err := lvl.Build(config.DefaultDungeonConfig().Placement, rng)
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			e := NewEngine(DefaultRules(), rng)
			s := NewGameState(w, NewPlayer(start, 50, nil))

			for i := 0; i < 300 && !s.IsOver; i++ {
				e.Move(s, dirs[rng.Intn(len(dirs))])

				if !s.World.IsFloor(s.Player.Pos) {
					t.Fatalf("player on non-floor cell %v", s.Player.Pos)
				}
				if s.World.HasCoin(s.Player.Pos) {
					t.Fatalf("coin left under the player at %v", s.Player.Pos)
				}
				if s.Player.HP < 0 {
					t.Fatalf("HP went negative: %d", s.Player.HP)
				}
				if s.Message == "" {
					t.Fatal("every move must narrate")
				}
			}
		})
	}
}

func TestFinalize(t *testing.T) {
	if got := finalize(nil, nil); got != MsgMove {
		t.Errorf("finalize(nil, nil) = %q, expected %q", got, MsgMove)
	}
	if got := finalize([]string{"a", "b"}, []string{"c"}); got != "a b | c" {
		t.Errorf("finalize() = %q, expected %q", got, "a b | c")
	}
	if !strings.Contains(sealedNote(3), "3 more coins") {
		t.Errorf("sealedNote(3) = %q", sealedNote(3))
	}
}
