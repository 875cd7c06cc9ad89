package dungeon

import (
	"fmt"
	"strings"
)

// Narration emitted by the engine.
const (
	MsgBump    = "You bump into a wall."
	MsgDeath   = "A monster mauls you! You died!"
	MsgPickup  = "You pick up a coin!"
	MsgVictory = "The gate shimmers open... You escape! Victory!"
	MsgSkitter = "You hear skittering nearby..."
	MsgMove    = "You move."
	MsgQuit    = "You gave up. Game over."
	MsgLook    = "You look around..."
)

const hintSeparator = " | "

// Engine resolves commands against a GameState. It keeps no per-session
// state besides its random source, so one engine serves one session.
type Engine struct {
	rules Rules
	rng   RNG
}

// NewEngine creates an engine with the given rules and random source.
func NewEngine(rules Rules, rng RNG) *Engine {
	return &Engine{rules: rules, rng: rng}
}

// Rules returns the engine's rule constants.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Handle parses raw input and applies it. Input is ignored once the game is over.
func (e *Engine) Handle(s *GameState, raw string) {
	e.Apply(s, ParseCommand(raw))
}

// Apply runs an already parsed command.
func (e *Engine) Apply(s *GameState, cmd Command) {
	if s.IsOver {
		return
	}

	if dir, ok := cmd.Direction(); ok {
		e.Move(s, dir)
		return
	}

	switch cmd.Kind {
	case CmdQuit:
		s.finish(OutcomeQuit)
		s.Message = MsgQuit
	case CmdHelp:
		s.Message = HelpText
	case CmdInventory:
		s.Message = inventoryText(s.Player.Inventory)
	case CmdLook:
		s.Message = MsgLook
	default:
		s.Message = fmt.Sprintf("Unknown command: '%s'. Type 'help' for options.", cmd.Raw)
	}
}

// Move steps the player one cell in dir.
func (e *Engine) Move(s *GameState, dir Direction) {
	dx, dy := dir.Delta()
	e.Step(s, dx, dy)
}

// Step resolves one move by (dx, dy). The order of checks is fixed:
// bump, commit, collision, pickup, exit gate, monster tick, encounter, senses.
func (e *Engine) Step(s *GameState, dx, dy int) {
	if s.IsOver {
		return
	}
	w, p := s.World, s.Player

	target := p.Pos.Add(dx, dy)
	if !w.IsFloor(target) {
		s.Message = MsgBump
		return
	}
	p.Pos = target
	s.Turns++

	var notes []string

	collided := w.HasMonster(target)
	if collided {
		dmg := e.rules.DamageOnTile
		if p.Damage(dmg) {
			e.die(s)
			return
		}
		notes = append(notes, fmt.Sprintf("You collide with a monster! (-%d HP)", dmg))
	}

	if w.takeCoin(target) {
		p.Gold++
		notes = append(notes, MsgPickup)
	}

	if target == w.exit {
		left := w.CoinsLeft()
		if left == 0 {
			s.finish(OutcomeWon)
			notes = append(notes, MsgVictory)
			s.Message = finalize(notes, nil)
			return
		}
		notes = append(notes, sealedNote(left))
		if c, _, ok := nearest(target, w.Coins()); ok {
			notes = append(notes, fmt.Sprintf("Coins jingle to the %s.", DirectionHint(target, c)))
		}
		s.Message = finalize(notes, nil)
		return
	}

	e.tickMonsters(w)

	note, dead := e.encounter(s, !collided)
	if dead {
		return
	}
	if note != "" {
		notes = append(notes, note)
	}

	s.Message = finalize(notes, e.senses(s))
}

func (e *Engine) die(s *GameState) {
	s.finish(OutcomeLost)
	s.Message = MsgDeath
}

func sealedNote(left int) string {
	noun := "coins"
	if left == 1 {
		noun = "coin"
	}
	return fmt.Sprintf("The exit gate is sealed. Collect %d more %s.", left, noun)
}

func finalize(notes, hints []string) string {
	msg := MsgMove
	if len(notes) > 0 {
		msg = strings.Join(notes, " ")
	}
	if len(hints) > 0 {
		msg += hintSeparator + strings.Join(hints, " ")
	}
	return msg
}

func inventoryText(items []string) string {
	if len(items) == 0 {
		return "Inventory: (empty)"
	}
	return "Inventory: " + strings.Join(items, ", ")
}
