package dungeon

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/dungeon-crawl/internal/core"
)

// tickMonsters moves every monster at most one cell. Monsters resolve in
// row-major order; each takes the first of its shuffled walkable neighbours
// that no earlier monster claimed this tick, or stays put.
func (e *Engine) tickMonsters(w *World) {
	claimed := mapset.New[core.Point]()
	for _, m := range w.Monsters() {
		options := w.walkable(m)
		e.rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		dest := m
		for _, o := range options {
			if !claimed.Has(o) {
				dest = o
				break
			}
		}
		claimed.Put(dest)
	}
	w.monsters = claimed
}

// encounter rolls for one monster next to (or, if allowOnTile, on) the
// player. It returns the note to narrate and whether the player died; on
// death the state is already finished.
func (e *Engine) encounter(s *GameState, allowOnTile bool) (string, bool) {
	pos := s.Player.Pos

	var near []core.Point
	for _, m := range s.World.Monsters() {
		switch d := m.Manhattan(pos); {
		case d == 1, d == 0 && allowOnTile:
			near = append(near, m)
		}
	}
	if len(near) == 0 {
		return "", false
	}

	m := near[e.rng.Intn(len(near))]
	prob, dmg := e.rules.EncounterProbAdjacent, e.rules.DamageAdjacent
	if m == pos {
		prob, dmg = e.rules.EncounterProbOnTile, e.rules.DamageOnTile
	}

	if e.rng.Float64() >= prob {
		return MsgSkitter, false
	}

	if e.rules.MonstersFlee {
		s.World.removeMonster(m)
	}
	if s.Player.Damage(dmg) {
		e.die(s)
		return "", true
	}
	return fmt.Sprintf("A monster claws you! (-%d HP)", dmg), false
}
