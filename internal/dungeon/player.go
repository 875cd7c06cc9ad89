package dungeon

import "github.com/vovakirdan/dungeon-crawl/internal/core"

// DeathThreshold is the HP at which the player dies. HP never drops below it.
const DeathThreshold = 0

// Player is the adventurer.
type Player struct {
	Pos       core.Point
	HP        int
	Gold      int
	Inventory []string // Item labels in pickup order
}

// NewPlayer creates a player at pos. The inventory is copied.
func NewPlayer(pos core.Point, hp int, inventory []string) *Player {
	return &Player{
		Pos:       pos,
		HP:        hp,
		Inventory: append([]string(nil), inventory...),
	}
}

// Damage subtracts n HP, clamped at DeathThreshold, and reports whether the
// player died.
func (p *Player) Damage(n int) bool {
	p.HP = max(DeathThreshold, p.HP-n)
	return !p.Alive()
}

// Alive reports whether the player is above the death threshold.
func (p *Player) Alive() bool {
	return p.HP > DeathThreshold
}
