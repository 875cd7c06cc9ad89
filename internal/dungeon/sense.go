package dungeon

import (
	"fmt"

	"github.com/vovakirdan/dungeon-crawl/internal/core"
)

// DirectionHint names the dominant axis of the vector from -> to.
// Ties go to the horizontal axis; a zero vector reads as north.
func DirectionHint(from, to core.Point) string {
	dx, dy := to.X-from.X, to.Y-from.Y
	if core.Abs(dx) >= core.Abs(dy) && dx != 0 {
		if dx > 0 {
			return East.String()
		}
		return West.String()
	}
	if dy > 0 {
		return South.String()
	}
	return North.String()
}

// nearest returns the target closest to src by Manhattan distance. Ties go
// to the earliest target, so callers pass targets in row-major order.
func nearest(src core.Point, targets []core.Point) (core.Point, int, bool) {
	var (
		best  core.Point
		bestD = -1
	)
	for _, t := range targets {
		if d := src.Manhattan(t); bestD < 0 || d < bestD {
			best, bestD = t, d
		}
	}
	return best, bestD, bestD >= 0
}

// senses returns the ambient hints for the player's position.
func (e *Engine) senses(s *GameState) []string {
	pos := s.Player.Pos
	var hints []string
	if c, d, ok := nearest(pos, s.World.Coins()); ok && d <= e.rules.CoinSenseRadius {
		hints = append(hints, fmt.Sprintf("You hear faint clinks to the %s.", DirectionHint(pos, c)))
	}
	if exit := s.World.Exit(); pos.Manhattan(exit) <= e.rules.ExitSenseRadius {
		hints = append(hints, fmt.Sprintf("A cool draft from the %s.", DirectionHint(pos, exit)))
	}
	return hints
}
