// Package dungeon implements the turn-based dungeon crawl: the grid world,
// the player, command parsing, the turn engine that resolves one move at a
// time, and a registry.Game adapter used by the terminal front ends.
//
// Everything in this package is pure: no I/O, no clocks, and all randomness
// comes from an injected RNG.
package dungeon

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/dungeon-crawl/internal/core"
)

// Tile is the static terrain of a cell.
type Tile rune

const (
	TileFloor Tile = '.'
	TileWall  Tile = '#'
)

// Layout glyphs accepted by ParseWorld.
const (
	glyphCoin    = '$'
	glyphMonster = 'M'
	glyphExit    = 'E'
	glyphStart   = '@'
)

// ErrInvalidLayout is wrapped by every ParseWorld failure.
var ErrInvalidLayout = errors.New("dungeon: invalid layout")

// World is the grid plus the things standing on it.
// Coins, monsters and the exit always sit on in-bounds floor cells.
type World struct {
	width, height int
	tiles         [][]Tile
	coins         mapset.Set[core.Point]
	monsters      mapset.Set[core.Point]
	exit          core.Point
}

// ParseWorld builds a world from text rows. Short rows are padded with floor.
// It returns the world and the player start: the '@' cell if present,
// otherwise the first free floor cell in row-major order.
func ParseWorld(layout []string) (*World, core.Point, error) {
	if len(layout) == 0 {
		return nil, core.Point{}, fmt.Errorf("%w: no rows", ErrInvalidLayout)
	}

	width := 0
	for _, row := range layout {
		width = max(width, len([]rune(row)))
	}
	if width == 0 {
		return nil, core.Point{}, fmt.Errorf("%w: rows are empty", ErrInvalidLayout)
	}

	w := &World{
		width:    width,
		height:   len(layout),
		tiles:    make([][]Tile, len(layout)),
		coins:    mapset.New[core.Point](),
		monsters: mapset.New[core.Point](),
	}

	var (
		start             core.Point
		hasStart, hasExit bool
	)
	for y, row := range layout {
		w.tiles[y] = make([]Tile, width)
		for x := range w.tiles[y] {
			w.tiles[y][x] = TileFloor
		}
		for x, r := range []rune(row) {
			p := core.Pt(x, y)
			switch r {
			case '#':
				w.tiles[y][x] = TileWall
			case '.':
			case glyphCoin:
				w.coins.Put(p)
			case glyphMonster:
				w.monsters.Put(p)
			case glyphExit:
				if hasExit {
					return nil, core.Point{}, fmt.Errorf("%w: second exit at (%d, %d)", ErrInvalidLayout, x, y)
				}
				w.exit, hasExit = p, true
			case glyphStart:
				if hasStart {
					return nil, core.Point{}, fmt.Errorf("%w: second start at (%d, %d)", ErrInvalidLayout, x, y)
				}
				start, hasStart = p, true
			default:
				return nil, core.Point{}, fmt.Errorf("%w: unknown glyph %q at (%d, %d)", ErrInvalidLayout, r, x, y)
			}
		}
	}

	if !hasExit {
		return nil, core.Point{}, fmt.Errorf("%w: no exit", ErrInvalidLayout)
	}
	if !hasStart {
		var ok bool
		if start, ok = w.firstFree(); !ok {
			return nil, core.Point{}, fmt.Errorf("%w: no floor cell for the player", ErrInvalidLayout)
		}
	}
	return w, start, nil
}

// firstFree returns the first floor cell, row-major, that holds nothing.
func (w *World) firstFree() (core.Point, bool) {
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			p := core.Pt(x, y)
			if w.IsFloor(p) && p != w.exit && !w.coins.Has(p) && !w.monsters.Has(p) {
				return p, true
			}
		}
	}
	return core.Point{}, false
}

// Width returns the number of columns.
func (w *World) Width() int { return w.width }

// Height returns the number of rows.
func (w *World) Height() int { return w.height }

// InBounds reports whether (x, y) lies on the grid.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.width && y < w.height
}

// IsWall is true iff (x, y) is in bounds and a wall.
func (w *World) IsWall(x, y int) bool {
	return w.InBounds(x, y) && w.tiles[y][x] == TileWall
}

// IsFloor is true iff p is in bounds and not a wall.
func (w *World) IsFloor(p core.Point) bool {
	return w.InBounds(p.X, p.Y) && w.tiles[p.Y][p.X] == TileFloor
}

// Exit returns the exit gate position.
func (w *World) Exit() core.Point { return w.exit }

// HasCoin reports whether a coin lies at p.
func (w *World) HasCoin(p core.Point) bool { return w.coins.Has(p) }

// HasMonster reports whether a monster stands at p.
func (w *World) HasMonster(p core.Point) bool { return w.monsters.Has(p) }

// CoinsLeft returns the number of uncollected coins.
func (w *World) CoinsLeft() int { return w.coins.Size() }

// MonsterCount returns the number of monsters on the board.
func (w *World) MonsterCount() int { return w.monsters.Size() }

// Coins returns coin positions in row-major order.
func (w *World) Coins() []core.Point { return sortedPoints(w.coins) }

// Monsters returns monster positions in row-major order.
func (w *World) Monsters() []core.Point { return sortedPoints(w.monsters) }

// AddCoin places a coin on a floor cell other than the exit.
func (w *World) AddCoin(p core.Point) error {
	if err := w.checkPlacement(p); err != nil {
		return err
	}
	w.coins.Put(p)
	return nil
}

// AddMonster places a monster on a floor cell.
func (w *World) AddMonster(p core.Point) error {
	if !w.IsFloor(p) {
		return fmt.Errorf("dungeon: cannot place monster at (%d, %d): not a floor cell", p.X, p.Y)
	}
	w.monsters.Put(p)
	return nil
}

func (w *World) checkPlacement(p core.Point) error {
	if !w.IsFloor(p) {
		return fmt.Errorf("dungeon: cannot place coin at (%d, %d): not a floor cell", p.X, p.Y)
	}
	if p == w.exit {
		return fmt.Errorf("dungeon: cannot place coin on the exit")
	}
	return nil
}

// takeCoin removes the coin at p and reports whether there was one.
func (w *World) takeCoin(p core.Point) bool {
	if !w.coins.Has(p) {
		return false
	}
	w.coins.Remove(p)
	return true
}

func (w *World) removeMonster(p core.Point) {
	w.monsters.Remove(p)
}

// walkable returns the in-bounds, non-wall neighbours of p in E, W, S, N order.
func (w *World) walkable(p core.Point) []core.Point {
	out := make([]core.Point, 0, 4)
	for _, n := range p.Neighbors() {
		if w.IsFloor(n) {
			out = append(out, n)
		}
	}
	return out
}

// Populate replaces coins and monsters with a random placement.
// Eligible cells are floor cells other than start and the exit; counts larger
// than what fits are clamped, negative counts count as zero.
func (w *World) Populate(start core.Point, coinCount, monsterCount int, rng RNG) {
	var cells []core.Point
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			p := core.Pt(x, y)
			if w.IsFloor(p) && p != start && p != w.exit {
				cells = append(cells, p)
			}
		}
	}
	rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	nc := core.Clamp(coinCount, 0, len(cells))
	nm := core.Clamp(monsterCount, 0, len(cells)-nc)

	w.coins = mapset.New[core.Point]()
	for _, p := range cells[:nc] {
		w.coins.Put(p)
	}
	w.monsters = mapset.New[core.Point]()
	for _, p := range cells[nc : nc+nm] {
		w.monsters.Put(p)
	}
}

// DefaultWorld returns the hand-authored crypt with its coins, monsters and
// player start.
func DefaultWorld() (*World, core.Point) {
	w, start, err := ParseWorld(cryptLayout)
	if err != nil {
		panic(err) // the built-in layout is known to parse
	}
	return w, start
}

func sortedPoints(s mapset.Set[core.Point]) []core.Point {
	out := make([]core.Point, 0, s.Size())
	s.Each(func(p core.Point) {
		out = append(out, p)
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}
