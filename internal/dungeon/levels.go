package dungeon

import (
	"fmt"

	"github.com/vovakirdan/dungeon-crawl/internal/config"
	"github.com/vovakirdan/dungeon-crawl/internal/core"
)

// Level is a playable map. Fixed levels use the coins and monsters drawn in
// the layout; random levels drop them and scatter new ones on every reset.
type Level struct {
	ID     string
	Name   string
	Layout []string
	Random bool
}

var cryptLayout = []string{
	"###############",
	"#@..#.....$...#",
	"#.#.#.###.###.#",
	"#.#...#.....#.#",
	"#.#####.#M#.#.#",
	"#$....#.#...#.#",
	"###.#.#.#.###.#",
	"#M..#...#..$#E#",
	"###############",
}

var cellarLayout = []string{
	"##########",
	"#@...#..$#",
	"#.##.#.#.#",
	"#..$...#M#",
	"####.###.#",
	"#E.....$.#",
	"##########",
}

// Levels lists every level registered with the registry.
var Levels = []Level{
	{ID: "dungeon", Name: "The Old Crypt", Layout: cryptLayout},
	{ID: "dungeon_random", Name: "The Old Crypt (Shuffled)", Layout: cryptLayout, Random: true},
	{ID: "dungeon_cellar", Name: "The Cellar", Layout: cellarLayout},
}

// GetLevel returns the level with the given ID.
func GetLevel(id string) (*Level, bool) {
	for i := range Levels {
		if Levels[i].ID == id {
			return &Levels[i], true
		}
	}
	return nil, false
}

// Build parses the layout and, for random levels, re-places coins and
// monsters using placement and rng.
func (l Level) Build(placement config.PlacementConfig, rng RNG) (*World, core.Point, error) {
	w, start, err := ParseWorld(l.Layout)
	if err != nil {
		return nil, core.Point{}, fmt.Errorf("dungeon: cannot build level %q: %w", l.ID, err)
	}
	if l.Random {
		w.Populate(start, placement.Coins, placement.Monsters, rng)
	}
	return w, start, nil
}
