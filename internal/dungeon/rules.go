package dungeon

import "github.com/vovakirdan/dungeon-crawl/internal/config"

// Rules holds the tunable constants of the turn engine.
type Rules struct {
	EncounterProbAdjacent float64
	EncounterProbOnTile   float64
	DamageAdjacent        int
	DamageOnTile          int
	CoinSenseRadius       int
	ExitSenseRadius       int
	MonstersFlee          bool // A monster that lands a hit leaves the board
}

// DefaultRules returns the rules of a normal-difficulty game.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultDungeonConfig().Rules)
}

// RulesFromConfig copies the rules section of a loaded config.
func RulesFromConfig(c config.RulesConfig) Rules {
	return Rules{
		EncounterProbAdjacent: c.EncounterProbAdjacent,
		EncounterProbOnTile:   c.EncounterProbOnTile,
		DamageAdjacent:        c.DamageAdjacent,
		DamageOnTile:          c.DamageOnTile,
		CoinSenseRadius:       c.CoinSenseRadius,
		ExitSenseRadius:       c.ExitSenseRadius,
		MonstersFlee:          c.MonstersFlee,
	}
}
