package config

import (
	_ "embed"
)

//go:embed defaults/dungeon.yaml
var defaultDungeonYAML []byte

// DefaultDungeonConfig returns the built-in dungeon configuration.
// It matches defaults/dungeon.yaml and is used when the embedded file
// cannot be parsed.
func DefaultDungeonConfig() DungeonConfig {
	return DungeonConfig{
		Player: PlayerConfig{
			HP: 10,
		},
		Rules: RulesConfig{
			EncounterProbAdjacent: 0.35,
			EncounterProbOnTile:   0.90,
			DamageAdjacent:        1,
			DamageOnTile:          2,
			CoinSenseRadius:       4,
			ExitSenseRadius:       6,
			MonstersFlee:          false,
		},
		Placement: PlacementConfig{
			Coins:    4,
			Monsters: 3,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `dungeon config`
// style dumps or for seeding a user config file.
func DefaultYAML() []byte {
	return defaultDungeonYAML
}
