// Package config provides YAML-based configuration loading and difficulty
// presets for the dungeon.
package config

import (
	"errors"
	"fmt"
)

// DungeonConfig contains all tunable configuration for a dungeon run.
type DungeonConfig struct {
	Player    PlayerConfig    `yaml:"player"`
	Rules     RulesConfig     `yaml:"rules"`
	Placement PlacementConfig `yaml:"placement"`
}

// PlayerConfig defines the player's starting stats.
type PlayerConfig struct {
	HP        int      `yaml:"hp"`
	Inventory []string `yaml:"inventory"` // Starting items, in display order
}

// RulesConfig defines the turn engine constants.
type RulesConfig struct {
	EncounterProbAdjacent float64 `yaml:"encounter_prob_adjacent"` // Hit chance for a monster next to the player
	EncounterProbOnTile   float64 `yaml:"encounter_prob_on_tile"`  // Hit chance for a monster on the player's cell
	DamageAdjacent        int     `yaml:"damage_adjacent"`
	DamageOnTile          int     `yaml:"damage_on_tile"`
	CoinSenseRadius       int     `yaml:"coin_sense_radius"`
	ExitSenseRadius       int     `yaml:"exit_sense_radius"`
	MonstersFlee          bool    `yaml:"monsters_flee"` // Remove a monster after it lands a hit
}

// PlacementConfig defines how many coins and monsters random levels get.
type PlacementConfig struct {
	Coins    int `yaml:"coins"`
	Monsters int `yaml:"monsters"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ErrUnknownPreset is returned for difficulty names that are not recognized.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("%w %q (want easy, normal or hard)", ErrUnknownPreset, name)
	}
}

// Validate reports the first configuration value outside its legal range.
func (c DungeonConfig) Validate() error {
	switch {
	case c.Player.HP <= 0:
		return fmt.Errorf("config: player.hp must be positive, got %d", c.Player.HP)
	case c.Rules.EncounterProbAdjacent < 0 || c.Rules.EncounterProbAdjacent > 1:
		return fmt.Errorf("config: rules.encounter_prob_adjacent must be in [0, 1], got %v", c.Rules.EncounterProbAdjacent)
	case c.Rules.EncounterProbOnTile < 0 || c.Rules.EncounterProbOnTile > 1:
		return fmt.Errorf("config: rules.encounter_prob_on_tile must be in [0, 1], got %v", c.Rules.EncounterProbOnTile)
	case c.Rules.DamageAdjacent < 0 || c.Rules.DamageOnTile < 0:
		return errors.New("config: rules damage values cannot be negative")
	case c.Rules.CoinSenseRadius < 0 || c.Rules.ExitSenseRadius < 0:
		return errors.New("config: sense radii cannot be negative")
	case c.Placement.Coins < 0 || c.Placement.Monsters < 0:
		return errors.New("config: placement counts cannot be negative")
	}
	return nil
}
