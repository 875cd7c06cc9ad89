package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDungeon loads the dungeon configuration.
// Search order: customPath -> ~/.dungeon/configs/dungeon.yaml -> ./configs/dungeon.yaml -> embedded default
func LoadDungeon(customPath string) (DungeonConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DungeonConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseDungeon(data)
		if err != nil {
			return DungeonConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dungeon.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseDungeon(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "dungeon.yaml")); err == nil {
		if cfg, err := parseDungeon(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseDungeon(defaultDungeonYAML)
	if err != nil {
		return DefaultDungeonConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseDungeon decodes YAML on top of the built-in defaults, so a file that
// only sets a few keys keeps sane values for the rest.
func parseDungeon(data []byte) (DungeonConfig, error) {
	cfg := DefaultDungeonConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DungeonConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return DungeonConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dungeon", "configs", filename)
}

// ApplyDungeonPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyDungeonPreset(cfg *DungeonConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.HP += 5
		cfg.Rules.EncounterProbAdjacent *= 0.5
		cfg.Rules.EncounterProbOnTile = 0.75
		cfg.Rules.CoinSenseRadius += 2
		cfg.Rules.MonstersFlee = true
	case DifficultyHard:
		cfg.Player.HP = max(1, cfg.Player.HP-4)
		cfg.Rules.EncounterProbAdjacent = min(1, cfg.Rules.EncounterProbAdjacent+0.15)
		cfg.Rules.EncounterProbOnTile = 1
		cfg.Rules.DamageOnTile++
		cfg.Placement.Monsters += 2
	}
}
