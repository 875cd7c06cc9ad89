package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parseDungeon(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}

	want := DefaultDungeonConfig()
	if cfg.Player.HP != want.Player.HP {
		t.Errorf("Player.HP = %d, expected %d", cfg.Player.HP, want.Player.HP)
	}
	if cfg.Rules != want.Rules {
		t.Errorf("Rules = %+v, expected %+v", cfg.Rules, want.Rules)
	}
	if cfg.Placement != want.Placement {
		t.Errorf("Placement = %+v, expected %+v", cfg.Placement, want.Placement)
	}
}

func TestLoadDungeonCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dungeon.yaml")
	data := []byte(`
player:
  hp: 3
  inventory: [torch, rope]
rules:
  encounter_prob_adjacent: 1.0
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadDungeon(path)
	if err != nil {
		t.Fatalf("LoadDungeon() failed: %v", err)
	}

	if cfg.Player.HP != 3 {
		t.Errorf("Player.HP = %d, expected 3", cfg.Player.HP)
	}
	if len(cfg.Player.Inventory) != 2 || cfg.Player.Inventory[0] != "torch" {
		t.Errorf("Player.Inventory = %v, expected [torch rope]", cfg.Player.Inventory)
	}
	if cfg.Rules.EncounterProbAdjacent != 1.0 {
		t.Errorf("EncounterProbAdjacent = %v, expected 1.0", cfg.Rules.EncounterProbAdjacent)
	}
	// Keys missing from the file keep their defaults
	if cfg.Rules.DamageOnTile != 2 {
		t.Errorf("DamageOnTile = %d, expected default 2", cfg.Rules.DamageOnTile)
	}
}

func TestLoadDungeonErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "player: [hp"},
		{"zero hp", "player:\n  hp: 0\n"},
		{"probability above one", "rules:\n  encounter_prob_on_tile: 1.5\n"},
		{"negative damage", "rules:\n  damage_adjacent: -1\n"},
		{"negative placement", "placement:\n  coins: -2\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatalf("WriteFile() failed: %v", err)
			}
			if _, err := LoadDungeon(path); err == nil {
				t.Error("LoadDungeon() should fail")
			}
		})
	}

	if _, err := LoadDungeon(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadDungeon() should fail for a missing custom path")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"normal", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownPreset) {
				t.Errorf("ParsePreset(%q) error = %v, expected ErrUnknownPreset", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, %v; expected %q", tc.in, got, err, tc.want)
		}
	}
}

func TestApplyDungeonPreset(t *testing.T) {
	base := DefaultDungeonConfig()

	easy := DefaultDungeonConfig()
	ApplyDungeonPreset(&easy, DifficultyEasy)
	if easy.Player.HP <= base.Player.HP {
		t.Errorf("easy HP = %d, expected more than %d", easy.Player.HP, base.Player.HP)
	}
	if easy.Rules.EncounterProbAdjacent >= base.Rules.EncounterProbAdjacent {
		t.Error("easy should lower the adjacent encounter chance")
	}
	if !easy.Rules.MonstersFlee {
		t.Error("easy should make monsters flee after a hit")
	}

	hard := DefaultDungeonConfig()
	ApplyDungeonPreset(&hard, DifficultyHard)
	if hard.Player.HP >= base.Player.HP || hard.Player.HP < 1 {
		t.Errorf("hard HP = %d, expected in [1, %d)", hard.Player.HP, base.Player.HP)
	}
	if hard.Rules.EncounterProbOnTile != 1 {
		t.Errorf("hard on-tile chance = %v, expected 1", hard.Rules.EncounterProbOnTile)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset produced invalid config: %v", err)
	}

	normal := DefaultDungeonConfig()
	ApplyDungeonPreset(&normal, DifficultyNormal)
	if normal.Rules != base.Rules || normal.Player.HP != base.Player.HP {
		t.Error("normal preset should not change the config")
	}
}
