package dungeon

import (
	"strings"
	"testing"

	"github.com/vovakirdan/dungeon-crawl/internal/config"
	"github.com/vovakirdan/dungeon-crawl/internal/core"
	"github.com/vovakirdan/dungeon-crawl/internal/registry"
)

func TestLevelsRegistered(t *testing.T) {
	for _, lvl := range Levels {
		if !registry.Exists(lvl.ID) {
			t.Errorf("level %q is not registered", lvl.ID)
		}
		if _, _, err := lvl.Build(config.DefaultDungeonConfig().Placement, NewRNG(1)); err != nil {
			t.Errorf("level %q does not build: %v", lvl.ID, err)
		}
	}
	if _, ok := GetLevel("nope"); ok {
		t.Error("GetLevel() should not find unknown IDs")
	}
}

func TestRandomLevelUsesPlacement(t *testing.T) {
	lvl, ok := GetLevel("dungeon_random")
	if !ok {
		t.Fatal("dungeon_random not found")
	}
	placement := config.PlacementConfig{Coins: 2, Monsters: 5}
	w, _, err := lvl.Build(placement, NewRNG(3))
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if w.CoinsLeft() != 2 || w.MonsterCount() != 5 {
		t.Errorf("got %d coins and %d monsters, expected 2 and 5", w.CoinsLeft(), w.MonsterCount())
	}
}

func TestGameAdapter(t *testing.T) {
	g, err := registry.Create("dungeon")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	dg := g.(*Game)
	if err := dg.ResetWith(config.DefaultDungeonConfig(), NewRNG(5)); err != nil {
		t.Fatalf("ResetWith() failed: %v", err)
	}

	if st := g.State(); st.GameOver || st.Outcome != "playing" {
		t.Errorf("fresh state = %+v", st)
	}
	if !strings.Contains(dg.View().Message, "The Old Crypt") {
		t.Errorf("opening message = %q", dg.View().Message)
	}

	if res := g.Handle("help"); res.Message != HelpText {
		t.Errorf("Handle(help) = %q", res.Message)
	}
	if _, ok := g.HandleKey("x"); ok {
		t.Error("HandleKey(x) should report an unbound key")
	}
	res, ok := g.HandleKey("right")
	if !ok || res.State.Turns != 1 {
		t.Errorf("HandleKey(right) = %+v, %v; expected one committed move", res, ok)
	}

	res = g.Handle("quit")
	if !res.State.GameOver || res.State.Won || res.State.Outcome != "quit" {
		t.Errorf("after quit state = %+v", res.State)
	}

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if !strings.Contains(dst.Row(0), "The Old Crypt") {
		t.Errorf("HUD = %q", dst.Row(0))
	}
}

func TestGameResetFromConfigFile(t *testing.T) {
	SetConfigPath("testdata/missing.yaml")
	defer SetConfigPath("")

	g := New(Levels[0])
	if err := g.Reset(core.RuntimeConfig{Seed: 1}); err == nil {
		t.Error("Reset() should fail when the config file is missing")
	}

	SetConfigPath("")
	SetDifficultyPreset(config.DifficultyEasy)
	defer SetDifficultyPreset(config.DifficultyNormal)
	if err := g.Reset(core.RuntimeConfig{Seed: 1}); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if hp := g.View().HP; hp != config.DefaultDungeonConfig().Player.HP+5 {
		t.Errorf("HP = %d, expected the easy bonus", hp)
	}
}
