package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dungeon-crawl/internal/core"
	"github.com/vovakirdan/dungeon-crawl/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a run, Tab for the
scoreboard. When a run ends you return to the menu.

Examples:
  dungeon menu
  dungeon menu --difficulty easy
  dungeon menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	store := openStore(newLogger(os.Stderr, "dungeon"))
	if store != nil {
		defer store.Close()
	}

	logFile := playLogFile()
	defer logFile.Close()
	logger := newLogger(logFile, "dungeon-play")

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg.ScreenW, cfg.ScreenH = menuResult.Width, menuResult.Height

		switch {
		case menuResult.Quit:
			return nil

		case menuResult.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		sess, err := newSession(menuResult.LevelID, store, logger)
		if err != nil {
			return err
		}
		res, err := tui.Run(cmd.Context(), sess, cfg)
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cannot run game: %w", err)
		}
		if res.Interrupted {
			return nil
		}
	}
}
