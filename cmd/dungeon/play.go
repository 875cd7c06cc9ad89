package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dungeon-crawl/internal/console"
	"github.com/vovakirdan/dungeon-crawl/internal/core"
	"github.com/vovakirdan/dungeon-crawl/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level in the terminal UI",
	Long: `Start a run of the given level (default: dungeon).

Controls:
  Arrows/WASD/hjkl - Move
  I                - Inventory
  M                - Look around
  ?                - Command list
  Tab              - Show all keys
  R                - New run (after game over)
  Esc              - Leave
  Q / Ctrl+C       - Quit

The run ends when you escape through the gate, die, or quit. Finished runs
are recorded to the scoreboard.

Examples:
  dungeon play
  dungeon play dungeon_cellar
  dungeon play dungeon_random --difficulty hard
  dungeon play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runPlay(cmd *cobra.Command, args []string) error {
	levelID, err := levelArg(args)
	if err != nil {
		return err
	}

	// The UI owns the terminal, so the session logs to a file.
	logFile := playLogFile()
	defer logFile.Close()
	logger := newLogger(logFile, "dungeon-play")

	store := openStore(newLogger(os.Stderr, "dungeon"))
	if store != nil {
		defer store.Close()
	}

	sess, err := newSession(levelID, store, logger)
	if err != nil {
		return err
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	res, err := tui.Run(cmd.Context(), sess, cfg)
	if err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}

	if res.State.GameOver {
		printSummary(res.State)
	}
	return nil
}

// printSummary prints the closing lines after the UI has left the screen.
func printSummary(st core.GameState) {
	if st.Won {
		fmt.Println(console.MsgEscaped)
	}
	fmt.Printf("Gold: %d  Turns: %d  Outcome: %s\n", st.Score, st.Turns, st.Outcome)
	fmt.Println(console.MsgFarewell)
}
