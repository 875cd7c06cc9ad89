package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dungeon-crawl/internal/console"
	"github.com/vovakirdan/dungeon-crawl/internal/core"
)

var (
	flagNoClear bool
	flagWidth   int
	flagHeight  int
)

var consoleCmd = &cobra.Command{
	Use:   "console [level]",
	Short: "Play a level by typing commands",
	Long: `Play a level in line mode: the map is printed, you type a command and
press Enter. Works over pipes and dumb terminals.

Commands:
  n, s, e, w      - Move north, south, east, west
  look, map       - Print the map again
  inv, inventory  - Show your inventory
  help, ?         - List commands
  quit, exit, q   - Give up the run

End of input counts as quit.

Examples:
  dungeon console
  dungeon console dungeon_cellar --seed 7
  printf 'e\ne\ns\n' | dungeon console`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().BoolVar(&flagNoClear, "no-clear", false, "Do not clear the screen between turns")
	consoleCmd.Flags().IntVar(&flagWidth, "width", 0, "Frame width (default: terminal width, max 100)")
	consoleCmd.Flags().IntVar(&flagHeight, "height", 0, "Frame height (default: 40)")
}

func runConsole(cmd *cobra.Command, args []string) error {
	levelID, err := levelArg(args)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, "dungeon")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sess, err := newSession(levelID, store, logger)
	if err != nil {
		return err
	}
	if err := sess.Start(cmd.Context(), core.RuntimeConfig{Seed: flagSeed}); err != nil {
		return err
	}
	defer sess.Close()

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	width := flagWidth
	if width <= 0 && interactive {
		width, _ = terminalSize()
		width = min(width, 100)
	}

	runner := console.New(sess, os.Stdin, os.Stdout, console.Options{
		Width:  width,
		Height: flagHeight,
		Clear:  interactive && !flagNoClear,
	})

	_, err = runner.Run(cmd.Context())
	return err
}
