// dungeon is a turn-based dungeon crawl for the terminal.
//
// Usage:
//
//	dungeon list               - List available levels
//	dungeon play [level]       - Play a level in the terminal UI
//	dungeon console [level]    - Play a level by typing commands
//	dungeon menu               - Pick levels interactively
//	dungeon scores [level]     - Show the scoreboard for a level
//	dungeon serve              - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for a reproducible run
//	--db <path>           - Set database path (default: ~/.dungeon/runs.db)
//	--config <path>       - Use a custom dungeon config YAML
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dungeon-crawl/internal/config"
	"github.com/vovakirdan/dungeon-crawl/internal/dungeon"
	"github.com/vovakirdan/dungeon-crawl/internal/registry"
	"github.com/vovakirdan/dungeon-crawl/internal/session"
	"github.com/vovakirdan/dungeon-crawl/internal/storage"
	"github.com/vovakirdan/dungeon-crawl/internal/telemetry"
)

const defaultLevel = "dungeon"

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool

	// Resolved from flagDifficulty before any subcommand runs
	difficulty = config.DifficultyNormal
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := newLogger(os.Stderr, "dungeon")

	// A missing .env is normal; the variables may be set directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn(".env file not loaded", "error", err)
	}

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("telemetry setup failed, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Warn("telemetry shutdown failed", "error", err)
			}
		}()
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "dungeon",
	Short: "Dungeon - a turn-based dungeon crawl in your terminal",
	Long: `Dungeon is a small turn-based dungeon crawl. Walk the grid, collect
every coin to unseal the gate, dodge the monsters, and escape.

Available commands:
  list     - Show all available levels
  play     - Play a level in the terminal UI
  console  - Play a level by typing commands
  menu     - Interactive level picker
  scores   - View the scoreboard
  serve    - Start SSH server for remote play

Examples:
  dungeon play
  dungeon play dungeon_random --difficulty hard
  dungeon console --seed 42
  dungeon serve --ssh :2222
  dungeon scores dungeon`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: applyGlobalFlags,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dungeon/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom dungeon config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every turn")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyGlobalFlags hands the config flags to the dungeon package before any
// level is created.
func applyGlobalFlags(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	difficulty = preset

	dungeon.SetConfigPath(flagConfig)
	dungeon.SetDifficultyPreset(preset)
	return nil
}

// newLogger creates a charm logger in the style used across the commands.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// levelArg returns the level named in args, or the default level.
func levelArg(args []string) (string, error) {
	id := defaultLevel
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown level %q (run 'dungeon list' to see available levels)", id)
	}
	return id, nil
}

// openStore opens the runs database. Play works without it, so failures
// are logged and nil is returned.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be recorded", "error", err)
		return nil
	}
	return store
}

// newSession wraps a fresh instance of levelID for the local player.
func newSession(levelID string, store *storage.Store, logger *log.Logger) (*session.Session, error) {
	game, err := registry.Create(levelID)
	if err != nil {
		return nil, err
	}
	opts := session.Options{
		Player:     playerName(),
		Difficulty: string(difficulty),
		Logger:     logger,
		Tracer:     telemetry.Tracer("cli"),
	}
	if store != nil {
		opts.Store = store
	}
	return session.New(game, opts), nil
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// playLogFile opens the log file used while the terminal UI owns the screen.
func playLogFile() io.WriteCloser {
	home, err := os.UserHomeDir()
	if err != nil {
		return nopCloser{io.Discard}
	}
	dir := filepath.Join(home, ".dungeon")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nopCloser{io.Discard}
	}
	f, err := os.OpenFile(filepath.Join(dir, "dungeon.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nopCloser{io.Discard}
	}
	return f
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
