package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dungeon-crawl/internal/registry"
	"github.com/vovakirdan/dungeon-crawl/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
	flagRun    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the scoreboard for a level",
	Long: `Display the best runs for the given level (default: dungeon).
Escapes rank first, then most gold, then fewest turns.

Examples:
  dungeon scores
  dungeon scores dungeon_cellar --limit 20
  dungeon scores --recent
  dungeon scores --run 3f2b...
  dungeon scores dungeon --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs across all levels")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs for the level")
	scoresCmd.Flags().StringVar(&flagRun, "run", "", "Show a single run by ID")
}

func runScores(cmd *cobra.Command, args []string) error {
	levelID, err := levelArg(args)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(levelID); err != nil {
			return err
		}
		fmt.Printf("Cleared all runs for %s.\n", levelID)
		return nil
	case flagRecent:
		return printRecent(store)
	case flagRun != "":
		return printRun(store, flagRun)
	}

	info, _ := registry.Lookup(levelID)
	runs, err := store.TopRuns(levelID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Scoreboard - %s\n", info.Title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dungeon play %s' to set the first score!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-7s  %-4s  %-5s  %s\n", "Rank", "Player", "Outcome", "Gold", "Turns", "Date")
	fmt.Printf("  %-4s  %-12s  %-7s  %-4s  %-5s  %s\n", "----", "------", "-------", "----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-7s  %-4d  %-5d  %s\n",
			i+1, r.Player, r.Outcome, r.Gold, r.Turns, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.AllLevelStats(); err == nil {
		if st := stats[levelID]; st != nil {
			fmt.Printf("Runs: %d  Escapes: %d  Best gold: %d  Avg turns: %.1f\n",
				st.Runs, st.Wins, st.BestGold, st.AvgTurns)
		}
	}
	if best, err := store.HighScore(levelID); err == nil {
		fmt.Printf("Best: %d gold\n", best)
	}
	return nil
}

func printRecent(store *storage.Store) error {
	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Println("Recent runs")
	fmt.Println()
	fmt.Printf("  %-16s  %-12s  %-7s  %-4s  %-5s  %-8s  %s\n", "Level", "Player", "Outcome", "Gold", "Turns", "Time", "Seed")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-12s  %-7s  %-4d  %-5d  %-8s  %d\n",
			r.LevelID, r.Player, r.Outcome, r.Gold, r.Turns, r.Duration.Round(time.Second), r.Seed)
	}
	return nil
}

func printRun(store *storage.Store, id string) error {
	r, err := store.RunByID(id)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s\n\n", r.ID)
	fmt.Printf("  Level:      %s\n", r.LevelID)
	fmt.Printf("  Player:     %s\n", r.Player)
	fmt.Printf("  Outcome:    %s\n", r.Outcome)
	fmt.Printf("  Gold:       %d\n", r.Gold)
	fmt.Printf("  Turns:      %d\n", r.Turns)
	fmt.Printf("  HP left:    %d\n", r.HP)
	fmt.Printf("  Difficulty: %s\n", r.Difficulty)
	fmt.Printf("  Duration:   %s\n", r.Duration.Round(time.Second))
	fmt.Printf("  Played:     %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println()
	fmt.Printf("Replay with: dungeon play %s --seed %d --difficulty %s\n", r.LevelID, r.Seed, r.Difficulty)
	return nil
}
