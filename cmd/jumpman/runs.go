package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpman/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsID    int64
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded training runs",
	Long: `Display the most recent training runs, or the generation history of
one run with --id.

Examples:
  jumpman runs
  jumpman runs --limit 50
  jumpman runs --id 3`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().Int64Var(&flagRunsID, "id", 0, "Show the generation history of this run")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run database: %v", err)
	}
	defer store.Close()

	if flagRunsID != 0 {
		if err := showRun(store, flagRunsID); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'jumpman train --level <file>' to start one.")
		return
	}

	fmt.Printf("  %-4s  %-9s  %-10s  %-5s  %-16s  %s\n", "ID", "Status", "Best", "Gens", "Started", "Level")
	fmt.Printf("  %-4s  %-9s  %-10s  %-5s  %-16s  %s\n", "--", "------", "----", "----", "-------", "-----")
	for _, r := range runs {
		fmt.Printf("  %-4d  %-9s  %-10.3f  %-5d  %-16s  %s [%d]\n",
			r.ID, r.Status, r.BestScore, r.Generations,
			r.CreatedAt.Format("2006-01-02 15:04"), r.Level, r.LevelIndex)
	}
}

func showRun(store *storage.Store, id int64) error {
	run, err := store.Run(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %d not found", id)
	}

	fmt.Printf("Run %d - %s [%d]\n", run.ID, run.Level, run.LevelIndex)
	fmt.Printf("Status: %s, seed %d, best %.3f after %d generations\n",
		run.Status, run.Seed, run.BestScore, run.Generations)
	fmt.Println()

	gens, err := store.Generations(id)
	if err != nil {
		return err
	}
	if len(gens) == 0 {
		fmt.Println("No generations recorded.")
		return nil
	}

	fmt.Printf("  %-6s  %-10s  %-10s  %-8s  %-6s  %s\n", "Gen", "Max", "Mean", "StdDev", "Rate", "Length")
	fmt.Printf("  %-6s  %-10s  %-10s  %-8s  %-6s  %s\n", "---", "---", "----", "------", "----", "------")
	for _, g := range gens {
		fmt.Printf("  %-6d  %-10.3f  %-10.3f  %-8.3f  %-6d  %d\n",
			g.Generation, g.MaxScore, g.MeanScore, g.StdDevScore, g.MutationRate, g.GenomeLength)
	}
	return nil
}
