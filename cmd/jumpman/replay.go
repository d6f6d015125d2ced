package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/jumpman/internal/config"
	"github.com/vovakirdan/jumpman/internal/genome"
	"github.com/vovakirdan/jumpman/internal/platform/tui"
	"github.com/vovakirdan/jumpman/internal/storage"
	"github.com/vovakirdan/jumpman/internal/telemetry"
)

var (
	flagReplayLevel string
	flagReplayIndex int
	flagGenomePath  string
	flagRunID       int64
	flagTracePath   string
	flagView        bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a saved genome",
	Long: `Replay a genome through the physics and print the outcome.

The genome comes either from a file written by 'train' (--genome) or from
the best snapshot of a recorded run (--run). A recorded run also supplies
its level and configuration unless --level or --config is given.

Examples:
  jumpman replay --level levels.txt --genome runs/l0/bestGeneration.txt
  jumpman replay --run 3 --view
  jumpman replay --run 3 --trace trace.csv`,
	Run: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayLevel, "level", "", "Path to level file")
	replayCmd.Flags().IntVar(&flagReplayIndex, "level-index", 0, "Index of the level inside the file")
	replayCmd.Flags().StringVar(&flagGenomePath, "genome", "", "Genome file (base64)")
	replayCmd.Flags().Int64Var(&flagRunID, "run", 0, "Replay the best snapshot of this run")
	replayCmd.Flags().StringVar(&flagTracePath, "trace", "", "Write every step as CSV to this path")
	replayCmd.Flags().BoolVar(&flagView, "view", false, "Draw the level around the final position")
	replayCmd.MarkFlagsMutuallyExclusive("genome", "run")
	replayCmd.MarkFlagsOneRequired("genome", "run")
}

func runReplay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	levelPath, levelIndex := flagReplayLevel, flagReplayIndex

	var g genome.Genome
	if flagGenomePath != "" {
		g, err = genome.ReadFile(flagGenomePath)
		if err != nil {
			fail("%v", err)
		}
	} else {
		run, snap, loadErr := loadRunSnapshot(flagRunID)
		if loadErr != nil {
			fail("%v", loadErr)
		}
		g = snap.Genome
		if levelPath == "" {
			levelPath, levelIndex = run.Level, run.LevelIndex
		}
		if flagConfig == "" && run.Config != "" {
			if cfg, err = config.ParseTrain([]byte(run.Config)); err != nil {
				fail("stored config of run %d: %v", run.ID, err)
			}
		}
		fmt.Printf("Run %d, generation %d snapshot (score %.3f)\n", run.ID, snap.Generation, snap.Score)
	}

	if levelPath == "" {
		fail("--level is required with --genome")
	}
	grid, err := loadLevel(levelPath, levelIndex)
	if err != nil {
		fail("%v", err)
	}

	tr := newEvaluator(cfg, grid).Replay(g)
	res := tr.Result
	final := res.Final.Position()

	fmt.Printf("Level:        %s [%d]\n", levelPath, levelIndex)
	fmt.Printf("Steps:        %d\n", len(g))
	fmt.Printf("Score:        %.3f\n", res.Score)
	fmt.Printf("Final:        x=%.3f y=%.3f\n", final.X, final.Y)
	if res.Finished {
		fmt.Printf("Finished:     step %d\n", res.FinishStep)
	} else {
		fmt.Printf("Finished:     no (target %.0f)\n", cfg.Fitness.Target)
	}
	if step := tr.DeathStep(); step > 0 {
		fmt.Printf("Died:         step %d\n", step)
	} else {
		fmt.Println("Died:         no")
	}

	if flagTracePath != "" {
		if err := telemetry.WriteTrace(flagTracePath, tr.Frames()); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Trace:        %s\n", flagTracePath)
	}

	if flagView {
		width := 80
		if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
		}
		fmt.Println()
		fmt.Println(tui.RenderLevel(grid, res.Final, width))
	}
}

// loadRunSnapshot returns a recorded run and its best snapshot.
func loadRunSnapshot(id int64) (*storage.RunRecord, *storage.SnapshotRecord, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()

	run, err := store.Run(id)
	if err != nil {
		return nil, nil, err
	}
	if run == nil {
		return nil, nil, fmt.Errorf("run %d not found", id)
	}
	snap, err := store.BestSnapshot(id)
	if err != nil {
		return nil, nil, err
	}
	if snap == nil {
		return nil, nil, fmt.Errorf("run %d has no saved genome", id)
	}
	return run, snap, nil
}
