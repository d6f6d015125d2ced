package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/jumpman/internal/core"
	"github.com/vovakirdan/jumpman/internal/platform/tui"
	"github.com/vovakirdan/jumpman/internal/watch"
)

var flagTUI bool

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train on a level",
	Long: `Evolve input sequences until the best one reaches the target score
or the generation limit is hit.

With --out, the run directory receives:
  accuracy.csv            - One row per generation
  bestGeneration-N.txt    - Best genome of each captured generation
  bestGeneration.txt      - Best genome of the whole run
  config.yaml             - Effective configuration

Every run is also recorded in the run database (see 'jumpman runs').

With --tui on a terminal, a live dashboard replaces the log output.
Press q to stop training after the current generation.

Examples:
  jumpman train --level levels.txt
  jumpman train --level levels.txt --level-index 2 --out runs/l2
  jumpman train --level levels.txt --preset quick --tui
  jumpman train --level levels.txt --capture 1,10,100 --seed 42`,
	Run: runTrain,
}

func init() {
	addTrainingFlags(trainCmd)
	trainCmd.Flags().BoolVar(&flagTUI, "tui", false, "Show the live dashboard (terminal only)")
}

func runTrain(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}

	logger := newLogger()
	showTUI := flagTUI && term.IsTerminal(int(os.Stdout.Fd()))
	if flagTUI && !showTUI {
		logger.Warn("stdout is not a terminal, falling back to log output")
	}

	var hub *watch.Hub
	if showTUI {
		hub = watch.NewHub(0)
		// Log lines would tear the alternate screen.
		logger.SetOutput(io.Discard)
	}

	t, err := newTrainer(cfg, flagLevel, flagLevelIndex, flagOut, hub, logger)
	if err != nil {
		fail("%v", err)
	}
	defer t.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var res trainResult
	if showTUI {
		res, err = trainWithDashboard(ctx, t, hub)
	} else {
		res, err = t.Run(ctx)
	}
	if err != nil {
		t.Close()
		fail("training failed: %v", err)
	}

	printSummary(res)
}

// trainWithDashboard runs the engine in the background while the dashboard
// owns the terminal.
func trainWithDashboard(ctx context.Context, t *trainer, hub *watch.Hub) (trainResult, error) {
	type outcome struct {
		res trainResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := t.Run(ctx)
		done <- outcome{res, err}
	}()

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	viewer := hub.Subscribe("local", 0)
	uiErr := tui.RunDashboard(viewer, cfg, tui.DashboardOptions{
		Title:          fmt.Sprintf("JUMPMAN - %s", flagLevel),
		Target:         float64(t.cfg.Fitness.Target),
		MaxGenerations: t.cfg.Run.MaxGenerations,
		OnQuit:         t.Stop,
	})
	hub.Unsubscribe("local")
	if uiErr != nil {
		t.Stop()
	}

	o := <-done
	if o.err == nil && uiErr != nil {
		return o.res, fmt.Errorf("dashboard: %w", uiErr)
	}
	return o.res, o.err
}

func printSummary(res trainResult) {
	fmt.Printf("Training finished: %s\n", res.Reason)
	fmt.Printf("  Generations: %d\n", res.Report.Generation)
	fmt.Printf("  Best score:  %.3f\n", res.BestScore)
	fmt.Printf("  Genome:      %d samples\n", len(res.BestGenome))
	if res.BestPath != "" {
		fmt.Printf("  Saved to:    %s\n", res.BestPath)
	}
	if res.RunID != 0 {
		fmt.Printf("  Run ID:      %d\n", res.RunID)
	}
}
