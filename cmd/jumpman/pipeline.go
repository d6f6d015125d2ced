package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumpman/internal/config"
	"github.com/vovakirdan/jumpman/internal/evolution"
	"github.com/vovakirdan/jumpman/internal/fitness"
	"github.com/vovakirdan/jumpman/internal/genome"
	"github.com/vovakirdan/jumpman/internal/level"
	"github.com/vovakirdan/jumpman/internal/physics"
	"github.com/vovakirdan/jumpman/internal/storage"
	"github.com/vovakirdan/jumpman/internal/telemetry"
	"github.com/vovakirdan/jumpman/internal/watch"
)

// Training-only flags shared by train and serve.
var (
	flagLevel          string
	flagLevelIndex     int
	flagOut            string
	flagCapture        []int
	flagPopulation     int
	flagMaxGenerations int
	flagTarget         float32
)

func addTrainingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagLevel, "level", "", "Path to level file (required)")
	cmd.Flags().IntVar(&flagLevelIndex, "level-index", 0, "Index of the level inside the file")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output directory for accuracy.csv and genome snapshots")
	cmd.Flags().IntSliceVar(&flagCapture, "capture", nil, "Generations whose best genome is snapshotted (overrides the config)")
	cmd.Flags().IntVar(&flagPopulation, "population", 0, "Population size (overrides the config)")
	cmd.Flags().IntVar(&flagMaxGenerations, "max-generations", 0, "Stop after this many generations (overrides the config)")
	cmd.Flags().Float32Var(&flagTarget, "target", 0, "Target position and stop score (overrides the config)")
	//nolint:errcheck // Flag is defined above
	cmd.MarkFlagRequired("level")
}

// loadConfig loads the training config and applies the preset and any
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.TrainConfig, error) {
	cfg, err := config.LoadTrain(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Evolution.Seed = flagSeed
	}
	if cfg.Evolution.Seed == 0 {
		cfg.Evolution.Seed = time.Now().UnixNano()
	}
	if flags.Changed("workers") {
		cfg.Evolution.Workers = flagWorkers
	}
	if flags.Lookup("population") != nil && flags.Changed("population") {
		cfg.Evolution.PopulationSize = flagPopulation
	}
	if flags.Lookup("max-generations") != nil && flags.Changed("max-generations") {
		cfg.Run.MaxGenerations = flagMaxGenerations
	}
	if flags.Lookup("target") != nil && flags.Changed("target") {
		cfg.Fitness.Target = flagTarget
	}
	if flags.Lookup("capture") != nil && flags.Changed("capture") {
		cfg.Run.Capture = flagCapture
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadLevel reads a level file and selects one level.
func loadLevel(path string, index int) (*level.Grid, error) {
	levels, err := level.Load(path)
	if err != nil {
		return nil, err
	}
	return level.Select(levels, index)
}

// newEvaluator wires the reducer and evaluator for a level.
func newEvaluator(cfg config.TrainConfig, grid *level.Grid) *fitness.Evaluator {
	reducer := physics.NewReducer(grid, cfg.PhysicsParams())
	return fitness.NewEvaluator(reducer, cfg.FitnessOptions())
}

// trainer owns everything one training run touches.
type trainer struct {
	cfg    config.TrainConfig
	engine *evolution.Engine
	store  *storage.Store    // nil when the database is unavailable
	out    *telemetry.Output // nil when --out is empty
	hub    *watch.Hub        // nil when nobody watches
	logger *log.Logger
	runID  int64
	stop   atomic.Bool
	last   evolution.Report
}

// trainResult summarizes a finished run.
type trainResult struct {
	Reason     watch.FinishReason
	Report     evolution.Report // Last completed generation
	BestScore  float64
	BestGenome genome.Genome
	BestPath   string // Final genome file, empty without --out
	RunID      int64
}

// newTrainer loads the level, builds the engine and opens run output.
func newTrainer(cfg config.TrainConfig, levelPath string, levelIndex int, outDir string, hub *watch.Hub, logger *log.Logger) (*trainer, error) {
	grid, err := loadLevel(levelPath, levelIndex)
	if err != nil {
		return nil, err
	}

	eval := newEvaluator(cfg, grid)
	engine, err := evolution.New(cfg.EngineConfig(), eval, evolution.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("cannot create engine: %w", err)
	}

	out, err := telemetry.NewOutput(outDir)
	if err != nil {
		return nil, err
	}
	if err := out.WriteConfig(cfg); err != nil {
		out.Close()
		return nil, err
	}

	t := &trainer{
		cfg:    cfg,
		engine: engine,
		out:    out,
		hub:    hub,
		logger: logger,
	}

	// Run history is best-effort; training works without it.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		return t, nil
	}
	cfgYAML, err := config.Marshal(cfg)
	if err != nil {
		store.Close()
		out.Close()
		return nil, err
	}
	runID, err := store.CreateRun(storage.RunRecord{
		Level:      levelPath,
		LevelIndex: levelIndex,
		Seed:       cfg.Evolution.Seed,
		Config:     string(cfgYAML),
	})
	if err != nil {
		logger.Warn("could not record run", "error", err)
		store.Close()
		return t, nil
	}
	t.store = store
	t.runID = runID
	return t, nil
}

// Stop asks the engine to stop after the current generation.
func (t *trainer) Stop() {
	t.stop.Store(true)
}

// observer combines logging, output, storage, fan-out and the stop rule.
func (t *trainer) observer() evolution.Observer {
	obs := []evolution.Observer{
		evolution.ObserverFunc(t.record),
		evolution.ObserverFunc(func(evolution.Report) bool { return !t.stop.Load() }),
		evolution.StopAt(float64(t.cfg.Fitness.Target), t.cfg.Run.MaxGenerations),
	}
	if t.hub != nil {
		obs = append(obs, t.hub.Observer())
	}
	return evolution.Observers(obs...)
}

// record persists one generation. Failures are logged, not fatal.
func (t *trainer) record(r evolution.Report) bool {
	t.last = r
	t.logger.Info("generation",
		"gen", r.Generation,
		"max", fmt.Sprintf("%.3f", r.MaxScore),
		"mean", fmt.Sprintf("%.3f", r.MeanScore),
		"rate", r.MutationRate,
		"length", r.GenomeLength,
		"elapsed", r.Elapsed.Round(time.Millisecond),
	)

	if err := t.out.WriteGeneration(r); err != nil {
		t.logger.Error("could not write generation log", "error", err)
	}

	capture := t.cfg.ShouldCapture(r.Generation)
	if capture {
		if path, err := t.out.WriteSnapshot(r.Generation, r.BestGenome); err != nil {
			t.logger.Error("could not write snapshot", "error", err)
		} else if path != "" {
			t.logger.Debug("snapshot written", "path", path)
		}
	}

	if t.store != nil {
		err := t.store.SaveGeneration(storage.GenerationRecord{
			RunID:        t.runID,
			Generation:   r.Generation,
			MaxScore:     r.MaxScore,
			MeanScore:    r.MeanScore,
			StdDevScore:  r.StdDevScore,
			MedianScore:  r.MedianScore,
			MutationRate: r.MutationRate,
			GenomeLength: r.GenomeLength,
			Elapsed:      r.Elapsed,
		})
		if err != nil {
			t.logger.Error("could not save generation", "error", err)
		}
		if capture {
			if _, err := t.store.SaveSnapshot(storage.SnapshotRecord{
				RunID:      t.runID,
				Generation: r.Generation,
				Score:      r.MaxScore,
				Genome:     r.BestGenome,
			}); err != nil {
				t.logger.Error("could not save snapshot", "error", err)
			}
		}
	}
	return true
}

// Run trains until the stop rule fires, the user stops, or ctx ends, then
// writes the best genome and closes the run.
func (t *trainer) Run(ctx context.Context) (trainResult, error) {
	cfg := t.engine.Config()
	t.logger.Info("training started",
		"population", cfg.PopulationSize,
		"elites", cfg.Diversity,
		"seed", cfg.Seed,
		"target", t.cfg.Fitness.Target,
		"max_generations", t.cfg.Run.MaxGenerations,
	)

	_, runErr := t.engine.Run(ctx, t.observer())

	res := trainResult{Report: t.last, RunID: t.runID}
	res.BestScore, res.BestGenome = t.engine.Best()
	res.Reason = t.finishReason(runErr)

	status := storage.StatusFinished
	if res.Reason == watch.FinishStopped || res.Reason == watch.FinishFailed {
		status = storage.StatusStopped
	}

	if res.BestGenome != nil {
		path, err := t.out.WriteBest(res.BestGenome)
		if err != nil {
			t.logger.Error("could not write best genome", "error", err)
		}
		res.BestPath = path

		if t.store != nil {
			if _, err := t.store.SaveSnapshot(storage.SnapshotRecord{
				RunID:      t.runID,
				Generation: t.last.Generation,
				Score:      res.BestScore,
				Genome:     res.BestGenome,
			}); err != nil {
				t.logger.Error("could not save best genome", "error", err)
			}
		}
	}

	if t.store != nil {
		if err := t.store.FinishRun(t.runID, status, res.BestScore, t.last.Generation); err != nil {
			t.logger.Error("could not finish run", "error", err)
		}
	}

	if t.hub != nil {
		t.hub.Finish(watch.FinishedEvent{
			Reason:     res.Reason,
			BestScore:  res.BestScore,
			Generation: t.last.Generation,
		})
	}

	t.logger.Info("training finished",
		"reason", res.Reason,
		"generations", t.last.Generation,
		"best", fmt.Sprintf("%.3f", res.BestScore),
	)

	if runErr != nil && res.Reason == watch.FinishFailed {
		return res, runErr
	}
	return res, nil
}

func (t *trainer) finishReason(runErr error) watch.FinishReason {
	switch {
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		return watch.FinishStopped
	case runErr != nil:
		return watch.FinishFailed
	case t.last.MaxScore >= float64(t.cfg.Fitness.Target):
		return watch.FinishTargetReached
	case t.stop.Load():
		return watch.FinishStopped
	default:
		return watch.FinishGenerationCap
	}
}

// Close releases the output files and database.
func (t *trainer) Close() {
	if err := t.out.Close(); err != nil {
		t.logger.Error("could not close output", "error", err)
	}
	if t.store != nil {
		t.store.Close()
	}
}
