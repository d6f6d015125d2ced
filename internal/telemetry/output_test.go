package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/jumpman/internal/config"
	"github.com/vovakirdan/jumpman/internal/evolution"
	"github.com/vovakirdan/jumpman/internal/fitness"
	"github.com/vovakirdan/jumpman/internal/genome"
	"github.com/vovakirdan/jumpman/internal/level"
	"github.com/vovakirdan/jumpman/internal/physics"
)

func TestNilOutputIsNoop(t *testing.T) {
	out, err := NewOutput("")
	if err != nil {
		t.Fatalf("NewOutput(\"\") failed: %v", err)
	}
	if out != nil {
		t.Fatal("NewOutput(\"\") should return nil")
	}
	if err := out.WriteGeneration(evolution.Report{}); err != nil {
		t.Errorf("WriteGeneration() on nil output = %v", err)
	}
	if _, err := out.WriteBest(nil); err != nil {
		t.Errorf("WriteBest() on nil output = %v", err)
	}
	if err := out.Close(); err != nil {
		t.Errorf("Close() on nil output = %v", err)
	}
}

func TestGenerationLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	out, err := NewOutput(dir)
	if err != nil {
		t.Fatalf("NewOutput() failed: %v", err)
	}

	for gen := 1; gen <= 3; gen++ {
		r := evolution.Report{
			Generation:   gen,
			MaxScore:     float64(gen) * 1.5,
			MutationRate: 200,
			GenomeLength: 10,
			Grew:         gen == 2,
			Elapsed:      25 * time.Millisecond,
		}
		if err := out.WriteGeneration(r); err != nil {
			t.Fatalf("WriteGeneration() failed: %v", err)
		}
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	path := filepath.Join(dir, GenerationLogFile)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "generation,"); n != 1 {
		t.Errorf("header written %d times, expected once", n)
	}

	rows, err := ReadGenerationLog(path)
	if err != nil {
		t.Fatalf("ReadGenerationLog() failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[2].MaxScore != 4.5 {
		t.Errorf("MaxScore = %v, expected 4.5", rows[2].MaxScore)
	}
	if !rows[1].Grew || rows[0].Grew {
		t.Error("Grew flag not preserved")
	}
	if rows[0].ElapsedMS != 25 {
		t.Errorf("ElapsedMS = %d, expected 25", rows[0].ElapsedMS)
	}
}

func TestSnapshotsAndConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := NewOutput(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	g := genome.Random(rand.New(rand.NewSource(1)), 40)

	path, err := out.WriteSnapshot(10, g)
	if err != nil {
		t.Fatalf("WriteSnapshot() failed: %v", err)
	}
	if filepath.Base(path) != "bestGeneration-10.txt" {
		t.Errorf("snapshot path = %s", path)
	}
	back, err := genome.ReadFile(path)
	if err != nil || !back.Equal(g) {
		t.Errorf("snapshot did not round trip: %v", err)
	}

	best, err := out.WriteBest(g)
	if err != nil {
		t.Fatalf("WriteBest() failed: %v", err)
	}
	if filepath.Base(best) != BestGenomeFile {
		t.Errorf("best path = %s", best)
	}

	cfg := config.DefaultTrainConfig()
	if err := out.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig() failed: %v", err)
	}
	loaded, err := config.LoadTrain(filepath.Join(dir, ConfigFile))
	if err != nil {
		t.Fatalf("LoadTrain() failed: %v", err)
	}
	if loaded.Evolution != cfg.Evolution {
		t.Error("written config does not match")
	}
}

func TestWriteTrace(t *testing.T) {
	rows := make([]string, level.LevelHeight)
	for y := range rows {
		rows[y] = strings.Repeat("0", 50)
		if y >= 11 {
			rows[y] = strings.Repeat("1", 50)
		}
	}
	reducer := physics.NewReducer(level.NewGrid(rows), physics.DefaultParams())
	eval := fitness.NewEvaluator(reducer, fitness.DefaultOptions())
	tr := eval.Replay(genome.Random(rand.New(rand.NewSource(2)), 30))

	path := filepath.Join(t.TempDir(), "traces", "trace.csv")
	if err := WriteTrace(path, tr.Frames()); err != nil {
		t.Fatalf("WriteTrace() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 32 {
		t.Errorf("trace has %d lines, expected header plus 31 frames", len(lines))
	}
	if !strings.HasPrefix(lines[0], "step,input,x,y") {
		t.Errorf("unexpected header %q", lines[0])
	}
}
