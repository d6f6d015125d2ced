package fitness

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/vovakirdan/jumpman/internal/core"
	"github.com/vovakirdan/jumpman/internal/genome"
	"github.com/vovakirdan/jumpman/internal/level"
	"github.com/vovakirdan/jumpman/internal/physics"
)

func floorLevel(width int) *level.Grid {
	rows := make([]string, level.LevelHeight)
	for y := range rows {
		c := "0"
		if y >= 11 {
			c = "1"
		}
		rows[y] = strings.Repeat(c, width)
	}
	return level.NewGrid(rows)
}

func allRight(n int) genome.Genome {
	g := make(genome.Genome, n)
	for i := range g {
		g[i] = core.Sample(core.HorizontalRight, false)
	}
	return g
}

func newEvaluator(grid *level.Grid, opts Options) *Evaluator {
	return NewEvaluator(physics.NewReducer(grid, physics.DefaultParams()), opts)
}

func TestFallingGenomeIsHalved(t *testing.T) {
	e := newEvaluator(level.NewEmptyGrid(200, 1), DefaultOptions())
	res := e.Run(allRight(50))

	if res.Final.IsAlive {
		t.Fatal("character with no floor should die")
	}
	if res.Finished {
		t.Error("falling character should not finish")
	}
	expected := float64(res.Final.Character.Position.X) / 2
	if res.Score != expected {
		t.Errorf("Score = %v, expected %v", res.Score, expected)
	}
	if res.Score >= float64(res.Final.Character.Position.X) {
		t.Error("death penalty was not applied")
	}
}

func TestWalkingGenomeScoresDistance(t *testing.T) {
	e := newEvaluator(floorLevel(200), DefaultOptions())
	res := e.Run(allRight(300))

	if !res.Final.IsAlive {
		t.Fatal("character on a flat floor should survive")
	}
	x := float64(res.Final.Character.Position.X)
	if res.Score != x {
		t.Errorf("Score = %v, expected final x %v", res.Score, x)
	}
	if math.Abs(x-81.775) > 0.05 {
		t.Errorf("final x = %v, expected about 81.775", x)
	}
}

func TestFinishBonus(t *testing.T) {
	opts := DefaultOptions()
	opts.Target = 20
	e := newEvaluator(floorLevel(200), opts)

	res := e.Run(allRight(300))
	if !res.Finished {
		t.Fatal("character should reach the target")
	}

	// Replaying just up to the finish step must land on the target.
	before := e.Run(allRight(res.FinishStep - 1))
	at := e.Run(allRight(res.FinishStep))
	if before.Final.Character.Position.X >= 20 {
		t.Errorf("target already reached at step %d", res.FinishStep-1)
	}
	if at.Final.Character.Position.X < 20 {
		t.Errorf("target not reached at step %d", res.FinishStep)
	}

	expected := 20 + 100/float64(res.FinishStep)
	if math.Abs(res.Score-expected) > 1e-9 {
		t.Errorf("Score = %v, expected %v", res.Score, expected)
	}
}

func TestFinishStepIsLatched(t *testing.T) {
	opts := DefaultOptions()
	opts.Target = 10
	e := newEvaluator(floorLevel(200), opts)

	g := allRight(60)
	for i := 0; i < 60; i++ {
		g = append(g, core.Sample(core.HorizontalLeft, false))
	}
	short := e.Run(allRight(60))
	long := e.Run(g)
	if !short.Finished || !long.Finished {
		t.Fatal("both runs should finish")
	}
	if long.FinishStep != short.FinishStep {
		t.Errorf("FinishStep = %d, expected %d", long.FinishStep, short.FinishStep)
	}
}

func TestEmptyGenome(t *testing.T) {
	e := newEvaluator(floorLevel(20), DefaultOptions())
	res := e.Run(nil)
	if res.Score != 5 {
		t.Errorf("Score = %v, expected spawn x 5", res.Score)
	}
	if res.Final != e.InitialState() {
		t.Error("empty genome should leave the initial state unchanged")
	}
}

func TestEvaluateDeterministicAcrossGoroutines(t *testing.T) {
	grid := level.Generate(level.DefaultGenerateOptions())
	e := newEvaluator(grid, DefaultOptions())
	rng := rand.New(rand.NewSource(11))

	genomes := make([]genome.Genome, 64)
	expected := make([]float64, len(genomes))
	for i := range genomes {
		genomes[i] = genome.Random(rng, 200)
		expected[i] = e.Evaluate(genomes[i])
	}

	got := make([]float64, len(genomes))
	var wg sync.WaitGroup
	for i := range genomes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = e.Evaluate(genomes[i])
		}(i)
	}
	wg.Wait()

	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("genome %d: concurrent score %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestReplayMatchesRun(t *testing.T) {
	grid := level.Generate(level.DefaultGenerateOptions())
	e := newEvaluator(grid, DefaultOptions())
	g := genome.Random(rand.New(rand.NewSource(4)), 150)

	tr := e.Replay(g)
	res := e.Run(g)

	if len(tr.States) != len(g)+1 {
		t.Fatalf("len(States) = %d, expected %d", len(tr.States), len(g)+1)
	}
	if tr.Result != res {
		t.Errorf("Replay result %+v, expected %+v", tr.Result, res)
	}
	if tr.States[len(tr.States)-1] != res.Final {
		t.Error("last replay state should equal the final state")
	}

	frames := tr.Frames()
	if len(frames) != len(tr.States) {
		t.Fatalf("len(Frames) = %d, expected %d", len(frames), len(tr.States))
	}
	if frames[0].Input != "" {
		t.Errorf("frame 0 input = %q, expected empty", frames[0].Input)
	}
	if frames[1].Input != g[0].String() {
		t.Errorf("frame 1 input = %q, expected %q", frames[1].Input, g[0].String())
	}
}

func TestDeathStep(t *testing.T) {
	e := newEvaluator(level.NewEmptyGrid(200, 1), DefaultOptions())
	tr := e.Replay(allRight(50))
	if got := tr.DeathStep(); got != 20 {
		t.Errorf("DeathStep() = %d, expected 20", got)
	}

	alive := newEvaluator(floorLevel(100), DefaultOptions()).Replay(allRight(10))
	if got := alive.DeathStep(); got != 0 {
		t.Errorf("DeathStep() = %d, expected 0", got)
	}
}

func TestTrackCameraKeepsScrollMonotonic(t *testing.T) {
	opts := DefaultOptions()
	opts.TrackCamera = true
	e := newEvaluator(floorLevel(200), opts)

	tr := e.Replay(allRight(200))
	for i := 1; i < len(tr.States); i++ {
		if tr.States[i].HorizontalScroll < tr.States[i-1].HorizontalScroll {
			t.Fatalf("step %d: scroll decreased", i)
		}
	}
	if tr.Result.Final.HorizontalScroll <= opts.InitialScroll {
		t.Error("camera should advance while walking right")
	}
}
