// Package fitness scores genomes by replaying them through the physics
// reducer from a fixed starting state.
package fitness

import (
	"github.com/vovakirdan/jumpman/internal/core"
	"github.com/vovakirdan/jumpman/internal/genome"
	"github.com/vovakirdan/jumpman/internal/physics"
)

// Options controls the starting state and the score shaping.
type Options struct {
	Spawn         core.Vec2 // Character start position, in tiles
	InitialScroll float32   // Camera scroll at step 0
	Target        float32   // Horizontal position that counts as finishing
	FinishBonus   float64   // Numerator of the speed bonus (bonus = FinishBonus / finish step)
	DeathPenalty  float64   // Divisor applied to the score of a dead character
	TrackCamera   bool      // Advance the scroll after each step like the live view does
}

// DefaultOptions returns the standard scoring setup.
func DefaultOptions() Options {
	return Options{
		Spawn:         core.Vec2{X: 5, Y: 10},
		InitialScroll: 16,
		Target:        200,
		FinishBonus:   100,
		DeathPenalty:  2,
	}
}

// Result is the outcome of replaying one genome.
type Result struct {
	Score      float64
	Final      core.GameState
	Finished   bool
	FinishStep int // 1-based step at which Target was first reached; 0 if never
}

// Evaluator replays genomes against one reducer. It holds no mutable state,
// so a single Evaluator can score many genomes concurrently.
type Evaluator struct {
	reducer *physics.Reducer
	opts    Options
}

// NewEvaluator creates an evaluator. Zero-valued penalty and bonus fields
// fall back to the defaults.
func NewEvaluator(reducer *physics.Reducer, opts Options) *Evaluator {
	def := DefaultOptions()
	if opts.DeathPenalty <= 0 {
		opts.DeathPenalty = def.DeathPenalty
	}
	if opts.Target <= 0 {
		opts.Target = def.Target
	}
	return &Evaluator{reducer: reducer, opts: opts}
}

// Options returns the evaluator's options after defaults were applied.
func (e *Evaluator) Options() Options {
	return e.opts
}

// InitialState returns the state every replay starts from.
func (e *Evaluator) InitialState() core.GameState {
	return core.NewGameState(e.opts.Spawn, e.opts.InitialScroll)
}

// Evaluate returns the score of g. The result depends only on g and the
// evaluator's level and options.
func (e *Evaluator) Evaluate(g genome.Genome) float64 {
	return e.Run(g).Score
}

// Run replays g and returns the final state together with the score.
func (e *Evaluator) Run(g genome.Genome) Result {
	var res Result
	s := e.InitialState()
	for i, in := range g {
		s = e.advance(s, in)
		if res.FinishStep == 0 && s.Character.Position.X >= e.opts.Target {
			res.FinishStep = i + 1
		}
	}
	res.Final = s
	res.Finished = res.FinishStep > 0
	res.Score = e.score(s, res.FinishStep)
	return res
}

func (e *Evaluator) advance(s core.GameState, in core.InputSample) core.GameState {
	s = e.reducer.Step(s, in)
	if e.opts.TrackCamera {
		s = physics.Follow(s)
	}
	return s
}

func (e *Evaluator) score(final core.GameState, finishStep int) float64 {
	progress := float64(core.MinF32(e.opts.Target, final.Character.Position.X))
	if finishStep > 0 {
		progress += e.opts.FinishBonus / float64(finishStep)
	}
	if !final.IsAlive {
		return progress / e.opts.DeathPenalty
	}
	return progress
}
