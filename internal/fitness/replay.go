package fitness

import (
	"github.com/vovakirdan/jumpman/internal/core"
	"github.com/vovakirdan/jumpman/internal/genome"
)

// Trajectory records every state visited while replaying a genome.
// States[0] is the initial state; States[i] follows the i-th input.
type Trajectory struct {
	States []core.GameState
	Inputs genome.Genome
	Result Result
}

// Frame is one row of a replay trace.
type Frame struct {
	Step     int     `csv:"step"`
	Input    string  `csv:"input"`
	X        float32 `csv:"x"`
	Y        float32 `csv:"y"`
	VX       float32 `csv:"vx"`
	VY       float32 `csv:"vy"`
	Grounded bool    `csv:"grounded"`
	Alive    bool    `csv:"alive"`
	Scroll   float32 `csv:"scroll"`
}

// Replay runs g like Run and keeps each intermediate state.
func (e *Evaluator) Replay(g genome.Genome) Trajectory {
	states := make([]core.GameState, 0, len(g)+1)
	s := e.InitialState()
	states = append(states, s)

	finish := 0
	for i, in := range g {
		s = e.advance(s, in)
		states = append(states, s)
		if finish == 0 && s.Character.Position.X >= e.opts.Target {
			finish = i + 1
		}
	}

	return Trajectory{
		States: states,
		Inputs: g.Clone(),
		Result: Result{
			Score:      e.score(s, finish),
			Final:      s,
			Finished:   finish > 0,
			FinishStep: finish,
		},
	}
}

// DeathStep returns the first step after which the character was dead,
// or 0 if it survived.
func (t Trajectory) DeathStep() int {
	for i, s := range t.States {
		if !s.IsAlive {
			return i
		}
	}
	return 0
}

// Frames flattens the trajectory into trace rows. Step 0 has no input.
func (t Trajectory) Frames() []Frame {
	frames := make([]Frame, len(t.States))
	for i, s := range t.States {
		f := Frame{
			Step:     i,
			X:        s.Character.Position.X,
			Y:        s.Character.Position.Y,
			VX:       s.Character.Velocity.X,
			VY:       s.Character.Velocity.Y,
			Grounded: s.Character.IsGrounded,
			Alive:    s.IsAlive,
			Scroll:   s.HorizontalScroll,
		}
		if i > 0 && i-1 < len(t.Inputs) {
			f.Input = t.Inputs[i-1].String()
		}
		frames[i] = f
	}
	return frames
}
