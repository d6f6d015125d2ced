package physics

import "github.com/vovakirdan/jumpman/internal/core"

// Session drives a reducer one input at a time, for input sources that
// arrive step by step (a genome being replayed or a live controller).
// A Session is not safe for concurrent use.
type Session struct {
	reducer     *Reducer
	state       core.GameState
	steps       int
	trackCamera bool
}

// NewSession starts a session at initial. With trackCamera set the scroll
// follows the character after each step.
func NewSession(reducer *Reducer, initial core.GameState, trackCamera bool) *Session {
	return &Session{
		reducer:     reducer,
		state:       initial,
		trackCamera: trackCamera,
	}
}

// Step consumes one input sample and returns the new state.
func (s *Session) Step(in core.InputSample) core.GameState {
	next := s.reducer.Step(s.state, in)
	if s.trackCamera {
		next = Follow(next)
	}
	s.state = next
	s.steps++
	return next
}

// State returns the current state.
func (s *Session) State() core.GameState {
	return s.state
}

// Steps returns the number of samples consumed so far.
func (s *Session) Steps() int {
	return s.steps
}
