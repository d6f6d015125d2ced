package core

// Vec2 is a 2D vector in tile units. One unit is one tile.
type Vec2 struct {
	X, Y float32
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// CharacterState is the kinematic state of the player character.
type CharacterState struct {
	Position   Vec2
	Velocity   Vec2
	IsGrounded bool
}

// GameState is the complete simulation state for one step.
// States are values: every transition builds a new one.
type GameState struct {
	Character        CharacterState
	HorizontalScroll float32 // Camera left edge in pixels (16 per tile)
	IsAlive          bool
}

// NewGameState returns a living, airborne character at rest at spawn.
func NewGameState(spawn Vec2, scroll float32) GameState {
	return GameState{
		Character: CharacterState{
			Position: spawn,
		},
		HorizontalScroll: scroll,
		IsAlive:          true,
	}
}

// Position is a convenience accessor for the character position.
func (s GameState) Position() Vec2 {
	return s.Character.Position
}
