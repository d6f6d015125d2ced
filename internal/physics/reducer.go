// Package physics implements the deterministic state transition of the
// platformer character: acceleration, gravity, ground and wall collision,
// the camera clamp and the death line.
package physics

import (
	"github.com/vovakirdan/jumpman/internal/core"
)

// TileSize is the number of scroll units (pixels) per tile.
const TileSize = 16

// emptyTile is the tile symbol treated as passable.
const emptyTile byte = '0'

// TileMap is the read-only tile lookup the reducer collides against.
// Implementations must return '0' for out-of-range coordinates.
type TileMap interface {
	Cell(x, y int) byte
}

// Params holds the movement constants. One unit is one tile per step.
type Params struct {
	MaxSpeed               float32 `yaml:"max_speed"`
	SameDirectionAccel     float32 `yaml:"same_direction_accel"`
	OppositeDirectionDecel float32 `yaml:"opposite_direction_decel"`
	NaturalDecel           float32 `yaml:"natural_decel"`
	Gravity                float32 `yaml:"gravity"`
	JumpForce              float32 `yaml:"jump_force"`
	DeathLine              float32 `yaml:"death_line"` // Largest y a living character may have
}

// DefaultParams returns the standard movement constants.
func DefaultParams() Params {
	return Params{
		MaxSpeed:               0.26,
		SameDirectionAccel:     0.1 / 4,
		OppositeDirectionDecel: 1.0 / 8,
		NaturalDecel:           0.1 / 4,
		Gravity:                0.1 / 4,
		JumpForce:              0.45,
		DeathLine:              15,
	}
}

// Reducer maps (state, input) to the next state against one level.
// It holds no mutable state and is safe for concurrent use as long as the
// tile map is not modified.
type Reducer struct {
	tiles  TileMap
	params Params
}

// NewReducer creates a reducer for the given level and constants.
func NewReducer(tiles TileMap, params Params) *Reducer {
	return &Reducer{tiles: tiles, params: params}
}

// Params returns the constants the reducer was built with.
func (r *Reducer) Params() Params {
	return r.params
}

// Step advances the simulation by one step. It never mutates s.
func (r *Reducer) Step(s core.GameState, in core.InputSample) core.GameState {
	if !s.IsAlive {
		s.Character.Velocity = core.Vec2{}
		return s
	}

	p := r.params
	ch := s.Character

	vel := core.Vec2{
		X: core.ClampF32(r.horizontalVelocity(ch.Velocity.X, in.Horizontal), -p.MaxSpeed, p.MaxSpeed),
	}
	if in.Jump && ch.IsGrounded {
		vel.Y = -p.JumpForce
	} else {
		vel.Y = ch.Velocity.Y + p.Gravity
	}

	pos := ch.Position.Add(vel)

	// Ground: two probes across the character's width, one row below.
	grounded := r.solid(core.FloorInt(pos.X+0.1), core.CeilInt(pos.Y)) ||
		r.solid(core.FloorInt(pos.X+0.9), core.CeilInt(pos.Y))
	if grounded {
		pos.Y = core.Floor(pos.Y)
		vel.Y = 0
	}

	// Walls: uses the post-snap position.
	row := core.FloorInt(pos.Y)
	if r.solid(core.FloorInt(pos.X), row) || r.solid(core.CeilInt(pos.X), row) {
		if vel.X > 0 {
			pos.X = core.Floor(pos.X)
		} else {
			pos.X = core.Ceil(pos.X)
		}
		vel.X = 0
	}

	pos.X = core.MaxF32(pos.X, s.HorizontalScroll/TileSize)

	return core.GameState{
		Character: core.CharacterState{
			Position:   pos,
			Velocity:   vel,
			IsGrounded: grounded,
		},
		HorizontalScroll: s.HorizontalScroll,
		IsAlive:          pos.Y <= p.DeathLine,
	}
}

func (r *Reducer) horizontalVelocity(vx float32, h core.Horizontal) float32 {
	p := r.params
	switch h {
	case core.HorizontalRight:
		if vx < 0 {
			return vx + p.OppositeDirectionDecel
		}
		return vx + p.SameDirectionAccel
	case core.HorizontalLeft:
		if vx > 0 {
			return vx - p.OppositeDirectionDecel
		}
		return vx - p.SameDirectionAccel
	default:
		switch {
		case vx > 0:
			return core.MaxF32(vx-p.NaturalDecel, 0)
		case vx < 0:
			return core.MinF32(vx+p.NaturalDecel, 0)
		}
		return 0
	}
}

func (r *Reducer) solid(x, y int) bool {
	return r.tiles.Cell(x, y) != emptyTile
}
