package physics

import "github.com/vovakirdan/jumpman/internal/core"

// CameraLead is how many tiles the camera keeps to the left of the character.
const CameraLead = 11

// Follow advances the camera so the character stays CameraLead tiles from
// the left edge. The scroll never moves backwards.
func Follow(s core.GameState) core.GameState {
	target := (s.Character.Position.X - CameraLead) * TileSize
	s.HorizontalScroll = core.MaxF32(s.HorizontalScroll, target)
	return s
}
