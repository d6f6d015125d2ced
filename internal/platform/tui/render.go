package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumpman/internal/core"
	"github.com/vovakirdan/jumpman/internal/level"
	"github.com/vovakirdan/jumpman/internal/physics"
)

// Glyphs used when drawing a level.
const (
	glyphEmpty     = ' '
	glyphSolid     = '#'
	glyphSurface   = '='
	glyphUnknown   = '?'
	glyphCharacter = '@'
)

// tileStyles maps level tiles to lipgloss styles.
var tileStyles = map[rune]lipgloss.Style{
	glyphEmpty:     lipgloss.NewStyle(),
	glyphSolid:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	glyphSurface:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	glyphUnknown:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	glyphCharacter: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
}

func glyphFor(tile byte) rune {
	switch tile {
	case level.Empty:
		return glyphEmpty
	case level.Solid:
		return glyphSolid
	case level.Surface:
		return glyphSurface
	default:
		return glyphUnknown
	}
}

// RenderLevel draws a width-column window of the level starting at the
// camera's left edge, with the character marked. A dead character that has
// left the grid is not drawn.
func RenderLevel(g *level.Grid, s core.GameState, width int) string {
	if width < 1 {
		width = 1
	}
	left := core.FloorInt(s.HorizontalScroll / physics.TileSize)
	pos := s.Position()
	cx, cy := core.FloorInt(pos.X+0.5), core.FloorInt(pos.Y)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(width*g.Height()*2 + g.Height())

	for y := 0; y < g.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same glyph to minimize escapes
		x := 0
		for x < width {
			start := glyphAt(g, left+x, y, cx, cy)
			var run strings.Builder
			for x < width {
				r := glyphAt(g, left+x, y, cx, cy)
				if r != start {
					break
				}
				run.WriteRune(r)
				x++
			}
			sb.WriteString(tileStyles[start].Render(run.String()))
		}
	}
	return sb.String()
}

func glyphAt(g *level.Grid, x, y, cx, cy int) rune {
	if x == cx && y == cy {
		return glyphCharacter
	}
	return glyphFor(g.Cell(x, y))
}
