// Package level provides the static tile map the character moves through,
// plus loading and procedural generation of level files.
package level

// Tile symbols used by level files.
const (
	Empty   byte = '0' // Passable cell, also returned for any out-of-range lookup
	Solid   byte = '1' // Generic solid tile
	Surface byte = '2' // Solid tile drawn as a walkable top surface
)

// LevelHeight is the number of rows that make up one level in a stacked file.
const LevelHeight = 16

// Grid is an immutable, row-major tile map with origin at the top-left.
// Rows may have different lengths; cells past a row's end are empty.
type Grid struct {
	rows  [][]byte
	width int
}

// NewGrid builds a grid from text rows. The rows are copied.
func NewGrid(rows []string) *Grid {
	g := &Grid{rows: make([][]byte, len(rows))}
	for i, r := range rows {
		g.rows[i] = []byte(r)
		if len(r) > g.width {
			g.width = len(r)
		}
	}
	return g
}

// NewEmptyGrid creates a w x h grid with every cell empty.
func NewEmptyGrid(w, h int) *Grid {
	rows := make([]string, h)
	line := make([]byte, w)
	for i := range line {
		line[i] = Empty
	}
	for i := range rows {
		rows[i] = string(line)
	}
	return NewGrid(rows)
}

// Cell returns the tile at (x, y), or Empty when the coordinate lies outside
// the stored data. It never panics.
func (g *Grid) Cell(x, y int) byte {
	if x < 0 || y < 0 || y >= len(g.rows) || x >= len(g.rows[y]) {
		return Empty
	}
	return g.rows[y][x]
}

// IsSolid reports whether the tile at (x, y) is anything other than empty.
func (g *Grid) IsSolid(x, y int) bool {
	return g.Cell(x, y) != Empty
}

// Width returns the length of the longest row.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return len(g.rows)
}

// Lines returns the rows as strings, suitable for writing back to a level file.
func (g *Grid) Lines() []string {
	out := make([]string, len(g.rows))
	for i, r := range g.rows {
		out[i] = string(r)
	}
	return out
}

// SolidCount returns the number of non-empty cells.
func (g *Grid) SolidCount() int {
	n := 0
	for _, r := range g.rows {
		for _, c := range r {
			if c != Empty {
				n++
			}
		}
	}
	return n
}
