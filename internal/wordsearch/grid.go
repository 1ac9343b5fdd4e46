// internal/wordsearch/grid.go
//
// Grid model for the word-hunter puzzle.
// Defines:
//   - Cell/Path: coordinates into a square grid and ordered runs of them.
//   - Direction: the 8 unit steps a word may follow.
//   - Grid: an N×N array of single letters.
//   - Alphabet: the base-letter pool used to fill unused cells.

package wordsearch

import (
	"encoding/json"
)

// Alphabet is the filler pool for cells no word occupies.
var Alphabet = []rune("ابتثجحخدذرزسشصضطظعغفقكلمنهويء")

// Cell is a (row, col) coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the cell n units along d.
func (c Cell) Step(d Direction, n int) Cell {
	return Cell{Row: c.Row + d.DR*n, Col: c.Col + d.DC*n}
}

// Path is an ordered run of cells.
type Path []Cell

// Reversed returns a reversed copy of p.
func (p Path) Reversed() Path {
	out := make(Path, len(p))
	for i, c := range p {
		out[len(p)-1-i] = c
	}
	return out
}

// Direction is a unit (Δrow, Δcol) step.
type Direction struct {
	DR int `json:"dr"`
	DC int `json:"dc"`
}

// Directions lists the four axis and four diagonal directions.
var Directions = [8]Direction{
	{0, 1}, {1, 1}, {1, 0}, {1, -1},
	{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

// Grid is a square array of letters. Zero means empty.
type Grid struct {
	size  int
	cells [][]rune
}

// NewGrid returns an empty size×size grid.
func NewGrid(size int) *Grid {
	cells := make([][]rune, size)
	for i := range cells {
		cells[i] = make([]rune, size)
	}
	return &Grid{size: size, cells: cells}
}

func (g *Grid) Size() int { return g.size }

// In reports whether c lies inside the grid.
func (g *Grid) In(c Cell) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < g.size && c.Col < g.size
}

// At returns the letter at c, or 0 for an empty or out-of-grid cell.
func (g *Grid) At(c Cell) rune {
	if !g.In(c) {
		return 0
	}
	return g.cells[c.Row][c.Col]
}

func (g *Grid) set(c Cell, r rune) { g.cells[c.Row][c.Col] = r }

// write stores word along p, one letter per cell.
func (g *Grid) write(p Path, word []rune) {
	for i, c := range p {
		g.set(c, word[i])
	}
}

// Read concatenates the letters along p.
func (g *Grid) Read(p Path) string {
	out := make([]rune, 0, len(p))
	for _, c := range p {
		out = append(out, g.At(c))
	}
	return string(out)
}

// Rows renders the grid as rows of one-letter strings.
func (g *Grid) Rows() [][]string {
	out := make([][]string, g.size)
	for r, row := range g.cells {
		out[r] = make([]string, g.size)
		for c, ch := range row {
			if ch != 0 {
				out[r][c] = string(ch)
			}
		}
	}
	return out
}

func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}
