package exercise

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

const (
	crosswordRight = 1
	crosswordWrong = -0.5
)

type cwCell struct{ row, col int }

// Crossword is a fill-in grid with across and down clues. A clue is checked
// each time its last empty cell is filled; solved clues lock their cells and
// are never scored again.
type Crossword struct {
	base
	puzzles  []content.Crossword
	idx      int
	solution map[cwCell]string
	entries  map[cwCell]string
	locked   map[cwCell]bool
	solved   []bool
	active   int // clue index, -1 when none
}

func NewCrossword(ps []content.Crossword, rng *rand.Rand) (*Crossword, error) {
	if len(ps) == 0 {
		return nil, ErrNoContent
	}
	c := &Crossword{
		base:    base{activity: game.Crossword, rng: rng},
		puzzles: game.Shuffle(rng, ps),
	}
	c.load()
	return c, nil
}

func (c *Crossword) puzzle() content.Crossword { return c.puzzles[c.idx] }

func (c *Crossword) load() {
	p := c.puzzle()
	c.solution = make(map[cwCell]string)
	c.entries = make(map[cwCell]string)
	c.locked = make(map[cwCell]bool)
	c.solved = make([]bool, len(p.Clues))
	c.active = -1
	for i := range p.Clues {
		for cell, u := range c.clueCells(i) {
			c.solution[cell] = u
		}
	}
}

// clueCells maps each cell of clue i to its solution letter unit.
func (c *Crossword) clueCells(i int) map[cwCell]string {
	cl := c.puzzle().Clues[i]
	dr, dc := cl.Step()
	out := make(map[cwCell]string)
	for k, u := range content.Letters(cl.Answer) {
		out[cwCell{cl.Row + k*dr, cl.Col + k*dc}] = u
	}
	return out
}

func (c *Crossword) covering(cell cwCell) []int {
	var out []int
	for i := range c.puzzle().Clues {
		if _, ok := c.clueCells(i)[cell]; ok {
			out = append(out, i)
		}
	}
	return out
}

func (c *Crossword) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	cell := cwCell{a.Row, a.Col}
	switch a.Kind {
	case KindSelect:
		c.selectCell(cell)
		return nil, nil
	case KindType:
		return c.typeAt(cell, strings.TrimSpace(a.Text))
	case KindNext:
		c.idx = (c.idx + 1) % len(c.puzzles)
		c.load()
		return nil, nil
	}
	return nil, game.ErrUnknownAction
}

// selectCell makes a clue through cell active. Selecting a cell shared by an
// across and a down clue toggles between them.
func (c *Crossword) selectCell(cell cwCell) {
	clues := c.covering(cell)
	if len(clues) == 0 {
		return
	}
	for k, i := range clues {
		if i == c.active {
			c.active = clues[(k+1)%len(clues)]
			return
		}
	}
	c.active = clues[0]
}

func (c *Crossword) typeAt(cell cwCell, text string) ([]game.Answer, error) {
	if _, ok := c.solution[cell]; !ok {
		return nil, game.ErrInvalidAction
	}
	if c.locked[cell] {
		return nil, nil
	}
	if text == "" {
		delete(c.entries, cell)
		return nil, nil
	}
	c.entries[cell] = text

	var out []game.Answer
	for _, i := range c.covering(cell) {
		if c.solved[i] {
			continue
		}
		cells := c.clueCells(i)
		filled, right := true, true
		for k, u := range cells {
			e, ok := c.entries[k]
			if !ok {
				filled = false
				break
			}
			if content.Normalize(e) != content.Normalize(u) {
				right = false
			}
		}
		if !filled {
			continue
		}
		if !right {
			out = append(out, game.Wrong(crosswordWrong))
			continue
		}
		c.solved[i] = true
		for k := range cells {
			c.locked[k] = true
		}
		out = append(out, game.Right(crosswordRight))
	}
	return out, nil
}

// Done reports whether every clue is solved.
func (c *Crossword) Done() bool {
	for _, s := range c.solved {
		if !s {
			return false
		}
	}
	return true
}

type CrosswordCell struct {
	Open   bool   `json:"open"`
	Number int    `json:"number,omitempty"`
	Entry  string `json:"entry,omitempty"`
	Locked bool   `json:"locked,omitempty"`
	Active bool   `json:"active,omitempty"`
}

type CrosswordClueView struct {
	Number    int               `json:"number"`
	Clue      string            `json:"clue"`
	Direction content.Direction `json:"direction"`
	Solved    bool              `json:"solved"`
}

type CrosswordView struct {
	Size  int                 `json:"size"`
	Cells [][]CrosswordCell   `json:"cells"`
	Clues []CrosswordClueView `json:"clues"`
	Done  bool                `json:"done"`
}

func (c *Crossword) View() any {
	p := c.puzzle()
	v := CrosswordView{Size: p.Size, Done: c.Done()}
	var active map[cwCell]string
	if c.active >= 0 {
		active = c.clueCells(c.active)
	}
	v.Cells = make([][]CrosswordCell, p.Size)
	for r := range p.Size {
		v.Cells[r] = make([]CrosswordCell, p.Size)
		for col := range p.Size {
			k := cwCell{r, col}
			_, open := c.solution[k]
			_, on := active[k]
			v.Cells[r][col] = CrosswordCell{Open: open, Entry: c.entries[k], Locked: c.locked[k], Active: on}
		}
	}
	for i, cl := range p.Clues {
		v.Cells[cl.Row][cl.Col].Number = cl.Number
		v.Clues = append(v.Clues, CrosswordClueView{
			Number: cl.Number, Clue: cl.Clue, Direction: cl.Direction, Solved: c.solved[i],
		})
	}
	return v
}
