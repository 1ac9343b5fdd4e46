package wordsearch

import (
	"github.com/zyedidia/generic/mapset"
)

// MinSelection is the shortest path ever checked against the targets.
const MinSelection = 2

// Puzzle tracks found and remaining targets over a generated layout.
// Only placed words are targets, so a puzzle can always be completed.
type Puzzle struct {
	layout     *Layout
	remaining  mapset.Set[string]
	found      mapset.Set[string]
	foundCells mapset.Set[Cell]
	order      []string // targets in layout order, deduplicated
}

// NewPuzzle starts a puzzle with every placed word remaining.
func NewPuzzle(l *Layout) *Puzzle {
	p := &Puzzle{
		layout:     l,
		remaining:  mapset.New[string](),
		found:      mapset.New[string](),
		foundCells: mapset.New[Cell](),
	}
	for _, pl := range l.Placed {
		if !p.remaining.Has(pl.Word) {
			p.remaining.Put(pl.Word)
			p.order = append(p.order, pl.Word)
		}
	}
	return p
}

func (p *Puzzle) Grid() *Grid { return p.layout.Grid }
func (p *Puzzle) Unplaced() []string { return p.layout.Unplaced }

// Check reads the letters along path and, when they spell a remaining target
// forwards or backwards, moves that target to the found set. A found word
// never matches again.
func (p *Puzzle) Check(path Path) (string, bool) {
	if len(path) < MinSelection {
		return "", false
	}
	forward := p.layout.Grid.Read(path)
	backward := reverseString(forward)
	for _, w := range p.order {
		if !p.remaining.Has(w) {
			continue
		}
		if w == forward || w == backward {
			p.remaining.Remove(w)
			p.found.Put(w)
			for _, c := range path {
				p.foundCells.Put(c)
			}
			return w, true
		}
	}
	return "", false
}

// AlreadyFound reports whether path spells a word that was already found.
func (p *Puzzle) AlreadyFound(path Path) bool {
	s := p.layout.Grid.Read(path)
	return p.found.Has(s) || p.found.Has(reverseString(s))
}

// Complete reports whether every target has been found.
func (p *Puzzle) Complete() bool { return p.remaining.Size() == 0 }

// Found lists found targets in layout order.
func (p *Puzzle) Found() []string { return p.filter(p.found.Has) }

// Remaining lists targets still to find, in layout order.
func (p *Puzzle) Remaining() []string { return p.filter(p.remaining.Has) }

// Targets lists every target in layout order.
func (p *Puzzle) Targets() []string { return append([]string(nil), p.order...) }

// IsFound reports whether c belongs to a found word.
func (p *Puzzle) IsFound(c Cell) bool { return p.foundCells.Has(c) }

// FoundCells returns every locked cell in row-major order.
func (p *Puzzle) FoundCells() []Cell {
	var out []Cell
	for r := range p.layout.Grid.Size() {
		for c := range p.layout.Grid.Size() {
			if cell := (Cell{Row: r, Col: c}); p.foundCells.Has(cell) {
				out = append(out, cell)
			}
		}
	}
	return out
}

// Solution returns the solution path of a remaining word.
func (p *Puzzle) Solution(word string) (Path, bool) {
	if !p.remaining.Has(word) {
		return nil, false
	}
	for _, pl := range p.layout.Placed {
		if pl.Word == word {
			return append(Path(nil), pl.Path...), true
		}
	}
	return nil, false
}

func (p *Puzzle) filter(keep func(string) bool) []string {
	out := []string{}
	for _, w := range p.order {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
