// internal/wordsearch/generator.go
//
// Procedural word placement.
// Responsibilities:
//   - TryPlace: a single random placement attempt (pure; never mutates the grid).
//   - Generator.Place: bounded retry loop over TryPlace, then the failure policy.
//   - Generator.Generate: place every word, then fill empty cells from Alphabet.
//
// Notes:
//   - A cell may be shared by two words only when both want the same letter.
//   - The default failure policy (Exhaustive) scans every start cell and
//     direction in a fixed order, so a word is only reported as unplaced when
//     no legal placement exists at all.

package wordsearch

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// DefaultAttempts is the random placement budget per word.
const DefaultAttempts = 100

var (
	ErrInvalidSize = errors.New("wordsearch: grid size must be positive")
	ErrEmptyWord   = errors.New("wordsearch: empty word")
	ErrWordTooLong = errors.New("wordsearch: word longer than grid")
)

// Placement is a word and its solution path, in word order.
type Placement struct {
	Word string `json:"word"`
	Path Path   `json:"path"`
}

// Layout is a generated puzzle: the filled grid, the placed words and the
// words that could not be placed.
type Layout struct {
	Grid     *Grid       `json:"grid"`
	Placed   []Placement `json:"placed"`
	Unplaced []string    `json:"unplaced,omitempty"`
}

// FailurePolicy is consulted once the random budget for a word is spent.
type FailurePolicy func(g *Grid, word []rune) (Path, bool)

// Skip gives up on the word.
func Skip(*Grid, []rune) (Path, bool) { return nil, false }

// Exhaustive tries every start cell and direction, forward then reversed.
func Exhaustive(g *Grid, word []rune) (Path, bool) {
	for _, reversed := range []bool{false, true} {
		for r := 0; r < g.size; r++ {
			for c := 0; c < g.size; c++ {
				for _, d := range Directions {
					if p, ok := fit(g, word, Cell{r, c}, d, reversed); ok {
						return p, true
					}
				}
			}
		}
	}
	return nil, false
}

// TryPlace makes one random attempt to fit word into g. On success it returns
// the solution path in word order; the grid is left untouched.
func TryPlace(g *Grid, word []rune, rng *rand.Rand) (Path, bool) {
	d := Directions[rng.IntN(len(Directions))]
	start := Cell{Row: rng.IntN(g.size), Col: rng.IntN(g.size)}
	reversed := rng.IntN(2) == 0
	return fit(g, word, start, d, reversed)
}

// fit checks a concrete placement. When reversed, the letters are laid from
// start in reverse order, so the word reads backwards along d.
func fit(g *Grid, word []rune, start Cell, d Direction, reversed bool) (Path, bool) {
	n := len(word)
	if n == 0 || !g.In(start.Step(d, n-1)) {
		return nil, false
	}
	laid := Path(make([]Cell, n))
	for i := range n {
		c := start.Step(d, i)
		want := word[i]
		if reversed {
			want = word[n-1-i]
		}
		if cur := g.At(c); cur != 0 && cur != want {
			return nil, false
		}
		laid[i] = c
	}
	if reversed {
		return laid.Reversed(), true
	}
	return laid, true
}

// Generator places words with an injected random source.
type Generator struct {
	Rand     *rand.Rand
	Attempts int           // random attempts per word; DefaultAttempts when zero
	Fallback FailurePolicy // nil means Exhaustive
}

// NewGenerator returns a generator with the default budget and policy.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{Rand: rng, Attempts: DefaultAttempts, Fallback: Exhaustive}
}

// Place fits one word into g and writes it. It reports false when neither the
// random budget nor the failure policy found a placement.
func (gen *Generator) Place(g *Grid, word string) (Path, bool) {
	letters := []rune(word)
	attempts := gen.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	for range attempts {
		if p, ok := TryPlace(g, letters, gen.Rand); ok {
			g.write(p, letters)
			return p, true
		}
	}
	policy := gen.Fallback
	if policy == nil {
		policy = Exhaustive
	}
	if p, ok := policy(g, letters); ok {
		g.write(p, letters)
		return p, true
	}
	return nil, false
}

// Generate builds a size×size layout holding words, then fills the rest of
// the grid uniformly from Alphabet.
func (gen *Generator) Generate(size int, words []string) (*Layout, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	for _, w := range words {
		n := len([]rune(w))
		if n == 0 {
			return nil, ErrEmptyWord
		}
		if n > size {
			return nil, fmt.Errorf("%w: %q in %dx%d", ErrWordTooLong, w, size, size)
		}
	}

	g := NewGrid(size)
	l := &Layout{Grid: g}
	for _, w := range words {
		if p, ok := gen.Place(g, w); ok {
			l.Placed = append(l.Placed, Placement{Word: w, Path: p})
		} else {
			l.Unplaced = append(l.Unplaced, w)
		}
	}
	gen.fill(g)
	return l, nil
}

func (gen *Generator) fill(g *Grid) {
	for r := range g.size {
		for c := range g.size {
			if g.cells[r][c] == 0 {
				g.cells[r][c] = Alphabet[gen.Rand.IntN(len(Alphabet))]
			}
		}
	}
}

// Generate is a convenience wrapper around NewGenerator(rng).Generate.
func Generate(size int, words []string, rng *rand.Rand) (*Layout, error) {
	return NewGenerator(rng).Generate(size, words)
}
