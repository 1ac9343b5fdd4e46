package wordsearch

// Tracker turns a pointer drag over grid cells into a straight Selection Path.
//
// Begin anchors the path, Extend recomputes it from the anchor to the current
// cell when that cell lies on one of the 8 rays from the anchor, and End
// returns the final path and resets the tracker.
type Tracker struct {
	size   int
	anchor Cell
	path   Path
	active bool
}

// NewTracker returns a tracker for a size×size grid.
func NewTracker(size int) *Tracker { return &Tracker{size: size} }

func (t *Tracker) in(c Cell) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < t.size && c.Col < t.size
}

// Begin starts a new selection at c. Out-of-grid cells are ignored.
func (t *Tracker) Begin(c Cell) bool {
	if !t.in(c) {
		return false
	}
	t.anchor = c
	t.path = Path{c}
	t.active = true
	return true
}

// Extend moves the free end of the selection to c. It returns false and
// leaves the path unchanged when no selection is active, c is outside the
// grid, or c is not collinear with the anchor.
func (t *Tracker) Extend(c Cell) bool {
	if !t.active || !t.in(c) {
		return false
	}
	p, ok := Line(t.anchor, c)
	if !ok {
		return false
	}
	t.path = p
	return true
}

// Active reports whether a selection is in progress.
func (t *Tracker) Active() bool { return t.active }

// Path returns a copy of the current selection.
func (t *Tracker) Path() Path {
	return append(Path(nil), t.path...)
}

// End finalizes the selection and clears the tracker.
func (t *Tracker) End() Path {
	p := t.path
	t.Cancel()
	return p
}

// Cancel drops the selection without returning it.
func (t *Tracker) Cancel() {
	t.path = nil
	t.active = false
}

// Line returns the straight run of cells from a to b inclusive. ok is false
// when b is not on a horizontal, vertical or 45° diagonal ray from a.
func Line(a, b Cell) (Path, bool) {
	dr, dc := b.Row-a.Row, b.Col-a.Col
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return nil, false
	}
	steps := max(abs(dr), abs(dc))
	d := Direction{DR: sign(dr), DC: sign(dc)}
	p := make(Path, 0, steps+1)
	for i := 0; i <= steps; i++ {
		p = append(p, a.Step(d, i))
	}
	return p, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
