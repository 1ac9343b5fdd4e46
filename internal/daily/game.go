package daily

import (
	"errors"
	"sync"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/wordsearch"
)

var ErrFinished = errors.New("daily: game already finished")

// Game is one player's attempt at the daily word hunt.
type Game struct {
	ID     string
	UserID string
	Date   string
	Key    string
	Start  time.Time

	mu       sync.Mutex
	puzzle   *wordsearch.Puzzle
	misses   int
	finished time.Time
}

// NewGame builds today's puzzle for a player.
func NewGame(id, userID string, now time.Time, salt string, pool []string) (*Game, error) {
	l, err := Layout(now, salt, pool)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:     id,
		UserID: userID,
		Date:   DateKey(now),
		Key:    PuzzleKey(now, salt),
		Start:  now,
		puzzle: wordsearch.NewPuzzle(l),
	}, nil
}

// Outcome of one selection.
type Outcome struct {
	Word  string `json:"word,omitempty"`
	Found bool   `json:"found"`
	Done  bool   `json:"done"`
}

// Select checks the straight line from a to b. Non-straight selections and
// re-selections of found words change nothing; other misses are counted.
func (g *Game) Select(now time.Time, a, b wordsearch.Cell) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.finished.IsZero() {
		return Outcome{Done: true}, ErrFinished
	}
	grid := g.puzzle.Grid()
	path, ok := wordsearch.Line(a, b)
	if !ok || !grid.In(a) || !grid.In(b) || len(path) < wordsearch.MinSelection {
		return Outcome{}, nil
	}
	if g.puzzle.AlreadyFound(path) {
		return Outcome{}, nil
	}
	w, found := g.puzzle.Check(path)
	if !found {
		g.misses++
		return Outcome{}, nil
	}
	if g.puzzle.Complete() {
		g.finished = now
	}
	return Outcome{Word: w, Found: true, Done: g.puzzle.Complete()}, nil
}

// Result returns the persisted form of a finished game.
func (g *Game) Result() (Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finished.IsZero() {
		return Result{}, false
	}
	return Result{
		UserID:    g.UserID,
		Date:      g.Date,
		PuzzleKey: g.Key,
		Misses:    g.misses,
		ElapsedMs: int(g.finished.Sub(g.Start).Milliseconds()),
	}, true
}

type View struct {
	ID     string            `json:"gameId"`
	Date   string            `json:"date"`
	Grid   [][]string        `json:"grid"`
	Words  []string          `json:"words"`
	Found  []string          `json:"found"`
	Locked []wordsearch.Cell `json:"locked,omitempty"`
	Misses int               `json:"misses"`
	Done   bool              `json:"done"`
}

func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return View{
		ID:     g.ID,
		Date:   g.Date,
		Grid:   g.puzzle.Grid().Rows(),
		Words:  g.puzzle.Targets(),
		Found:  g.puzzle.Found(),
		Locked: g.puzzle.FoundCells(),
		Misses: g.misses,
		Done:   !g.finished.IsZero(),
	}
}

