// internal/exercise/hunter.go
//
// Word hunter: find hidden words in a generated letter grid.
// Responsibilities:
//   - Build each exercise's grid with the wordsearch generator.
//   - Feed pointer drags into a wordsearch.Tracker (begin/extend/end).
//   - Score found words and misses; offer a paid hint after repeated misses.
//   - Advance through exercises and levels on timers.

package exercise

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/wordsearch"
)

type HunterPhase string

const (
	HunterLevelSelect   HunterPhase = "level_select"
	HunterPlaying       HunterPhase = "playing"
	HunterLevelComplete HunterPhase = "level_complete"
)

const (
	hunterFound     = 10
	hunterMiss      = -2
	hunterHintCost  = -5
	hunterHintAfter = 2
	hunterMissClear = 1000 * time.Millisecond
	hunterNextDelay = 1500 * time.Millisecond
)

// Hunter is the word hunter game.
type Hunter struct {
	base
	levels   []content.HunterLevel
	gen      *wordsearch.Generator
	phase    HunterPhase
	level    int
	exercise int
	puzzle   *wordsearch.Puzzle
	tracker  *wordsearch.Tracker
	misses   int
	wrong    wordsearch.Path
	hint     wordsearch.Path
	moving   bool // completion transition pending
}

func NewHunter(levels []content.HunterLevel, rng *rand.Rand) (*Hunter, error) {
	if len(levels) == 0 {
		return nil, ErrNoContent
	}
	return &Hunter{
		base:   base{activity: game.WordHunter, rng: rng},
		levels: levels,
		gen:    wordsearch.NewGenerator(rng),
		phase:  HunterLevelSelect,
	}, nil
}

// build generates the grid for the current level and exercise.
func (h *Hunter) build() error {
	lv := h.levels[h.level]
	layout, err := h.gen.Generate(lv.GridSize, lv.Exercises[h.exercise])
	if err != nil {
		return err
	}
	if len(layout.Unplaced) > 0 {
		log.Warn().
			Int("hunter_level", lv.Level).
			Int("exercise", h.exercise).
			Strs("words", layout.Unplaced).
			Msg("word hunter: words left out of grid")
	}
	h.timers.Clear()
	h.puzzle = wordsearch.NewPuzzle(layout)
	h.tracker = wordsearch.NewTracker(lv.GridSize)
	h.misses = 0
	h.wrong, h.hint = nil, nil
	h.moving = false
	h.phase = HunterPlaying
	return nil
}

func (h *Hunter) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	cell := wordsearch.Cell{Row: a.Row, Col: a.Col}
	switch a.Kind {
	case KindSelectLevel:
		if !inRange(h.levels, a.Index) {
			return nil, game.ErrInvalidAction
		}
		h.level, h.exercise = a.Index, 0
		return nil, h.build()
	case KindLevels:
		h.timers.Clear()
		h.phase, h.puzzle, h.tracker = HunterLevelSelect, nil, nil
		return nil, nil
	case KindNextLevel:
		if h.phase != HunterLevelComplete {
			return nil, nil
		}
		if h.level+1 >= len(h.levels) {
			h.phase = HunterLevelSelect
			return nil, nil
		}
		h.level, h.exercise = h.level+1, 0
		return nil, h.build()
	case KindBegin:
		if h.accepting() {
			h.tracker.Begin(cell)
		}
		return nil, nil
	case KindExtend:
		if h.accepting() {
			h.tracker.Extend(cell)
		}
		return nil, nil
	case KindEnd:
		if !h.accepting() || !h.tracker.Active() {
			return nil, nil
		}
		return h.end(now), nil
	case KindHint:
		return h.useHint(), nil
	}
	return nil, game.ErrUnknownAction
}

func (h *Hunter) accepting() bool {
	return h.phase == HunterPlaying && !h.moving && h.wrong == nil
}

func (h *Hunter) end(now time.Time) []game.Answer {
	path := h.tracker.End()
	if len(path) < wordsearch.MinSelection || h.puzzle.AlreadyFound(path) {
		return nil
	}
	if _, ok := h.puzzle.Check(path); ok {
		if h.hint != nil && h.puzzle.AlreadyFound(h.hint) {
			h.hint = nil
		}
		if h.puzzle.Complete() {
			h.moving = true
			h.timers.After(now, hunterNextDelay, h.advanceExercise)
		}
		return answer(game.Right(hunterFound))
	}
	h.misses++
	h.wrong = path
	h.timers.After(now, hunterMissClear, func(time.Time) []game.Answer {
		h.wrong = nil
		return nil
	})
	return answer(game.Wrong(hunterMiss))
}

func (h *Hunter) advanceExercise(time.Time) []game.Answer {
	h.moving = false
	if h.exercise+1 < len(h.levels[h.level].Exercises) {
		h.exercise++
		if err := h.build(); err != nil {
			log.Error().Err(err).Msg("word hunter: build exercise")
			h.phase = HunterLevelSelect
		}
		return nil
	}
	h.phase = HunterLevelComplete
	return nil
}

func (h *Hunter) useHint() []game.Answer {
	if h.phase != HunterPlaying || h.moving || h.misses < hunterHintAfter {
		return nil
	}
	remaining := h.puzzle.Remaining()
	if len(remaining) == 0 {
		return nil
	}
	h.hint, _ = h.puzzle.Solution(remaining[0])
	h.misses = 0
	return answer(game.Wrong(hunterHintCost))
}

type HunterView struct {
	Phase     HunterPhase       `json:"phase"`
	Levels    []string          `json:"levels"`
	Level     int               `json:"level"`
	Exercise  int               `json:"exercise"`
	Exercises int               `json:"exercises"`
	Grid      [][]string        `json:"grid,omitempty"`
	Words     []string          `json:"words,omitempty"`
	Unplaced  []string          `json:"unplaced,omitempty"` // did not fit the grid
	Found     []string          `json:"found,omitempty"`
	Locked    []wordsearch.Cell `json:"locked,omitempty"`
	Selection wordsearch.Path   `json:"selection,omitempty"`
	Wrong     wordsearch.Path   `json:"wrong,omitempty"`
	Hint      wordsearch.Path   `json:"hint,omitempty"`
	CanHint   bool              `json:"canHint"`
}

func (h *Hunter) View() any {
	v := HunterView{Phase: h.phase, Level: h.level}
	for _, lv := range h.levels {
		v.Levels = append(v.Levels, lv.Title)
	}
	if h.puzzle == nil {
		return v
	}
	v.Exercise = h.exercise
	v.Exercises = len(h.levels[h.level].Exercises)
	v.Grid = h.puzzle.Grid().Rows()
	v.Words = h.puzzle.Targets()
	v.Unplaced = h.puzzle.Unplaced()
	v.Found = h.puzzle.Found()
	v.Locked = h.puzzle.FoundCells()
	v.Selection = h.tracker.Path()
	v.Wrong = h.wrong
	v.Hint = h.hint
	v.CanHint = h.phase == HunterPlaying && !h.moving && h.misses >= hunterHintAfter
	return v
}
