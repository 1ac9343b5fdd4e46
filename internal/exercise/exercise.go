// internal/exercise/exercise.go
//
// Mini-game controllers.
// Every controller implements game.Exercise: it owns its question state,
// a deadline queue for delayed transitions (game.Timers) and a view, and
// reports each answer as a typed game.Answer. Controllers never touch the
// clock or the network; the session passes "now" in and drives timers.
//
// Input received while answer feedback is showing is ignored without error.

package exercise

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

// Action kinds understood by the controllers.
const (
	KindChoose      = "choose"
	KindNext        = "next"
	KindSpeak       = "speak"
	KindStart       = "start"
	KindFlip        = "flip"
	KindNextRound   = "next_round"
	KindNextLevel   = "next_level"
	KindRestart     = "restart"
	KindPick        = "pick"
	KindBack        = "back"
	KindRemove      = "remove"
	KindReset       = "reset"
	KindCheck       = "check"
	KindSelect      = "select"
	KindType        = "type"
	KindSubmit      = "submit"
	KindSuggest     = "suggest"
	KindSelectLevel = "select_level"
	KindLevels      = "levels"
	KindBegin       = "begin"
	KindExtend      = "extend"
	KindEnd         = "end"
	KindHint        = "hint"
	KindDrop        = "drop"
	KindReveal      = "reveal"
)

// ErrNoContent is returned when an activity has nothing to play.
var ErrNoContent = errors.New("exercise: no content for activity")

// Option marks in choice views.
const (
	MarkCorrect = "correct"
	MarkWrong   = "wrong"
	MarkDim     = "dim"
)

// base carries what every controller shares.
type base struct {
	activity game.Activity
	rng      *rand.Rand
	timers   game.Timers
}

func (b *base) Activity() game.Activity { return b.activity }

func (b *base) Advance(now time.Time) []game.Answer { return b.timers.Advance(now) }

func (b *base) Deadline() (time.Time, bool) { return b.timers.Deadline() }

func answer(a game.Answer) []game.Answer { return []game.Answer{a} }

func inRange[T any](s []T, i int) bool { return i >= 0 && i < len(s) }

// markOption returns the view mark of opt once a question has been answered.
func markOption(opt, correct, selected string, answered bool) string {
	switch {
	case !answered:
		return ""
	case opt == correct:
		return MarkCorrect
	case opt == selected:
		return MarkWrong
	default:
		return MarkDim
	}
}

// OptionView is one answer button.
type OptionView struct {
	Text string `json:"text"`
	Mark string `json:"mark,omitempty"`
}

func optionViews(opts []string, correct, selected string, answered bool) []OptionView {
	out := make([]OptionView, len(opts))
	for i, o := range opts {
		out[i] = OptionView{Text: o, Mark: markOption(o, correct, selected, answered)}
	}
	return out
}
