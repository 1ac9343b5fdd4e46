package exercise

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

const (
	riddleRight      = 1
	riddleSuggestion = 0.5
	riddleWrong      = -0.5
	suggestionDelay  = 15 * time.Second
	riddleRetryDelay = 1500 * time.Millisecond
)

// Riddle is the "who am I" exercise: type the answer, or pick one of the
// suggestions that appear after a delay. A wrong answer shows feedback
// briefly and then lets the player try again.
type Riddle struct {
	base
	riddles     []content.Riddle
	idx         int
	feedback    game.Feedback
	suggestions bool
	submitted   []string
	lastInput   string
}

func NewRiddle(rs []content.Riddle, rng *rand.Rand, now time.Time) (*Riddle, error) {
	if len(rs) == 0 {
		return nil, ErrNoContent
	}
	r := &Riddle{
		base:    base{activity: game.WhoAmI, rng: rng},
		riddles: game.Shuffle(rng, rs),
	}
	r.load(now)
	return r, nil
}

func (r *Riddle) load(now time.Time) {
	r.timers.Clear()
	r.feedback = game.FeedbackNone
	r.suggestions = false
	r.submitted = nil
	r.lastInput = ""
	r.timers.After(now, suggestionDelay, func(time.Time) []game.Answer {
		r.suggestions = true
		return nil
	})
}

func (r *Riddle) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	switch a.Kind {
	case KindSubmit:
		text := strings.TrimSpace(a.Text)
		if text == "" || r.feedback != game.FeedbackNone {
			return nil, nil
		}
		r.lastInput = text
		return r.judge(now, content.Normalize(text) == content.Normalize(r.riddles[r.idx].Answer), riddleRight), nil
	case KindSuggest:
		q := r.riddles[r.idx]
		if !slices.Contains(q.Options, a.Option) {
			return nil, game.ErrInvalidAction
		}
		if !r.suggestions || r.feedback != game.FeedbackNone || slices.Contains(r.submitted, a.Option) {
			return nil, nil
		}
		r.submitted = append(r.submitted, a.Option)
		return r.judge(now, a.Option == q.Answer, riddleSuggestion), nil
	case KindNext:
		r.idx++
		if r.idx >= len(r.riddles) {
			r.riddles = game.Shuffle(r.rng, r.riddles)
			r.idx = 0
		}
		r.load(now)
		return nil, nil
	}
	return nil, game.ErrUnknownAction
}

func (r *Riddle) judge(now time.Time, ok bool, reward float64) []game.Answer {
	if ok {
		r.feedback = game.FeedbackCorrect
		return answer(game.Right(reward))
	}
	r.feedback = game.FeedbackIncorrect
	r.timers.After(now, riddleRetryDelay, func(time.Time) []game.Answer {
		if r.feedback == game.FeedbackIncorrect {
			r.feedback = game.FeedbackNone
		}
		return nil
	})
	return answer(game.Wrong(riddleWrong))
}

type RiddleView struct {
	Riddle      string        `json:"riddle"`
	Emoji       string        `json:"emoji,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
	Submitted   []string      `json:"submitted,omitempty"`
	Input       string        `json:"input,omitempty"`
	Feedback    game.Feedback `json:"feedback,omitempty"`
	Answer      string        `json:"answer,omitempty"`
}

func (r *Riddle) View() any {
	q := r.riddles[r.idx]
	v := RiddleView{
		Riddle:    q.Riddle,
		Submitted: append([]string(nil), r.submitted...),
		Input:     r.lastInput,
		Feedback:  r.feedback,
	}
	if r.suggestions {
		v.Suggestions = q.Options
	}
	if r.feedback == game.FeedbackCorrect {
		v.Answer, v.Emoji = q.Answer, q.Emoji
	}
	return v
}
