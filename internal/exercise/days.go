package exercise

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

const (
	daysOrderRight  = 10
	daysOrderWrong  = -5
	daysChoiceRight = 5
	daysChoiceWrong = -2
)

// Days is the days-of-week challenge: put the seven days in order, or answer
// a multiple-choice question about them.
type Days struct {
	base
	week      []string
	exercises []content.DaysExercise
	idx       int
	board     *Board
	selected  string
	feedback  game.Feedback
	revealed  bool
}

func NewDays(week []string, exs []content.DaysExercise, rng *rand.Rand) (*Days, error) {
	if len(exs) == 0 || len(week) == 0 {
		return nil, ErrNoContent
	}
	d := &Days{
		base:      base{activity: game.DaysOfWeek, rng: rng},
		week:      week,
		exercises: game.Shuffle(rng, exs),
	}
	d.load()
	return d, nil
}

func (d *Days) current() content.DaysExercise { return d.exercises[d.idx] }

func (d *Days) load() {
	d.selected, d.feedback, d.revealed = "", game.FeedbackNone, false
	d.board = nil
	if d.current().Type == content.DaysOrder {
		d.board = newBoard(game.Shuffle(d.rng, d.week), len(d.week))
	}
}

func (d *Days) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	switch a.Kind {
	case KindDrop, KindRemove:
		if d.board == nil {
			return nil, game.ErrInvalidAction
		}
		if d.feedback != game.FeedbackNone {
			return nil, nil
		}
		var err error
		if a.Kind == KindDrop {
			err = d.board.Drop(a.Source, a.From, a.To)
		} else {
			err = d.board.Lift(a.Index)
		}
		d.board.Pool = game.Shuffle(d.rng, d.board.Pool)
		return nil, err
	case KindCheck:
		if d.board == nil || !d.board.Full() || d.feedback != game.FeedbackNone {
			return nil, nil
		}
		if slices.Equal(d.board.Slots, d.week) {
			d.feedback = game.FeedbackCorrect
			return answer(game.Right(daysOrderRight)), nil
		}
		d.feedback = game.FeedbackIncorrect
		return answer(game.Wrong(daysOrderWrong)), nil
	case KindReveal:
		// The answer is shown only after a wrong ordering.
		if d.board != nil && d.feedback == game.FeedbackIncorrect {
			d.board = newBoard(nil, len(d.week))
			copy(d.board.Slots, d.week)
			d.revealed = true
		}
		return nil, nil
	case KindChoose:
		q := d.current()
		if q.Type != content.DaysChoice {
			return nil, game.ErrInvalidAction
		}
		if !slices.Contains(q.Options, a.Option) {
			return nil, game.ErrInvalidAction
		}
		if d.feedback != game.FeedbackNone {
			return nil, nil
		}
		d.selected = a.Option
		if a.Option == q.Correct {
			d.feedback = game.FeedbackCorrect
			return answer(game.Right(daysChoiceRight)), nil
		}
		d.feedback = game.FeedbackIncorrect
		return answer(game.Wrong(daysChoiceWrong)), nil
	case KindNext:
		d.idx++
		if d.idx >= len(d.exercises) {
			d.exercises = game.Shuffle(d.rng, d.exercises)
			d.idx = 0
		}
		d.load()
		return nil, nil
	}
	return nil, game.ErrUnknownAction
}

type DaysView struct {
	Type     content.DaysKind `json:"type"`
	Question string           `json:"question"`
	Board    *Board           `json:"board,omitempty"`
	Options  []OptionView     `json:"options,omitempty"`
	Feedback game.Feedback    `json:"feedback,omitempty"`
	Revealed bool             `json:"revealed,omitempty"`
}

func (d *Days) View() any {
	q := d.current()
	v := DaysView{Type: q.Type, Question: q.Question, Feedback: d.feedback, Revealed: d.revealed}
	if d.board != nil {
		b := d.board.clone()
		v.Board = &b
	}
	if q.Type == content.DaysChoice {
		v.Options = optionViews(q.Options, q.Correct, d.selected, d.feedback != game.FeedbackNone)
	}
	return v
}
