package exercise

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

const (
	oppositesRight    = 1
	oppositesWrong    = -0.5
	oppositesWrongFor = 800 * time.Millisecond
)

// Connect columns.
const (
	SideLeft  = "left"
	SideRight = "right"
)

type oppItem struct {
	PairID int    `json:"pairId"`
	Text   string `json:"text"`
}

// Opposites runs the opposites exercises in content order, wrapping around.
// Connect mode links words to their opposites across two shuffled columns;
// choice and blank modes are single-answer questions.
type Opposites struct {
	base
	exercises []content.OppositesExercise
	idx       int

	left, right []oppItem
	picked      int // left index, -1 when none
	connected   mapset.Set[int]
	wrongPair   [2]int
	locked      bool

	selected string
	feedback game.Feedback
}

func NewOpposites(exs []content.OppositesExercise, rng *rand.Rand) (*Opposites, error) {
	if len(exs) == 0 {
		return nil, ErrNoContent
	}
	o := &Opposites{
		base:      base{activity: game.OppositesMatch, rng: rng},
		exercises: exs,
	}
	o.load()
	return o, nil
}

func (o *Opposites) current() content.OppositesExercise { return o.exercises[o.idx] }

func (o *Opposites) load() {
	o.timers.Clear()
	o.left, o.right = nil, nil
	o.picked = -1
	o.connected = mapset.New[int]()
	o.locked = false
	o.selected, o.feedback = "", game.FeedbackNone
	q := o.current()
	if q.Type != content.OppositesConnect {
		return
	}
	for _, p := range q.Pairs {
		o.left = append(o.left, oppItem{PairID: p.ID, Text: p.Word})
		o.right = append(o.right, oppItem{PairID: p.ID, Text: p.Opposite})
	}
	o.left = game.Shuffle(o.rng, o.left)
	o.right = game.Shuffle(o.rng, o.right)
}

func (o *Opposites) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	switch a.Kind {
	case KindPick:
		if o.current().Type != content.OppositesConnect {
			return nil, game.ErrInvalidAction
		}
		return o.pick(now, a.Source, a.Index)
	case KindChoose:
		q := o.current()
		if q.Type == content.OppositesConnect || !slices.Contains(q.Options, a.Option) {
			return nil, game.ErrInvalidAction
		}
		if o.feedback != game.FeedbackNone {
			return nil, nil
		}
		o.selected = a.Option
		if a.Option == q.Correct {
			o.feedback = game.FeedbackCorrect
			return answer(game.Right(oppositesRight)), nil
		}
		o.feedback = game.FeedbackIncorrect
		return answer(game.Wrong(oppositesWrong)), nil
	case KindNext:
		o.idx = (o.idx + 1) % len(o.exercises)
		o.load()
		return nil, nil
	}
	return nil, game.ErrUnknownAction
}

func (o *Opposites) pick(now time.Time, side string, i int) ([]game.Answer, error) {
	switch side {
	case SideLeft:
		if !inRange(o.left, i) {
			return nil, game.ErrInvalidAction
		}
		if !o.locked && !o.connected.Has(o.left[i].PairID) {
			o.picked = i
		}
		return nil, nil
	case SideRight:
		if !inRange(o.right, i) {
			return nil, game.ErrInvalidAction
		}
	default:
		return nil, game.ErrInvalidAction
	}
	if o.locked || o.picked < 0 || o.connected.Has(o.right[i].PairID) {
		return nil, nil
	}
	if o.left[o.picked].PairID == o.right[i].PairID {
		o.connected.Put(o.right[i].PairID)
		o.picked = -1
		if o.connected.Size() == len(o.left) {
			o.feedback = game.FeedbackCorrect
		}
		return answer(game.Right(oppositesRight)), nil
	}
	o.locked = true
	o.wrongPair = [2]int{o.picked, i}
	o.timers.After(now, oppositesWrongFor, func(time.Time) []game.Answer {
		o.locked = false
		o.picked = -1
		return nil
	})
	return answer(game.Wrong(oppositesWrong)), nil
}

type OppositesColumnItem struct {
	Text      string `json:"text"`
	Connected bool   `json:"connected,omitempty"`
	Picked    bool   `json:"picked,omitempty"`
	Wrong     bool   `json:"wrong,omitempty"`
}

type OppositesView struct {
	Type         content.OppositesKind `json:"type"`
	Left         []OppositesColumnItem `json:"left,omitempty"`
	Right        []OppositesColumnItem `json:"right,omitempty"`
	PromptWord   string                `json:"promptWord,omitempty"`
	SentenceHint string                `json:"sentenceHint,omitempty"`
	Options      []OptionView          `json:"options,omitempty"`
	Feedback     game.Feedback         `json:"feedback,omitempty"`
}

func (o *Opposites) View() any {
	q := o.current()
	v := OppositesView{Type: q.Type, Feedback: o.feedback}
	if q.Type != content.OppositesConnect {
		v.PromptWord, v.SentenceHint = q.PromptWord, q.SentenceHint
		v.Options = optionViews(q.Options, q.Correct, o.selected, o.feedback != game.FeedbackNone)
		return v
	}
	for i, it := range o.left {
		v.Left = append(v.Left, OppositesColumnItem{
			Text:      it.Text,
			Connected: o.connected.Has(it.PairID),
			Picked:    i == o.picked,
			Wrong:     o.locked && i == o.wrongPair[0],
		})
	}
	for i, it := range o.right {
		v.Right = append(v.Right, OppositesColumnItem{
			Text:      it.Text,
			Connected: o.connected.Has(it.PairID),
			Wrong:     o.locked && i == o.wrongPair[1],
		})
	}
	return v
}
