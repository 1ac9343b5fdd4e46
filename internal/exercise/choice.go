package exercise

import (
	"errors"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

// Scoring for the single-choice exercises.
const (
	letterRight = 1
	letterWrong = -0.5
	wordRight   = 10
	listenRight = 15
)

type choiceItem struct {
	prompt  string
	correct string
	options []string
	reveal  string
}

// Choice drives the single-answer multiple-choice exercises: complete the
// letter, complete the word, listen and choose.
type Choice struct {
	base
	items    []choiceItem
	idx      int
	selected string
	feedback game.Feedback
	right    game.Answer
	wrong    game.Answer

	speaker Speaker
	say     *Utterance
	notice  string
}

func newChoice(a game.Activity, rng *rand.Rand, items []choiceItem, right, wrong game.Answer) (*Choice, error) {
	if len(items) == 0 {
		return nil, ErrNoContent
	}
	return &Choice{
		base:  base{activity: a, rng: rng},
		items: game.Shuffle(rng, items),
		right: right,
		wrong: wrong,
	}, nil
}

// NewLetterChoice builds the complete-the-letter exercise.
func NewLetterChoice(qs []content.LetterQuestion, rng *rand.Rand) (*Choice, error) {
	items := make([]choiceItem, len(qs))
	for i, q := range qs {
		items[i] = choiceItem{prompt: q.WordHint, correct: q.Correct, options: q.Options, reveal: q.Vocalized}
	}
	return newChoice(game.CompleteLetter, rng, items, game.Right(letterRight), game.Wrong(letterWrong))
}

// NewWordChoice builds the complete-the-sentence exercise.
func NewWordChoice(qs []content.WordQuestion, rng *rand.Rand) (*Choice, error) {
	items := make([]choiceItem, len(qs))
	for i, q := range qs {
		items[i] = choiceItem{prompt: q.SentenceHint, correct: q.Correct, options: q.Options}
	}
	return newChoice(game.CompleteWord, rng, items, game.Right(wordRight), game.Wrong(0))
}

// NewListenChoice builds listen-and-choose. A nil speaker means NoSpeech.
func NewListenChoice(qs []content.ListenQuestion, rng *rand.Rand, sp Speaker) (*Choice, error) {
	items := make([]choiceItem, len(qs))
	for i, q := range qs {
		items[i] = choiceItem{correct: q.Correct, options: q.Options}
	}
	c, err := newChoice(game.ListenChoose, rng, items, game.Right(listenRight), game.Wrong(0))
	if err != nil {
		return nil, err
	}
	if sp == nil {
		sp = NoSpeech{}
	}
	c.speaker = sp
	return c, nil
}

func (c *Choice) current() choiceItem { return c.items[c.idx] }

func (c *Choice) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	switch a.Kind {
	case KindChoose:
		return c.choose(a.Option)
	case KindNext:
		c.next()
		return nil, nil
	case KindSpeak:
		return nil, c.speak()
	}
	return nil, game.ErrUnknownAction
}

func (c *Choice) choose(opt string) ([]game.Answer, error) {
	if c.feedback != game.FeedbackNone {
		return nil, nil
	}
	q := c.current()
	if !slices.Contains(q.options, opt) {
		return nil, game.ErrInvalidAction
	}
	c.selected = opt
	if opt == q.correct {
		c.feedback = game.FeedbackCorrect
		return answer(c.right), nil
	}
	c.feedback = game.FeedbackIncorrect
	return answer(c.wrong), nil
}

func (c *Choice) next() {
	c.selected, c.feedback = "", game.FeedbackNone
	c.say, c.notice = nil, ""
	c.idx++
	if c.idx >= len(c.items) {
		c.items = game.Shuffle(c.rng, c.items)
		c.idx = 0
	}
}

func (c *Choice) speak() error {
	if c.speaker == nil {
		return game.ErrUnknownAction
	}
	u := Utterance{Text: c.current().correct, Lang: "ar-SA", Rate: 0.8}
	if err := c.speaker.Speak(u); err != nil {
		if errors.Is(err, ErrSpeechUnavailable) {
			c.notice = SpeechNotice
			return nil
		}
		return err
	}
	c.say, c.notice = &u, ""
	return nil
}

// ChoiceView is the JSON snapshot of a Choice.
type ChoiceView struct {
	Index    int           `json:"index"`
	Total    int           `json:"total"`
	Prompt   string        `json:"prompt,omitempty"`
	Options  []OptionView  `json:"options"`
	Feedback game.Feedback `json:"feedback,omitempty"`
	Reveal   string        `json:"reveal,omitempty"`
	Say      *Utterance    `json:"say,omitempty"`
	Notice   string        `json:"notice,omitempty"`
}

func (c *Choice) View() any {
	q := c.current()
	answered := c.feedback != game.FeedbackNone
	v := ChoiceView{
		Index:    c.idx,
		Total:    len(c.items),
		Prompt:   q.prompt,
		Options:  optionViews(q.options, q.correct, c.selected, answered),
		Feedback: c.feedback,
		Say:      c.say,
		Notice:   c.notice,
	}
	if answered {
		v.Reveal = q.reveal
	}
	return v
}
