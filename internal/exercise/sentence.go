package exercise

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

const sentenceRight = 25

// Sentence rebuilds a sentence from shuffled word tiles. It is correct only
// when the placed words joined by single spaces equal the sentence exactly.
type Sentence struct {
	base
	questions []content.SentenceQuestion
	idx       int
	tiles     []string
	pool      []int // tile indexes not yet placed, in display order
	placed    []int
	feedback  game.Feedback
}

func NewSentence(qs []content.SentenceQuestion, rng *rand.Rand) (*Sentence, error) {
	if len(qs) == 0 {
		return nil, ErrNoContent
	}
	s := &Sentence{
		base:      base{activity: game.SentenceBuilder, rng: rng},
		questions: game.Shuffle(rng, qs),
	}
	s.load()
	return s, nil
}

func (s *Sentence) load() {
	s.tiles = game.Shuffle(s.rng, strings.Fields(s.questions[s.idx].Sentence))
	s.pool = make([]int, len(s.tiles))
	for i := range s.pool {
		s.pool[i] = i
	}
	s.placed = nil
	s.feedback = game.FeedbackNone
}

func (s *Sentence) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	switch a.Kind {
	case KindPick:
		// Index is a position in the pool.
		if !inRange(s.pool, a.Index) {
			return nil, game.ErrInvalidAction
		}
		if s.feedback == game.FeedbackNone {
			s.placed = append(s.placed, s.pool[a.Index])
			s.pool = slices.Delete(s.pool, a.Index, a.Index+1)
		}
		return nil, nil
	case KindRemove:
		// Index is a position in the answer.
		if !inRange(s.placed, a.Index) {
			return nil, game.ErrInvalidAction
		}
		if s.feedback == game.FeedbackNone {
			s.pool = append(s.pool, s.placed[a.Index])
			s.placed = slices.Delete(s.placed, a.Index, a.Index+1)
		}
		return nil, nil
	case KindCheck:
		return s.check(), nil
	case KindReset:
		// Only a pending answer can be cleared; after feedback the
		// question moves on with next.
		if s.feedback == game.FeedbackNone {
			s.load()
		}
		return nil, nil
	case KindNext:
		s.idx++
		if s.idx >= len(s.questions) {
			s.questions = game.Shuffle(s.rng, s.questions)
			s.idx = 0
		}
		s.load()
		return nil, nil
	}
	return nil, game.ErrUnknownAction
}

func (s *Sentence) check() []game.Answer {
	if s.feedback != game.FeedbackNone || len(s.pool) > 0 {
		return nil
	}
	if s.built() == s.questions[s.idx].Sentence {
		s.feedback = game.FeedbackCorrect
		return answer(game.Right(sentenceRight))
	}
	s.feedback = game.FeedbackIncorrect
	return answer(game.Wrong(0))
}

func (s *Sentence) words(idx []int) []string {
	out := make([]string, len(idx))
	for i, t := range idx {
		out[i] = s.tiles[t]
	}
	return out
}

func (s *Sentence) built() string { return strings.Join(s.words(s.placed), " ") }

type SentenceView struct {
	Pool     []string      `json:"pool"`
	Placed   []string      `json:"placed"`
	CanCheck bool          `json:"canCheck"`
	Feedback game.Feedback `json:"feedback,omitempty"`
	Sentence string        `json:"sentence,omitempty"`
}

func (s *Sentence) View() any {
	v := SentenceView{
		Pool:     s.words(s.pool),
		Placed:   s.words(s.placed),
		CanCheck: len(s.pool) == 0 && s.feedback == game.FeedbackNone,
		Feedback: s.feedback,
	}
	if s.feedback == game.FeedbackIncorrect {
		v.Sentence = s.questions[s.idx].Sentence
	}
	return v
}
