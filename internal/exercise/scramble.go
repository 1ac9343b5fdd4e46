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
	scrambleRight = 1
	scrambleWrong = -0.5
)

// Scramble asks the player to rebuild a word from its shuffled letter units.
// The answer is checked automatically once every tile is used.
type Scramble struct {
	base
	questions []content.ScrambleQuestion
	idx       int
	tiles     []string
	used      []bool
	answer    []int
	feedback  game.Feedback
}

func NewScramble(qs []content.ScrambleQuestion, rng *rand.Rand) (*Scramble, error) {
	if len(qs) == 0 {
		return nil, ErrNoContent
	}
	s := &Scramble{
		base:      base{activity: game.WordScramble, rng: rng},
		questions: game.Shuffle(rng, qs),
	}
	s.load()
	return s, nil
}

// load deals the tiles of the current word. A shuffle that happens to spell
// the word is retried a few times.
func (s *Scramble) load() {
	units := content.Letters(s.questions[s.idx].Word)
	s.tiles = game.Shuffle(s.rng, units)
	for range 5 {
		if !slices.Equal(s.tiles, units) {
			break
		}
		s.tiles = game.Shuffle(s.rng, units)
	}
	s.used = make([]bool, len(s.tiles))
	s.answer = nil
	s.feedback = game.FeedbackNone
}

func (s *Scramble) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	switch a.Kind {
	case KindPick:
		return s.pick(a.Index)
	case KindBack:
		if s.feedback == game.FeedbackNone && len(s.answer) > 0 {
			last := s.answer[len(s.answer)-1]
			s.used[last] = false
			s.answer = s.answer[:len(s.answer)-1]
		}
		return nil, nil
	case KindReset:
		if s.feedback != game.FeedbackNone {
			return nil, nil
		}
		for i := range s.used {
			s.used[i] = false
		}
		s.answer = nil
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

func (s *Scramble) pick(i int) ([]game.Answer, error) {
	if !inRange(s.tiles, i) {
		return nil, game.ErrInvalidAction
	}
	if s.feedback != game.FeedbackNone || s.used[i] {
		return nil, nil
	}
	s.used[i] = true
	s.answer = append(s.answer, i)
	if len(s.answer) < len(s.tiles) {
		return nil, nil
	}
	if s.spelled() == s.questions[s.idx].Word {
		s.feedback = game.FeedbackCorrect
		return answer(game.Right(scrambleRight)), nil
	}
	s.feedback = game.FeedbackIncorrect
	return answer(game.Wrong(scrambleWrong)), nil
}

func (s *Scramble) spelled() string {
	var b strings.Builder
	for _, i := range s.answer {
		b.WriteString(s.tiles[i])
	}
	return b.String()
}

type ScrambleView struct {
	Hint     string        `json:"hint,omitempty"`
	Tiles    []string      `json:"tiles"`
	Used     []bool        `json:"used"`
	Answer   string        `json:"answer"`
	Feedback game.Feedback `json:"feedback,omitempty"`
	Word     string        `json:"word,omitempty"` // shown once answered
}

func (s *Scramble) View() any {
	v := ScrambleView{
		Hint:     s.questions[s.idx].Hint,
		Tiles:    s.tiles,
		Used:     append([]bool(nil), s.used...),
		Answer:   s.spelled(),
		Feedback: s.feedback,
	}
	if s.feedback != game.FeedbackNone {
		v.Word = s.questions[s.idx].Word
	}
	return v
}
