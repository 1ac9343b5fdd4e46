package exercise

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

const (
	storyRight = 5
	storyWrong = -2
)

// Story asks the player to order the emojis that illustrate a sentence.
type Story struct {
	base
	stories  []content.Story
	idx      int
	board    *Board
	feedback game.Feedback
}

func NewStory(ss []content.Story, rng *rand.Rand) (*Story, error) {
	if len(ss) == 0 {
		return nil, ErrNoContent
	}
	s := &Story{
		base:    base{activity: game.StoryLogic, rng: rng},
		stories: game.Shuffle(rng, ss),
	}
	s.load()
	return s, nil
}

func (s *Story) load() {
	st := s.stories[s.idx]
	s.board = newBoard(game.Shuffle(s.rng, st.Emojis), len(st.CorrectOrder))
	s.feedback = game.FeedbackNone
}

func (s *Story) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	switch a.Kind {
	case KindDrop:
		if s.feedback != game.FeedbackNone {
			return nil, nil
		}
		return nil, s.board.Drop(a.Source, a.From, a.To)
	case KindRemove:
		if s.feedback != game.FeedbackNone {
			return nil, nil
		}
		return nil, s.board.Lift(a.Index)
	case KindCheck:
		if !s.board.Full() || s.feedback != game.FeedbackNone {
			return nil, nil
		}
		if slices.Equal(s.board.Slots, s.stories[s.idx].CorrectOrder) {
			s.feedback = game.FeedbackCorrect
			return answer(game.Right(storyRight)), nil
		}
		s.feedback = game.FeedbackIncorrect
		return answer(game.Wrong(storyWrong)), nil
	case KindReset:
		if s.feedback == game.FeedbackNone {
			s.load()
		}
		return nil, nil
	case KindNext:
		s.idx++
		if s.idx >= len(s.stories) {
			s.stories = game.Shuffle(s.rng, s.stories)
			s.idx = 0
		}
		s.load()
		return nil, nil
	}
	return nil, game.ErrUnknownAction
}

type StoryView struct {
	Sentence string        `json:"sentence"`
	Board    Board         `json:"board"`
	Feedback game.Feedback `json:"feedback,omitempty"`
	Correct  []string      `json:"correct,omitempty"`
}

func (s *Story) View() any {
	st := s.stories[s.idx]
	v := StoryView{Sentence: st.Sentence, Board: s.board.clone(), Feedback: s.feedback}
	if s.feedback == game.FeedbackIncorrect {
		v.Correct = st.CorrectOrder
	}
	return v
}
