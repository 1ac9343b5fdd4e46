package exercise

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

// NewFactory returns a game.Factory building controllers over c.
// sp is handed to listen-and-choose; nil means NoSpeech.
func NewFactory(c *content.Content, sp Speaker) game.Factory {
	return func(a game.Activity, rng *rand.Rand, now time.Time) (game.Exercise, error) {
		ex, err := build(c, sp, a, rng, now)
		if err != nil {
			return nil, fmt.Errorf("exercise %s: %w", a, err)
		}
		return ex, nil
	}
}

func build(c *content.Content, sp Speaker, a game.Activity, rng *rand.Rand, now time.Time) (game.Exercise, error) {
	switch a {
	case game.CompleteLetter:
		return NewLetterChoice(c.Letters, rng)
	case game.CompleteWord:
		return NewWordChoice(c.Words, rng)
	case game.ListenChoose:
		return NewListenChoice(c.Listen, rng, sp)
	case game.MatchingGame:
		return NewMatching(c.MatchingLevels, c.MatchingPairs, rng)
	case game.WordScramble:
		return NewScramble(c.Scramble, rng)
	case game.SentenceBuilder:
		return NewSentence(c.Sentences, rng)
	case game.Crossword:
		return NewCrossword(c.Crosswords, rng)
	case game.WhoAmI:
		return NewRiddle(c.Riddles, rng, now)
	case game.WordHunter:
		return NewHunter(c.HunterLevels, rng)
	case game.FlashWord:
		return NewFlash(c.FlashWords, rng)
	case game.DaysOfWeek:
		return NewDays(c.Days, c.DaysExercises, rng)
	case game.OppositesMatch:
		return NewOpposites(c.Opposites, rng)
	case game.StoryLogic:
		return NewStory(c.Stories, rng)
	}
	return nil, game.ErrUnknownActivity
}
