package exercise

import (
	"math/rand/v2"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

type FlashPhase string

const (
	FlashReady     FlashPhase = "ready"
	FlashCountdown FlashPhase = "countdown"
	FlashFlashing  FlashPhase = "flashing"
	FlashAnswering FlashPhase = "answering"
	FlashFeedback  FlashPhase = "feedback"
)

const (
	flashRight         = 5
	flashWrong         = -2
	flashCountdownFrom = 3
	flashCountdownStep = 700 * time.Millisecond
	flashStartSpeed    = 500 * time.Millisecond
	flashMinSpeed      = 150 * time.Millisecond
	flashMaxSpeed      = 500 * time.Millisecond
	flashSpeedUp       = 50 * time.Millisecond
	flashSlowDown      = 25 * time.Millisecond
	flashStreak        = 3
)

// Flash shows a word for a short, adaptive time and then asks which word it
// was. Three correct answers in a row shorten the exposure; a miss lengthens
// it and resets the streak.
type Flash struct {
	base
	words     []content.FlashWord
	idx       int
	options   []string
	phase     FlashPhase
	countdown int
	speed     time.Duration
	streak    int
	selected  string
	correct   bool
}

func NewFlash(ws []content.FlashWord, rng *rand.Rand) (*Flash, error) {
	if len(ws) == 0 {
		return nil, ErrNoContent
	}
	f := &Flash{
		base:  base{activity: game.FlashWord, rng: rng},
		words: game.Shuffle(rng, ws),
		phase: FlashReady,
		speed: flashStartSpeed,
	}
	f.options = game.Shuffle(rng, f.words[0].Options)
	return f, nil
}

func (f *Flash) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	switch a.Kind {
	case KindStart:
		if f.phase == FlashReady {
			f.phase = FlashCountdown
			f.countdown = flashCountdownFrom
			f.timers.After(now, flashCountdownStep, f.tick)
		}
		return nil, nil
	case KindChoose:
		return f.choose(a.Option), nil
	case KindNext:
		if f.phase != FlashFeedback {
			return nil, nil
		}
		f.idx++
		if f.idx >= len(f.words) {
			f.words = game.Shuffle(f.rng, f.words)
			f.idx = 0
		}
		f.options = game.Shuffle(f.rng, f.words[f.idx].Options)
		f.selected, f.correct = "", false
		f.phase = FlashReady
		return nil, nil
	}
	return nil, game.ErrUnknownAction
}

func (f *Flash) tick(at time.Time) []game.Answer {
	f.countdown--
	if f.countdown > 0 {
		f.timers.After(at, flashCountdownStep, f.tick)
		return nil
	}
	f.phase = FlashFlashing
	f.timers.After(at, f.speed, func(time.Time) []game.Answer {
		f.phase = FlashAnswering
		return nil
	})
	return nil
}

func (f *Flash) choose(opt string) []game.Answer {
	if f.phase != FlashAnswering {
		return nil
	}
	f.selected = opt
	f.phase = FlashFeedback
	if opt == f.words[f.idx].Word {
		f.correct = true
		f.streak++
		if f.streak >= flashStreak {
			f.speed = max(flashMinSpeed, f.speed-flashSpeedUp)
			f.streak = 0
		}
		return answer(game.Right(flashRight))
	}
	f.streak = 0
	f.speed = min(flashMaxSpeed, f.speed+flashSlowDown)
	return answer(game.Wrong(flashWrong))
}

// Speed is the current exposure time.
func (f *Flash) Speed() time.Duration { return f.speed }

type FlashView struct {
	Phase     FlashPhase    `json:"phase"`
	Countdown int           `json:"countdown,omitempty"`
	Word      string        `json:"word,omitempty"`
	Emoji     string        `json:"emoji,omitempty"`
	Options   []OptionView  `json:"options,omitempty"`
	Feedback  game.Feedback `json:"feedback,omitempty"`
	SpeedMs   int64         `json:"speedMs"`
	Streak    int           `json:"streak"`
}

func (f *Flash) View() any {
	w := f.words[f.idx]
	v := FlashView{
		Phase:     f.phase,
		Countdown: f.countdown,
		SpeedMs:   f.speed.Milliseconds(),
		Streak:    f.streak,
	}
	switch f.phase {
	case FlashFlashing:
		v.Word = w.Word
	case FlashAnswering:
		v.Options = optionViews(f.options, w.Word, "", false)
	case FlashFeedback:
		v.Word, v.Emoji = w.Word, w.Emoji
		v.Options = optionViews(f.options, w.Word, f.selected, true)
		v.Feedback = game.FeedbackFor(f.correct)
	}
	if f.phase != FlashCountdown {
		v.Countdown = 0
	}
	return v
}
