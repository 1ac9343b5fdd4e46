// internal/exercise/matching.go
//
// Memory card game.
// Flow per round:
//   start -> study (cards face up, countdown in seconds) -> match
//   -> round_complete | level_complete | game_complete
//
// Timing:
//   - The pair under test is checked 500ms after the second flip.
//   - A mismatch turns both cards back down 1200ms after the check.
//   - A match releases the checking lock 200ms after the check.
//   - The phase change after the last pair follows 500ms later.

package exercise

import (
	"math/rand/v2"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

type MatchPhase string

const (
	PhaseStart         MatchPhase = "start"
	PhaseStudy         MatchPhase = "study"
	PhaseMatch         MatchPhase = "match"
	PhaseRoundComplete MatchPhase = "round_complete"
	PhaseLevelComplete MatchPhase = "level_complete"
	PhaseGameComplete  MatchPhase = "game_complete"
)

const (
	matchCheckDelay   = 500 * time.Millisecond
	matchFlipBack     = 1200 * time.Millisecond
	matchUnlockDelay  = 200 * time.Millisecond
	matchPhaseDelay   = 500 * time.Millisecond
	matchPairScore    = 20
	matchMissScore    = 0
	studyTickInterval = time.Second
)

// Card is one card instance. Every pair deals a word card and an emoji card.
type Card struct {
	PairID  int    `json:"pairId"`
	Face    string `json:"face"`
	IsEmoji bool   `json:"isEmoji"`
	Up      bool   `json:"up"`
	Matched bool   `json:"matched"`
}

// Matching is the memory card game.
type Matching struct {
	base
	levels    []content.MatchingLevel
	pairs     []content.MatchingPair
	level     int // index into levels
	round     int // 1-based
	phase     MatchPhase
	cards     []Card
	open      []int
	checking  bool
	moves     int
	countdown int
}

// NewMatching starts at level 1, round 1, waiting for Start.
func NewMatching(levels []content.MatchingLevel, pairs []content.MatchingPair, rng *rand.Rand) (*Matching, error) {
	if len(levels) == 0 || len(pairs) == 0 {
		return nil, ErrNoContent
	}
	return &Matching{
		base:   base{activity: game.MatchingGame, rng: rng},
		levels: levels,
		pairs:  pairs,
		round:  1,
		phase:  PhaseStart,
	}, nil
}

func (m *Matching) Apply(now time.Time, a game.Action) ([]game.Answer, error) {
	switch a.Kind {
	case KindStart:
		if m.phase == PhaseStart {
			m.deal(now)
		}
		return nil, nil
	case KindFlip:
		return nil, m.flip(now, a.Index)
	case KindNextRound:
		if m.phase == PhaseRoundComplete {
			m.round++
			m.deal(now)
		}
		return nil, nil
	case KindNextLevel:
		if m.phase == PhaseLevelComplete {
			m.level++
			m.round = 1
			m.reset(PhaseStart)
		}
		return nil, nil
	case KindRestart:
		m.level, m.round = 0, 1
		m.reset(PhaseStart)
		return nil, nil
	}
	return nil, game.ErrUnknownAction
}

func (m *Matching) reset(p MatchPhase) {
	m.timers.Clear()
	m.phase = p
	m.cards, m.open = nil, nil
	m.checking = false
	m.moves, m.countdown = 0, 0
}

// deal lays out a fresh face-up deck and starts the study countdown.
func (m *Matching) deal(now time.Time) {
	lv := m.levels[m.level]
	m.reset(PhaseStudy)
	for _, p := range game.Pick(m.rng, m.pairs, lv.Pairs) {
		m.cards = append(m.cards,
			Card{PairID: p.ID, Face: p.Word, Up: true},
			Card{PairID: p.ID, Face: p.Emoji, IsEmoji: true, Up: true},
		)
	}
	m.cards = game.Shuffle(m.rng, m.cards)
	m.countdown = lv.StudySeconds
	m.timers.After(now, studyTickInterval, m.tick)
}

func (m *Matching) tick(at time.Time) []game.Answer {
	m.countdown--
	if m.countdown > 0 {
		m.timers.After(at, studyTickInterval, m.tick)
		return nil
	}
	for i := range m.cards {
		m.cards[i].Up = false
	}
	m.phase = PhaseMatch
	return nil
}

func (m *Matching) flip(now time.Time, i int) error {
	if !inRange(m.cards, i) {
		return game.ErrInvalidAction
	}
	c := &m.cards[i]
	if m.phase != PhaseMatch || m.checking || c.Up || c.Matched {
		return nil
	}
	c.Up = true
	m.open = append(m.open, i)
	if len(m.open) == 2 {
		m.moves++
		m.checking = true
		m.timers.After(now, matchCheckDelay, m.check)
	}
	return nil
}

func (m *Matching) check(at time.Time) []game.Answer {
	a, b := &m.cards[m.open[0]], &m.cards[m.open[1]]
	if a.PairID != b.PairID {
		m.timers.After(at, matchFlipBack, func(time.Time) []game.Answer {
			a.Up, b.Up = false, false
			m.open = nil
			m.checking = false
			return nil
		})
		return answer(game.Wrong(matchMissScore))
	}
	a.Matched, b.Matched = true, true
	m.open = nil
	m.timers.After(at, matchUnlockDelay, func(time.Time) []game.Answer {
		m.checking = false
		return nil
	})
	if m.allMatched() {
		m.timers.After(at, matchPhaseDelay, func(time.Time) []game.Answer {
			m.phase = m.afterRound()
			return nil
		})
	}
	return answer(game.Right(matchPairScore))
}

func (m *Matching) allMatched() bool {
	for _, c := range m.cards {
		if !c.Matched {
			return false
		}
	}
	return true
}

func (m *Matching) afterRound() MatchPhase {
	switch {
	case m.round < m.levels[m.level].Rounds:
		return PhaseRoundComplete
	case m.level < len(m.levels)-1:
		return PhaseLevelComplete
	}
	return PhaseGameComplete
}

// MatchingView is the JSON snapshot of a Matching game.
type MatchingView struct {
	Level     int        `json:"level"`
	Levels    int        `json:"levels"`
	Round     int        `json:"round"`
	Rounds    int        `json:"rounds"`
	Phase     MatchPhase `json:"phase"`
	Cards     []Card     `json:"cards"`
	Moves     int        `json:"moves"`
	Countdown int        `json:"countdown,omitempty"`
	Checking  bool       `json:"checking,omitempty"`
}

func (m *Matching) View() any {
	return MatchingView{
		Level:     m.levels[m.level].Level,
		Levels:    len(m.levels),
		Round:     m.round,
		Rounds:    m.levels[m.level].Rounds,
		Phase:     m.phase,
		Cards:     append([]Card(nil), m.cards...),
		Moves:     m.moves,
		Countdown: m.countdown,
		Checking:  m.checking,
	}
}
