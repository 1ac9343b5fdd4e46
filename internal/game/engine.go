// internal/game/engine.go
//
// Hosting shell for one player's visit.
// Responsibilities:
//   - Navigate between the menu and one activity at a time.
//   - Build a fresh exercise controller on every menu selection (via Factory).
//   - Serialize actions and timer callbacks onto the controller.
//   - Aggregate answers into per-activity stats (score clamped at zero)
//     and emit one Event per answer on the configured channel.
//
// Notes:
//   - The session owns the seedable random source handed to controllers.
//   - A single time.AfterFunc is armed for the controller's earliest deadline
//     and re-armed after every operation; leaving the activity stops it.
package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Event is emitted once per answer.
type Event struct {
	SessionID string    `json:"sessionId"`
	Activity  Activity  `json:"activity"`
	Answer    Answer    `json:"answer"`
	Stats     Stats     `json:"stats"`
	Sound     string    `json:"sound"` // "correct" | "incorrect"
	At        time.Time `json:"at"`
}

// Session is the hosting shell for one player.
type Session struct {
	ID        string
	PlayerID  string
	CreatedAt time.Time

	mu        sync.Mutex
	rng       *rand.Rand
	factory   Factory
	clock     func() time.Time
	events    chan<- Event
	manual    bool // timers are driven by explicit Advance calls only
	timer     *time.Timer
	activity  Activity
	exercise  Exercise
	run       Stats
	runStart  time.Time
	board     map[Activity]*Stats
	lastTouch time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithEvents sends one Event per answer to ch. Sends never block; events are
// dropped when ch is full.
func WithEvents(ch chan<- Event) Option { return func(s *Session) { s.events = ch } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Session) { s.clock = now } }

// WithPlayer ties the session to a signed-in player.
func WithPlayer(id string) Option { return func(s *Session) { s.PlayerID = id } }

// ManualTimers disables the background timer; callers drive Advance.
func ManualTimers() Option { return func(s *Session) { s.manual = true } }

// NewSession returns a session sitting at the menu.
func NewSession(id string, rng *rand.Rand, f Factory, opts ...Option) *Session {
	s := &Session{
		ID:       id,
		rng:      rng,
		factory:  f,
		clock:    time.Now,
		activity: Menu,
		board:    make(map[Activity]*Stats),
	}
	for _, o := range opts {
		o(s)
	}
	s.CreatedAt = s.clock()
	s.lastTouch = s.CreatedAt
	return s
}

// Enter leaves the current activity (returning its run, if any) and starts a
// fresh controller for a.
func (s *Session) Enter(a Activity) (*Run, error) {
	if _, err := ParseActivity(string(a)); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	ex, err := s.factory(a, s.rng, now)
	if err != nil {
		return nil, err
	}
	prev := s.leaveLocked(now)
	s.activity, s.exercise = a, ex
	s.run, s.runStart, s.lastTouch = Stats{}, now, now
	s.rearmLocked()
	log.Debug().Str("session", s.ID).Str("activity", string(a)).Msg("enter activity")
	return prev, nil
}

// Menu is the navigation callback: it stops the activity and returns its run.
func (s *Session) Menu() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaveLocked(s.clock())
}

func (s *Session) leaveLocked(now time.Time) *Run {
	s.stopTimerLocked()
	if s.exercise == nil {
		return nil
	}
	r := &Run{
		SessionID:  s.ID,
		PlayerID:   s.PlayerID,
		Activity:   s.activity,
		Stats:      s.run,
		StartedAt:  s.runStart,
		FinishedAt: now,
	}
	s.activity, s.exercise = Menu, nil
	s.run = Stats{}
	s.lastTouch = now
	return r
}

// Apply fires due timers, performs a, and returns every answer produced.
func (s *Session) Apply(a Action) ([]Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exercise == nil {
		return nil, ErrNoActivity
	}
	now := s.clock()
	s.lastTouch = now
	answers := s.exercise.Advance(now)
	more, err := s.exercise.Apply(now, a)
	answers = append(answers, more...)
	s.recordLocked(now, answers)
	s.rearmLocked()
	return answers, err
}

// Advance fires every timer due now.
func (s *Session) Advance() []Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked()
}

func (s *Session) advanceLocked() []Answer {
	if s.exercise == nil {
		return nil
	}
	now := s.clock()
	answers := s.exercise.Advance(now)
	s.recordLocked(now, answers)
	s.rearmLocked()
	return answers
}

func (s *Session) recordLocked(now time.Time, answers []Answer) {
	if len(answers) == 0 {
		return
	}
	st := s.board[s.activity]
	if st == nil {
		st = &Stats{}
		s.board[s.activity] = st
	}
	for _, a := range answers {
		st.Record(a)
		s.run.Record(a)
		s.emit(Event{
			SessionID: s.ID,
			Activity:  s.activity,
			Answer:    a,
			Stats:     *st,
			Sound:     string(FeedbackFor(a.Correct)),
			At:        now,
		})
	}
}

func (s *Session) emit(ev Event) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- ev:
	default:
		log.Warn().Str("session", s.ID).Msg("event channel full, dropping answer event")
	}
}

func (s *Session) rearmLocked() {
	s.stopTimerLocked()
	if s.manual || s.exercise == nil {
		return
	}
	at, ok := s.exercise.Deadline()
	if !ok {
		return
	}
	ex := s.exercise
	s.timer = time.AfterFunc(max(0, at.Sub(s.clock())), func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.exercise != ex {
			return
		}
		s.advanceLocked()
	})
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Close stops any pending timer.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

// View is a JSON snapshot of the session.
type View struct {
	ID         string             `json:"id"`
	Activity   Activity           `json:"activity"`
	Exercise   any                `json:"exercise,omitempty"`
	Stats      Stats              `json:"stats"` // current activity
	Scoreboard map[Activity]Stats `json:"scoreboard"`
	Total      float64            `json:"totalScore"`
}

// View returns the current snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		ID:         s.ID,
		Activity:   s.activity,
		Scoreboard: s.scoreboardLocked(),
	}
	if s.exercise != nil {
		v.Exercise = s.exercise.View()
	}
	if st := s.board[s.activity]; st != nil {
		v.Stats = *st
	}
	for _, st := range v.Scoreboard {
		v.Total += st.Score
	}
	return v
}

// Scoreboard returns a copy of the per-activity stats.
func (s *Session) Scoreboard() map[Activity]Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scoreboardLocked()
}

func (s *Session) scoreboardLocked() map[Activity]Stats {
	out := make(map[Activity]Stats, len(s.board))
	for a, st := range s.board {
		out[a] = *st
	}
	return out
}

// TotalScore sums the clamped per-activity scores.
func (s *Session) TotalScore() float64 {
	var total float64
	for _, st := range s.Scoreboard() {
		total += st.Score
	}
	return total
}

// Current returns the activity in progress (Menu when none).
func (s *Session) Current() Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activity
}

// IdleSince reports the last time the session was used.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTouch
}
