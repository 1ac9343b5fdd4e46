package game

import "time"

// Timers is a deadline queue owned by one controller. Scheduled callbacks run
// from Advance, on the caller's goroutine, in deadline order. A callback gets
// its own scheduled time so chained delays stay exact.
type Timers struct {
	pending []timer
	seq     int
}

type timer struct {
	at   time.Time
	seq  int
	fire func(at time.Time) []Answer
}

// After schedules fire to run d after now.
func (t *Timers) After(now time.Time, d time.Duration, fire func(at time.Time) []Answer) {
	t.seq++
	t.pending = append(t.pending, timer{at: now.Add(d), seq: t.seq, fire: fire})
}

// Advance runs every callback due at or before now, including callbacks that
// earlier callbacks schedule inside the window.
func (t *Timers) Advance(now time.Time) []Answer {
	var out []Answer
	for {
		i := t.next()
		if i < 0 || t.pending[i].at.After(now) {
			return out
		}
		tm := t.pending[i]
		t.pending = append(t.pending[:i], t.pending[i+1:]...)
		out = append(out, tm.fire(tm.at)...)
	}
}

// Deadline reports the earliest pending deadline.
func (t *Timers) Deadline() (time.Time, bool) {
	i := t.next()
	if i < 0 {
		return time.Time{}, false
	}
	return t.pending[i].at, true
}

// Clear cancels every pending callback.
func (t *Timers) Clear() { t.pending = nil }

// Pending reports how many callbacks are scheduled.
func (t *Timers) Pending() int { return len(t.pending) }

func (t *Timers) next() int {
	best := -1
	for i, tm := range t.pending {
		if best < 0 || tm.at.Before(t.pending[best].at) ||
			(tm.at.Equal(t.pending[best].at) && tm.seq < t.pending[best].seq) {
			best = i
		}
	}
	return best
}
