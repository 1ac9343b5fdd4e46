package game

import (
	"math/rand/v2"
	"time"
)

// Stats aggregates answers for one activity. Score never drops below zero.
type Stats struct {
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Score     float64 `json:"score"`
}

// Record folds one answer into the stats.
func (s *Stats) Record(a Answer) {
	if a.Correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
	s.Score = max(0, s.Score+a.Delta)
}

// Run is one visit to an activity, from menu selection back to the menu.
type Run struct {
	SessionID  string    `json:"sessionId"`
	PlayerID   string    `json:"playerId,omitempty"`
	Activity   Activity  `json:"activity"`
	Stats      Stats     `json:"stats"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Shuffle returns a shuffled copy of in (Fisher–Yates over rng).
func Shuffle[T any](rng *rand.Rand, in []T) []T {
	out := append([]T(nil), in...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Pick returns n distinct random elements of in.
func Pick[T any](rng *rand.Rand, in []T, n int) []T {
	out := Shuffle(rng, in)
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// NewRand returns a PCG-backed source. A zero seed draws a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
