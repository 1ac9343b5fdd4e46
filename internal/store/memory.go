// internal/store/memory.go
//
// In-memory registry of live play sessions.
// Sessions hold running timers and exercise state, so they live in process
// memory only; finished runs are persisted separately (internal/results).
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Sweep evicts sessions idle for longer than a TTL and stops their timers.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for play sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete removes a session and stops its timers.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions idle since before cutoff and returns them.
	Sweep(ctx context.Context, cutoff time.Time) []*game.Session
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.Close()
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) []*game.Session {
	m.mu.Lock()
	var out []*game.Session
	for id, s := range m.sessions {
		if s.IdleSince().Before(cutoff) {
			out = append(out, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, s := range out {
		s.Close()
	}
	return out
}
