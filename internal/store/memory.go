// internal/store/memory.go
//
// In-memory session store for games played over HTTP.
//
// Characteristics:
//   - Sessions keyed by ID in a map, guarded by an RWMutex.
//   - Update runs the caller's mutation under the write lock, so a Board
//     (which is single-threaded) is never touched by two requests at once.
//   - State is lost when the process restarts; finished games are persisted
//     through the SQLite store.
//   - Sessions are kept after the game ends so late guesses are refused
//     rather than unknown.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/go-core/internal/game"
)

// ErrNotFound is returned when a session, user or game does not exist.
var ErrNotFound = errors.New("not found")

// Session is one game in progress (or just finished) on the server.
type Session struct {
	ID        string
	Owner     string // user or anonymous ID allowed to play it; empty means anyone with the ID
	PlayerID  string // registered player credited with the result, empty for guests
	Daily     string // date key for the daily game, empty otherwise
	Board     *game.Board
	StartedAt time.Time
}

// Sessions persists game sessions.
type Sessions interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Update applies fn to the session with the given ID while holding
	// exclusive access to it. fn's error is returned as-is.
	Update(ctx context.Context, id string, fn func(*Session) error) error
}

// memory is an in-memory map-based Sessions implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs an empty in-memory Sessions store.
func NewMemoryStore() Sessions {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}
