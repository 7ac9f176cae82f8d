package memory

import (
	"sync"

	"github.com/smartserve/driftguard-assistant/internal/domain"
)

// SessionStore is a process-local implementation of domain.SessionStore.
// It is NOT persistent and is only suitable for a single-process deployment;
// a durable backend can replace it behind the same port.
type SessionStore struct {
	mu    sync.RWMutex
	turns map[domain.SessionID][]domain.Turn
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		turns: make(map[domain.SessionID][]domain.Turn),
	}
}

// Load returns the session's history. Unknown ids yield an empty history,
// never an error: a session exists from its first request.
func (s *SessionStore) Load(sessionID domain.SessionID) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.turns[sessionID]
	out := make([]domain.Turn, len(stored))
	copy(out, stored)
	return out, nil
}

// Append adds turns to the session's history in one critical section.
func (s *SessionStore) Append(sessionID domain.SessionID, turns ...domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[sessionID] = append(s.turns[sessionID], turns...)
	return nil
}

// Replace swaps the session's whole history.
func (s *SessionStore) Replace(sessionID domain.SessionID, turns []domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := make([]domain.Turn, len(turns))
	copy(replaced, turns)
	s.turns[sessionID] = replaced
	return nil
}

// Reset clears the session's history.
func (s *SessionStore) Reset(sessionID domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.turns, sessionID)
	return nil
}
