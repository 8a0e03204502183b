package cart

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore maps authenticated users to their in-memory cart
// sessions. Sessions live for the duration of a login: Attach on login,
// Detach on logout. State does not survive a process restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionStore builds an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]*Session)}
}

// Attach returns the user's session, creating one if none exists.
func (s *SessionStore) Attach(userID uuid.UUID) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess = newSession()
	s.sessions[userID] = sess
	return sess
}

// Detach discards the user's session and its staged lines.
func (s *SessionStore) Detach(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Get returns the user's session without creating one.
func (s *SessionStore) Get(userID uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}
