package session

import (
	"sync"

	"github.com/soffai/studio/core"
)

// InMemoryStore is a volatile SessionStore implementation storing sessions
// in a process local map. It is safe for concurrent access and suited for
// the single-process studio and tests. Each returned session is cloned to
// prevent external mutation of internal state.
type InMemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// Get returns an existing session (clone), creating an idle one lazily so
// readers never observe a missing session.
func (s *InMemoryStore) Get(sessionID string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(sessionID).Clone(), nil
}

// Create forces the creation (or resetting) of a session with the given id.
func (s *InMemoryStore) Create(sessionID string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := core.NewSession(sessionID)
	s.sessions[sessionID] = sess
	return sess.Clone(), nil
}

// SetSnapshot replaces the current snapshot of an existing or newly created
// session.
func (s *InMemoryStore) SetSnapshot(sessionID string, snap core.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(sessionID).SetSnapshot(snap)
	return nil
}

// AppendEvent adds a transition event to an existing or newly created
// session.
func (s *InMemoryStore) AppendEvent(sessionID string, ev core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(sessionID).AddEvent(ev)
	return nil
}

// getOrCreateLocked returns the stored session, allocating an idle one when
// absent; caller must hold the lock.
func (s *InMemoryStore) getOrCreateLocked(sessionID string) *core.Session {
	if sess, ok := s.sessions[sessionID]; ok {
		return sess
	}
	sess := core.NewSession(sessionID)
	s.sessions[sessionID] = sess
	return sess
}

var _ core.SessionStore = (*InMemoryStore)(nil)
