package core

import (
	"sync"
	"time"
)

// Session tracks the orchestration state of one logical UI session: the
// current Snapshot plus an ordered transition history. It is safe for
// concurrent access.
//
// Contract:
//   - Snapshot mutations update the Updated timestamp
//   - Events returns a defensive copy to avoid external mutation
//   - Clone performs deep copies of slices/maps for safe divergence.
type Session struct {
	ID       string            `json:"id"`
	Snapshot Snapshot          `json:"snapshot"`
	History  []Event           `json:"history"`
	Created  time.Time         `json:"created"`
	Updated  time.Time         `json:"updated"`
	Metadata map[string]string `json:"metadata"`
	mu       sync.RWMutex
}

// NewSession creates an idle session with the given ID.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:       id,
		Snapshot: Snapshot{Phase: PhaseIdle},
		History:  []Event{},
		Created:  now,
		Updated:  now,
		Metadata: map[string]string{},
	}
}

// SetSnapshot replaces the current snapshot updating the Updated timestamp.
func (s *Session) SetSnapshot(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Snapshot = snap
	s.Updated = time.Now().UTC()
}

// CurrentSnapshot returns the current orchestration snapshot.
func (s *Session) CurrentSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Snapshot
}

// AddEvent appends a transition event updating the Updated timestamp.
func (s *Session) AddEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, ev)
	s.Updated = time.Now().UTC()
}

// Events returns a defensive copy of the transition history.
func (s *Session) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]Event, len(s.History))
	copy(events, s.History)
	return events
}

// Clone returns a deep copy safe for divergence from the stored original.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := make([]Event, len(s.History))
	copy(history, s.History)
	meta := make(map[string]string, len(s.Metadata))
	for k, v := range s.Metadata {
		meta[k] = v
	}
	return &Session{
		ID:       s.ID,
		Snapshot: s.Snapshot,
		History:  history,
		Created:  s.Created,
		Updated:  s.Updated,
		Metadata: meta,
	}
}

// SessionStore defines persistence for orchestration sessions.
// Implementations must be safe for concurrent use and return cloned sessions
// so callers cannot mutate stored state.
type SessionStore interface {
	Get(sessionID string) (*Session, error)
	Create(sessionID string) (*Session, error)
	SetSnapshot(sessionID string, snap Snapshot) error
	AppendEvent(sessionID string, ev Event) error
}
