package artifact

import "sync"

// InMemoryStore is a trivial in-process ArtifactStore implementation holding
// generated assets for the lifetime of the process, matching the ephemeral
// download model of the studio. All artifacts live in a nested map guarded
// by an RWMutex. Data is copied on save and retrieval to avoid accidental
// external mutation of internal buffers.
//
// Layout: sessionID -> artifact name -> raw bytes
type InMemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]map[string][]byte
}

// NewInMemoryStore returns an empty in-memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{artifacts: make(map[string]map[string][]byte)}
}

// Save stores (or overwrites) the artifact bytes for the given session and
// name. The input slice is copied before storage.
func (a *InMemoryStore) Save(sessionID, name string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.artifacts[sessionID]; !exists {
		a.artifacts[sessionID] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	a.artifacts[sessionID][name] = cp
	return nil
}

// Get returns a copy of the stored artifact bytes or ErrNotFound.
func (a *InMemoryStore) Get(sessionID, name string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.artifacts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	data, ok := m[name]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the artifact names stored for the session. The slice is a
// snapshot and safe for caller mutation.
func (a *InMemoryStore) List(sessionID string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.artifacts[sessionID]
	if !ok {
		return []string{}, nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names, nil
}

// Delete removes the artifact if present or returns ErrNotFound.
func (a *InMemoryStore) Delete(sessionID, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.artifacts[sessionID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m[name]; !ok {
		return ErrNotFound
	}
	delete(m, name)
	return nil
}
