package core

// ArtifactStore defines persistence for generated assets (WAV audio, fetched
// video bytes, exported text) backing the front-end's download affordances.
// Implementations should be thread-safe and scope artifacts by session
// identifier. Short method names (Save/Get/List/Delete) mirror the other
// store interfaces for consistency.
type ArtifactStore interface {
	Save(sessionID, name string, data []byte) error
	Get(sessionID, name string) ([]byte, error)
	List(sessionID string) ([]string, error)
	Delete(sessionID, name string) error
}
