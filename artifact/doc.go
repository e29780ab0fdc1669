// Package artifact contains concrete implementations of core.ArtifactStore
// plus the download packaging helpers that turn generation results into
// named files (WAV for audio, MP4 for video, Markdown for text).
//
// The canonical ArtifactStore interface lives in the core package to avoid
// dependency cycles and keep domain contracts central. Callers should depend
// on the core interface rather than concrete types so the storage backend
// can be substituted in tests.
package artifact
