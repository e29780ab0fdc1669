// Package credential abstracts the host environment that owns API key
// selection for video generation. The dispatcher never reads ambient
// process state for the video path; it asks an explicit Host, and when no
// credential is selected it triggers the host's selection prompt and reports
// core.ErrCredentialRequired so the user can act and resubmit.
package credential

import (
	"os"
	"sync"
)

// Host exposes the credential selection surface of the embedding
// environment. Implementations must be safe for concurrent use.
type Host interface {
	// Credential returns the currently selected API key and whether one is
	// selected at all.
	Credential() (string, bool)
	// PromptSelection asks the host to surface its credential picker. The
	// call returns immediately; selection happens out of band.
	PromptSelection()
}

// StaticHost is a Host with a fixed, programmatically set credential.
// The zero value has no credential selected.
type StaticHost struct {
	mu       sync.RWMutex
	key      string
	selected bool
	prompted int
}

// NewStaticHost returns a StaticHost preloaded with the given key.
// An empty key leaves the host unselected.
func NewStaticHost(key string) *StaticHost {
	h := &StaticHost{}
	if key != "" {
		h.Select(key)
	}
	return h
}

// Credential implements Host.
func (h *StaticHost) Credential() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.key, h.selected
}

// PromptSelection implements Host. It only counts invocations; tests and
// the CLI inspect Prompted to verify the prompt was requested.
func (h *StaticHost) PromptSelection() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prompted++
}

// Select sets the credential, marking the host as selected.
func (h *StaticHost) Select(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.key = key
	h.selected = key != ""
}

// Clear removes the selected credential.
func (h *StaticHost) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.key = ""
	h.selected = false
}

// Prompted returns how many times selection was requested.
func (h *StaticHost) Prompted() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.prompted
}

// EnvHost resolves the credential from an environment variable on every
// lookup, so an out-of-band export takes effect without restarting.
type EnvHost struct {
	// Var is the environment variable name, GEMINI_API_KEY by default.
	Var string
}

// NewEnvHost creates an EnvHost reading the given variable.
func NewEnvHost(envVar string) *EnvHost {
	if envVar == "" {
		envVar = "GEMINI_API_KEY"
	}
	return &EnvHost{Var: envVar}
}

// Credential implements Host.
func (h *EnvHost) Credential() (string, bool) {
	key := os.Getenv(h.Var)
	return key, key != ""
}

// PromptSelection implements Host. There is no picker for env credentials;
// the caller's error message tells the user which variable to export.
func (h *EnvHost) PromptSelection() {}
