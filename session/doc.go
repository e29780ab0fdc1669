// Package session provides SessionStore implementations persisting
// per-session orchestration snapshots and transition history.
package session
