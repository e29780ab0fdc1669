// Package core contains the shared domain types of the studio generation
// pipeline: the closed category set, generation requests and attachments,
// the tagged Result union, video operation handles, per-session orchestration
// events and the user-facing error taxonomy. Higher layers (dispatch, poller,
// orchestrator) exchange only these types; provider specific shapes never
// escape their adapter packages.
package core
