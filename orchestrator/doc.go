// Package orchestrator glues the dispatcher and the poller into the
// per-session request lifecycle: Idle, Submitting, PollingOperation,
// FetchingAsset and the terminal Done / Failed phases. Every transition is
// written to the session store as a snapshot plus a history event, so the
// display layer only ever reads; it never mutates orchestration state.
//
// One request is in flight per session at a time. Submitting while one is in
// flight is a no-op; submitting from a terminal phase starts a new cycle and
// cancels whatever poll loop the previous cycle may still own. A check that
// completes after supersession has its effect discarded by the poller's
// cancellation contract.
package orchestrator
