package core

// Phase enumerates the orchestration lifecycle of a single request cycle.
// Exactly one phase is live per session; transitions are driven only by
// dispatcher and poller callbacks, never by unrelated UI events.
type Phase string

const (
	// PhaseIdle means no request is in flight.
	PhaseIdle Phase = "idle"
	// PhaseSubmitting means the dispatcher call is outstanding.
	PhaseSubmitting Phase = "submitting"
	// PhasePolling means a video operation handle is being polled.
	PhasePolling Phase = "polling-operation"
	// PhaseFetching means the finished asset is being downloaded.
	PhaseFetching Phase = "fetching-asset"
	// PhaseDone means the cycle finished with a result.
	PhaseDone Phase = "done"
	// PhaseFailed means the cycle finished with a mapped error.
	PhaseFailed Phase = "failed"
)

// Terminal reports whether the phase ends a request cycle. The machine stays
// reusable: the next Submit from a terminal phase starts a new cycle.
func (p Phase) Terminal() bool { return p == PhaseDone || p == PhaseFailed }

// InFlight reports whether a request is currently being worked on.
// Submitting while in flight is a no-op.
func (p Phase) InFlight() bool {
	return p == PhaseSubmitting || p == PhasePolling || p == PhaseFetching
}

// Snapshot is the externally visible orchestration state handed to the
// display layer. Result is non-nil only in PhaseDone, Err only in
// PhaseFailed; Message carries progress or user-facing error text.
type Snapshot struct {
	Phase     Phase    `json:"phase"`
	RequestID string   `json:"request_id,omitempty"`
	Category  Category `json:"category,omitempty"`
	Result    Result   `json:"result,omitempty"`
	Err       error    `json:"-"`
	Message   string   `json:"message,omitempty"`
}
