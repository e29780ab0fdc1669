package core

import "time"

// Event records one orchestration transition in a session's history. After
// emission it should be treated as immutable. The display layer can replay a
// session's events to reconstruct what happened to each request.
type Event struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"request_id"`
	Phase        Phase     `json:"phase"`
	Message      string    `json:"message,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewPhaseEvent creates a transition event for the given request and phase.
func NewPhaseEvent(requestID string, phase Phase, message string) Event {
	return Event{
		ID:        NewID(),
		RequestID: requestID,
		Phase:     phase,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewFailureEvent creates a terminal failure event carrying the user-facing
// error text derived from the taxonomy.
func NewFailureEvent(requestID string, err error) Event {
	e := NewPhaseEvent(requestID, PhaseFailed, "")
	e.ErrorMessage = UserMessage(err)
	return e
}
