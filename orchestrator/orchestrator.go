package orchestrator

import (
	"context"
	"sync"

	"github.com/soffai/studio/artifact"
	"github.com/soffai/studio/core"
	"github.com/soffai/studio/dispatch"
	"github.com/soffai/studio/logging"
	"github.com/soffai/studio/poller"
	"github.com/soffai/studio/session"
)

// Progress messages surfaced to the display layer while a request is being
// worked on. The wording is part of the product surface; tests pin it.
const (
	MsgThinking      = "AI is thinking..."
	MsgVideoStarting = "Video generation is starting..."
	MsgVideoRunning  = "Video is being generated; this may take several minutes..."
	MsgVideoFetching = "Video details are being retrieved..."
)

// Options holds dependency overrides passed to New().
type Options struct {
	// SessionStore persists snapshots and transition history.
	SessionStore core.SessionStore
	// ArtifactStore receives the packaged download file of each finished
	// result.
	ArtifactStore core.ArtifactStore
	// Logger receives orchestration diagnostics.
	Logger logging.Logger
}

// Orchestrator drives request cycles for any number of sessions. Public
// methods are safe for concurrent use.
type Orchestrator struct {
	dispatcher *dispatch.Dispatcher
	poller     *poller.Poller
	sessions   core.SessionStore
	artifacts  core.ArtifactStore
	logger     logging.Logger

	mu     sync.Mutex
	active map[string]*cycle
}

// cycle is the state of one request from Submit to a terminal phase. The
// orchestrator's mutex guards finished; cancelPoll and cancelCtx are set
// once and only called while holding it.
type cycle struct {
	requestID  string
	category   core.Category
	finished   bool
	cancelPoll func()
	cancelCtx  context.CancelFunc
}

// New constructs an Orchestrator over the given dispatcher and poller with
// in-memory stores by default.
func New(dispatcher *dispatch.Dispatcher, p *poller.Poller, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		SessionStore:  session.NewInMemoryStore(),
		ArtifactStore: artifact.NewInMemoryStore(),
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{
		dispatcher: dispatcher,
		poller:     p,
		sessions:   opts.SessionStore,
		artifacts:  opts.ArtifactStore,
		logger:     opts.Logger,
		active:     make(map[string]*cycle),
	}
}

// Submit starts a new request cycle for the session. It reports false
// without side effects when the request is empty or another request is
// already in flight for the session. The dispatcher call runs synchronously;
// for video the poll loop continues in the background after Submit returns.
func (o *Orchestrator) Submit(ctx context.Context, sessionID string, req core.Request) bool {
	if req.Empty() {
		return false
	}

	o.mu.Lock()
	if c, ok := o.active[sessionID]; ok && !c.finished {
		o.mu.Unlock()
		o.logger.Debug("submit ignored, request in flight", "session_id", sessionID, "request_id", req.ID)
		return false
	}
	// Supersede whatever the previous cycle still owns.
	if prev, ok := o.active[sessionID]; ok {
		prev.stopLocked()
	}
	cycleCtx, cancelCtx := context.WithCancel(ctx)
	c := &cycle{requestID: req.ID, category: req.Category, cancelCtx: cancelCtx}
	o.active[sessionID] = c
	o.mu.Unlock()

	msg := MsgThinking
	if req.Category == core.CategoryVideo {
		msg = MsgVideoStarting
	}
	o.transition(sessionID, c, core.Snapshot{
		Phase:     core.PhaseSubmitting,
		RequestID: req.ID,
		Category:  req.Category,
		Message:   msg,
	}, true)

	outcome, err := o.dispatcher.Dispatch(cycleCtx, req)
	if err != nil {
		o.fail(sessionID, c, err)
		return true
	}
	if outcome.Result != nil {
		o.finish(sessionID, c, outcome.Result)
		return true
	}

	o.transition(sessionID, c, core.Snapshot{
		Phase:     core.PhasePolling,
		RequestID: req.ID,
		Category:  req.Category,
		Message:   MsgVideoRunning,
	}, true)

	cancelPoll := o.poller.Watch(cycleCtx, outcome.Operation, poller.Callbacks{
		OnProgress: func(attempt int) {
			o.transition(sessionID, c, core.Snapshot{
				Phase:     core.PhasePolling,
				RequestID: c.requestID,
				Category:  c.category,
				Message:   MsgVideoRunning,
			}, false)
		},
		OnFetching: func() {
			o.transition(sessionID, c, core.Snapshot{
				Phase:     core.PhaseFetching,
				RequestID: c.requestID,
				Category:  c.category,
				Message:   MsgVideoFetching,
			}, true)
		},
		OnResolved: func(result core.VideoResult) {
			o.finish(sessionID, c, result)
		},
		OnFailed: func(err error) {
			o.fail(sessionID, c, err)
		},
	})

	o.mu.Lock()
	if o.active[sessionID] == c && !c.finished {
		c.cancelPoll = cancelPoll
	} else {
		// The cycle ended (or was superseded) before Watch returned.
		cancelPoll()
	}
	o.mu.Unlock()
	return true
}

// Cancel abandons the session's in-flight request, stopping its poll loop
// and resetting the snapshot to idle. Canceling an idle or terminal session
// is a no-op.
func (o *Orchestrator) Cancel(sessionID string) {
	o.mu.Lock()
	c, ok := o.active[sessionID]
	if !ok || c.finished {
		o.mu.Unlock()
		return
	}
	c.stopLocked()
	delete(o.active, sessionID)
	o.mu.Unlock()

	o.logger.Info("request abandoned", "session_id", sessionID, "request_id", c.requestID)
	if err := o.sessions.SetSnapshot(sessionID, core.Snapshot{Phase: core.PhaseIdle}); err != nil {
		o.logger.Error("snapshot write failed", "session_id", sessionID, "error", err)
	}
	o.appendEvent(sessionID, core.NewPhaseEvent(c.requestID, core.PhaseIdle, "request abandoned"))
}

// State returns the session's current snapshot.
func (o *Orchestrator) State(sessionID string) (core.Snapshot, error) {
	sess, err := o.sessions.Get(sessionID)
	if err != nil {
		return core.Snapshot{}, err
	}
	return sess.CurrentSnapshot(), nil
}

// Events returns the session's transition history.
func (o *Orchestrator) Events(sessionID string) ([]core.Event, error) {
	sess, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Events(), nil
}

// finish ends the cycle with a result, persisting the packaged download
// artifact before the terminal snapshot becomes visible.
func (o *Orchestrator) finish(sessionID string, c *cycle, result core.Result) {
	if !o.settle(sessionID, c) {
		return
	}

	if file, err := artifact.Package(c.category, result); err != nil {
		o.logger.Error("artifact packaging failed", "session_id", sessionID, "request_id", c.requestID, "error", err)
	} else if err := o.artifacts.Save(sessionID, file.Name, file.Data); err != nil {
		o.logger.Error("artifact save failed", "session_id", sessionID, "request_id", c.requestID, "error", err)
	}

	o.writeSnapshot(sessionID, core.Snapshot{
		Phase:     core.PhaseDone,
		RequestID: c.requestID,
		Category:  c.category,
		Result:    result,
	})
	o.appendEvent(sessionID, core.NewPhaseEvent(c.requestID, core.PhaseDone, ""))
	o.logger.Info("request completed", "session_id", sessionID, "request_id", c.requestID, "category", string(c.category))
}

// fail ends the cycle with a taxonomy error.
func (o *Orchestrator) fail(sessionID string, c *cycle, err error) {
	if !o.settle(sessionID, c) {
		return
	}

	o.writeSnapshot(sessionID, core.Snapshot{
		Phase:     core.PhaseFailed,
		RequestID: c.requestID,
		Category:  c.category,
		Err:       err,
		Message:   core.UserMessage(err),
	})
	o.appendEvent(sessionID, core.NewFailureEvent(c.requestID, err))
	o.logger.Error("request failed", "session_id", sessionID, "request_id", c.requestID, "category", string(c.category), "error", err)
}

// settle marks the cycle finished if it still owns the session. A callback
// firing after supersession finds another cycle registered and is dropped.
func (o *Orchestrator) settle(sessionID string, c *cycle) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.active[sessionID] != c || c.finished {
		return false
	}
	c.finished = true
	c.stopLocked()
	return true
}

// transition writes a non-terminal snapshot, optionally recording a history
// event, but only while the cycle still owns the session.
func (o *Orchestrator) transition(sessionID string, c *cycle, snap core.Snapshot, event bool) {
	o.mu.Lock()
	owned := o.active[sessionID] == c && !c.finished
	o.mu.Unlock()
	if !owned {
		return
	}
	o.writeSnapshot(sessionID, snap)
	if event {
		o.appendEvent(sessionID, core.NewPhaseEvent(c.requestID, snap.Phase, snap.Message))
	}
}

func (o *Orchestrator) writeSnapshot(sessionID string, snap core.Snapshot) {
	if err := o.sessions.SetSnapshot(sessionID, snap); err != nil {
		o.logger.Error("snapshot write failed", "session_id", sessionID, "error", err)
	}
}

func (o *Orchestrator) appendEvent(sessionID string, ev core.Event) {
	if err := o.sessions.AppendEvent(sessionID, ev); err != nil {
		o.logger.Error("event write failed", "session_id", sessionID, "error", err)
	}
}

// stopLocked cancels the cycle's context and poll loop. Caller holds the
// orchestrator mutex.
func (c *cycle) stopLocked() {
	if c.cancelPoll != nil {
		c.cancelPoll()
		c.cancelPoll = nil
	}
	if c.cancelCtx != nil {
		c.cancelCtx()
		c.cancelCtx = nil
	}
}
