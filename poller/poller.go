package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/soffai/studio/core"
	"github.com/soffai/studio/credential"
	"github.com/soffai/studio/logging"
	"github.com/soffai/studio/provider"
)

const (
	// DefaultInitialDelay is the wait before the first status check.
	DefaultInitialDelay = 1 * time.Second
	// DefaultInterval is the fixed wait between subsequent checks. There is
	// no backoff and no retry cap; the loop runs until done or canceled.
	DefaultInterval = 10 * time.Second
)

// Callbacks receive the watch lifecycle. All callbacks are optional and are
// invoked from scheduler goroutines, never concurrently with each other for
// the same watch. Exactly one of OnResolved / OnFailed fires, unless the
// watch is canceled first, in which case none fires after cancellation.
type Callbacks struct {
	// OnProgress fires after every check that returned done=false.
	OnProgress func(attempt int)
	// OnFetching fires once, when the operation is done and the asset
	// download is about to start.
	OnFetching func()
	// OnResolved delivers the fetched asset.
	OnResolved func(result core.VideoResult)
	// OnFailed delivers the terminal error, always a taxonomy member.
	OnFailed func(err error)
}

// Options holds configuration overrides passed to New().
type Options struct {
	InitialDelay time.Duration
	Interval     time.Duration
	// Scheduler overrides timer scheduling; tests inject a fake here.
	Scheduler Scheduler
	// Logger receives poll diagnostics.
	Logger logging.Logger
}

// Poller watches video operations. It holds no per-watch state itself and is
// safe for concurrent use; each Watch call runs an independent loop. A fresh
// provider is built through the factory immediately before every check so
// the credential currently selected in the host is always the one used.
type Poller struct {
	factory      provider.Factory
	credentials  credential.Host
	scheduler    Scheduler
	logger       logging.Logger
	initialDelay time.Duration
	interval     time.Duration
}

// New constructs a Poller polling through providers built by factory with
// the credential selected in host.
func New(factory provider.Factory, host credential.Host, optFns ...func(o *Options)) *Poller {
	opts := Options{
		InitialDelay: DefaultInitialDelay,
		Interval:     DefaultInterval,
		Scheduler:    TimerScheduler{},
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Poller{
		factory:      factory,
		credentials:  host,
		scheduler:    opts.Scheduler,
		logger:       opts.Logger,
		initialDelay: opts.InitialDelay,
		interval:     opts.Interval,
	}
}

// Watch takes ownership of the operation and begins the check loop after the
// initial delay. The returned cancel stops further scheduling and suppresses
// every not-yet-delivered callback; an in-flight network call may still
// complete, but its effect is discarded. Cancel is idempotent.
func (p *Poller) Watch(ctx context.Context, op *core.Operation, cb Callbacks) (cancel func()) {
	w := &watch{p: p, ctx: ctx, cb: cb, op: op}
	w.mu.Lock()
	w.cancelTimer = p.scheduler.Schedule(p.initialDelay, w.check)
	w.mu.Unlock()
	return w.cancel
}

// watch is the state of one poll loop. The mutex guards op, attempt,
// canceled and cancelTimer; it is never held across a network call or a
// callback.
type watch struct {
	p   *Poller
	ctx context.Context
	cb  Callbacks

	mu          sync.Mutex
	op          *core.Operation
	attempt     int
	canceled    bool
	cancelTimer func()
}

func (w *watch) cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canceled {
		return
	}
	w.canceled = true
	if w.cancelTimer != nil {
		w.cancelTimer()
		w.cancelTimer = nil
	}
}

// check performs one status check. It runs on a scheduler goroutine and is
// never concurrent with another check for the same watch because the next
// check is only scheduled from within this one.
func (w *watch) check() {
	w.mu.Lock()
	if w.canceled || w.ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	w.attempt++
	attempt := w.attempt
	op := w.op
	w.mu.Unlock()

	if op.Done {
		// StartVideo can hand back an already-finished operation.
		w.finish(op)
		return
	}

	cred, ok := w.p.credentials.Credential()
	if !ok {
		w.fail(core.ErrCredentialRequired)
		return
	}
	prov, err := w.p.factory(w.ctx, cred)
	if err != nil {
		w.fail(err)
		return
	}

	start := time.Now()
	refreshed, err := prov.CheckVideo(w.ctx, op)
	w.p.logger.Debug("operation check",
		"operation", op.Provider,
		"attempt", attempt,
		"duration", time.Since(start).String(),
		"error", errString(err))
	if err != nil {
		// A failed check is terminal; the loop never retries it.
		w.fail(err)
		return
	}

	w.mu.Lock()
	if w.canceled {
		w.mu.Unlock()
		return
	}
	w.op = refreshed
	w.mu.Unlock()

	if !refreshed.Done {
		if w.cb.OnProgress != nil && w.alive() {
			w.cb.OnProgress(attempt)
		}
		w.scheduleNext()
		return
	}
	w.finish(refreshed)
}

// finish resolves a done operation: surface its recorded error, require a
// result URI, then fetch the asset once and deliver it.
func (w *watch) finish(op *core.Operation) {
	if op.Err != nil {
		w.fail(op.Err)
		return
	}
	if op.ResultURI == "" {
		w.fail(core.ErrMissingAsset)
		return
	}

	if !w.alive() {
		return
	}
	if w.cb.OnFetching != nil {
		w.cb.OnFetching()
	}

	cred, ok := w.p.credentials.Credential()
	if !ok {
		w.fail(core.ErrCredentialRequired)
		return
	}
	prov, err := w.p.factory(w.ctx, cred)
	if err != nil {
		w.fail(err)
		return
	}

	start := time.Now()
	data, err := prov.FetchAsset(w.ctx, op.ResultURI)
	w.p.logger.Debug("asset fetch",
		"uri", op.ResultURI,
		"bytes", len(data),
		"duration", time.Since(start).String(),
		"error", errString(err))
	if err != nil {
		w.fail(err)
		return
	}
	if !w.alive() {
		return
	}
	if w.cb.OnResolved != nil {
		w.cb.OnResolved(core.VideoResult{Data: data, URI: op.ResultURI})
	}
}

func (w *watch) fail(err error) {
	if !w.alive() {
		return
	}
	w.p.logger.Error("operation watch failed", "error", err)
	if w.cb.OnFailed != nil {
		w.cb.OnFailed(normalize(err))
	}
}

func (w *watch) scheduleNext() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canceled || w.ctx.Err() != nil {
		return
	}
	w.cancelTimer = w.p.scheduler.Schedule(w.p.interval, w.check)
}

// alive reports whether callbacks may still be delivered.
func (w *watch) alive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.canceled && w.ctx.Err() == nil
}

// normalize keeps the taxonomy guarantee for errors originating outside the
// adapters, such as factory construction failures.
func normalize(err error) error {
	for _, sentinel := range []error{
		core.ErrCredentialRequired,
		core.ErrInvalidCredential,
		core.ErrPermissionDenied,
		core.ErrMissingAsset,
		core.ErrTransport,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", core.ErrTransport, err)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
