// Package poller drives a long-running video operation to completion. It
// owns the handle from the moment Watch is called: it schedules status
// checks (a short initial delay, then a fixed interval), always re-checks
// with the most recently returned handle, fetches the finished asset exactly
// once, and reports the outcome through callbacks.
//
// Checks for a handle are strictly sequential; the next check is scheduled
// only after the previous one returns. Cancellation is cooperative: a check
// already in flight may complete, but its callbacks are suppressed once the
// watch is canceled or its context is done. Timer scheduling sits behind the
// Scheduler interface so tests can drive the loop without real clocks.
package poller
