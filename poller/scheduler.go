package poller

import "time"

// Scheduler runs a function once after a delay. Implementations must invoke
// fn at most once; the returned cancel stops a pending invocation and is a
// no-op once fn has started.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules on real timers via time.AfterFunc.
type TimerScheduler struct{}

// Schedule implements Scheduler.
func (TimerScheduler) Schedule(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

var _ Scheduler = TimerScheduler{}
