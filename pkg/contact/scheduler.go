package contact

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Timer is a handle on a pending callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports false when the
	// callback already fired or was stopped before.
	Stop() bool
}

// Scheduler arranges for fn to run once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemScheduler schedules on the runtime timers. Callbacks run on their own
// goroutine, so a Controller using it must be bound to a Loop.
type SystemScheduler struct{}

// AfterFunc implements Scheduler.
func (SystemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// ErrLoopStopped is returned by Run once the loop has been stopped.
var ErrLoopStopped = errors.New("contact: loop stopped")

// Loop runs posted callbacks one at a time, in arrival order, on the
// goroutine that calls Run.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a loop buffering up to size pending callbacks.
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = 16
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. It blocks while the buffer is full and reports false once
// the loop is stopped. Post must not be called from the loop goroutine with a
// full buffer.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes callbacks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return ErrLoopStopped
		case fn := <-l.queue:
			fn()
		}
	}
}

// Stop ends Run and rejects further posts. Queued callbacks are dropped.
func (l *Loop) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}

// Done is closed once the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
