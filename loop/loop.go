// Package loop provides the single-threaded scheduling context the carousel
// runs on: every posted function and timer callback executes serially on the
// goroutine that called Run.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrRunning is returned by Run when the loop is already running.
var ErrRunning = errors.New("loop: already running")

// Loop is a main-thread style dispatch queue.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	stopped bool

	wake    chan struct{}
	running atomic.Bool
}

// New creates an idle loop. Functions posted before Run are kept and run
// once the loop starts.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Post queues fn to run on the loop goroutine. Returns false if the loop has
// already stopped and fn was dropped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// AfterFunc runs fn on the loop goroutine once d has elapsed. The returned
// cancel function is safe to call any number of times; when it is called
// from the loop goroutine, fn is guaranteed not to run afterwards even if
// the timer already fired and its callback is queued.
func (l *Loop) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	var cancelled atomic.Bool
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			if cancelled.Load() {
				return
			}
			fn()
		})
	})
	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}

// Run dispatches queued functions until ctx is done. Anything still queued
// when Run returns is discarded, and later Posts are rejected.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.pending = nil
		l.mu.Unlock()
	}()

	// Drain anything posted before Run.
	l.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.drain(ctx)
		}
	}
}

func (l *Loop) drain(ctx context.Context) {
	for {
		l.mu.Lock()
		batch := l.pending
		l.pending = nil
		l.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			if ctx.Err() != nil {
				return
			}
			fn()
		}
	}
}
