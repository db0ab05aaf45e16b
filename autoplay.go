package carousel

import "time"

// Autoplay is a cancellable repeating timer built on one-shot scheduler
// callbacks. Every callback it schedules carries the generation it was
// scheduled in; Stop, Pause and Resume bump the generation, so callbacks
// from an earlier generation never apply even if the scheduler already
// queued them.
type Autoplay struct {
	sched    Scheduler
	interval time.Duration
	onTick   func()

	gen     uint64
	enabled bool
	paused  bool

	cancelTick     func()
	cancelDeferred func()
}

func newAutoplay(sched Scheduler, onTick func()) *Autoplay {
	return &Autoplay{sched: sched, onTick: onTick}
}

// Start arms the timer at interval, discarding any previous cadence.
func (a *Autoplay) Start(interval time.Duration) {
	a.interval = interval
	a.enabled = true
	a.paused = false
	a.restart()
}

// Stop disarms the timer and revokes any deferred callback. Idempotent.
func (a *Autoplay) Stop() {
	a.enabled = false
	a.paused = false
	a.invalidate()
}

// Pause disarms a running timer, remembering that it should resume.
func (a *Autoplay) Pause() {
	if !a.enabled || a.paused {
		return
	}
	a.paused = true
	a.invalidate()
}

// Resume re-arms an enabled timer a full interval from now.
func (a *Autoplay) Resume() {
	if !a.enabled {
		return
	}
	a.paused = false
	a.restart()
}

// Active reports whether ticks are currently scheduled.
func (a *Autoplay) Active() bool {
	return a.enabled && !a.paused
}

// DeferredPending reports whether a deferred callback is waiting to run.
func (a *Autoplay) DeferredPending() bool {
	return a.cancelDeferred != nil
}

// Defer runs fn once after d unless the generation changes first. A newer
// Defer replaces an older one.
func (a *Autoplay) Defer(d time.Duration, fn func()) {
	if a.cancelDeferred != nil {
		a.cancelDeferred()
	}
	gen := a.gen
	a.cancelDeferred = a.sched.AfterFunc(d, func() {
		if gen != a.gen {
			return
		}
		a.cancelDeferred = nil
		fn()
	})
}

func (a *Autoplay) restart() {
	a.invalidate()
	a.schedule(a.gen)
}

func (a *Autoplay) schedule(gen uint64) {
	a.cancelTick = a.sched.AfterFunc(a.interval, func() {
		if gen != a.gen {
			return
		}
		a.schedule(gen)
		a.onTick()
	})
}

func (a *Autoplay) invalidate() {
	a.gen++
	if a.cancelTick != nil {
		a.cancelTick()
		a.cancelTick = nil
	}
	if a.cancelDeferred != nil {
		a.cancelDeferred()
		a.cancelDeferred = nil
	}
}

// tick advances the surface one slot. The current slot is normalized first
// so a tick never steps past the trailing padding slot. Stepping from the
// last real slot onto the trailing padding slot also defers a silent
// rewind to slot 1 by the settle delay.
func (c *Controller) tick() {
	if c.closed {
		return
	}

	cur := Reconcile(c.slots, c.index)
	if cur.Correct {
		c.jump(cur)
	}

	next := cur.Target + 1
	c.surface.SetOffset(next, true)
	c.index = next
	c.inFlight = true

	if cur.Target == c.slots-2 {
		expect := next
		c.autoplay.Defer(c.settleDelay, func() { c.rewind(expect) })
	}
	c.publish(PageFor(c.slots, next))
}

// rewind is the deferred half of a wrapping tick. It does nothing if the
// position has moved on since the tick that scheduled it.
func (c *Controller) rewind(expect int) {
	if c.closed {
		return
	}
	if c.index != expect {
		c.logger.Debug("stale rewind dropped", "expected", expect, "index", c.index)
		return
	}
	c.jump(Reconcile(c.slots, expect))
	c.publish(PageFor(c.slots, c.index))
}
