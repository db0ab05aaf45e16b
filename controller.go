// Package carousel implements a looping image carousel controller.
//
// A finite list of N items is padded into N+2 display slots (see Build).
// The controller drives a paginated scroll surface over those slots,
// advances it on a timer, and silently jumps from a padding slot to the
// real slot holding the same item, so that paging appears endless in both
// directions. A page indicator is kept on the logical page throughout.
//
// The controller is not safe for concurrent use. Every method, and every
// callback handed to the Scheduler, must run on one scheduling context,
// typically a UI loop such as loop.Loop.
package carousel

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Surface is the paginated scroll surface the controller drives. Settle and
// drag-begin events are delivered back through Controller.OnSettle and
// Controller.OnUserInteractionBegin.
type Surface interface {
	// SetOffset moves to the page at slot, animating if requested.
	SetOffset(slot int, animated bool)
	// CurrentVisibleSlot returns the slot closest to centered.
	CurrentVisibleSlot() int
}

// Indicator is the page indicator the controller publishes to.
type Indicator interface {
	SetPageCount(n int)
	SetCurrentPage(page int)
}

// Scheduler runs one-shot callbacks on the controller's scheduling context.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Options wires a controller to its collaborators.
type Options struct {
	Surface   Surface
	Indicator Indicator // optional
	Scheduler Scheduler
	Logger    *log.Logger // optional, discards by default

	// SettleDelay is how long the autoplay waits after stepping onto the
	// trailing padding slot before rewinding to slot 1 (default 1s).
	SettleDelay time.Duration
}

// Controller is the looping carousel session state.
type Controller struct {
	slots int
	index int
	page  int

	surface   Surface
	indicator Indicator
	logger    *log.Logger

	settleDelay time.Duration
	autoplay    *Autoplay

	// interacting is set between a drag begin and the settle ending it.
	interacting bool
	// inFlight is set while an animated SetOffset has not yet settled.
	inFlight bool
	closed   bool
}

// New creates a controller over list, places the surface on the first real
// item without animation and publishes page 0. Autoplay is off until Start.
func New[T any](list DisplayList[T], opts Options) (*Controller, error) {
	if list.RealLen() < 1 {
		return nil, &InvalidInputError{Reason: "item list is empty"}
	}
	if opts.Surface == nil {
		return nil, &InvalidInputError{Reason: "no scroll surface"}
	}
	if opts.Scheduler == nil {
		return nil, &InvalidInputError{Reason: "no scheduler"}
	}
	if opts.Indicator == nil {
		opts.Indicator = nopIndicator{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}

	c := &Controller{
		slots:       list.Len(),
		index:       1,
		surface:     opts.Surface,
		indicator:   opts.Indicator,
		logger:      opts.Logger.With("session", uuid.NewString()[:8]),
		settleDelay: opts.SettleDelay,
	}
	c.autoplay = newAutoplay(opts.Scheduler, c.tick)

	c.indicator.SetPageCount(list.RealLen())
	c.surface.SetOffset(c.index, false)
	c.publish(PageFor(c.slots, c.index))

	c.logger.Debug("carousel ready", "items", list.RealLen(), "slots", c.slots)
	return c, nil
}

// Index returns the current display slot.
func (c *Controller) Index() int { return c.index }

// Page returns the last published logical page.
func (c *Controller) Page() int { return c.page }

// Slots returns the display list length, N+2.
func (c *Controller) Slots() int { return c.slots }

// Pages returns the number of real items, N.
func (c *Controller) Pages() int { return c.slots - 2 }

// Autoplaying reports whether the autoplay timer is armed.
func (c *Controller) Autoplaying() bool { return c.autoplay.Active() }

// Start enables autoplay, advancing one slot every interval. A non-positive
// interval selects DefaultInterval. Calling Start while running restarts the
// cadence. Started during a drag, autoplay stays paused until the drag
// settles.
func (c *Controller) Start(interval time.Duration) {
	if c.closed {
		return
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	c.autoplay.Start(interval)
	if c.interacting {
		c.autoplay.Pause()
	}
	c.logger.Debug("autoplay started", "interval", interval, "paused", c.interacting)
}

// Stop disables autoplay. Pending ticks and deferred rewinds are revoked.
// If the surface is already resting on a padding slot whose rewind was
// revoked, it is moved to the matching real slot. Safe to call repeatedly.
func (c *Controller) Stop() {
	rewindPending := c.autoplay.DeferredPending()
	c.autoplay.Stop()

	if c.closed || !rewindPending || c.inFlight {
		return
	}
	if s := Reconcile(c.slots, c.index); s.Correct {
		c.jump(s)
	}
}

// Close stops autoplay and detaches the controller. Later events are
// ignored.
func (c *Controller) Close() {
	c.Stop()
	if !c.closed {
		c.closed = true
		c.logger.Debug("carousel closed")
	}
}

// OnUserInteractionBegin must be called when the user starts dragging the
// surface. Autoplay pauses until the drag settles.
func (c *Controller) OnUserInteractionBegin() {
	if c.closed {
		return
	}
	c.interacting = true
	c.inFlight = false
	c.autoplay.Pause()
}

// OnSettle must be called whenever the surface comes to rest, after a user
// drag or an animated SetOffset. The settled slot is reconciled: padding
// slots are corrected with a non-animated jump and the logical page is
// published. A settle ending a user drag restarts autoplay at a full
// interval.
//
// A programmatic settle on the trailing padding slot while the autoplay's
// own rewind is pending is left alone; the rewind performs the jump once
// the settle delay has elapsed.
func (c *Controller) OnSettle() {
	if c.closed {
		return
	}
	user := c.interacting
	c.interacting = false
	c.inFlight = false

	s := Reconcile(c.slots, c.surface.CurrentVisibleSlot())
	c.index = s.Index
	rewinding := c.autoplay.DeferredPending() && s.Index == c.slots-1
	if s.Correct && (user || !rewinding) {
		c.jump(s)
	}
	c.publish(s.Page)

	if user {
		c.autoplay.Resume()
	}
}

// jump applies a wrap-correction.
func (c *Controller) jump(s Settlement) {
	c.logger.Debug("wrap correction", "from", s.Index, "to", s.Target)
	c.surface.SetOffset(s.Target, false)
	c.index = s.Target
	c.inFlight = false
}

func (c *Controller) publish(page int) {
	c.page = page
	c.indicator.SetCurrentPage(page)
}

type nopIndicator struct{}

func (nopIndicator) SetPageCount(int)   {}
func (nopIndicator) SetCurrentPage(int) {}
