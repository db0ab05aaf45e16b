package retained

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
)

// ============================================================================
// Paginated Scroll Surface
// ============================================================================

// PagerConfig configures a Pager.
type PagerConfig struct {
	PageWidth float32       // Width of one page in surface units (default: 390)
	Duration  time.Duration // Programmatic scroll animation (default: 250ms)
	Easing    EasingFunc    // Programmatic scroll easing (default: EaseOutCubic)

	// Drag-release snapping is a damped spring stepped once per Tick.
	FPS             int     // Frame rate Tick is called at (default: 60)
	SpringFrequency float64 // Angular frequency (default: 8)
	SpringDamping   float64 // Damping ratio, 1 is critical (default: 1)

	// FlingVelocity is the release speed, in pages per second, above which a
	// short drag still flips to the adjacent page. Zero disables flings.
	FlingVelocity float32
}

// DefaultPagerConfig returns sensible defaults for a phone-width pager.
func DefaultPagerConfig() PagerConfig {
	return PagerConfig{
		PageWidth:       390,
		Duration:        250 * time.Millisecond,
		Easing:          EaseOutCubic,
		FPS:             60,
		SpringFrequency: 8,
		SpringDamping:   1,
		FlingVelocity:   1.5,
	}
}

// Pager is a horizontally paging scroll surface over a fixed number of
// slots. Its offset moves by programmatic SetOffset calls or by a user drag
// (BeginDrag, DragTo, EndDrag); animated moves and drag releases come to
// rest during Tick and are reported through OnSettle. Jumps without
// animation never report a settle.
type Pager struct {
	mu     sync.Mutex
	cfg    PagerConfig
	slots  int
	offset float32

	registry *AnimationRegistry
	anim     *Animation

	spring     harmonica.Spring
	snapping   bool
	snapTarget float64
	snapVel    float64

	dragging        bool
	dragStartX      float32
	dragStartOffset float32

	onSettle    func()
	onDragBegin func()
}

// NewPager creates a pager over slots pages, resting on slot 0. Zero config
// fields take their defaults.
func NewPager(slots int, cfg PagerConfig) *Pager {
	def := DefaultPagerConfig()
	if cfg.PageWidth <= 0 {
		cfg.PageWidth = def.PageWidth
	}
	if cfg.Duration < 0 {
		cfg.Duration = 0
	} else if cfg.Duration == 0 {
		cfg.Duration = def.Duration
	}
	if cfg.Easing == nil {
		cfg.Easing = def.Easing
	}
	if cfg.FPS <= 0 {
		cfg.FPS = def.FPS
	}
	if cfg.SpringFrequency <= 0 {
		cfg.SpringFrequency = def.SpringFrequency
	}
	if cfg.SpringDamping <= 0 {
		cfg.SpringDamping = def.SpringDamping
	}
	if slots < 1 {
		slots = 1
	}

	return &Pager{
		cfg:      cfg,
		slots:    slots,
		registry: NewAnimationRegistry(),
		spring:   harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.SpringFrequency, cfg.SpringDamping),
	}
}

// OnSettle sets the callback run when scrolling comes to rest.
func (p *Pager) OnSettle(fn func()) {
	p.mu.Lock()
	p.onSettle = fn
	p.mu.Unlock()
}

// OnDragBegin sets the callback run when the user starts a drag.
func (p *Pager) OnDragBegin(fn func()) {
	p.mu.Lock()
	p.onDragBegin = fn
	p.mu.Unlock()
}

// Slots returns the number of pages.
func (p *Pager) Slots() int {
	return p.slots
}

// PageWidth returns the width of one page.
func (p *Pager) PageWidth() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.PageWidth
}

// Offset returns the current horizontal scroll offset.
func (p *Pager) Offset() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

// IsDragging reports whether a user drag is in progress.
func (p *Pager) IsDragging() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dragging
}

// IsSettled reports whether the pager is at rest.
func (p *Pager) IsSettled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.dragging && !p.snapping && p.anim == nil
}

// CurrentVisibleSlot returns the slot closest to centered.
func (p *Pager) CurrentVisibleSlot() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nearestSlotLocked()
}

// SetOffset moves to slot, clamped into range. Animated moves interrupt
// any motion in flight and settle when the animation completes; jumps
// interrupt motion without settling. It is ignored while the user is
// dragging: the drag owns the offset until EndDrag.
func (p *Pager) SetOffset(slot int, animated bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dragging {
		return
	}

	slot = p.clampSlot(slot)
	p.stopMotionLocked()
	if !animated {
		p.offset = float32(slot) * p.cfg.PageWidth
		return
	}
	p.animateLocked(slot)
}

// SetPageWidth changes the page width, keeping the same fractional page
// in view. Motion in flight is retargeted to the new geometry.
func (p *Pager) SetPageWidth(width float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	old := p.cfg.PageWidth
	if width <= 0 || width == old {
		return
	}
	ratio := width / old
	p.cfg.PageWidth = width
	p.offset *= ratio
	p.dragStartOffset *= ratio
	p.snapTarget *= float64(ratio)
	p.snapVel *= float64(ratio)

	if p.anim != nil {
		slot := int(math.Round(float64(p.anim.Target() / old)))
		p.anim.Cancel()
		p.animateLocked(slot)
	}
}

// BeginDrag starts a user drag at horizontal position x. Motion in flight
// stops where it is and does not settle.
func (p *Pager) BeginDrag(x float32) {
	p.mu.Lock()
	p.stopMotionLocked()
	p.dragging = true
	p.dragStartX = x
	p.dragStartOffset = p.offset
	fn := p.onDragBegin
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// DragTo moves the content with the finger. The offset is clamped to the
// content bounds.
func (p *Pager) DragTo(x float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dragging {
		return
	}
	p.offset = p.clampOffset(p.dragStartOffset - (x - p.dragStartX))
}

// EndDrag releases the drag with the finger's horizontal velocity in units
// per second (positive means moving right). The pager snaps to the nearest
// page, or to the adjacent page in the fling direction when the release is
// fast enough, and settles once the snap comes to rest.
func (p *Pager) EndDrag(velocity float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dragging {
		return
	}
	p.dragging = false

	pw := p.cfg.PageWidth
	base := int(math.Round(float64(p.dragStartOffset / pw)))
	target := p.nearestSlotLocked()
	if fling := p.cfg.FlingVelocity * pw; fling > 0 && target == base {
		switch {
		case velocity <= -fling:
			target = base + 1
		case velocity >= fling:
			target = base - 1
		}
	}
	target = p.clampSlot(target)

	p.snapping = true
	p.snapTarget = float64(target) * float64(pw)
	p.snapVel = float64(-velocity)
}

// Tick advances animations and the drag-release snap by one frame. Call it
// once per frame at the configured FPS, on the same context that handles
// the settle callback. Returns true while anything is still moving.
func (p *Pager) Tick(now time.Time) bool {
	active := p.registry.Tick(now)

	p.mu.Lock()
	if !p.snapping {
		p.mu.Unlock()
		return active
	}

	pos, vel := p.spring.Update(float64(p.offset), p.snapVel, p.snapTarget)
	pw := float64(p.cfg.PageWidth)
	if math.Abs(pos-p.snapTarget) < pw*1e-3 && math.Abs(vel) < pw*1e-2 {
		p.offset = float32(p.snapTarget)
		p.snapping = false
		p.snapVel = 0
		fn := p.onSettle
		p.mu.Unlock()

		if fn != nil {
			fn()
		}
		return active
	}

	p.offset = float32(pos)
	p.snapVel = vel
	p.mu.Unlock()
	return true
}

// animateLocked starts a programmatic scroll to slot. Must hold p.mu.
func (p *Pager) animateLocked(slot int) {
	var anim *Animation
	anim = p.registry.Tween().
		Duration(p.cfg.Duration).
		Easing(p.cfg.Easing).
		OnComplete(func() { p.finishAnimation(anim) }).
		FromTo(p.offset, float32(slot)*p.cfg.PageWidth, func(v float32) {
			p.mu.Lock()
			if p.anim == anim {
				p.offset = v
			}
			p.mu.Unlock()
		})
	p.anim = anim
}

func (p *Pager) finishAnimation(anim *Animation) {
	p.mu.Lock()
	if p.anim != anim {
		p.mu.Unlock()
		return
	}
	p.offset = anim.Target()
	p.anim = nil
	fn := p.onSettle
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// stopMotionLocked cancels any animation or snap. Must hold p.mu.
func (p *Pager) stopMotionLocked() {
	if p.anim != nil {
		p.anim.Cancel()
		p.anim = nil
	}
	p.snapping = false
	p.snapVel = 0
}

func (p *Pager) nearestSlotLocked() int {
	return p.clampSlot(int(math.Round(float64(p.offset / p.cfg.PageWidth))))
}

func (p *Pager) clampSlot(slot int) int {
	if slot < 0 {
		return 0
	}
	if slot > p.slots-1 {
		return p.slots - 1
	}
	return slot
}

func (p *Pager) clampOffset(offset float32) float32 {
	limit := float32(p.slots-1) * p.cfg.PageWidth
	if offset < 0 {
		return 0
	}
	if offset > limit {
		return limit
	}
	return offset
}
