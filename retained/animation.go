package retained

import (
	"sync"
	"sync/atomic"
	"time"
)

// AnimationID uniquely identifies an animation.
type AnimationID uint64

var nextAnimationID atomic.Uint64

func newAnimationID() AnimationID {
	return AnimationID(nextAnimationID.Add(1))
}

// EasingFunc defines how animation progress maps to value progress.
// Input t is 0-1 (time progress), output is 0-1 (value progress).
type EasingFunc func(t float64) float64

// Common easing functions
var (
	// EaseLinear - constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseInQuad - accelerate from zero
	EaseInQuad EasingFunc = func(t float64) float64 { return t * t }

	// EaseOutQuad - decelerate to zero
	EaseOutQuad EasingFunc = func(t float64) float64 { return t * (2 - t) }

	// EaseInOutQuad - accelerate then decelerate
	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	}

	// EaseOutCubic - smooth deceleration, the page-scroll default
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t--
		return t*t*t + 1
	}

	// EaseInOutCubic - smooth acceleration and deceleration
	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	}
)

// EasingByName returns the easing function for a given name.
// Returns nil if the name is unknown.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "ease-in":
		return EaseInQuad
	case "ease-out":
		return EaseOutCubic
	case "ease-out-quad":
		return EaseOutQuad
	case "ease", "ease-in-out":
		return EaseInOutQuad
	case "cubic":
		return EaseInOutCubic
	default:
		return nil
	}
}

// Animation is a running tween between two scalar values.
type Animation struct {
	id         AnimationID
	startTime  time.Time
	duration   time.Duration
	easing     EasingFunc
	update     func(value float32)
	onComplete func()
	from, to   float32
	cancelled  atomic.Bool
}

// Cancel stops the animation. Its completion callback will not run.
func (a *Animation) Cancel() {
	a.cancelled.Store(true)
}

// IsCancelled returns whether the animation was cancelled.
func (a *Animation) IsCancelled() bool {
	return a.cancelled.Load()
}

// Target returns the value the animation ends on.
func (a *Animation) Target() float32 {
	return a.to
}

// AnimationRegistry holds the animations advanced once per frame.
type AnimationRegistry struct {
	mu         sync.Mutex
	animations map[AnimationID]*Animation

	// Callback when animation state changes (so the frame driver knows
	// when it may idle)
	onActiveChange func(hasActive bool)
}

// NewAnimationRegistry creates a new animation registry.
func NewAnimationRegistry() *AnimationRegistry {
	return &AnimationRegistry{
		animations: make(map[AnimationID]*Animation),
	}
}

// OnActiveChange sets the callback for when animations become active/inactive.
func (r *AnimationRegistry) OnActiveChange(fn func(hasActive bool)) {
	r.mu.Lock()
	r.onActiveChange = fn
	r.mu.Unlock()
}

// Add registers a new animation.
func (r *AnimationRegistry) Add(anim *Animation) {
	r.mu.Lock()
	wasEmpty := len(r.animations) == 0
	r.animations[anim.id] = anim
	callback := r.onActiveChange
	r.mu.Unlock()

	if wasEmpty && callback != nil {
		callback(true)
	}
}

// HasActive returns true if there are any running animations.
func (r *AnimationRegistry) HasActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.animations) > 0
}

// Count returns the number of active animations.
func (r *AnimationRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.animations)
}

// Tick advances every animation to now and drops finished or cancelled
// ones. Update and completion callbacks run outside the registry lock, in
// that order. Returns true if any animations are still active.
func (r *AnimationRegistry) Tick(now time.Time) bool {
	type step struct {
		anim  *Animation
		value float32
		done  bool
	}

	r.mu.Lock()
	steps := make([]step, 0, len(r.animations))
	removed := false
	for id, anim := range r.animations {
		if anim.cancelled.Load() {
			delete(r.animations, id)
			removed = true
			continue
		}

		t := 1.0
		if anim.duration > 0 {
			t = float64(now.Sub(anim.startTime)) / float64(anim.duration)
		}
		done := t >= 1
		if done {
			t = 1
			delete(r.animations, id)
			removed = true
		}
		if t < 0 {
			t = 0
		}
		steps = append(steps, step{
			anim:  anim,
			value: lerp(anim.from, anim.to, float32(anim.easing(t))),
			done:  done,
		})
	}
	hasActive := len(r.animations) > 0
	callback := r.onActiveChange
	r.mu.Unlock()

	for _, s := range steps {
		// An earlier callback in this tick may have cancelled it.
		if s.anim.cancelled.Load() {
			continue
		}
		if s.anim.update != nil {
			s.anim.update(s.value)
		}
		if s.done && s.anim.onComplete != nil {
			s.anim.onComplete()
		}
	}

	if removed && !hasActive && callback != nil {
		callback(false)
	}
	return hasActive
}

// ============================================================================
// Tween Builder API
// ============================================================================

// TweenBuilder provides a fluent API for creating animations.
type TweenBuilder struct {
	registry   *AnimationRegistry
	duration   time.Duration
	easing     EasingFunc
	onComplete func()
}

// Tween starts building an animation registered with r.
func (r *AnimationRegistry) Tween() *TweenBuilder {
	return &TweenBuilder{
		registry: r,
		duration: 250 * time.Millisecond,
		easing:   EaseOutCubic,
	}
}

// Duration sets how long the animation runs.
func (b *TweenBuilder) Duration(d time.Duration) *TweenBuilder {
	b.duration = d
	return b
}

// Easing sets the easing function. Nil keeps the current one.
func (b *TweenBuilder) Easing(fn EasingFunc) *TweenBuilder {
	if fn != nil {
		b.easing = fn
	}
	return b
}

// OnComplete sets a callback for when the animation finishes uncancelled.
func (b *TweenBuilder) OnComplete(fn func()) *TweenBuilder {
	b.onComplete = fn
	return b
}

// FromTo starts animating from one value to another, reporting every
// frame's value to update.
func (b *TweenBuilder) FromTo(from, to float32, update func(value float32)) *Animation {
	anim := &Animation{
		id:         newAnimationID(),
		startTime:  time.Now(),
		duration:   b.duration,
		easing:     b.easing,
		update:     update,
		onComplete: b.onComplete,
		from:       from,
		to:         to,
	}

	b.registry.Add(anim)
	return anim
}

// lerp linearly interpolates between two float32 values.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
