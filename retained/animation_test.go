package retained

import (
	"testing"
	"time"
)

func TestTweenProgressAndCompletion(t *testing.T) {
	r := NewAnimationRegistry()

	var values []float32
	completed := 0
	anim := r.Tween().
		Duration(100 * time.Millisecond).
		Easing(EaseLinear).
		OnComplete(func() { completed++ }).
		FromTo(0, 10, func(v float32) { values = append(values, v) })

	if !r.HasActive() || r.Count() != 1 {
		t.Fatal("tween not registered")
	}

	if !r.Tick(anim.startTime.Add(50 * time.Millisecond)) {
		t.Error("Tick() = false halfway through")
	}
	if len(values) != 1 || values[0] != 5 {
		t.Errorf("values = %v, want [5]", values)
	}
	if completed != 0 {
		t.Error("completed early")
	}

	if r.Tick(anim.startTime.Add(200 * time.Millisecond)) {
		t.Error("Tick() = true after the tween ended")
	}
	if completed != 1 {
		t.Errorf("completed %d times, want 1", completed)
	}
	if values[len(values)-1] != 10 {
		t.Errorf("final value = %v, want 10", values[len(values)-1])
	}

	r.Tick(anim.startTime.Add(time.Second))
	if completed != 1 {
		t.Errorf("completed %d times after a further tick, want 1", completed)
	}
}

func TestTweenCancel(t *testing.T) {
	r := NewAnimationRegistry()

	var transitions []bool
	r.OnActiveChange(func(active bool) { transitions = append(transitions, active) })

	completed := false
	anim := r.Tween().
		OnComplete(func() { completed = true }).
		FromTo(0, 1, func(float32) { t.Error("cancelled tween updated") })
	anim.Cancel()

	if !anim.IsCancelled() {
		t.Error("IsCancelled() = false")
	}
	r.Tick(time.Now().Add(time.Second))
	if completed {
		t.Error("cancelled tween completed")
	}
	if r.HasActive() {
		t.Error("cancelled tween still registered")
	}
	if len(transitions) != 2 || !transitions[0] || transitions[1] {
		t.Errorf("active transitions = %v, want [true false]", transitions)
	}
}

func TestEasingByName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"linear", true},
		{"ease-in", true},
		{"ease-out", true},
		{"ease-out-quad", true},
		{"ease", true},
		{"ease-in-out", true},
		{"cubic", true},
		{"wobble", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := EasingByName(tt.name)
			if (fn != nil) != tt.want {
				t.Fatalf("EasingByName(%q) found = %v, want %v", tt.name, fn != nil, tt.want)
			}
			if fn == nil {
				return
			}
			if got := fn(0); got != 0 {
				t.Errorf("%s(0) = %v, want 0", tt.name, got)
			}
			if got := fn(1); got != 1 {
				t.Errorf("%s(1) = %v, want 1", tt.name, got)
			}
		})
	}
}
