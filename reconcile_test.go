package carousel

import (
	"fmt"
	"testing"
)

func TestReconcileRealSlots(t *testing.T) {
	for n := 1; n <= 6; n++ {
		m := n + 2
		for i := 1; i <= m-2; i++ {
			s := Reconcile(m, i)
			if s.Correct {
				t.Errorf("m=%d i=%d: unexpected correction to %d", m, i, s.Target)
			}
			if s.Page != i-1 {
				t.Errorf("m=%d i=%d: Page = %d, want %d", m, i, s.Page, i-1)
			}
			if s.Target != i || s.Index != i {
				t.Errorf("m=%d i=%d: Index/Target = %d/%d, want %d", m, i, s.Index, s.Target, i)
			}
		}
	}
}

func TestReconcilePaddingSlots(t *testing.T) {
	for n := 1; n <= 6; n++ {
		m := n + 2
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			lead := Reconcile(m, 0)
			if !lead.Correct || lead.Target != m-2 || lead.Page != n-1 {
				t.Errorf("Reconcile(%d, 0) = %+v, want target %d page %d", m, lead, m-2, n-1)
			}

			trail := Reconcile(m, m-1)
			if !trail.Correct || trail.Target != 1 || trail.Page != 0 {
				t.Errorf("Reconcile(%d, %d) = %+v, want target 1 page 0", m, m-1, trail)
			}
		})
	}
}

func TestReconcileClamps(t *testing.T) {
	tests := []struct {
		name      string
		m, i      int
		wantIndex int
		wantPage  int
	}{
		{name: "below range", m: 5, i: -3, wantIndex: 0, wantPage: 2},
		{name: "above range", m: 5, i: 9, wantIndex: 4, wantPage: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reconcile(tt.m, tt.i)
			if s.Index != tt.wantIndex || s.Page != tt.wantPage || !s.Correct {
				t.Errorf("Reconcile(%d, %d) = %+v, want index %d page %d corrected",
					tt.m, tt.i, s, tt.wantIndex, tt.wantPage)
			}
		})
	}

	if s := Reconcile(2, 1); s != (Settlement{}) {
		t.Errorf("Reconcile(2, 1) = %+v, want zero settlement", s)
	}
}

func TestPageForMatchesSettle(t *testing.T) {
	m := 6
	want := []int{3, 0, 1, 2, 3, 0}
	for i, w := range want {
		if got := PageFor(m, i); got != w {
			t.Errorf("PageFor(%d, %d) = %d, want %d", m, i, got, w)
		}
	}
}
