package carousel

// Settlement is the reconciler's verdict for one settled slot.
type Settlement struct {
	// Index is the observed slot after clamping into the display list.
	Index int
	// Target is the slot the surface should rest on. Equal to Index unless
	// Correct is set.
	Target int
	// Page is the logical page to publish.
	Page int
	// Correct is set when Index is a padding slot and the surface must jump,
	// without animation, to Target.
	Correct bool
}

// Reconcile maps a settled slot index i in a display list of m slots to its
// correction and logical page.
//
//	i == 0      -> jump to m-2, page n-1
//	i == m-1    -> jump to 1,   page 0
//	otherwise   -> stay,        page i-1
//
// Out of range indices are clamped first. m below 3 has no real slot and
// yields the zero Settlement.
func Reconcile(m, i int) Settlement {
	if m < 3 {
		return Settlement{}
	}
	i = clampSlot(m, i)
	n := m - 2

	switch i {
	case 0:
		return Settlement{Index: i, Target: m - 2, Page: n - 1, Correct: true}
	case m - 1:
		return Settlement{Index: i, Target: 1, Page: 0, Correct: true}
	default:
		return Settlement{Index: i, Target: i, Page: i - 1}
	}
}

// PageFor returns the logical page shown at slot i. It is the single page
// formula used by both the settle and the autoplay paths.
func PageFor(m, i int) int {
	return Reconcile(m, i).Page
}

func clampSlot(m, i int) int {
	if i < 0 {
		return 0
	}
	if i > m-1 {
		return m - 1
	}
	return i
}
