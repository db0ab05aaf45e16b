package carousel

// DisplayList is the padded item sequence a scroll surface pages through:
// a clone of the last real item, the real items in order, then a clone of
// the first real item. For real items [A B C] the display list is
// [C A B C A].
type DisplayList[T any] struct {
	slots []T
}

// Build pads items into a DisplayList. It fails with an *InvalidInputError
// when items is empty, since there is nothing to clone into the padding
// slots. items is copied; later changes to it are not observed.
func Build[T any](items []T) (DisplayList[T], error) {
	n := len(items)
	if n == 0 {
		return DisplayList[T]{}, &InvalidInputError{Reason: "item list is empty"}
	}

	slots := make([]T, 0, n+2)
	slots = append(slots, items[n-1])
	slots = append(slots, items...)
	slots = append(slots, items[0])

	return DisplayList[T]{slots: slots}, nil
}

// Len returns the number of display slots, N+2.
func (d DisplayList[T]) Len() int {
	return len(d.slots)
}

// RealLen returns the number of real items, N.
func (d DisplayList[T]) RealLen() int {
	if len(d.slots) < 2 {
		return 0
	}
	return len(d.slots) - 2
}

// At returns the item shown in display slot i. It panics if i is out of
// range, like slice indexing.
func (d DisplayList[T]) At(i int) T {
	return d.slots[i]
}

// Real returns the real item for a logical page.
func (d DisplayList[T]) Real(page int) T {
	return d.slots[page+1]
}

// IsPadding reports whether slot i holds a clone.
func (d DisplayList[T]) IsPadding(i int) bool {
	return len(d.slots) > 0 && (i == 0 || i == len(d.slots)-1)
}

// Items returns a copy of the display slots.
func (d DisplayList[T]) Items() []T {
	out := make([]T, len(d.slots))
	copy(out, d.slots)
	return out
}
