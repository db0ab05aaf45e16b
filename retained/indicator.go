package retained

import (
	"strings"
	"sync"
)

// PageDots is a page indicator: one dot per page with the current page
// filled in.
type PageDots struct {
	mu       sync.Mutex
	count    int
	current  int
	active   string
	inactive string
}

// NewPageDots creates an empty indicator. ascii selects "*" and "." over
// the unicode dots.
func NewPageDots(ascii bool) *PageDots {
	d := &PageDots{active: "●", inactive: "○"}
	if ascii {
		d.active, d.inactive = "*", "."
	}
	return d
}

// SetPageCount sets the number of dots, keeping the current page in range.
func (d *PageDots) SetPageCount(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n < 0 {
		n = 0
	}
	d.count = n
	d.current = d.clamp(d.current)
}

// SetCurrentPage fills in the dot for page. Out of range pages are clamped.
func (d *PageDots) SetCurrentPage(page int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = d.clamp(page)
}

// Count returns the number of dots.
func (d *PageDots) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Current returns the filled-in page.
func (d *PageDots) Current() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// String renders the dots separated by spaces, e.g. "○ ● ○ ○".
func (d *PageDots) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	dots := make([]string, d.count)
	for i := range dots {
		if i == d.current {
			dots[i] = d.active
		} else {
			dots[i] = d.inactive
		}
	}
	return strings.Join(dots, " ")
}

func (d *PageDots) clamp(page int) int {
	if page < 0 || d.count == 0 {
		return 0
	}
	if page >= d.count {
		return d.count - 1
	}
	return page
}
