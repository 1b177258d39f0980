// Package view provides the scrollable viewport shared by every
// list-backed page: a selection cursor plus a visible-window start
// index over an ordered sequence.
package view

// Viewport tracks a selection cursor and the first visible row over a
// sequence of entries. The invariant, whenever the sequence is
// non-empty, is 0 <= selected < n and start <= selected < start+height.
// The viewport holds no reference to the sequence itself; every
// transition takes the current length n. All operations saturate on
// empty sequences instead of panicking.
type Viewport struct {
	selected int
	start    int
	height   int
}

// Selected returns the index of the selected entry.
func (v *Viewport) Selected() int { return v.selected }

// Start returns the index of the first visible entry.
func (v *Viewport) Start() int { return v.start }

// Height returns the window height in rows.
func (v *Viewport) Height() int { return v.height }

// SetHeight updates the window height and reports whether it changed.
// Callers reset the viewport on a discontinuous change (terminal
// resize) so the invariant holds against the new window.
func (v *Viewport) SetHeight(h int) bool {
	if h < 0 {
		h = 0
	}
	changed := v.height != h
	v.height = h
	return changed
}

// Reset moves the cursor and window back to the top. Called whenever
// the backing sequence is replaced.
func (v *Viewport) Reset() {
	v.selected = 0
	v.start = 0
}

// ScrollDown moves the selection down one entry, wrapping from the last
// entry to the first. At the wrap boundary the window snaps back to the
// top of the sequence.
func (v *Viewport) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	switch {
	case v.selected >= n-1:
		v.selected = 0
		v.start = 0
	case v.selected >= v.start+v.height-1:
		v.selected++
		v.start++
	default:
		v.selected++
	}
}

// ScrollUp moves the selection up one entry, wrapping from the first
// entry to the last. At the wrap boundary the window snaps to the end
// of the sequence.
func (v *Viewport) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	switch {
	case v.selected == 0:
		v.selected = n - 1
		v.start = max(0, n-v.height)
	case v.selected <= v.start:
		v.selected--
		v.start--
	default:
		v.selected--
	}
}

// PageDownBy scrolls down by up to h entries, stopping at the last
// entry instead of wrapping. Paging deliberately clamps where
// single-step scrolling wraps.
func (v *Viewport) PageDownBy(h, n int) {
	if n <= 0 {
		return
	}
	steps := min(h, n-1-v.selected)
	for range steps {
		v.ScrollDown(n)
	}
}

// PageUpBy scrolls up by up to h entries, stopping at the first entry
// instead of wrapping.
func (v *Viewport) PageUpBy(h, n int) {
	if n <= 0 {
		return
	}
	steps := min(h, v.selected)
	for range steps {
		v.ScrollUp(n)
	}
}

// GoTo resets the viewport and scrolls down to the given index, keeping
// the window placement consistent with step-wise navigation.
func (v *Viewport) GoTo(index, n int) {
	v.Reset()
	if index >= n {
		index = n - 1
	}
	for range index {
		v.ScrollDown(n)
	}
}

// VisibleRange returns the half-open interval [start, end) of entries
// currently inside the window.
func (v *Viewport) VisibleRange(n int) (start, end int) {
	start = min(v.start, n)
	end = min(v.start+v.height, n)
	return start, end
}
