package deck

import "math"

// Pointer gesture protocol. A gesture spans pointer-down to
// pointer-up/cancel/leave and commits at most one navigation.

// PointerDown arms a gesture at x. Ignored unless the viewport is narrow
// and the pointer coarse; both are probed live.
func (c *Controller) PointerDown(x float64) {
	if c.n == 0 {
		return
	}
	vp := c.probe()
	if !vp.Narrow() || !vp.Coarse {
		return
	}
	c.pointerDown = true
	c.startX = x
	c.deltaX = 0
	c.swiped = false
}

// PointerMove tracks horizontal travel. Before the swipe threshold is
// crossed the active card follows the pointer (clamped to ±DragClamp) for
// immediate feedback without touching the active index. The first time
// |deltaX| exceeds the threshold within a gesture, exactly one navigation
// commits: left drag advances, right drag retreats, and either end snaps
// back by re-rendering the same index.
func (c *Controller) PointerMove(x float64) {
	if !c.pointerDown {
		return
	}
	vp := c.probe()
	if !vp.Narrow() || !vp.Coarse {
		return
	}
	c.deltaX = x - c.startX
	if c.swiped {
		return
	}
	if math.Abs(c.deltaX) > SwipeThreshold {
		switch {
		case c.deltaX < 0 && c.active < c.n-1:
			c.GoTo(c.active + 1)
		case c.deltaX > 0 && c.active > 0:
			c.GoTo(c.active - 1)
		default:
			c.GoTo(c.active) // snap back at either end, symmetric
		}
		c.swiped = true
		return
	}
	c.hints[c.active].OffsetX = clamp(c.deltaX, -DragClamp, DragClamp)
}

// PointerUp ends the gesture. A gesture that never crossed the threshold
// re-renders at the current index so the partial drag offset disappears.
func (c *Controller) PointerUp() {
	if !c.pointerDown {
		return
	}
	if !c.swiped {
		c.Render()
	}
	c.pointerDown = false
}

// PointerCancel handles cancel/leave identically to release.
func (c *Controller) PointerCancel() { c.PointerUp() }

// ArrowLeft navigates to the previous card. Keyboard navigation only
// applies on narrow viewports; wide layouts keep native scrolling.
func (c *Controller) ArrowLeft() {
	if c.n == 0 || !c.probe().Narrow() {
		return
	}
	c.GoTo(c.active - 1)
}

// ArrowRight navigates to the next card, gated like ArrowLeft.
func (c *Controller) ArrowRight() {
	if c.n == 0 || !c.probe().Narrow() {
		return
	}
	c.GoTo(c.active + 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
