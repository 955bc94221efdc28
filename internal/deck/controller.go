package deck

import "math"

// Presentation geometry. Values are in the same abstract pixel space the
// renderer maps terminal cells into.
const (
	// NarrowBreakpoint is the viewport width at and below which the deck
	// presentation replaces native flow.
	NarrowBreakpoint = 1023.0

	// SwipeThreshold is the horizontal travel after which a drag commits a
	// navigation, once per gesture.
	SwipeThreshold = 50.0

	// DragClamp bounds the visual drag offset applied to the active card
	// while a gesture is in flight.
	DragClamp = 80.0

	// DepthCap is the deepest visualized position behind the active card;
	// cards further back share its hint.
	DepthCap = 3

	// activeZ sits above every stacked card (stacked z tops out at 3).
	activeZ = 5

	depthScaleStep   = 0.06
	depthOpacityStep = 0.12
	depthOffsetX     = 14.0
	depthOffsetY     = 12.0
	passedScale      = 0.9
	passedXFactor    = -1.2
)

// Viewport is the live environment at a decision point.
type Viewport struct {
	Width  float64 // px
	Coarse bool    // touch-like primary pointer
}

// Narrow reports whether the deck presentation applies.
func (v Viewport) Narrow() bool { return v.Width <= NarrowBreakpoint }

// Hint is the full presentation tuple for one card. It is derived state:
// recomputed on every render, never stored anywhere else.
type Hint struct {
	OffsetX float64 // px; negative means off-canvas left
	OffsetY float64 // px
	Scale   float64
	Opacity float64
	Z       int
	Hidden  bool // hide from assistive layers, not just visually
}

// clearedHint is the no-override hint used on wide viewports.
var clearedHint = Hint{Scale: 1, Opacity: 1}

// Bindings reports which input handlers should currently be attached.
type Bindings struct {
	Gestures bool // narrow viewport and coarse pointer
	Keys     bool // narrow viewport
}

// Controller owns the deck state for one fixed card sequence. It is not
// safe for concurrent use; the event loop drives it from a single
// goroutine.
type Controller struct {
	probe     func() Viewport
	cardWidth float64
	n         int

	active int
	hints  []Hint

	pointerDown bool
	startX      float64
	deltaX      float64
	swiped      bool
}

// New builds a controller for a sequence of n cards. probe is consulted
// live at every decision point so viewport changes take effect without any
// explicit notification. cardWidth is the card's nominal width in px, used
// for the off-canvas offset of passed cards.
func New(n int, cardWidth float64, probe func() Viewport) *Controller {
	if n < 0 {
		n = 0
	}
	c := &Controller{
		probe:     probe,
		cardWidth: cardWidth,
		n:         n,
		hints:     make([]Hint, n),
	}
	c.Render()
	return c
}

// Len returns the number of cards.
func (c *Controller) Len() int { return c.n }

// Active returns the current active index. Meaningless when Len() == 0.
func (c *Controller) Active() int { return c.active }

// Dragging reports whether a pointer gesture is in flight.
func (c *Controller) Dragging() bool { return c.pointerDown }

// Hints returns the current presentation hints, one per card. The slice is
// owned by the controller; callers must not mutate it.
func (c *Controller) Hints() []Hint { return c.hints }

// Mode reports the live presentation mode.
func (c *Controller) Mode() Mode {
	if c.probe().Narrow() {
		return ModeDeck
	}
	return ModeFlow
}

// Mode is the presentation decision for the current viewport.
type Mode int

const (
	// ModeFlow leaves cards in native flow layout with no overrides.
	ModeFlow Mode = iota
	// ModeDeck stacks cards behind a single active card.
	ModeDeck
)

// Render recomputes every card's hint from the active index and the live
// viewport. On wide viewports all hints are cleared, which is the native
// layout contract. Deterministic and safe to repeat.
func (c *Controller) Render() {
	if c.n == 0 {
		return
	}
	if !c.probe().Narrow() {
		for i := range c.hints {
			c.hints[i] = clearedHint
		}
		return
	}
	for i := range c.hints {
		c.hints[i] = c.hintAt(i - c.active)
	}
}

// hintAt derives the hint for a card at the given offset from the active
// index.
func (c *Controller) hintAt(offset int) Hint {
	switch {
	case offset < 0:
		return Hint{
			OffsetX: passedXFactor * c.cardWidth,
			Scale:   passedScale,
			Opacity: 0,
			Z:       0,
			Hidden:  true,
		}
	case offset == 0:
		return Hint{Scale: 1, Opacity: 1, Z: activeZ}
	default:
		depth := offset
		if depth > DepthCap {
			depth = DepthCap
		}
		return Hint{
			OffsetX: float64(depth) * depthOffsetX,
			OffsetY: float64(depth) * depthOffsetY,
			Scale:   1 - float64(depth)*depthScaleStep,
			Opacity: math.Max(0, 1-float64(depth)*depthOpacityStep),
			Z:       4 - depth,
		}
	}
}

// GoTo clamps index into range, makes it active and re-renders. Requesting
// an out-of-range index at either end degrades to a snap back: the same
// index re-renders, which also discards any partial drag offset.
func (c *Controller) GoTo(index int) {
	if c.n == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= c.n {
		index = c.n - 1
	}
	c.active = index
	c.Render()
}

// Reconcile recomputes the binding set from the live viewport. It is
// idempotent; callers invoke it on every resize and again after the
// orientation settle delay. Dropping the gesture gate mid-drag cancels the
// gesture so no stale drag offset survives the transition.
func (c *Controller) Reconcile() Bindings {
	vp := c.probe()
	b := Bindings{
		Gestures: vp.Narrow() && vp.Coarse,
		Keys:     vp.Narrow(),
	}
	if !b.Gestures && c.pointerDown {
		c.PointerCancel()
	}
	return b
}
