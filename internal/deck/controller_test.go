package deck

import (
	"math"
	"testing"
)

const testCardWidth = 320.0

func narrowCoarse() Viewport { return Viewport{Width: 400, Coarse: true} }
func narrowFine() Viewport   { return Viewport{Width: 400, Coarse: false} }
func wideFine() Viewport     { return Viewport{Width: 1440, Coarse: false} }

func fixed(vp Viewport) func() Viewport { return func() Viewport { return vp } }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestGoToClampsToRange(t *testing.T) {
	c := New(5, testCardWidth, fixed(narrowCoarse()))
	for _, idx := range []int{-3, 0, 2, 99, 4, -1, 5} {
		c.GoTo(idx)
		if c.Active() < 0 || c.Active() >= c.Len() {
			t.Fatalf("GoTo(%d) left active out of range: %d", idx, c.Active())
		}
	}
	c.GoTo(-10)
	if c.Active() != 0 {
		t.Fatalf("expected clamp to first card, got %d", c.Active())
	}
	c.GoTo(10)
	if c.Active() != 4 {
		t.Fatalf("expected clamp to last card, got %d", c.Active())
	}
}

func TestSnapBackIsIdempotent(t *testing.T) {
	c := New(4, testCardWidth, fixed(narrowCoarse()))
	c.GoTo(2)
	first := append([]Hint(nil), c.Hints()...)
	c.GoTo(2)
	c.GoTo(2)
	for i, h := range c.Hints() {
		if h != first[i] {
			t.Fatalf("hint %d changed across repeated GoTo: %+v vs %+v", i, h, first[i])
		}
	}
}

func TestExactlyOneActiveCard(t *testing.T) {
	c := New(6, testCardWidth, fixed(narrowCoarse()))
	for target := 0; target < c.Len(); target++ {
		c.GoTo(target)
		active := 0
		for i, h := range c.Hints() {
			if h.OffsetX == 0 && !h.Hidden && h.Opacity == 1 {
				active++
				if i != target {
					t.Fatalf("active hint at %d, want %d", i, target)
				}
			}
		}
		if active != 1 {
			t.Fatalf("active card count = %d at index %d, want 1", active, target)
		}
	}
}

func TestDepthRampMonotoneAndCapped(t *testing.T) {
	c := New(8, testCardWidth, fixed(narrowCoarse()))
	hints := c.Hints()
	for i := 2; i < len(hints); i++ {
		if hints[i].Scale > hints[i-1].Scale {
			t.Fatalf("scale increased at offset %d: %f > %f", i, hints[i].Scale, hints[i-1].Scale)
		}
		if hints[i].Opacity > hints[i-1].Opacity {
			t.Fatalf("opacity increased at offset %d", i)
		}
	}
	// Everything past the cap shares the depth-3 hint.
	capped := hints[DepthCap]
	for i := DepthCap + 1; i < len(hints); i++ {
		if hints[i] != capped {
			t.Fatalf("hint at offset %d not capped: %+v vs %+v", i, hints[i], capped)
		}
	}
	if !approx(capped.Scale, 1-3*0.06) {
		t.Fatalf("capped scale = %f", capped.Scale)
	}
}

func TestWideRenderClearsHints(t *testing.T) {
	vp := wideFine()
	c := New(5, testCardWidth, func() Viewport { return vp })
	c.Render()
	once := append([]Hint(nil), c.Hints()...)
	c.Render()
	for i, h := range c.Hints() {
		if h != clearedHint {
			t.Fatalf("hint %d not cleared on wide viewport: %+v", i, h)
		}
		if h != once[i] {
			t.Fatalf("wide render not idempotent at %d", i)
		}
	}
}

func TestRenderFollowsLiveViewport(t *testing.T) {
	vp := narrowCoarse()
	c := New(3, testCardWidth, func() Viewport { return vp })
	if c.Mode() != ModeDeck {
		t.Fatalf("expected deck mode on narrow viewport")
	}
	vp = wideFine()
	c.Render()
	if c.Mode() != ModeFlow {
		t.Fatalf("expected flow mode after widening")
	}
	if c.Hints()[0] != clearedHint {
		t.Fatalf("expected cleared hints after widening, got %+v", c.Hints()[0])
	}
}

func TestHintGeometryAtEachOffset(t *testing.T) {
	c := New(5, testCardWidth, fixed(narrowCoarse()))
	c.GoTo(1)
	hints := c.Hints()

	passed := hints[0]
	if !passed.Hidden || passed.Opacity != 0 || !approx(passed.OffsetX, -1.2*testCardWidth) {
		t.Fatalf("passed card hint wrong: %+v", passed)
	}
	if !approx(passed.Scale, 0.9) || passed.Z != 0 {
		t.Fatalf("passed card scale/z wrong: %+v", passed)
	}

	active := hints[1]
	if active.OffsetX != 0 || active.OffsetY != 0 || active.Scale != 1 || active.Opacity != 1 {
		t.Fatalf("active card hint wrong: %+v", active)
	}
	if active.Z <= hints[2].Z {
		t.Fatalf("active z %d must sit above stacked z %d", active.Z, hints[2].Z)
	}

	depth1 := hints[2]
	if !approx(depth1.Scale, 0.94) || !approx(depth1.OffsetX, 14) || !approx(depth1.OffsetY, 12) || !approx(depth1.Opacity, 0.88) {
		t.Fatalf("depth-1 hint wrong: %+v", depth1)
	}
	if depth1.Z != 3 || hints[3].Z != 2 || hints[4].Z != 1 {
		t.Fatalf("stacked z order wrong: %d %d %d", depth1.Z, hints[3].Z, hints[4].Z)
	}
}

func TestEmptyDeckIsInert(t *testing.T) {
	c := New(0, testCardWidth, fixed(narrowCoarse()))
	c.GoTo(3)
	c.Render()
	c.PointerDown(10)
	c.PointerMove(200)
	c.PointerUp()
	c.ArrowRight()
	if c.Len() != 0 || len(c.Hints()) != 0 {
		t.Fatalf("empty deck mutated: len=%d hints=%d", c.Len(), len(c.Hints()))
	}
}

func TestReconcileBindings(t *testing.T) {
	vp := narrowCoarse()
	c := New(3, testCardWidth, func() Viewport { return vp })

	b := c.Reconcile()
	if !b.Gestures || !b.Keys {
		t.Fatalf("narrow+coarse should bind gestures and keys: %+v", b)
	}

	vp = narrowFine()
	b = c.Reconcile()
	if b.Gestures || !b.Keys {
		t.Fatalf("narrow+fine should bind keys only: %+v", b)
	}

	vp = wideFine()
	b = c.Reconcile()
	if b.Gestures || b.Keys {
		t.Fatalf("wide should bind nothing: %+v", b)
	}
}

func TestReconcileCancelsDragWhenGateDrops(t *testing.T) {
	vp := narrowCoarse()
	c := New(3, testCardWidth, func() Viewport { return vp })
	c.PointerDown(100)
	c.PointerMove(130)
	if c.Hints()[0].OffsetX != 30 {
		t.Fatalf("expected partial drag offset, got %f", c.Hints()[0].OffsetX)
	}

	vp = wideFine()
	c.Reconcile()
	if c.Dragging() {
		t.Fatalf("gesture should be cancelled when gate drops")
	}
}
