package gesture

import (
	"math"
	"testing"
	"time"

	"numberline/internal/viewport"
)

type recorder struct {
	events []Event
}

func (r *recorder) sink(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) ofType(t EventType) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func newTestController(center, ppu, width float64) (*Controller, *recorder) {
	rec := &recorder{}
	c := NewController(viewport.NewState(center, ppu), width, rec.sink)
	return c, rec
}

var t0 = time.Unix(1000, 0)

func at(ms int64) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestDragAnchorInvariant(t *testing.T) {
	const width = 1000.0
	c, _ := newTestController(0, 100, width)

	startX := 300.0
	c.ContactDown(0, startX, 50, at(0))
	anchor := viewport.ToValue(startX, 0, 100, width)

	// An arbitrary wander, including returns and large excursions. At
	// every step the anchor value must sit exactly under the contact.
	xs := []float64{310, 250, 400, 399.5, 10, 990, 500, 300, 300.0001}
	for i, x := range xs {
		c.ContactMove(0, x, 50, at(int64(i+1)*16))
		v := c.View()
		got := v.ToScreen(anchor, width)
		if math.Abs(got-x) > 1e-9 {
			t.Fatalf("move %d: anchor at screen %g, contact at %g", i, got, x)
		}
	}
}

func TestDragNoDriftUnderManyEvents(t *testing.T) {
	const width = 1000.0
	c, _ := newTestController(5, 200, width)

	c.ContactDown(0, 480, 10, at(0))

	// The state after thousands of oscillating moves must be bit-equal
	// to the state after a single move to the same position: with delta
	// integration the rounding would accumulate, with anchored
	// re-derivation it cannot.
	c.ContactMove(0, 481, 10, at(1))
	c.ContactMove(0, 480, 10, at(2))
	onceAround := c.View()

	for i := 0; i < 10000; i++ {
		x := 480.0 + float64(i%2)
		c.ContactMove(0, x, 10, at(int64(i+3)))
	}
	c.ContactMove(0, 480, 10, at(10004))
	after := c.View()

	if onceAround != after {
		t.Errorf("drift after oscillation: %+v -> %+v", onceAround, after)
	}
}

func TestPinchSolveReproducesContacts(t *testing.T) {
	const width = 1000.0
	c, _ := newTestController(0, 100, width)

	c.ContactDown(0, 400, 50, at(0))
	c.ContactDown(1, 600, 50, at(10))
	n0 := viewport.ToValue(400, 0, 100, width)
	n1 := viewport.ToValue(600, 0, 100, width)

	steps := []struct {
		id int
		x  float64
	}{
		{1, 700}, {0, 350}, {1, 650}, {0, 420}, {1, 680},
	}
	pos := map[int]float64{0: 400, 1: 600}
	for i, s := range steps {
		pos[s.id] = s.x
		c.ContactMove(s.id, s.x, 50, at(int64(20+i*16)))

		v := c.View()
		s0 := v.ToScreen(n0, width)
		s1 := v.ToScreen(n1, width)
		if math.Abs(s0-pos[0]) > 1e-9 || math.Abs(s1-pos[1]) > 1e-9 {
			t.Fatalf("step %d: anchors at %g,%g want %g,%g", i, s0, s1, pos[0], pos[1])
		}
	}
}

func TestPinchDegenerateAnchorsTranslate(t *testing.T) {
	const width = 1000.0
	c, _ := newTestController(0, 100, width)

	// Both contacts on the same pixel: anchors are identical and the
	// zoom equation is undetermined. The gesture must translate using
	// the midpoints and hold the scale.
	c.ContactDown(0, 500, 40, at(0))
	c.ContactDown(1, 500, 60, at(10))

	before := c.View()
	c.ContactMove(0, 550, 40, at(20))
	after := c.View()

	if after.PixelsPerUnit != before.PixelsPerUnit {
		t.Errorf("degenerate pinch changed scale: %g -> %g",
			before.PixelsPerUnit, after.PixelsPerUnit)
	}
	// Midpoint moved from 500 to 525: the line pans by 25px worth.
	wantCenter := before.Center - 25/before.PixelsPerUnit
	if math.Abs(after.Center-wantCenter) > 1e-12 {
		t.Errorf("center = %g, want %g", after.Center, wantCenter)
	}
}

func TestPinchClampsAtMaxZoom(t *testing.T) {
	const width = 1000.0
	c, _ := newTestController(0, 9e13, width)

	c.ContactDown(0, 400, 50, at(0))
	c.ContactDown(1, 600, 50, at(10))

	// Doubling the separation asks for 1.8e14 px/unit; the scale must
	// stop exactly at the bound.
	c.ContactMove(0, 300, 50, at(20))
	c.ContactMove(1, 700, 50, at(30))

	if got := c.View().PixelsPerUnit; got != viewport.MaxPPU {
		t.Errorf("ppu = %g, want clamp at %g", got, viewport.MaxPPU)
	}
}

func TestWheelClampsAtMinZoom(t *testing.T) {
	c, _ := newTestController(0, viewport.MinPPU, 1000)
	c.Wheel(500, 5000)
	if got := c.View().PixelsPerUnit; got != viewport.MinPPU {
		t.Errorf("ppu = %g, want clamp at %g", got, viewport.MinPPU)
	}
}

func TestPinchToDragHandoff(t *testing.T) {
	const width = 1000.0
	c, _ := newTestController(0, 100, width)

	c.ContactDown(0, 400, 50, at(0))
	c.ContactDown(1, 600, 50, at(10))
	c.ContactMove(1, 700, 50, at(20))

	// Lifting one contact must not move anything by itself.
	before := c.View()
	c.ContactUp(1, 700, 50, at(30))
	after := c.View()
	if before != after {
		t.Fatalf("state changed on contact lift: %+v -> %+v", before, after)
	}

	// The survivor is re-anchored where it stands: continued panning
	// tracks it with no jump.
	anchor := after.ToValue(400, width)
	c.ContactMove(0, 430, 50, at(40))
	if got := c.View().ToScreen(anchor, width); math.Abs(got-430) > 1e-9 {
		t.Errorf("survivor anchor at screen %g, contact at 430", got)
	}
}

func TestWheelKeepsCursorValuePinned(t *testing.T) {
	const width = 1000.0
	c, rec := newTestController(3, 100, width)

	cursor := 720.0
	under := c.View().ToValue(cursor, width)
	c.Wheel(cursor, -120)

	v := c.View()
	wantPPU := 100 * math.Pow(WheelZoomBase, 120)
	if math.Abs(v.PixelsPerUnit-wantPPU) > 1e-9 {
		t.Errorf("ppu = %g, want %g", v.PixelsPerUnit, wantPPU)
	}
	if got := v.ToScreen(under, width); math.Abs(got-cursor) > 1e-9 {
		t.Errorf("value under cursor moved to %g", got)
	}

	zooms := rec.ofType(EventZoomVelocity)
	if len(zooms) != 1 {
		t.Fatalf("want 1 zoom velocity event, got %d", len(zooms))
	}
	if got := zooms[0].LogRatio; math.Abs(got-math.Log(wantPPU/100)) > 1e-12 {
		t.Errorf("log ratio = %g", got)
	}
	if got := zooms[0].Focal; math.Abs(got-0.72) > 1e-12 {
		t.Errorf("focal = %g, want 0.72", got)
	}
}

func TestTapFires(t *testing.T) {
	c, rec := newTestController(0, 100, 1000)

	c.ContactDown(0, 200, 80, at(0))
	c.ContactUp(0, 200, 80, at(50))

	if taps := rec.ofType(EventTap); len(taps) != 1 {
		t.Fatalf("want 1 tap, got %d", len(taps))
	} else if taps[0].Pos.X != 200 || taps[0].Pos.Y != 80 {
		t.Errorf("tap at %+v", taps[0].Pos)
	}
	if lp := rec.ofType(EventLongPress); len(lp) != 0 {
		t.Errorf("unexpected long press")
	}
}

func TestLongPressFires(t *testing.T) {
	c, rec := newTestController(0, 100, 1000)

	c.ContactDown(0, 300, 90, at(0))
	c.Poll(at(600))
	c.ContactUp(0, 300, 90, at(650))

	if lp := rec.ofType(EventLongPress); len(lp) != 1 {
		t.Fatalf("want 1 long press, got %d", len(lp))
	}
	if taps := rec.ofType(EventTap); len(taps) != 0 {
		t.Errorf("tap fired after long press")
	}
}

func TestMovementCancelsTapAndLongPress(t *testing.T) {
	c, rec := newTestController(0, 100, 1000)

	c.ContactDown(0, 300, 90, at(0))
	c.ContactMove(0, 320, 90, at(60)) // 20px exceeds the 10px threshold
	c.Poll(at(600))
	c.ContactUp(0, 320, 90, at(100))

	if n := len(rec.ofType(EventTap)) + len(rec.ofType(EventLongPress)); n != 0 {
		t.Errorf("gesture fired after movement: %d events", n)
	}
}

func TestSmallMovementKeepsTap(t *testing.T) {
	c, rec := newTestController(0, 100, 1000)

	c.ContactDown(0, 300, 90, at(0))
	c.ContactMove(0, 305, 93, at(30)) // under the 10px threshold
	c.ContactUp(0, 305, 93, at(80))

	if taps := rec.ofType(EventTap); len(taps) != 1 {
		t.Errorf("want 1 tap, got %d", len(taps))
	}
}

func TestSlowReleaseFiresNothing(t *testing.T) {
	c, rec := newTestController(0, 100, 1000)

	// Released after the tap window but before the long-press delay.
	c.ContactDown(0, 300, 90, at(0))
	c.Poll(at(400))
	c.ContactUp(0, 300, 90, at(400))

	if n := len(rec.ofType(EventTap)) + len(rec.ofType(EventLongPress)); n != 0 {
		t.Errorf("want no gesture, got %d events", n)
	}
}

func TestSecondContactCancelsTap(t *testing.T) {
	c, rec := newTestController(0, 100, 1000)

	c.ContactDown(0, 300, 90, at(0))
	c.ContactDown(1, 400, 90, at(20))
	c.ContactUp(0, 300, 90, at(50))
	c.ContactUp(1, 400, 90, at(60))

	if taps := rec.ofType(EventTap); len(taps) != 0 {
		t.Errorf("tap fired during pinch")
	}
}

func TestHover(t *testing.T) {
	c, rec := newTestController(0, 100, 1000)

	c.HoverMove(100, 50)
	c.HoverMove(120, 55)
	if n := len(rec.ofType(EventHover)); n != 2 {
		t.Fatalf("want 2 hover events, got %d", n)
	}

	// No hover while a drag is active.
	c.ContactDown(0, 200, 50, at(0))
	c.HoverMove(210, 50)
	if n := len(rec.ofType(EventHover)); n != 2 {
		t.Errorf("hover fired during drag")
	}
	c.ContactUp(0, 200, 50, at(30))

	c.Leave()
	if n := len(rec.ofType(EventHoverEnd)); n != 1 {
		t.Errorf("want 1 hover-end, got %d", n)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	run := func() (viewport.View, []Event) {
		c, rec := newTestController(2, 300, 1000)
		c.ContactDown(0, 100, 10, at(0))
		c.ContactMove(0, 150, 12, at(20))
		c.ContactDown(1, 600, 14, at(40))
		c.ContactMove(1, 640, 15, at(60))
		c.ContactMove(0, 130, 16, at(80))
		c.ContactUp(0, 130, 16, at(100))
		c.ContactMove(1, 700, 18, at(120))
		c.ContactUp(1, 700, 18, at(140))
		c.Wheel(500, 240)
		return c.View(), rec.events
	}

	v1, e1 := run()
	v2, e2 := run()

	if v1 != v2 {
		t.Errorf("final states differ: %+v vs %+v", v1, v2)
	}
	if len(e1) != len(e2) {
		t.Fatalf("event counts differ: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Errorf("event %d differs: %+v vs %+v", i, e1[i], e2[i])
		}
	}
}

func TestUnmeasuredSurfaceIgnoresInput(t *testing.T) {
	c, rec := newTestController(0, 100, 0)

	before := c.View()
	c.ContactDown(0, 100, 10, at(0))
	c.ContactMove(0, 200, 10, at(20))
	c.Wheel(100, -120)
	after := c.View()

	if before != after {
		t.Errorf("state mutated with zero width: %+v -> %+v", before, after)
	}
	if len(rec.ofType(EventStateChanged)) != 0 {
		t.Errorf("state change emitted with zero width")
	}
}

func TestResetEmitsStateChanged(t *testing.T) {
	c, rec := newTestController(50, 7, 1000)
	c.Reset(0, 100)

	v := c.View()
	if v.Center != 0 || v.PixelsPerUnit != 100 {
		t.Errorf("reset state = %+v", v)
	}
	if len(rec.ofType(EventStateChanged)) != 1 {
		t.Errorf("want 1 state-changed event")
	}
}
