// Package gesture translates pointer, touch and wheel input into viewport
// mutations and discrete gesture notifications.
//
// The controller is an explicit finite-state machine over the contact
// count: Idle, Dragging (one anchor) or Pinching (two anchors). A value
// pinned under a contact at gesture start stays pinned under that contact
// for the life of the gesture: every frame re-derives the viewport from
// the fixed anchors instead of integrating frame-to-frame deltas, so no
// drift accumulates regardless of event rate.
package gesture

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"numberline/internal/viewport"
	"numberline/pkg/geometry"
)

// Gesture recognition thresholds.
const (
	// TapMaxDuration is the longest press that still counts as a tap.
	TapMaxDuration = 300 * time.Millisecond

	// LongPressDuration is how long a still contact must be held before
	// a long-press fires.
	LongPressDuration = 500 * time.Millisecond

	// TapMaxDistancePx cancels a tap or long-press candidate once the
	// contact moves farther than this from its start.
	TapMaxDistancePx = 10.0

	// WheelZoomBase scales the viewport by WheelZoomBase^(-deltaY) per
	// wheel event.
	WheelZoomBase = 1.001

	// AnchorEpsilon is the pinch-degeneracy threshold: two anchors closer
	// than this on the number line make the zoom equation numerically
	// undetermined, so the pinch falls back to pure translation. Tunable;
	// the value is inherited, not derived.
	AnchorEpsilon = 1e-12
)

type mode int

const (
	modeIdle mode = iota
	modeDragging
	modePinching
)

// tapCandidate tracks whether an in-progress contact still qualifies as a
// tap or long-press.
type tapCandidate struct {
	active    bool
	id        int
	start     geometry.Point2D
	startTime time.Time
	cancelled bool // moved too far, or a second contact joined
	consumed  bool // long-press already fired; tap must not fire on release
}

// Controller owns the viewport state exclusively and mutates it in
// response to input. One instance serves one input surface. All methods
// must be called from a single goroutine; every handler runs synchronously
// to completion.
type Controller struct {
	state *viewport.State
	width float64
	sink  Sink

	mode        mode
	dragID      int
	dragAnchor  float64    // number-line value pinned under the drag contact
	pinchID     [2]int     // contact identifiers of the active pinch
	pinchAnchor [2]float64 // number-line values pinned under each contact

	contacts map[int]geometry.Point2D
	tap      tapCandidate
}

// NewController creates a controller owning the given viewport state.
// width is the surface width in pixels; zero is accepted and input is
// ignored until SetWidth is called with a measured size.
func NewController(state *viewport.State, width float64, sink Sink) *Controller {
	if sink == nil {
		sink = func(Event) {}
	}
	return &Controller{
		state:    state,
		width:    width,
		sink:     sink,
		contacts: make(map[int]geometry.Point2D),
	}
}

// View returns a read-only snapshot of the viewport for renderers and
// overlays.
func (c *Controller) View() viewport.View { return c.state.View() }

// Width returns the current surface width.
func (c *Controller) Width() float64 { return c.width }

// SetWidth records a new surface width. The center value stays fixed at
// the midpoint, so a resize alone does not move the view.
func (c *Controller) SetWidth(width float64) {
	c.width = width
}

// ContactDown begins or extends a gesture with a new contact.
func (c *Controller) ContactDown(id int, x, y float64, now time.Time) {
	if c.width <= 0 {
		return
	}
	pos := geometry.NewPoint2D(x, y)
	c.contacts[id] = pos

	switch len(c.contacts) {
	case 1:
		c.mode = modeDragging
		c.dragID = id
		c.dragAnchor = c.state.View().ToValue(x, c.width)
		c.tap = tapCandidate{active: true, id: id, start: pos, startTime: now}
	case 2:
		// A second contact cancels any pending tap or long-press.
		c.tap.cancelled = true
		other := c.otherContact(id)
		c.beginPinch(other, id)
	default:
		// Third and later contacts do not join the gesture.
	}
}

// ContactMove updates a contact's position and re-derives the viewport
// from the gesture anchors.
func (c *Controller) ContactMove(id int, x, y float64, now time.Time) {
	if c.width <= 0 {
		return
	}
	if _, ok := c.contacts[id]; !ok {
		return
	}
	pos := geometry.NewPoint2D(x, y)
	c.contacts[id] = pos

	if c.tap.active && !c.tap.cancelled && id == c.tap.id &&
		pos.Distance(c.tap.start) > TapMaxDistancePx {
		c.tap.cancelled = true
	}

	switch c.mode {
	case modeDragging:
		if id != c.dragID {
			return
		}
		v := c.state.View()
		center := c.dragAnchor - (x-c.width/2)/v.PixelsPerUnit
		c.state.Set(center, v.PixelsPerUnit)
		c.sink(Event{Type: EventStateChanged})
	case modePinching:
		if id != c.pinchID[0] && id != c.pinchID[1] {
			return
		}
		p0, ok0 := c.contacts[c.pinchID[0]]
		p1, ok1 := c.contacts[c.pinchID[1]]
		if ok0 && ok1 {
			c.solvePinch(p0, p1)
		}
	}
}

// ContactUp removes a contact, firing a tap if one is still pending and
// re-anchoring the surviving contact on a pinch-to-drag transition.
func (c *Controller) ContactUp(id int, x, y float64, now time.Time) {
	pos, ok := c.contacts[id]
	if !ok {
		return
	}
	pos.X, pos.Y = x, y
	delete(c.contacts, id)

	if c.tap.active && id == c.tap.id {
		if !c.tap.cancelled && !c.tap.consumed && now.Sub(c.tap.startTime) < TapMaxDuration {
			c.sink(Event{Type: EventTap, Pos: pos})
		}
		c.tap.active = false
	}

	if len(c.contacts) == 0 {
		c.mode = modeIdle
		return
	}

	// A contact of the active gesture lifted with others remaining: the
	// survivor is re-anchored at its current value so panning continues
	// with no positional jump. Contacts outside the gesture lifting do
	// not disturb it.
	switch c.mode {
	case modePinching:
		var survivor int
		switch id {
		case c.pinchID[0]:
			survivor = c.pinchID[1]
		case c.pinchID[1]:
			survivor = c.pinchID[0]
		default:
			return
		}
		spos, ok := c.contacts[survivor]
		if !ok {
			survivor, spos = c.anyContact()
		}
		c.mode = modeDragging
		c.dragID = survivor
		c.dragAnchor = c.state.View().ToValue(spos.X, c.width)
	case modeDragging:
		if id != c.dragID {
			return
		}
		survivor, spos := c.anyContact()
		c.dragID = survivor
		c.dragAnchor = c.state.View().ToValue(spos.X, c.width)
	}
}

// HoverMove reports pointer movement with no contact down.
func (c *Controller) HoverMove(x, y float64) {
	if c.mode != modeIdle {
		return
	}
	c.sink(Event{Type: EventHover, Pos: geometry.NewPoint2D(x, y)})
}

// Leave reports the pointer leaving the surface.
func (c *Controller) Leave() {
	c.sink(Event{Type: EventHoverEnd})
}

// Wheel applies one wheel step, zooming about the value under the cursor.
// The anchor is momentary: it is re-read from the current state on every
// tick rather than persisted across ticks.
func (c *Controller) Wheel(x, deltaY float64) {
	if c.width <= 0 {
		return
	}
	v := c.state.View()
	anchor := v.ToValue(x, c.width)
	old := v.PixelsPerUnit
	ppu := viewport.ClampPPU(old * math.Pow(WheelZoomBase, -deltaY))
	center := anchor - (x-c.width/2)/ppu
	c.state.Set(center, ppu)
	c.sink(Event{Type: EventStateChanged})
	c.sink(Event{Type: EventZoomVelocity, LogRatio: math.Log(ppu / old), Focal: c.focal(x)})
}

// Poll advances the long-press timer. The input surface calls this when
// the long-press deadline for the current contact may have passed.
func (c *Controller) Poll(now time.Time) {
	if !c.tap.active || c.tap.cancelled || c.tap.consumed {
		return
	}
	if now.Sub(c.tap.startTime) < LongPressDuration {
		return
	}
	pos := c.tap.start
	if cur, ok := c.contacts[c.tap.id]; ok {
		pos = cur
	}
	c.tap.consumed = true
	c.sink(Event{Type: EventLongPress, Pos: pos})
}

// Reset replaces the viewport outright, for actions outside the gesture
// stream such as menu items. Keeps the controller as the sole writer.
func (c *Controller) Reset(center, ppu float64) {
	c.state.Set(center, ppu)
	c.sink(Event{Type: EventStateChanged})
}

// beginPinch records a fresh anchor pair for the two contacts. Called on
// every 1-to-2 contact transition so the pinch starts from the current
// state with no discontinuity.
func (c *Controller) beginPinch(id0, id1 int) {
	v := c.state.View()
	c.mode = modePinching
	c.pinchID = [2]int{id0, id1}
	c.pinchAnchor = [2]float64{
		v.ToValue(c.contacts[id0].X, c.width),
		v.ToValue(c.contacts[id1].X, c.width),
	}
}

// solvePinch solves both anchor equations simultaneously:
//
//	s_k = (n_k - center)*ppu + width/2   for k = 0, 1
//
// Substituting b = width/2 - center*ppu makes the system linear in
// (ppu, b), solved as a 2x2 system. The scale is clamped and the center
// re-derived from the first anchor so that anchor stays exactly pinned.
func (c *Controller) solvePinch(p0, p1 geometry.Point2D) {
	n0, n1 := c.pinchAnchor[0], c.pinchAnchor[1]
	s0, s1 := p0.X, p1.X
	mid := p0.Midpoint(p1)
	v := c.state.View()

	if math.Abs(n0-n1) < AnchorEpsilon {
		// Anchors numerically indistinguishable: zoom is undetermined,
		// translate using the midpoints and hold the scale.
		nMid := (n0 + n1) / 2
		center := nMid - (mid.X-c.width/2)/v.PixelsPerUnit
		c.state.Set(center, v.PixelsPerUnit)
		c.sink(Event{Type: EventStateChanged})
		return
	}

	a := mat.NewDense(2, 2, []float64{n0, 1, n1, 1})
	b := mat.NewVecDense(2, []float64{s0, s1})
	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		// Singular despite the epsilon check; skip the frame.
		return
	}

	old := v.PixelsPerUnit
	ppu := viewport.ClampPPU(sol.AtVec(0))
	center := n0 - (s0-c.width/2)/ppu
	c.state.Set(center, ppu)
	c.sink(Event{Type: EventStateChanged})
	if ppu != old {
		c.sink(Event{
			Type:     EventZoomVelocity,
			LogRatio: math.Log(ppu / old),
			Focal:    c.focal(mid.X),
		})
	}
}

// focal maps a screen X to a zoom focal fraction in [0, 1].
func (c *Controller) focal(x float64) float64 {
	if c.width <= 0 {
		return 0
	}
	f := x / c.width
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// otherContact returns the identifier of the one live contact that is not
// id. Only meaningful with exactly two contacts down.
func (c *Controller) otherContact(id int) int {
	for k := range c.contacts {
		if k != id {
			return k
		}
	}
	return id
}

// anyContact returns an arbitrary live contact. With one contact down it
// is deterministic.
func (c *Controller) anyContact() (int, geometry.Point2D) {
	for k, p := range c.contacts {
		return k, p
	}
	return 0, geometry.Point2D{}
}
