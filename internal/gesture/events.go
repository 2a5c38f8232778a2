package gesture

import "numberline/pkg/geometry"

// EventType identifies the notifications a Controller emits.
type EventType int

const (
	// EventStateChanged fires after any viewport mutation; consumers use
	// it to schedule a redraw.
	EventStateChanged EventType = iota

	// EventZoomVelocity accompanies every zoom-affecting mutation with
	// the log scale ratio and the focal fraction of the surface width.
	EventZoomVelocity

	// EventTap fires on a short, still contact.
	EventTap

	// EventLongPress fires when a contact is held still past the
	// long-press delay. It suppresses the tap on release.
	EventLongPress

	// EventHover fires on pointer movement while no drag or pinch is
	// active.
	EventHover

	// EventHoverEnd is the sentinel fired when the pointer leaves the
	// surface.
	EventHoverEnd
)

// Event is a single notification from the controller. Which fields are
// meaningful depends on Type: Pos for Tap, LongPress and Hover; LogRatio
// and Focal for ZoomVelocity.
type Event struct {
	Type     EventType
	Pos      geometry.Point2D
	LogRatio float64 // log(newPPU / oldPPU)
	Focal    float64 // zoom focal point as a fraction of width, 0..1
}

// Sink receives every event the controller emits, in order. The
// controller is single-threaded: the sink is always called synchronously
// from the input handler that caused the event.
type Sink func(Event)
