// Package viewport provides the mapping between the real number line and
// screen coordinates, and the mutable view state that drives it.
package viewport

// Zoom bounds. PixelsPerUnit is clamped to this range after every mutation,
// covering seventeen orders of magnitude of scale.
const (
	MinPPU = 1e-3
	MaxPPU = 1e14
)

// ToScreen maps a number-line value to a screen X coordinate.
func ToScreen(value, center, ppu, width float64) float64 {
	return (value-center)*ppu + width/2
}

// ToValue maps a screen X coordinate back to a number-line value.
// Exact inverse of ToScreen up to floating-point rounding for any ppu > 0.
func ToValue(screenX, center, ppu, width float64) float64 {
	return (screenX-width/2)/ppu + center
}

// ClampPPU restricts a scale factor to the supported zoom range.
func ClampPPU(ppu float64) float64 {
	if ppu < MinPPU {
		return MinPPU
	}
	if ppu > MaxPPU {
		return MaxPPU
	}
	return ppu
}

// View is a read-only snapshot of the viewport. Components other than the
// gesture controller receive Views, never the *State itself, so the
// single-writer invariant is enforced by the type system rather than by
// convention.
type View struct {
	Center        float64
	PixelsPerUnit float64
}

// ToScreen maps a number-line value to a screen X coordinate for a surface
// of the given width.
func (v View) ToScreen(value, width float64) float64 {
	return ToScreen(value, v.Center, v.PixelsPerUnit, width)
}

// ToValue maps a screen X coordinate to a number-line value for a surface
// of the given width.
func (v View) ToValue(screenX, width float64) float64 {
	return ToValue(screenX, v.Center, v.PixelsPerUnit, width)
}

// State is the mutable viewport record: the number-line value at the
// horizontal midpoint of the display and the scale in pixels per unit.
// It is created once at startup and mutated only by the gesture controller.
type State struct {
	center        float64
	pixelsPerUnit float64
}

// NewState creates a viewport centered on the given value at the given
// scale. The scale is clamped to the supported range.
func NewState(center, ppu float64) *State {
	return &State{center: center, pixelsPerUnit: ClampPPU(ppu)}
}

// View returns a read-only snapshot of the current state.
func (s *State) View() View {
	return View{Center: s.center, PixelsPerUnit: s.pixelsPerUnit}
}

// Center returns the number-line value at the display midpoint.
func (s *State) Center() float64 { return s.center }

// PixelsPerUnit returns the current scale factor.
func (s *State) PixelsPerUnit() float64 { return s.pixelsPerUnit }

// Set replaces the viewport state, clamping the scale to the supported
// range. Only the gesture controller may hold a *State.
func (s *State) Set(center, ppu float64) {
	s.center = center
	s.pixelsPerUnit = ClampPPU(ppu)
}
