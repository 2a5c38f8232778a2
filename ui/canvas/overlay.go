// Package canvas overlay support: collaborators that draw on top of the
// tick layer using only the read-only viewport snapshot.
package canvas

import (
	"image"
	"image/color"
	"math"

	"numberline/internal/viewport"
)

// Overlay is drawn above the ticks each frame. Implementations consume
// the coordinate transform through the viewport snapshot and never mutate
// state.
type Overlay interface {
	Draw(img *image.RGBA, view viewport.View, width, height float64)
}

// Marker is a labeled number-line value pinned to its position.
type Marker struct {
	Label string
	Value float64
	Color color.RGBA
}

// Markers draws a set of labeled constants on the line.
type Markers struct {
	Items []Marker
}

// DefaultMarkers returns the built-in mathematical constants.
func DefaultMarkers() *Markers {
	return &Markers{Items: []Marker{
		{Label: "pi", Value: math.Pi, Color: color.RGBA{R: 240, G: 160, B: 80, A: 255}},
		{Label: "e", Value: math.E, Color: color.RGBA{R: 120, G: 200, B: 120, A: 255}},
		{Label: "phi", Value: math.Phi, Color: color.RGBA{R: 130, G: 170, B: 240, A: 255}},
		{Label: "sqrt2", Value: math.Sqrt2, Color: color.RGBA{R: 220, G: 120, B: 180, A: 255}},
	}}
}

// Draw renders each visible marker as a colored stem with its label.
func (m *Markers) Draw(img *image.RGBA, view viewport.View, width, height float64) {
	midY := int(height / 2)
	for _, item := range m.Items {
		sx := view.ToScreen(item.Value, width)
		if sx < 0 || sx >= width {
			continue
		}
		x := int(math.Round(sx))
		vertLine(img, x, midY-28, midY-4, item.Color)
		drawText(img, item.Label, x, midY-32, item.Color, true)
	}
}
