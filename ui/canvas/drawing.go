// Package canvas drawing primitives for the number line.
package canvas

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"numberline/internal/ticks"
	"numberline/internal/viewport"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	backgroundColor = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	axisColor       = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	tickColor       = color.RGBA{R: 170, G: 170, B: 185, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
)

// Tick line half-heights in pixels by density class.
var classHalfHeight = map[ticks.Class]int{
	ticks.ClassAnchor: 18,
	ticks.ClassMedium: 11,
	ticks.ClassFine:   6,
}

// drawBackground fills the image with the background color.
func drawBackground(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, backgroundColor)
		}
	}
}

// drawAxis draws the horizontal number line through the vertical midpoint.
func drawAxis(img *image.RGBA) {
	b := img.Bounds()
	mid := (b.Min.Y + b.Max.Y) / 2
	for x := b.Min.X; x < b.Max.X; x++ {
		img.SetRGBA(x, mid, axisColor)
	}
}

// drawTicks renders the computed tick set: a vertical line per mark with
// height by density class and alpha by the mark's opacity, and a value
// label under each anchor tick.
func drawTicks(img *image.RGBA, marks []ticks.Mark, view viewport.View, width, height float64) {
	midY := int(height / 2)

	for _, m := range marks {
		sx := view.ToScreen(m.Value, width)
		x := int(math.Round(sx))
		if x < 0 || x >= int(width) {
			continue
		}

		half := classHalfHeight[m.Class]
		col := tickColor
		col.A = uint8(math.Round(m.Opacity * 255))
		vertLine(img, x, midY-half, midY+half, col)

		if m.Class == ticks.ClassAnchor {
			drawLabelCentered(img, FormatValue(m.Value, m.Power), x, midY+half+14)
		}
	}
}

// vertLine draws a vertical line with alpha blending against the existing
// pixels.
func vertLine(img *image.RGBA, x, y0, y1 int, col color.RGBA) {
	b := img.Bounds()
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	for y := y0; y <= y1; y++ {
		blendPixel(img, x, y, col)
	}
}

// blendPixel source-over blends col onto the pixel at (x, y).
func blendPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if col.A == 0 {
		return
	}
	if col.A == 255 {
		img.SetRGBA(x, y, col)
		return
	}
	dst := img.RGBAAt(x, y)
	a := float64(col.A) / 255
	inv := 1 - a
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R)*a + float64(dst.R)*inv),
		G: uint8(float64(col.G)*a + float64(dst.G)*inv),
		B: uint8(float64(col.B)*a + float64(dst.B)*inv),
		A: 255,
	})
}

// drawLabelCentered draws text horizontally centered on x with its
// baseline at y.
func drawLabelCentered(img *image.RGBA, text string, x, y int) {
	drawText(img, text, x, y, labelColor, true)
}

// drawText draws a string with the basic bitmap face.
func drawText(img *image.RGBA, text string, x, y int, col color.RGBA, centered bool) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	if centered {
		w := d.MeasureString(text)
		d.Dot.X -= w / 2
	}
	d.DrawString(text)
}

// FormatValue renders a tick value for display. The decimal power picks
// the precision: non-negative powers print whole numbers, negative powers
// print exactly the digits the spacing resolves. Magnitudes too large for
// plain notation switch to scientific form.
func FormatValue(value float64, power int) string {
	if value == 0 {
		return "0"
	}
	if math.Abs(value) >= 1e7 || power <= -7 {
		return strconv.FormatFloat(value, 'e', 2, 64)
	}
	prec := 0
	if power < 0 {
		prec = -power
	}
	return strconv.FormatFloat(value, 'f', prec, 64)
}
