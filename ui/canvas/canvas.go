// Package canvas provides the number-line display surface with pan, zoom,
// and gesture input.
package canvas

import (
	"image"
	"time"

	"numberline/internal/app"
	"numberline/internal/gesture"
	"numberline/internal/ticks"
	"numberline/internal/viewport"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// frameInterval approximates one animation frame for redraw coalescing.
const frameInterval = 16 * time.Millisecond

// mouseContactID is the contact identifier used for the desktop pointer.
// Touch contacts on platforms that report several share the same stream.
const mouseContactID = 0

// LineCanvas renders the number line and feeds its input events to the
// gesture controller. It is the only component holding the writable
// viewport; everyone else sees read-only snapshots.
type LineCanvas struct {
	widget.BaseWidget

	state      *app.State
	controller *gesture.Controller
	raster     *fynecanvas.Raster
	scheduler  *app.RedrawScheduler

	overlays []Overlay

	pressAnim *fyne.Animation

	// onEvent, when set, receives every gesture event after internal
	// handling (status bar, demo crossfade logic).
	onEvent func(gesture.Event)
}

// NewLineCanvas creates the display surface. The canvas owns the gesture
// controller and, through it, the viewport state.
func NewLineCanvas(state *app.State, vp *viewport.State) *LineCanvas {
	lc := &LineCanvas{state: state}

	lc.controller = gesture.NewController(vp, 0, lc.handleEvent)
	lc.raster = fynecanvas.NewRaster(lc.draw)
	lc.raster.ScaleMode = fynecanvas.ImageScalePixels
	lc.scheduler = app.NewRedrawScheduler(lc.scheduleFrame, lc.raster.Refresh)

	state.On(app.EventThresholdsChanged, func(interface{}) { lc.scheduler.Request() })
	state.On(app.EventMarkersToggled, func(interface{}) { lc.scheduler.Request() })

	lc.ExtendBaseWidget(lc)
	return lc
}

// View returns a read-only snapshot of the viewport.
func (lc *LineCanvas) View() viewport.View {
	return lc.controller.View()
}

// AddOverlay appends an overlay drawn on top of the tick layer.
func (lc *LineCanvas) AddOverlay(o Overlay) {
	lc.overlays = append(lc.overlays, o)
	lc.scheduler.Request()
}

// OnEvent sets a hook receiving every gesture event after the canvas has
// handled it.
func (lc *LineCanvas) OnEvent(hook func(gesture.Event)) {
	lc.onEvent = hook
}

// ResetView recenters the line on zero at the default scale.
func (lc *LineCanvas) ResetView() {
	lc.controller.Reset(0, 100)
}

// ZoomIn zooms in one step about the display midpoint.
func (lc *LineCanvas) ZoomIn() {
	lc.controller.Wheel(lc.controller.Width()/2, -250)
}

// ZoomOut zooms out one step about the display midpoint.
func (lc *LineCanvas) ZoomOut() {
	lc.controller.Wheel(lc.controller.Width()/2, 250)
}

// handleEvent is the controller's event sink.
func (lc *LineCanvas) handleEvent(ev gesture.Event) {
	if ev.Type == gesture.EventStateChanged {
		lc.scheduler.Request()
		lc.state.Emit(app.EventViewportChanged, lc.controller.View())
	}
	if lc.onEvent != nil {
		lc.onEvent(ev)
	}
}

// scheduleFrame defers a callback to the next animation frame using the
// Fyne animation driver, keeping it on the event thread.
func (lc *LineCanvas) scheduleFrame(f func()) {
	done := false
	anim := fyne.NewAnimation(frameInterval, func(p float32) {
		if p >= 1 && !done {
			done = true
			f()
		}
	})
	anim.Start()
}

// draw is the raster generator.
func (lc *LineCanvas) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}

	view := lc.controller.View()
	width := float64(w)
	// The raster generator is handed device pixels while gesture input
	// arrives in Fyne logical units. Scaling the pixels-per-unit keeps
	// the drawn line aligned with the gesture-side transform on HiDPI
	// displays where the two widths differ.
	if lw := lc.controller.Width(); lw > 0 {
		view.PixelsPerUnit *= width / lw
	}
	marks := ticks.ComputeView(view, width, lc.state.Thresholds())

	drawBackground(img)
	drawAxis(img)
	drawTicks(img, marks, view, width, float64(h))

	if lc.state.ShowMarkers() {
		for _, o := range lc.overlays {
			o.Draw(img, view, width, float64(h))
		}
	}
	return img
}

// Resize records the new surface width with the controller.
func (lc *LineCanvas) Resize(size fyne.Size) {
	lc.BaseWidget.Resize(size)
	lc.controller.SetWidth(float64(size.Width))
}

// MouseDown begins a contact and arms the long-press timer.
func (lc *LineCanvas) MouseDown(ev *desktop.MouseEvent) {
	lc.contactDown(float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseUp ends the contact.
func (lc *LineCanvas) MouseUp(ev *desktop.MouseEvent) {
	lc.contactUp(float64(ev.Position.X), float64(ev.Position.Y))
}

// Dragged feeds drag movement to the controller.
func (lc *LineCanvas) Dragged(ev *fyne.DragEvent) {
	lc.controller.ContactMove(mouseContactID,
		float64(ev.Position.X), float64(ev.Position.Y), time.Now())
}

// DragEnd is required by fyne.Draggable; the contact ends on MouseUp.
func (lc *LineCanvas) DragEnd() {}

// MouseIn implements desktop.Hoverable.
func (lc *LineCanvas) MouseIn(ev *desktop.MouseEvent) {
	lc.controller.HoverMove(float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseMoved implements desktop.Hoverable.
func (lc *LineCanvas) MouseMoved(ev *desktop.MouseEvent) {
	lc.controller.HoverMove(float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseOut implements desktop.Hoverable.
func (lc *LineCanvas) MouseOut() {
	lc.controller.Leave()
}

// Scrolled zooms about the cursor. Fyne reports wheel-up as positive DY;
// the controller expects browser-style deltas where positive means away.
func (lc *LineCanvas) Scrolled(ev *fyne.ScrollEvent) {
	lc.controller.Wheel(float64(ev.Position.X), float64(-ev.Scrolled.DY))
}

// TouchDown implements mobile.Touchable.
func (lc *LineCanvas) TouchDown(ev *mobile.TouchEvent) {
	lc.contactDown(float64(ev.Position.X), float64(ev.Position.Y))
}

// TouchUp implements mobile.Touchable.
func (lc *LineCanvas) TouchUp(ev *mobile.TouchEvent) {
	lc.contactUp(float64(ev.Position.X), float64(ev.Position.Y))
}

// TouchCancel implements mobile.Touchable.
func (lc *LineCanvas) TouchCancel(ev *mobile.TouchEvent) {
	lc.contactUp(float64(ev.Position.X), float64(ev.Position.Y))
}

func (lc *LineCanvas) contactDown(x, y float64) {
	lc.controller.ContactDown(mouseContactID, x, y, time.Now())

	if lc.pressAnim != nil {
		lc.pressAnim.Stop()
	}
	// Drive the long-press poll on the animation thread so the controller
	// stays single-threaded.
	fired := false
	lc.pressAnim = fyne.NewAnimation(gesture.LongPressDuration, func(p float32) {
		if p >= 1 && !fired {
			fired = true
			lc.controller.Poll(time.Now())
		}
	})
	lc.pressAnim.Start()
}

func (lc *LineCanvas) contactUp(x, y float64) {
	if lc.pressAnim != nil {
		lc.pressAnim.Stop()
		lc.pressAnim = nil
	}
	lc.controller.ContactUp(mouseContactID, x, y, time.Now())
}

// CreateRenderer implements fyne.Widget.
func (lc *LineCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &lineCanvasRenderer{canvas: lc}
}

type lineCanvasRenderer struct {
	canvas *LineCanvas
}

func (r *lineCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *lineCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 160)
}

func (r *lineCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *lineCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *lineCanvasRenderer) Destroy() {}
