// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"

	"numberline/internal/app"
	"numberline/internal/gesture"
	"numberline/internal/ticks"
	"numberline/internal/version"
	"numberline/internal/viewport"
	"numberline/ui/canvas"
	"numberline/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	canvas *canvas.LineCanvas

	statusBar   *widget.Label
	gestureInfo *widget.Label

	markersItem *fyne.MenuItem
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Number Line Explorer")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.applyPreferences()
	mw.setupUI()
	mw.setupMenus()

	win.Resize(fyne.NewSize(960, 360))
	win.SetCloseIntercept(func() {
		mw.SavePreferences()
		win.Close()
	})
	return mw
}

// Canvas returns the number-line canvas.
func (mw *MainWindow) Canvas() *canvas.LineCanvas {
	return mw.canvas
}

// applyPreferences copies persisted settings into the application state.
// The viewport itself is never persisted; every session starts at the
// origin.
func (mw *MainWindow) applyPreferences() {
	defaults := ticks.DefaultThresholds()
	mw.state.SetThresholds(ticks.Thresholds{
		AnchorMax: mw.prefs.Int(prefs.KeyAnchorMax, defaults.AnchorMax),
		MediumMax: mw.prefs.Int(prefs.KeyMediumMax, defaults.MediumMax),
	})
	mw.state.SetShowMarkers(mw.prefs.Bool(prefs.KeyShowMarkers, true))
}

// SavePreferences persists the current settings.
func (mw *MainWindow) SavePreferences() {
	th := mw.state.Thresholds()
	mw.prefs.Set(prefs.KeyAnchorMax, th.AnchorMax)
	mw.prefs.Set(prefs.KeyMediumMax, th.MediumMax)
	mw.prefs.Set(prefs.KeyShowMarkers, mw.state.ShowMarkers())
	if err := mw.prefs.Save(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) setupUI() {
	vp := viewport.NewState(0, 100)
	mw.canvas = canvas.NewLineCanvas(mw.state, vp)
	mw.canvas.AddOverlay(canvas.DefaultMarkers())

	mw.statusBar = widget.NewLabel("center 0  scale 100 px/unit")
	mw.gestureInfo = widget.NewLabel("")

	mw.state.On(app.EventViewportChanged, func(data interface{}) {
		if view, ok := data.(viewport.View); ok {
			mw.statusBar.SetText(fmt.Sprintf("center %.6g  scale %.4g px/unit",
				view.Center, view.PixelsPerUnit))
		}
	})

	mw.canvas.OnEvent(func(ev gesture.Event) {
		switch ev.Type {
		case gesture.EventTap:
			mw.gestureInfo.SetText(fmt.Sprintf("tap at %.0f, %.0f", ev.Pos.X, ev.Pos.Y))
		case gesture.EventLongPress:
			mw.gestureInfo.SetText(fmt.Sprintf("long press at %.0f, %.0f", ev.Pos.X, ev.Pos.Y))
		case gesture.EventHoverEnd:
			mw.gestureInfo.SetText("")
		}
	})

	status := container.NewBorder(nil, nil, nil, mw.gestureInfo, mw.statusBar)
	mw.SetContent(container.NewBorder(nil, status, nil, nil, mw.canvas))
}

func (mw *MainWindow) setupMenus() {
	resetItem := fyne.NewMenuItem("Reset View", mw.canvas.ResetView)
	zoomInItem := fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn)
	zoomOutItem := fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut)

	mw.markersItem = fyne.NewMenuItem("Show Constants", nil)
	mw.markersItem.Checked = mw.state.ShowMarkers()
	mw.markersItem.Action = func() {
		show := !mw.state.ShowMarkers()
		mw.state.SetShowMarkers(show)
		mw.markersItem.Checked = show
	}

	viewMenu := fyne.NewMenu("View", resetItem, zoomInItem, zoomOutItem,
		fyne.NewMenuItemSeparator(), mw.markersItem)

	aboutItem := fyne.NewMenuItem("About", func() {
		dialog.ShowInformation("Number Line Explorer",
			fmt.Sprintf("Version %s\nCommit %s", version.Version, version.GitCommit),
			mw.Window)
	})
	helpMenu := fyne.NewMenu("Help", aboutItem)

	mw.SetMainMenu(fyne.NewMainMenu(viewMenu, helpMenu))
}
