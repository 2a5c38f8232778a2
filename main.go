// Package main provides the entry point for the Number Line Explorer
// application.
package main

import (
	"log"

	fyneapp "fyne.io/fyne/v2/app"

	"numberline/internal/app"
	"numberline/internal/version"
	"numberline/ui/mainwindow"
	"numberline/ui/prefs"
)

const appTitle = "Number Line Explorer"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("org.numberline.explorer")

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.ShowAndRun()
}
