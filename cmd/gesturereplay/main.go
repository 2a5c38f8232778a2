// Command gesturereplay feeds a JSON event trace through a fresh gesture
// controller and prints the emitted events and final viewport state.
// Replaying the same trace always produces the same output, which makes
// this useful both for debugging gesture handling and for demonstrating
// that the controller is deterministic.
//
// Trace format: a JSON array of steps, e.g.
//
//	[
//	  {"kind": "down", "id": 0, "x": 300, "y": 80, "t": 0},
//	  {"kind": "move", "id": 0, "x": 340, "y": 80, "t": 50},
//	  {"kind": "up",   "id": 0, "x": 340, "y": 80, "t": 90},
//	  {"kind": "wheel", "x": 500, "delta": 120}
//	]
//
// Times are milliseconds from trace start.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"numberline/internal/gesture"
	"numberline/internal/viewport"
)

type step struct {
	Kind  string  `json:"kind"` // down, move, up, wheel, hover, leave, poll
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	T     int64   `json:"t"` // milliseconds from trace start
	Delta float64 `json:"delta"`
}

func main() {
	tracePath := flag.String("trace", "", "Path to JSON event trace")
	center := flag.Float64("center", 0, "Initial center")
	ppu := flag.Float64("ppu", 100, "Initial scale in pixels per unit")
	width := flag.Float64("width", 1000, "Display width in pixels")
	flag.Parse()

	if *tracePath == "" {
		fmt.Println("Usage: gesturereplay -trace <path> [-center 0] [-ppu 100] [-width 1000]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read trace: %v\n", err)
		os.Exit(1)
	}

	var steps []step
	if err := json.Unmarshal(data, &steps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse trace: %v\n", err)
		os.Exit(1)
	}

	state := viewport.NewState(*center, *ppu)
	ctrl := gesture.NewController(state, *width, printEvent)

	epoch := time.Unix(0, 0)
	for i, s := range steps {
		at := epoch.Add(time.Duration(s.T) * time.Millisecond)
		switch s.Kind {
		case "down":
			ctrl.ContactDown(s.ID, s.X, s.Y, at)
		case "move":
			ctrl.ContactMove(s.ID, s.X, s.Y, at)
		case "up":
			ctrl.ContactUp(s.ID, s.X, s.Y, at)
		case "wheel":
			ctrl.Wheel(s.X, s.Delta)
		case "hover":
			ctrl.HoverMove(s.X, s.Y)
		case "leave":
			ctrl.Leave()
		case "poll":
			ctrl.Poll(at)
		default:
			fmt.Fprintf(os.Stderr, "step %d: unknown kind %q\n", i, s.Kind)
			os.Exit(1)
		}
	}

	view := ctrl.View()
	fmt.Printf("final: center=%.12g ppu=%.12g\n", view.Center, view.PixelsPerUnit)
}

func printEvent(ev gesture.Event) {
	switch ev.Type {
	case gesture.EventStateChanged:
		fmt.Println("event: state-changed")
	case gesture.EventZoomVelocity:
		fmt.Printf("event: zoom-velocity log-ratio=%.6g focal=%.3f\n", ev.LogRatio, ev.Focal)
	case gesture.EventTap:
		fmt.Printf("event: tap %.1f,%.1f\n", ev.Pos.X, ev.Pos.Y)
	case gesture.EventLongPress:
		fmt.Printf("event: long-press %.1f,%.1f\n", ev.Pos.X, ev.Pos.Y)
	case gesture.EventHover:
		fmt.Printf("event: hover %.1f,%.1f\n", ev.Pos.X, ev.Pos.Y)
	case gesture.EventHoverEnd:
		fmt.Println("event: hover-end")
	}
}
