// Command tickdump prints the tick set the engine computes for a given
// viewport, for debugging tick density and deduplication.
package main

import (
	"flag"
	"fmt"
	"os"

	"numberline/internal/ticks"
)

func main() {
	center := flag.Float64("center", 0, "Number-line value at the display midpoint")
	ppu := flag.Float64("ppu", 100, "Scale in pixels per unit")
	width := flag.Float64("width", 1000, "Display width in pixels")
	anchorMax := flag.Int("anchor-max", 9, "Anchor class density threshold")
	mediumMax := flag.Int("medium-max", 23, "Medium class density threshold")
	flag.Parse()

	if *ppu <= 0 || *width <= 0 {
		fmt.Fprintln(os.Stderr, "ppu and width must be positive")
		os.Exit(1)
	}

	th := ticks.Thresholds{AnchorMax: *anchorMax, MediumMax: *mediumMax}
	marks := ticks.Compute(*center, *ppu, *width, th)

	fmt.Printf("center=%g ppu=%g width=%g: %d ticks\n", *center, *ppu, *width, len(marks))
	for _, m := range marks {
		fmt.Printf("  %-8s p=%-4d opacity=%.3f value=%.12g\n",
			m.Class, m.Power, m.Opacity, m.Value)
	}
}
