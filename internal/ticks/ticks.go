// Package ticks computes the set of grid lines to draw on the number line
// for a given viewport, deduplicated across decimal scales and weighted
// with opacity so that density transitions fade smoothly.
package ticks

import (
	"math"

	"numberline/internal/viewport"
)

// Class categorizes the tick marks of one decimal power by how many of
// them fall across the visible width.
type Class int

const (
	ClassAnchor Class = iota // sparse, full opacity, labeled
	ClassMedium              // moderate density, full opacity
	ClassFine                // dense, fading out
)

// String returns the class name for debug output.
func (c Class) String() string {
	switch c {
	case ClassAnchor:
		return "anchor"
	case ClassMedium:
		return "medium"
	case ClassFine:
		return "fine"
	}
	return "unknown"
}

// Thresholds controls the density classification boundaries, in ticks per
// screen width.
type Thresholds struct {
	AnchorMax int // fewer than this many ticks: anchor class
	MediumMax int // up to this many ticks: medium class; fine fades beyond
}

// DefaultThresholds are the standard density boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{AnchorMax: 9, MediumMax: 23}
}

// Mark is a single tick to draw. Marks are recomputed from scratch every
// frame and carry no identity across frames.
type Mark struct {
	Value   float64 // number-line value
	Power   int     // decimal power p, spacing = 10^p
	Class   Class
	Opacity float64 // 0..1
}

const (
	// minSpacingPx excludes powers whose ticks would land closer together
	// than this many pixels.
	minSpacingPx = 2.0

	// maxTicksPerWidth drops a power outright if it would emit more ticks
	// than this across the width, regardless of class.
	maxTicksPerWidth = 130.0

	// fadeSpan is the multiple of MediumMax at which fine ticks reach
	// zero opacity.
	fadeSpan = 1.5
)

// Compute returns the ordered, deduplicated tick set for the given
// viewport and surface width. Coarser powers are emitted first; within a
// power, ticks are ordered by increasing value. Degenerate inputs
// (ppu <= 0 or width <= 0) yield an empty set.
//
// A tick index i of power p (value = i * 10^p) is suppressed when i is an
// exact multiple of 10^(p'-p) for a strictly coarser surviving power p',
// since that power already draws a tick at the same screen position. Each
// retained value is computed as index * spacing, never by repeated
// addition, so positions stay exact far from the origin.
func Compute(center, ppu, width float64, th Thresholds) []Mark {
	if ppu <= 0 || width <= 0 {
		return nil
	}

	half := width / 2 / ppu
	lo := center - half
	hi := center + half

	// Finest power: smallest p with 10^p * ppu >= minSpacingPx. The log
	// estimate is corrected in both directions since Log10 can land a
	// hair on the wrong side of an exact power boundary.
	finest := int(math.Ceil(math.Log10(minSpacingPx / ppu)))
	for math.Pow(10, float64(finest))*ppu < minSpacingPx {
		finest++
	}
	for math.Pow(10, float64(finest-1))*ppu >= minSpacingPx {
		finest--
	}

	// Coarsest power: largest p still producing at least one tick
	// spacing across the visible interval.
	coarsest := int(math.Floor(math.Log10(width / ppu)))
	for math.Pow(10, float64(coarsest+1))*ppu <= width {
		coarsest++
	}
	for coarsest > finest && math.Pow(10, float64(coarsest))*ppu > width {
		coarsest--
	}
	if coarsest < finest {
		coarsest = finest
	}

	var marks []Mark
	var survived []int // powers already emitted, coarsest first

	for p := coarsest; p >= finest; p-- {
		spacing := math.Pow(10, float64(p))
		perWidth := width / (spacing * ppu)
		if perWidth > maxTicksPerWidth || spacing*ppu < minSpacingPx {
			continue
		}

		class, opacity := classify(perWidth, th)
		if opacity <= 0 {
			continue
		}

		// Beyond 2^53 the index no longer round-trips through float64 and
		// tick positions would collapse; skip the power.
		if math.Abs(lo/spacing) > 1<<53 || math.Abs(hi/spacing) > 1<<53 {
			continue
		}

		first := int64(math.Ceil(lo / spacing))
		last := int64(math.Floor(hi / spacing))
		for i := first; i <= last; i++ {
			if impliedByCoarser(i, p, survived) {
				continue
			}
			marks = append(marks, Mark{
				Value:   float64(i) * spacing,
				Power:   p,
				Class:   class,
				Opacity: opacity,
			})
		}
		survived = append(survived, p)
	}

	return marks
}

// ComputeView is Compute for a viewport snapshot.
func ComputeView(v viewport.View, width float64, th Thresholds) []Mark {
	return Compute(v.Center, v.PixelsPerUnit, width, th)
}

// classify maps a tick count per width to a density class and opacity.
// Fine ticks fade linearly from 1 at MediumMax to 0 at fadeSpan*MediumMax;
// past that the power is dropped (opacity 0).
func classify(perWidth float64, th Thresholds) (Class, float64) {
	anchorMax := float64(th.AnchorMax)
	mediumMax := float64(th.MediumMax)

	switch {
	case perWidth < anchorMax:
		return ClassAnchor, 1
	case perWidth <= mediumMax:
		return ClassMedium, 1
	default:
		opacity := (fadeSpan*mediumMax - perWidth) / ((fadeSpan - 1) * mediumMax)
		if opacity < 0 {
			opacity = 0
		}
		return ClassFine, opacity
	}
}

// impliedByCoarser reports whether index i at power p lands on a tick
// already drawn by one of the coarser surviving powers.
func impliedByCoarser(i int64, p int, survived []int) bool {
	for _, pc := range survived {
		step := int64(1)
		overflow := false
		for k := 0; k < pc-p; k++ {
			if step > math.MaxInt64/10 {
				overflow = true
				break
			}
			step *= 10
		}
		if overflow {
			// Spacing ratio exceeds the index range; only index 0 can
			// coincide.
			if i == 0 {
				return true
			}
			continue
		}
		if i%step == 0 {
			return true
		}
	}
	return false
}
