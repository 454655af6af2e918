// Package repel arranges circles without overlap by iterative pair repulsion.
//
// Given a set of circles with initial positions, [Relax] repeatedly examines
// every pair and pushes overlapping circles apart until no pair overlaps or
// the iteration budget is exhausted. The distance moved by each circle in a
// repulsion event is proportional to the radius of the other circle, so
// larger circles behave as if they had more inertia.
//
// Optional per-circle weights in [0, 1] scale how far each circle moves; a
// weight of zero pins a circle in place. Optional rectangular bounds confine
// circle centers, either by clamping or by toroidal wrapping across opposite
// edges.
//
// The algorithm is deterministic: pairs are visited in row-major (i, j) order
// with i < j and every positional update is applied in place immediately, so
// later pairs within a pass see fresh positions.
package repel

import (
	"math"

	"github.com/matzehuels/circlepack/pkg/circle"
)

// DefaultMaxIterations is the iteration budget used when Options.MaxIterations
// is unset.
const DefaultMaxIterations = 1000

// Options configures a relaxation run.
type Options struct {
	// Weights holds per-circle movement weights in [0, 1], aligned with the
	// circle slice. A weight of zero makes a circle immovable. Nil means
	// every circle has weight 1.
	Weights []float64

	// Bounds confines circle centers to a rectangle. Nil leaves the circles
	// unconstrained.
	Bounds *circle.Bounds

	// Wrap maps out-of-range ordinates back into [lo, hi) toroidally instead
	// of clamping. Ignored when Bounds is nil.
	Wrap bool

	// MaxIterations caps the number of full pairwise passes.
	// Defaults to [DefaultMaxIterations] when <= 0.
	MaxIterations int
}

// Relax iterates the pair-repulsion algorithm over circles, mutating their
// positions in place, and returns the number of iterations performed. The
// return value equals the iteration budget only if movement persisted through
// every pass; otherwise iteration stopped early at the first pass that moved
// nothing.
//
// Bounds, when set, must describe a non-empty rectangle; an empty or
// inverted rectangle is rejected with an INVALID_INPUT error before any
// circle moves (wrapping over a zero-width interval would never settle).
func Relax(circles []circle.Circle, opts Options) (int, error) {
	if opts.Bounds != nil {
		if err := opts.Bounds.Validate(); err != nil {
			return 0, err
		}
	}

	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	var iter int
	for iter = 0; iter < maxIter; iter++ {
		moved := false
		for i := 0; i < len(circles)-1; i++ {
			for j := i + 1; j < len(circles); j++ {
				if repulse(circles, i, j, opts) {
					moved = true
				}
			}
		}
		if !moved {
			break
		}
	}

	return iter, nil
}

// repulse checks whether circles i and j overlap by more than the tolerance
// and, if so, moves them apart. Reports whether any movement occurred.
func repulse(circles []circle.Circle, i, j int, opts Options) bool {
	wi := weightOf(opts.Weights, i)
	wj := weightOf(opts.Weights, j)

	// Both circles pinned: nothing can move on this pair's account.
	if circle.AlmostZero(wi) && circle.AlmostZero(wj) {
		return false
	}

	dx := circles[j].X - circles[i].X
	dy := circles[j].Y - circles[i].Y
	d := math.Sqrt(dx*dx + dy*dy)
	r := circles[j].Radius + circles[i].Radius

	if !circle.GTZero(r - d) {
		return false
	}

	var p float64
	if circle.AlmostZero(d) {
		// The two centers are coincident or almost so.
		// Arbitrarily move along the x-axis.
		p = 1.0
		dx = r - d
	} else {
		p = (r - d) / d
	}

	// Each circle's movement share is weighted by the other circle's radius.
	mi := wi * circles[j].Radius / r
	mj := wj * circles[i].Radius / r

	circles[j].X = applyBounds(circles[j].X+p*dx*mj, opts, false)
	circles[j].Y = applyBounds(circles[j].Y+p*dy*mj, opts, true)
	circles[i].X = applyBounds(circles[i].X-p*dx*mi, opts, false)
	circles[i].Y = applyBounds(circles[i].Y-p*dy*mi, opts, true)

	return true
}

func weightOf(weights []float64, i int) float64 {
	if weights == nil {
		return 1.0
	}
	return weights[i]
}

func applyBounds(v float64, opts Options, vertical bool) float64 {
	if opts.Bounds == nil {
		return v
	}
	lo, hi := opts.Bounds.XMin, opts.Bounds.XMax
	if vertical {
		lo, hi = opts.Bounds.YMin, opts.Bounds.YMax
	}
	return circle.Ordinate(v, lo, hi, opts.Wrap)
}
