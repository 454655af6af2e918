// Package circle provides the shared geometry types for circle packing:
// circles, rectangular bounds, and the numeric tolerance helpers used by
// all packing engines.
//
// A [Circle] is a center point plus a radius. Circle sets are plain slices
// where the index is the circle's identity - all engines preserve input
// order in their outputs and never sort.
//
// Bounds handling supports two modes: clamping (coordinates are truncated
// to the range) and toroidal wrapping (coordinates are mapped back into
// [lo, hi) by repeatedly adding or subtracting the range width). See
// [Ordinate].
package circle

import (
	"math"

	"github.com/matzehuels/circlepack/pkg/errors"
)

// Tolerance is the threshold below which a value is treated as zero.
// It is shared by the repulsion and tangency engines; the progressive
// layouter uses its own intersection tolerance (see pkg/pack/progressive).
const Tolerance = 1e-5

// Circle is a circle in the plane, identified by its center and radius.
type Circle struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Radius float64 `json:"radius" bson:"radius"`
}

// Dist returns the Euclidean distance between the centers of c and o.
func (c Circle) Dist(o Circle) float64 {
	return math.Hypot(o.X-c.X, o.Y-c.Y)
}

// Overlaps reports whether c and o overlap geometrically, using tolerance
// as a multiplier on the squared sum of radii. A tolerance of 1 tests
// exact overlap; values below 1 permit slight overlaps and values above 1
// demand extra clearance.
func (c Circle) Overlaps(o Circle, tolerance float64) bool {
	dx := c.X - o.X
	dy := c.Y - o.Y
	rsum := c.Radius + o.Radius
	return dx*dx+dy*dy < rsum*rsum*tolerance
}

// Bounds is an optional rectangular constraint on circle centers.
type Bounds struct {
	XMin float64 `json:"xmin" bson:"xmin"`
	XMax float64 `json:"xmax" bson:"xmax"`
	YMin float64 `json:"ymin" bson:"ymin"`
	YMax float64 `json:"ymax" bson:"ymax"`
}

// Validate rejects empty and inverted rectangles. A degenerate rectangle
// makes clamping pointless and wrapping impossible (the wrap interval
// [lo, hi) has no width), so both axes must have positive extent.
func (b Bounds) Validate() error {
	if b.XMin >= b.XMax || b.YMin >= b.YMax {
		return errors.New(errors.ErrCodeInvalidInput,
			"bounds rectangle is empty: [%g, %g] x [%g, %g]", b.XMin, b.XMax, b.YMin, b.YMax)
	}
	return nil
}

// AlmostZero reports whether x is within [Tolerance] of zero.
func AlmostZero(x float64) bool {
	return math.Abs(x) < Tolerance
}

// GTZero reports whether x is positive by more than [Tolerance].
func GTZero(x float64) bool {
	return !AlmostZero(x) && x > 0
}

// Ordinate adjusts an X or Y ordinate to the range [lo, hi] by either
// wrapping (if wrap is true) or clamping.
func Ordinate(x, lo, hi float64, wrap bool) float64 {
	if wrap {
		return WrapOrdinate(x, lo, hi)
	}
	return math.Max(lo, math.Min(hi, x))
}

// WrapOrdinate maps an X or Y ordinate to the toroidal interval [lo, hi).
// The upper bound is exclusive so a wrapped coordinate is never pinned to
// the boundary itself.
func WrapOrdinate(x, lo, hi float64) float64 {
	w := hi - lo
	for x < lo {
		x += w
	}
	for x >= hi {
		x -= w
	}
	return x
}
