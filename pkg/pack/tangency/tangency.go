// Package tangency solves circle packings from tangency graphs using the
// algorithm of Collins & Stephenson:
//
//	Charles R. Collins & Kenneth Stephenson (2003) A circle packing algorithm.
//	Computational Geometry Theory and Applications 25: 233-256.
//
// The input is a planar tangency graph given as two disjoint integer-keyed
// maps: internal circles map to their neighbor cycle (neighbors listed in
// consistent cyclic order), external circles map to a fixed radius. The
// solver finds radii for the internal circles so that the tangency angles
// around each internal circle sum to 2π, then places every circle so that
// neighboring circles are externally tangent.
//
// Radii of internal circles are solved for; external radii are fixed inputs
// and must be positive.
package tangency

import (
	"math"
	"math/cmplx"
	"slices"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/errors"
)

// ratioTolerance bounds the largest radius ratio-deviation accepted as
// converged by the radius relaxation loop.
const ratioTolerance = 1.0 + 1e-8

// Placement is a solved circle: its center and final radius.
type Placement struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Radius float64 `json:"radius" bson:"radius"`
}

// Pack finds a circle packing for the given configuration of internal and
// external circles. The returned map has an entry for every id in either
// input map.
//
// Pack returns an error when an id appears in both maps, when an external
// radius is not positive, when a neighbor cycle references an unknown id or
// is shorter than three entries, or when the graph is disconnected (some ids
// cannot be reached from the placement seeds).
func Pack(internal map[int][]int, external map[int]float64) (map[int]Placement, error) {
	if len(internal) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "tangency graph has no internal circles")
	}

	for id, r := range external {
		if !circle.GTZero(r) {
			return nil, errors.New(errors.ErrCodeInvalidRadius, "external radius for id %d must be positive, got %g", id, r)
		}
	}

	// Internal ids are visited in sorted order so relaxation sweeps and the
	// placement seed are deterministic.
	ids := make([]int, 0, len(internal))
	for id := range internal {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	radii := make(map[int]float64, len(internal)+len(external))
	for id, r := range external {
		radii[id] = r
	}
	for _, id := range ids {
		if _, dup := external[id]; dup {
			return nil, errors.New(errors.ErrCodeIDCollision, "id found in both internal and external maps: %d", id)
		}
		radii[id] = 1.0
	}

	for _, id := range ids {
		cycle := internal[id]
		if len(cycle) < 3 {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "neighbor cycle for id %d has %d entries, need at least 3", id, len(cycle))
		}
		for _, nbr := range cycle {
			if _, ok := radii[nbr]; !ok {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "neighbor id %d of circle %d is not defined", nbr, id)
			}
		}
	}

	solveRadii(radii, internal, ids)

	placements, err := placeAll(radii, internal, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[int]Placement, len(radii))
	for id, r := range radii {
		p := placements[id]
		out[id] = Placement{X: real(p), Y: imag(p), Radius: r}
	}
	return out, nil
}

// solveRadii iterates the radius relaxation until the largest ratio-deviation
// across a full sweep drops below the tolerance. Updates are applied in place
// so later circles in the same sweep see fresh radii.
func solveRadii(radii map[int]float64, internal map[int][]int, ids []int) {
	lastChange := ratioTolerance + 1
	for lastChange > ratioTolerance {
		lastChange = 1.0
		for _, k := range ids {
			cycle := internal[k]
			n := float64(len(cycle))

			theta := flower(radii, k, cycle)
			hat := radii[k] / (1/math.Sin(theta/(2*n)) - 1)
			newrad := hat * (1/math.Sin(math.Pi/n) - 1)

			kc := math.Max(newrad/radii[k], radii[k]/newrad)
			lastChange = math.Max(lastChange, kc)

			radii[k] = newrad
		}
	}
}

// flower computes the angle sum around an internal circle: the tangency
// angles at the center circle over all consecutive neighbor pairs, wrapping
// at the end of the cycle. At convergence this sums to 2π.
func flower(radii map[int]float64, center int, cycle []int) float64 {
	rc := radii[center]
	sum := 0.0
	for i := range cycle {
		j := (i + 1) % len(cycle)
		sum += acxyz(rc, radii[cycle[i]], radii[cycle[j]])
	}
	return sum
}

// acxyz computes the angle at a circle of radius rx subtended by two circles
// of radius ry and rz that are tangent to it and to each other.
//
// The fallback constants are deliberate numerical safety valves, not derived
// values: a near-zero denominator yields π and an out-of-range cosine
// argument yields π/3.
func acxyz(rx, ry, rz float64) float64 {
	denom := 2 * (rx + ry) * (rx + rz)
	if circle.AlmostZero(denom) {
		return math.Pi
	}

	num := (rx+ry)*(rx+ry) + (rx+rz)*(rx+rz) - (ry+rz)*(ry+rz)
	term := num / denom

	if term < -1.0 || term > 1.0 {
		return math.Pi / 3
	}
	return math.Acos(term)
}

// placeAll positions every circle. The first internal circle (smallest id)
// goes to the origin, its first listed neighbor onto the positive real axis,
// and the rest are reached by walking neighbor cycles with an explicit work
// stack. Traversal order does not affect the result: each circle's position
// is fully determined by an already-placed neighbor.
func placeAll(radii map[int]float64, internal map[int][]int, ids []int) (map[int]complex128, error) {
	placements := make(map[int]complex128, len(radii))

	k1 := ids[0]
	k2 := internal[k1][0]
	placements[k1] = 0
	placements[k2] = complex(radii[k1]+radii[k2], 0)

	stack := []int{k1, k2}
	for len(stack) > 0 {
		center := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cycle, ok := internal[center]
		if !ok {
			continue
		}
		rc := radii[center]
		nc := len(cycle)

		for i := -nc; i < nc-1; i++ {
			ks := i
			if ks < 0 {
				ks += nc
			}
			kt := ks + 1
			if kt >= nc {
				kt = 0
			}

			s, t := cycle[ks], cycle[kt]
			if _, placedS := placements[s]; !placedS {
				continue
			}
			if _, placedT := placements[t]; placedT {
				continue
			}

			// Rotate the center→s direction clockwise by the tangency angle
			// and scale to the tangent distance for t.
			theta := acxyz(rc, radii[s], radii[t])
			offset := (placements[s] - placements[center]) / complex(radii[s]+rc, 0)
			offset *= cmplx.Exp(complex(0, -theta))
			placements[t] = placements[center] + offset*complex(radii[t]+rc, 0)

			stack = append(stack, t)
		}
	}

	for id := range radii {
		if _, ok := placements[id]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "disconnected tangency graph: id %d is unreachable", id)
		}
	}
	return placements, nil
}
