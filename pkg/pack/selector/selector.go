// Package selector picks a subset of non-overlapping circles from a fixed
// configuration.
//
// Overlap adjacency is computed once from the initial positions and never
// again: selection proceeds purely on circle state. Circles start as
// candidates; each round, every candidate with no remaining candidate
// neighbors is selected, then exactly one of the still-overlapping
// candidates is rejected according to the chosen [Ordering]. Ties are broken
// uniformly at random, so the loop strictly shrinks the candidate set and
// terminates in at most N rounds.
//
// The random source is an explicit dependency: pass a seeded *rand.Rand for
// reproducible selections.
package selector

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/errors"
)

// Ordering selects which overlapping circle is rejected each round.
type Ordering int

// Rejection orderings.
const (
	// MaxOverlap rejects a circle with the most candidate overlaps.
	MaxOverlap Ordering = iota
	// MinOverlap rejects a circle with the fewest (but non-zero) overlaps.
	MinOverlap
	// Largest rejects the largest overlapping circle.
	Largest
	// Smallest rejects the smallest overlapping circle.
	Smallest
	// Random rejects a uniformly chosen overlapping circle.
	Random
)

// orderingNames maps keyword spellings to orderings. The short forms match
// the historical R interface; the long forms are accepted as aliases.
var orderingNames = map[string]Ordering{
	"maxov":       MaxOverlap,
	"max-overlap": MaxOverlap,
	"minov":       MinOverlap,
	"min-overlap": MinOverlap,
	"largest":     Largest,
	"smallest":    Smallest,
	"random":      Random,
}

// String returns the canonical keyword for o.
func (o Ordering) String() string {
	switch o {
	case MaxOverlap:
		return "maxov"
	case MinOverlap:
		return "minov"
	case Largest:
		return "largest"
	case Smallest:
		return "smallest"
	case Random:
		return "random"
	}
	return "unknown"
}

// ParseOrdering converts an ordering keyword to an [Ordering].
// Valid keywords are maxov, minov, largest, smallest and random
// (plus the aliases max-overlap and min-overlap).
func ParseOrdering(s string) (Ordering, error) {
	if o, ok := orderingNames[s]; ok {
		return o, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidOrdering,
		"invalid ordering %q (must be one of: maxov, minov, largest, smallest, random)", s)
}

// Select returns a boolean mask, aligned with circles, marking a subset with
// no mutual overlaps. Two circles count as overlapping when the squared
// distance between their centers is below the squared sum of radii times
// tolerance.
//
// rng supplies tie-breaking randomness; nil falls back to a generator seeded
// from the process-wide source, making results non-reproducible.
func Select(circles []circle.Circle, tolerance float64, ordering Ordering, rng *rand.Rand) ([]bool, error) {
	if ordering < MaxOverlap || ordering > Random {
		return nil, errors.New(errors.ErrCodeInvalidOrdering, "invalid ordering value %d", int(ordering))
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	const (
		candidate = int8(0)
		selected  = int8(1)
		rejected  = int8(-1)
	)

	n := len(circles)

	// Record overlaps for each circle in the initial configuration. This
	// adjacency is fixed for the rest of the selection.
	neighbours := make([][]int, n)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if circles[i].Overlaps(circles[j], tolerance) {
				neighbours[i] = append(neighbours[i], j)
				neighbours[j] = append(neighbours[j], i)
			}
		}
	}

	states := make([]int8, n)
	counts := make([]int, n)
	done := 0

	for done < n {
		// Candidates with no remaining candidate neighbors are selected in
		// place, so later circles in the same sweep see the updated states.
		for i := range counts {
			counts[i] = 0
		}
		for i := 0; i < n; i++ {
			if states[i] != candidate {
				continue
			}
			for _, nbr := range neighbours[i] {
				if states[nbr] == candidate {
					counts[i]++
				}
			}
			if counts[i] == 0 {
				states[i] = selected
				done++
			}
		}

		if done == n {
			break
		}

		// Reject exactly one overlapping circle per round.
		pool := rejectionPool(circles, counts, ordering)
		states[pool[rng.IntN(len(pool))]] = rejected
		done++
	}

	mask := make([]bool, n)
	for i, s := range states {
		mask[i] = s == selected
	}
	return mask, nil
}

// rejectionPool returns the indices eligible for rejection under the given
// ordering. Only circles with a positive overlap count are considered; the
// caller breaks remaining ties at random.
func rejectionPool(circles []circle.Circle, counts []int, ordering Ordering) []int {
	var pool []int

	switch ordering {
	case MaxOverlap:
		mx := 0
		for _, c := range counts {
			mx = max(mx, c)
		}
		for i, c := range counts {
			if c == mx {
				pool = append(pool, i)
			}
		}

	case MinOverlap:
		mn := math.MaxInt
		for _, c := range counts {
			if c > 0 && c < mn {
				mn = c
			}
		}
		for i, c := range counts {
			if c == mn {
				pool = append(pool, i)
			}
		}

	case Largest:
		best := 0.0
		for i, c := range counts {
			if c > 0 {
				best = math.Max(best, circles[i].Radius)
			}
		}
		for i, c := range counts {
			if c > 0 && circles[i].Radius == best {
				pool = append(pool, i)
			}
		}

	case Smallest:
		best := math.MaxFloat64
		for i, c := range counts {
			if c > 0 {
				best = math.Min(best, circles[i].Radius)
			}
		}
		for i, c := range counts {
			if c > 0 && circles[i].Radius == best {
				pool = append(pool, i)
			}
		}

	case Random:
		for i, c := range counts {
			if c > 0 {
				pool = append(pool, i)
			}
		}
	}

	return pool
}
