// Package progressive arranges circles by consecutively placing each circle
// externally tangent to two previously placed circles, avoiding overlaps.
//
// The algorithm is described in "Visualization of large hierarchical data by
// circle packing" by Wang, Wang, Dai and Wang (CHI 2006). Circles are placed
// in input order around a growing "front": the ring of already-placed circles
// forming the current packing boundary. Each new circle is placed against the
// front node nearest the origin; if the placement intersects the front
// elsewhere, the ring is re-spliced to skip the intruding segment and the
// placement retried.
//
// The front is held in an index-based arena: nodes live in a flat slice and
// next/prev links are indices, which keeps splicing O(1) without pointer
// bookkeeping. Output order always matches input order.
package progressive

import (
	"math"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/errors"
)

// intersectionTolerance is the slack used by the front overlap test: a
// candidate placement only counts as intersecting when the squared radius
// sum exceeds the squared center distance by more than this.
const intersectionTolerance = 1e-4

// node is a placed circle in the front ring. next and prev are arena
// indices; -1 marks a node not yet linked into the ring.
type node struct {
	x, y, radius float64
	next, prev   int
}

// Layout places the given circles, identified by radius, and returns their
// positions in input order. All radii must be positive.
func Layout(radii []float64) ([]circle.Circle, error) {
	for i, r := range radii {
		if r <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidRadius, "radius %d must be positive, got %g", i, r)
		}
	}

	nodes := make([]node, len(radii))
	for i, r := range radii {
		nodes[i] = node{radius: r, next: -1, prev: -1}
	}
	placeAll(nodes)

	out := make([]circle.Circle, len(nodes))
	for i, n := range nodes {
		out[i] = circle.Circle{X: n.x, Y: n.y, Radius: n.radius}
	}
	return out, nil
}

// placeAll positions every node in the arena, in index order.
func placeAll(nodes []node) {
	if len(nodes) == 0 {
		return
	}

	// First circle sits left of the origin, second to the right, third
	// tangent to both.
	nodes[0].x = -nodes[0].radius
	if len(nodes) < 2 {
		return
	}
	nodes[1].x = nodes[1].radius
	if len(nodes) < 3 {
		return
	}
	placeTangent(nodes, 0, 1, 2)
	if len(nodes) < 4 {
		return
	}

	// Initial ring: 0 <-> 2 <-> 1 <-> 0.
	nodes[0].next, nodes[0].prev = 2, 1
	nodes[1].next, nodes[1].prev = 0, 2
	nodes[2].next, nodes[2].prev = 1, 0

	a, b := 0, 2
	skip := false

	for c := 3; c < len(nodes); {
		// Pick the front node nearest the origin as the first anchor. This
		// scan happens once per circle, not again after a splice.
		if !skip {
			a = nearestToOrigin(nodes, a)
			b = nodes[a].next
		}

		placeTangent(nodes, a, b, c)

		// Walk outward from both anchors, advancing whichever side has the
		// smaller accumulated radius sum, and look for a front node that
		// intersects the new placement.
		isect := false
		j, k := nodes[b].next, nodes[a].prev
		sj, sk := nodes[b].radius, nodes[a].radius
		for {
			if sj <= sk {
				if intersects(nodes, j, c) {
					// Splice out the segment between a and j and retry
					// against the new gap.
					nodes[a].next = j
					nodes[j].prev = a
					b = j
					skip = true
					isect = true
					break
				}
				sj += nodes[j].radius
				j = nodes[j].next
			} else {
				if intersects(nodes, c, k) {
					nodes[k].next = b
					nodes[b].prev = k
					a = k
					skip = true
					isect = true
					break
				}
				sk += nodes[k].radius
				k = nodes[k].prev
			}
			if j == nodes[k].next {
				break
			}
		}

		if !isect {
			// Insert c into the ring right after a and move on.
			n := nodes[a].next
			nodes[a].next = c
			nodes[c].prev = a
			nodes[c].next = n
			nodes[n].prev = c

			b = c
			skip = false
			c++
		}
	}
}

// nearestToOrigin scans the ring starting at `start` and returns the node
// whose center is closest to the origin.
func nearestToOrigin(nodes []node, start int) int {
	nearest := start
	nearestDist := math.Inf(1)
	n := start
	for {
		if d := math.Hypot(nodes[n].x, nodes[n].y); d < nearestDist {
			nearestDist = d
			nearest = n
		}
		n = nodes[n].next
		if n == start {
			break
		}
	}
	return nearest
}

// placeTangent positions circle c externally tangent to circles a and b, on
// the side rotated clockwise from the a→b axis.
func placeTangent(nodes []node, a, b, c int) {
	da := nodes[b].radius + nodes[c].radius
	db := nodes[a].radius + nodes[c].radius
	dx := nodes[b].x - nodes[a].x
	dy := nodes[b].y - nodes[a].y
	dc := math.Sqrt(dx*dx + dy*dy)

	if dc > 0 {
		cos := (db*db + dc*dc - da*da) / (2 * db * dc)
		theta := math.Acos(cos)
		x := cos * db
		h := math.Sin(theta) * db
		dx /= dc
		dy /= dc

		nodes[c].x = nodes[a].x + x*dx + h*dy
		nodes[c].y = nodes[a].y + x*dy - h*dx
	} else {
		nodes[c].x = nodes[a].x + db
		nodes[c].y = nodes[a].y
	}
}

// intersects reports whether nodes i and j overlap by more than the
// intersection tolerance.
func intersects(nodes []node, i, j int) bool {
	dx := nodes[i].x - nodes[j].x
	dy := nodes[i].y - nodes[j].y
	dr := nodes[i].radius + nodes[j].radius
	return dr*dr-dx*dx-dy*dy > intersectionTolerance
}
