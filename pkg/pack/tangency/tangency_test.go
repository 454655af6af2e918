package tangency

import (
	"math"
	"testing"

	"github.com/matzehuels/circlepack/pkg/errors"
)

func TestPackRegularThreeFlower(t *testing.T) {
	// One internal circle surrounded by three unit circles. The converged
	// internal radius has the closed form 1/(2/√3 - 1).
	internal := map[int][]int{0: {1, 2, 3}}
	external := map[int]float64{1: 1, 2: 1, 3: 1}

	packing, err := Pack(internal, external)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(packing) != 4 {
		t.Fatalf("packing has %d entries, want 4", len(packing))
	}

	want := 1 / (2/math.Sqrt(3) - 1)
	if got := packing[0].Radius; math.Abs(got-want) > 1e-4 {
		t.Errorf("internal radius = %.6f, want %.6f", got, want)
	}

	for id := 1; id <= 3; id++ {
		if packing[id].Radius != 1 {
			t.Errorf("external radius %d = %g, want 1 (fixed)", id, packing[id].Radius)
		}
	}
}

func TestPackFlowerAngleSum(t *testing.T) {
	// After convergence, the angle sum at every internal circle is 2π.
	tests := []struct {
		name     string
		internal map[int][]int
		external map[int]float64
	}{
		{
			name:     "SingleInternal",
			internal: map[int][]int{0: {1, 2, 3, 4}},
			external: map[int]float64{1: 1, 2: 2, 3: 1.5, 4: 0.75},
		},
		{
			name: "TwoInternal",
			internal: map[int][]int{
				0: {1, 2, 5, 4},
				5: {2, 3, 4, 0},
			},
			external: map[int]float64{1: 1, 2: 1, 3: 1, 4: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packing, err := Pack(tt.internal, tt.external)
			if err != nil {
				t.Fatalf("Pack: %v", err)
			}

			radii := make(map[int]float64, len(packing))
			for id, p := range packing {
				radii[id] = p.Radius
			}
			for id, cycle := range tt.internal {
				if sum := flower(radii, id, cycle); math.Abs(sum-2*math.Pi) > 1e-4 {
					t.Errorf("angle sum at %d = %.6f, want 2π", id, sum)
				}
			}
		})
	}
}

func TestPackNeighborsTangent(t *testing.T) {
	// Every internal circle must be externally tangent to each of its
	// neighbors in the solved placement.
	internal := map[int][]int{0: {1, 2, 3, 4, 5}}
	external := map[int]float64{1: 1, 2: 1, 3: 2, 4: 1, 5: 0.5}

	packing, err := Pack(internal, external)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	c := packing[0]
	for _, nbr := range internal[0] {
		n := packing[nbr]
		d := math.Hypot(n.X-c.X, n.Y-c.Y)
		if want := c.Radius + n.Radius; math.Abs(d-want) > 1e-4 {
			t.Errorf("distance to neighbor %d = %.6f, want %.6f", nbr, d, want)
		}
	}
}

func TestPackSeedPlacement(t *testing.T) {
	internal := map[int][]int{0: {1, 2, 3}}
	external := map[int]float64{1: 1, 2: 1, 3: 1}

	packing, err := Pack(internal, external)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	// The smallest internal id is placed at the origin, its first neighbor
	// on the positive real axis at tangent distance.
	if packing[0].X != 0 || packing[0].Y != 0 {
		t.Errorf("seed circle at (%.4f, %.4f), want origin", packing[0].X, packing[0].Y)
	}
	wantX := packing[0].Radius + packing[1].Radius
	if math.Abs(packing[1].X-wantX) > 1e-9 || packing[1].Y != 0 {
		t.Errorf("first neighbor at (%.4f, %.4f), want (%.4f, 0)", packing[1].X, packing[1].Y, wantX)
	}
}

func TestPackInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		internal map[int][]int
		external map[int]float64
		wantCode errors.Code
	}{
		{
			name:     "IDCollision",
			internal: map[int][]int{1: {2, 3, 4}},
			external: map[int]float64{1: 1, 2: 1, 3: 1, 4: 1},
			wantCode: errors.ErrCodeIDCollision,
		},
		{
			name:     "NonPositiveRadius",
			internal: map[int][]int{0: {1, 2, 3}},
			external: map[int]float64{1: 1, 2: 0, 3: 1},
			wantCode: errors.ErrCodeInvalidRadius,
		},
		{
			name:     "NegativeRadius",
			internal: map[int][]int{0: {1, 2, 3}},
			external: map[int]float64{1: 1, 2: -2, 3: 1},
			wantCode: errors.ErrCodeInvalidRadius,
		},
		{
			name:     "UnknownNeighbor",
			internal: map[int][]int{0: {1, 2, 9}},
			external: map[int]float64{1: 1, 2: 1},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "NoInternal",
			internal: map[int][]int{},
			external: map[int]float64{1: 1},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "ShortCycle",
			internal: map[int][]int{0: {1, 2}},
			external: map[int]float64{1: 1, 2: 1},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name: "Disconnected",
			internal: map[int][]int{
				0: {1, 2, 3},
				9: {10, 11, 12},
			},
			external: map[int]float64{1: 1, 2: 1, 3: 1, 10: 1, 11: 1, 12: 1},
			wantCode: errors.ErrCodeInvalidGraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(tt.internal, tt.external)
			if err == nil {
				t.Fatal("Pack succeeded, want error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %q, want %q (%v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestPackDeterministic(t *testing.T) {
	internal := map[int][]int{
		0: {1, 2, 5, 4},
		5: {2, 3, 4, 0},
	}
	external := map[int]float64{1: 1, 2: 1.5, 3: 0.5, 4: 1}

	first, err := Pack(internal, external)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	for range 5 {
		again, err := Pack(internal, external)
		if err != nil {
			t.Fatalf("Pack: %v", err)
		}
		for id, p := range first {
			if again[id] != p {
				t.Fatalf("placement for %d differs between runs: %+v vs %+v", id, p, again[id])
			}
		}
	}
}

func TestAcxyzFallbacks(t *testing.T) {
	// Zero denominator falls back to π.
	if got := acxyz(0, 0, 0); got != math.Pi {
		t.Errorf("acxyz(0,0,0) = %g, want π", got)
	}
	// Out-of-range cosine argument falls back to π/3. For positive radii the
	// term stays in range, so this guard only fires on degenerate inputs.
	if got := acxyz(1, -0.5, 2); got != math.Pi/3 {
		t.Errorf("acxyz(1,-0.5,2) = %g, want π/3", got)
	}
}
