package repel

import (
	"math"
	"testing"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/errors"
)

// overlapSlack is the tolerance used when checking pairwise separation.
const overlapSlack = 1e-4

func assertSeparated(t *testing.T, circles []circle.Circle) {
	t.Helper()
	for i := 0; i < len(circles)-1; i++ {
		for j := i + 1; j < len(circles); j++ {
			d := circles[i].Dist(circles[j])
			rsum := circles[i].Radius + circles[j].Radius
			if d < rsum-overlapSlack {
				t.Errorf("circles %d and %d overlap: dist %.6f < %.6f", i, j, d, rsum)
			}
		}
	}
}

func TestRelaxCoincidentCenters(t *testing.T) {
	// Three unit circles stacked at the origin must spread out so that all
	// pairwise distances reach the sum of radii.
	circles := []circle.Circle{
		{X: 0, Y: 0, Radius: 1},
		{X: 0, Y: 0, Radius: 1},
		{X: 0, Y: 0, Radius: 1},
	}

	iters, err := Relax(circles, Options{MaxIterations: 100})
	if err != nil {
		t.Fatalf("Relax: %v", err)
	}
	if iters == 100 {
		t.Fatalf("Relax did not converge within 100 iterations")
	}

	for i := 0; i < len(circles)-1; i++ {
		for j := i + 1; j < len(circles); j++ {
			if circles[i].X == circles[j].X && circles[i].Y == circles[j].Y {
				t.Errorf("circles %d and %d still coincident", i, j)
			}
			if d := circles[i].Dist(circles[j]); d < 2-overlapSlack {
				t.Errorf("distance(%d,%d) = %.6f, want >= %.6f", i, j, d, 2-overlapSlack)
			}
		}
	}
}

func TestRelaxConvergence(t *testing.T) {
	tests := []struct {
		name    string
		circles []circle.Circle
	}{
		{
			name: "OverlappingRow",
			circles: []circle.Circle{
				{X: 0, Y: 0, Radius: 2},
				{X: 1, Y: 0, Radius: 2},
				{X: 2, Y: 0, Radius: 2},
				{X: 3, Y: 0, Radius: 2},
			},
		},
		{
			name: "MixedRadii",
			circles: []circle.Circle{
				{X: 0, Y: 0, Radius: 5},
				{X: 1, Y: 1, Radius: 0.5},
				{X: -1, Y: 0.5, Radius: 1.5},
				{X: 0.2, Y: -0.3, Radius: 3},
				{X: 2, Y: 2, Radius: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iters, err := Relax(tt.circles, Options{MaxIterations: 2000})
			if err != nil {
				t.Fatalf("Relax: %v", err)
			}
			if iters == 2000 {
				t.Fatalf("did not converge in 2000 iterations")
			}
			assertSeparated(t, tt.circles)
		})
	}
}

func TestRelaxAlreadySeparated(t *testing.T) {
	circles := []circle.Circle{
		{X: 0, Y: 0, Radius: 1},
		{X: 10, Y: 0, Radius: 1},
	}
	if iters, _ := Relax(circles, Options{MaxIterations: 50}); iters != 0 {
		t.Errorf("Relax = %d iterations, want 0 for separated input", iters)
	}
	if circles[0].X != 0 || circles[1].X != 10 {
		t.Error("separated circles moved")
	}
}

func TestRelaxZeroWeightPair(t *testing.T) {
	// Both circles pinned: the pair is skipped and neither moves.
	circles := []circle.Circle{
		{X: 0, Y: 0, Radius: 1},
		{X: 0.5, Y: 0, Radius: 1},
	}
	weights := []float64{0, 0}

	_, _ = Relax(circles, Options{Weights: weights, MaxIterations: 10})

	if circles[0].X != 0 || circles[0].Y != 0 {
		t.Errorf("pinned circle 0 moved to (%.3f, %.3f)", circles[0].X, circles[0].Y)
	}
	if circles[1].X != 0.5 || circles[1].Y != 0 {
		t.Errorf("pinned circle 1 moved to (%.3f, %.3f)", circles[1].X, circles[1].Y)
	}
}

func TestRelaxSingleZeroWeight(t *testing.T) {
	circles := []circle.Circle{
		{X: 0, Y: 0, Radius: 1},
		{X: 0.5, Y: 0, Radius: 1},
	}
	weights := []float64{0, 1}

	_, _ = Relax(circles, Options{Weights: weights, MaxIterations: 500})

	if circles[0].X != 0 || circles[0].Y != 0 {
		t.Errorf("pinned circle moved to (%.3f, %.3f)", circles[0].X, circles[0].Y)
	}
	assertSeparated(t, circles)
}

func TestRelaxBoundsClamp(t *testing.T) {
	bounds := &circle.Bounds{XMin: -5, XMax: 5, YMin: -5, YMax: 5}
	circles := []circle.Circle{
		{X: -4.5, Y: -4.5, Radius: 2},
		{X: -4.4, Y: -4.5, Radius: 2},
		{X: 4.5, Y: 4.5, Radius: 2},
		{X: 4.4, Y: 4.4, Radius: 2},
	}

	if _, err := Relax(circles, Options{Bounds: bounds, MaxIterations: 200}); err != nil {
		t.Fatalf("Relax: %v", err)
	}

	for i, c := range circles {
		if c.X < bounds.XMin || c.X > bounds.XMax {
			t.Errorf("circle %d x = %.4f outside [%.1f, %.1f]", i, c.X, bounds.XMin, bounds.XMax)
		}
		if c.Y < bounds.YMin || c.Y > bounds.YMax {
			t.Errorf("circle %d y = %.4f outside [%.1f, %.1f]", i, c.Y, bounds.YMin, bounds.YMax)
		}
	}
}

func TestRelaxBoundsWrap(t *testing.T) {
	bounds := &circle.Bounds{XMin: 0, XMax: 10, YMin: 0, YMax: 10}
	circles := []circle.Circle{
		{X: 0.1, Y: 5, Radius: 1},
		{X: 0.2, Y: 5, Radius: 1},
		{X: 9.9, Y: 5, Radius: 1},
		{X: 5, Y: 9.9, Radius: 1},
		{X: 5, Y: 9.8, Radius: 1},
	}

	if _, err := Relax(circles, Options{Bounds: bounds, Wrap: true, MaxIterations: 500}); err != nil {
		t.Fatalf("Relax: %v", err)
	}

	for i, c := range circles {
		if c.X < 0 || c.X >= 10 {
			t.Errorf("circle %d x = %.4f outside [0, 10)", i, c.X)
		}
		if c.Y < 0 || c.Y >= 10 {
			t.Errorf("circle %d y = %.4f outside [0, 10)", i, c.Y)
		}
	}
}

func TestRelaxIterationBudget(t *testing.T) {
	// A box too small for its circles keeps generating overlaps, so the
	// budget is exhausted and reported.
	bounds := &circle.Bounds{XMin: 0, XMax: 2, YMin: 0, YMax: 2}
	circles := []circle.Circle{
		{X: 0.5, Y: 0.5, Radius: 1.5},
		{X: 1.0, Y: 1.0, Radius: 1.5},
		{X: 1.5, Y: 0.5, Radius: 1.5},
	}

	if iters, _ := Relax(circles, Options{Bounds: bounds, MaxIterations: 25}); iters != 25 {
		t.Errorf("Relax = %d iterations, want full budget 25", iters)
	}
}

func TestRelaxDegenerateBounds(t *testing.T) {
	// An empty or inverted rectangle must be rejected up front. Wrapping
	// over a zero-width interval would otherwise loop forever, so this
	// must come back as an error, not an exhausted budget.
	tests := []struct {
		name   string
		bounds circle.Bounds
		wrap   bool
	}{
		{name: "ZeroWidthWrap", bounds: circle.Bounds{}, wrap: true},
		{name: "ZeroWidthClamp", bounds: circle.Bounds{}},
		{name: "ZeroWidthX", bounds: circle.Bounds{XMin: 1, XMax: 1, YMin: 0, YMax: 2}, wrap: true},
		{name: "InvertedY", bounds: circle.Bounds{XMin: 0, XMax: 2, YMin: 3, YMax: 1}, wrap: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			circles := []circle.Circle{
				{X: 0, Y: 0, Radius: 1},
				{X: 0.5, Y: 0, Radius: 1},
			}

			iters, err := Relax(circles, Options{
				Bounds:        &tt.bounds,
				Wrap:          tt.wrap,
				MaxIterations: 10,
			})
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("Relax error = %v, want INVALID_INPUT", err)
			}
			if iters != 0 {
				t.Errorf("Relax = %d iterations, want 0 on rejected bounds", iters)
			}
			if circles[0].X != 0 || circles[1].X != 0.5 {
				t.Error("circles moved despite rejected bounds")
			}
		})
	}
}

func TestRelaxLargerMovesLess(t *testing.T) {
	// With equal weights, movement shares are governed by relative radius:
	// the big circle should end closer to its start than the small one.
	circles := []circle.Circle{
		{X: 0, Y: 0, Radius: 4},
		{X: 1, Y: 0, Radius: 1},
	}

	_, _ = Relax(circles, Options{MaxIterations: 200})

	bigMoved := math.Abs(circles[0].X)
	smallMoved := math.Abs(circles[1].X - 1)
	if bigMoved >= smallMoved {
		t.Errorf("big circle moved %.4f, small moved %.4f; want big < small", bigMoved, smallMoved)
	}
	assertSeparated(t, circles)
}
