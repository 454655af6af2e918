package repel_test

import (
	"fmt"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/pack/repel"
)

func ExampleRelax() {
	// Two unit circles stacked on top of each other. The coincident-center
	// fallback pushes them apart along the x-axis, each moving half the
	// overlap, and the next pass finds nothing left to move.
	circles := []circle.Circle{
		{X: 0, Y: 0, Radius: 1},
		{X: 0, Y: 0, Radius: 1},
	}

	iterations, err := repel.Relax(circles, repel.Options{})
	if err != nil {
		panic(err)
	}

	fmt.Println("iterations:", iterations)
	for _, c := range circles {
		fmt.Printf("(%.0f, %.0f)\n", c.X, c.Y)
	}
	// Output:
	// iterations: 1
	// (-1, 0)
	// (1, 0)
}

func ExampleRelax_pinned() {
	// A weight of zero pins a circle in place; only its neighbor gives way.
	circles := []circle.Circle{
		{X: 0, Y: 0, Radius: 1},
		{X: 0, Y: 0, Radius: 1},
	}

	_, _ = repel.Relax(circles, repel.Options{Weights: []float64{0, 1}})

	fmt.Printf("pinned circle stays at (%.0f, %.0f)\n", circles[0].X, circles[0].Y)
	// Output:
	// pinned circle stays at (0, 0)
}
