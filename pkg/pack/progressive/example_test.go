package progressive_test

import (
	"fmt"

	"github.com/matzehuels/circlepack/pkg/pack/progressive"
)

func ExampleLayout() {
	// Three unit circles: the first two sit either side of the origin, the
	// third is placed tangent to both below the x-axis.
	circles, err := progressive.Layout([]float64{1, 1, 1})
	if err != nil {
		panic(err)
	}

	for _, c := range circles {
		fmt.Printf("(%.3f, %.3f)\n", c.X, c.Y)
	}
	// Output:
	// (-1.000, 0.000)
	// (1.000, 0.000)
	// (0.000, -1.732)
}
