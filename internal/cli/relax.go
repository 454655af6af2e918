package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pack/repel"
)

// relaxCommand creates the relax command for iterative overlap removal.
func (c *CLI) relaxCommand() *cobra.Command {
	var (
		output        string
		noCache       bool
		maxIterations int
		wrap          bool
		bounds        string
	)

	cmd := &cobra.Command{
		Use:   "relax [circles.json]",
		Short: "Push overlapping circles apart by iterated pairwise repulsion",
		Long: `Push overlapping circles apart by iterated pairwise repulsion.

The relax command takes a circles.json file holding circle centers, radii,
and optional movement weights, and nudges overlapping pairs apart until no
overlaps remain or the iteration budget runs out. Radii never change.

An optional rectangular boundary constrains circle centers: by default
centers are clamped to the rectangle, with --wrap they wrap around its
edges instead.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRelax(cmd.Context(), args[0], output, noCache, maxIterations, wrap, bounds)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.relaxed.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", c.Config.MaxIterations, "iteration budget")
	cmd.Flags().BoolVar(&wrap, "wrap", false, "wrap centers around the boundary instead of clamping")
	cmd.Flags().StringVar(&bounds, "bounds", "", "boundary rectangle as xmin,xmax,ymin,ymax")

	return cmd
}

// relaxResult is the relax command's output file format. The circles and
// weights fields keep it readable as a circle set by other commands.
type relaxResult struct {
	Circles    []circle.Circle `json:"circles"`
	Weights    []float64       `json:"weights,omitempty"`
	Iterations int             `json:"iterations"`
}

func (c *CLI) runRelax(ctx context.Context, input, output string, noCache bool, maxIterations int, wrap bool, boundsFlag string) error {
	set, err := circle.ReadSetFile(input)
	if err != nil {
		return fmt.Errorf("load circles %s: %w", input, err)
	}

	bounds, err := parseBounds(boundsFlag)
	if err != nil {
		return err
	}

	type request struct {
		Set           circle.Set     `json:"set"`
		Bounds        *circle.Bounds `json:"bounds"`
		Wrap          bool           `json:"wrap"`
		MaxIterations int            `json:"max_iterations"`
	}
	req := request{Set: set, Bounds: bounds, Wrap: wrap, MaxIterations: maxIterations}

	tracker := newProgress(c.Logger)
	data, cached, err := c.cachedCompute(ctx, noCache, "relax", req, func() (any, error) {
		iterations, err := repel.Relax(set.Circles, repel.Options{
			Weights:       set.Weights,
			Bounds:        bounds,
			Wrap:          wrap,
			MaxIterations: maxIterations,
		})
		if err != nil {
			return nil, err
		}
		return relaxResult{Circles: set.Circles, Weights: set.Weights, Iterations: iterations}, nil
	})
	if err != nil {
		return fmt.Errorf("relax: %w", err)
	}
	tracker.done(fmt.Sprintf("Relaxed %d circles", len(set.Circles)))

	out := outputPath(input, output, ".relaxed.json")
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Relaxation complete")
	printFile(out)
	printStats(len(set.Circles), 0, cached)
	printNewline()
	printNextStep("Render", "circlepack render "+out)

	return nil
}

// parseBounds parses the xmin,xmax,ymin,ymax boundary flag. An empty
// string means no boundary.
func parseBounds(s string) (*circle.Bounds, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "bounds must be xmin,xmax,ymin,ymax, got %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid bounds component %q", p)
		}
		vals[i] = v
	}
	b := &circle.Bounds{XMin: vals[0], XMax: vals[1], YMin: vals[2], YMax: vals[3]}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
