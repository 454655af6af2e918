package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pack/progressive"
)

// layoutCommand creates the layout command for progressive placement.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [radii.json]",
		Short: "Place circles one by one around a growing front",
		Long: `Place circles one by one around a growing front.

The input file lists radii in placement order:

  {"radii": [1.0, 2.0, 0.5]}

A file holding a circle set is also accepted; its radii are used and its
positions ignored. Each circle is placed tangent to two circles on the
boundary of the already-placed cluster, producing a compact spiral-like
packing. Placement is deterministic for a given radius sequence.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, noCache bool) error {
	radii, err := readRadii(input)
	if err != nil {
		return err
	}

	type request struct {
		Radii []float64 `json:"radii"`
	}
	req := request{Radii: radii}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d circles...", len(radii)))
	spinner.Start()

	data, cached, err := c.cachedCompute(ctx, noCache, "progressive", req, func() (any, error) {
		circles, err := progressive.Layout(radii)
		if err != nil {
			return nil, err
		}
		return circle.Set{Circles: circles}, nil
	})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(input, output, ".layout.json")
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Layout complete")
	printFile(out)
	printStats(len(radii), 0, cached)
	printNewline()
	printNextStep("Render", "circlepack render "+out)

	return nil
}

// readRadii loads the radius sequence from either a {"radii": [...]} file
// or a circle set file.
func readRadii(path string) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load radii %s: %w", path, err)
	}

	var in struct {
		Radii   []float64       `json:"radii"`
		Circles []circle.Circle `json:"circles"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse radii %s", path)
	}

	if len(in.Radii) > 0 {
		return in.Radii, nil
	}
	radii := make([]float64, len(in.Circles))
	for i, c := range in.Circles {
		radii[i] = c.Radius
	}
	return radii, nil
}
