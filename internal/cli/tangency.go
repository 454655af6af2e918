package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pack/tangency"
	"github.com/matzehuels/circlepack/pkg/render"
)

// tangencyCommand creates the tangency command for graph-driven packing.
func (c *CLI) tangencyCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		graph   string
	)

	cmd := &cobra.Command{
		Use:   "tangency [graph.json]",
		Short: "Pack circles from a tangency graph",
		Long: `Pack circles from a tangency graph.

The input file names internal circles with their cyclically ordered
neighbor lists and external circles with fixed radii:

  {
    "internal": {"0": [1, 2, 3]},
    "external": {"1": 1.0, "2": 1.0, "3": 1.0}
  }

Internal radii are solved so each circle's neighbors close exactly around
it; circles are then placed so every graph edge is a tangency.

With --graph, the tangency graph itself is rendered via Graphviz to the
given .dot, .svg, or .png file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTangency(cmd.Context(), args[0], output, noCache, graph)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.packed.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&graph, "graph", "", "also render the tangency graph (.dot, .svg, or .png)")

	return cmd
}

// tangencyInput is the tangency command's input file format.
type tangencyInput struct {
	Internal map[int][]int   `json:"internal"`
	External map[int]float64 `json:"external"`
}

// tangencyResult pairs the placed circles with their graph ids, in
// ascending id order so the file doubles as a circle set.
type tangencyResult struct {
	Circles []circle.Circle `json:"circles"`
	IDs     []int           `json:"ids"`
}

func (c *CLI) runTangency(ctx context.Context, input, output string, noCache bool, graph string) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	var in tangencyInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse graph %s", input)
	}

	tracker := newProgress(c.Logger)
	data, cached, err := c.cachedCompute(ctx, noCache, "tangency", in, func() (any, error) {
		placements, err := tangency.Pack(in.Internal, in.External)
		if err != nil {
			return nil, err
		}
		result := tangencyResult{}
		for _, id := range slices.Sorted(maps.Keys(placements)) {
			p := placements[id]
			result.IDs = append(result.IDs, id)
			result.Circles = append(result.Circles, circle.Circle{X: p.X, Y: p.Y, Radius: p.Radius})
		}
		return result, nil
	})
	if err != nil {
		return fmt.Errorf("tangency pack: %w", err)
	}
	tracker.done(fmt.Sprintf("Packed %d internal circles", len(in.Internal)))

	out := outputPath(input, output, ".packed.json")
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Tangency packing complete")
	printFile(out)
	printStats(len(in.Internal)+len(in.External), 0, cached)

	if graph != "" {
		if err := c.writeGraph(in, graph); err != nil {
			return err
		}
		printFile(graph)
	}

	printNewline()
	printNextStep("Render", "circlepack render "+out)

	return nil
}

// writeGraph renders the tangency graph to DOT, SVG, or PNG depending on
// the file extension.
func (c *CLI) writeGraph(in tangencyInput, path string) error {
	dot := render.ToDOT(in.Internal, in.External)

	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot":
		data = []byte(dot)
	case ".svg":
		data, err = render.GraphSVG(dot)
	case ".png":
		data, err = render.GraphPNG(dot)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (use .dot, .svg, or .png)", ext)
	}
	if err != nil {
		return fmt.Errorf("render graph: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
