package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/render"
)

// renderCommand creates the render command for layout visualization.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		labels  bool
		width   float64
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a layout as SVG or an interactive HTML chart",
		Long: `Render a layout as SVG or an interactive HTML chart.

The input is any circle set file, including the outputs of the relax,
tangency, layout, and select commands. Selection masks (from 'select')
grey out rejected circles in the SVG output.

Formats:
  svg   standalone vector image
  html  interactive scatter chart with zooming`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(args[0], output, parseFormats(formats), labels, width)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().StringVarP(&formats, "formats", "f", "svg", "comma-separated output formats: svg, html")
	cmd.Flags().BoolVar(&labels, "labels", false, "draw circle indices (svg)")
	cmd.Flags().Float64Var(&width, "width", 800, "image width in pixels (svg)")

	return cmd
}

func (c *CLI) runRender(input, output string, formats []string, labels bool, width float64) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	set, mask, err := decodeLayout(raw)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout %s", input)
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	for _, format := range formats {
		var path string
		switch strings.TrimSpace(format) {
		case "svg":
			opts := []render.SVGOption{render.WithWidth(width)}
			if labels {
				opts = append(opts, render.WithLabels())
			}
			if mask != nil {
				opts = append(opts, render.WithMask(mask))
			}
			path = base + ".svg"
			if err := os.WriteFile(path, render.RenderSVG(set.Circles, opts...), 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

		case "html":
			path = base + ".html"
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			err = render.RenderChart(f, set.Circles, filepath.Base(input))
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

		default:
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (use svg or html)", format)
		}

		printFile(path)
	}

	printSuccess("Render complete")
	return nil
}

// decodeLayout reads a circle set plus the optional selection mask
// emitted by the select command.
func decodeLayout(raw []byte) (circle.Set, []bool, error) {
	var in struct {
		Circles  []circle.Circle `json:"circles"`
		Weights  []float64       `json:"weights"`
		Selected []bool          `json:"selected"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return circle.Set{}, nil, err
	}
	return circle.Set{Circles: in.Circles, Weights: in.Weights}, in.Selected, nil
}
