package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/circlepack/pkg/circle"
)

// RenderChart writes an interactive HTML scatter chart of the layout to w.
// Each circle becomes a point at its center, sized by radius and labeled
// with its index. The chart supports zooming on both axes, which makes it
// handy for inspecting dense layouts.
func RenderChart(w io.Writer, circles []circle.Circle, title string) error {
	scatter := charts.NewScatter()

	xmin, ymin, bw, bh := viewBox(circles)

	// Symbol sizes are in screen pixels; scale radii so the largest
	// circle maps to a readable dot.
	maxRadius := 0.0
	for _, c := range circles {
		if c.Radius > maxRadius {
			maxRadius = c.Radius
		}
	}
	if maxRadius == 0 {
		maxRadius = 1
	}

	points := make([]opts.ScatterData, 0, len(circles))
	for i, c := range circles {
		points = append(points, opts.ScatterData{
			Name:       fmt.Sprintf("circle %d (r=%.3g)", i, c.Radius),
			Value:      []float64{c.X, c.Y},
			SymbolSize: int(8 + 32*c.Radius/maxRadius),
		})
	}

	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1020px",
			Height: "580px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
			Left:  "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Min:  xmin,
			Max:  xmin + bw,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Min:  ymin,
			Max:  ymin + bh,
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)

	scatter.AddSeries("circles", points)

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
