// Package render turns computed layouts into visual outputs: standalone
// SVG images, interactive HTML scatter charts, and Graphviz diagrams of
// tangency graphs.
package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/circlepack/pkg/circle"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width  float64
	fill   string
	stroke string
	labels bool
	mask   []bool
}

// WithWidth sets the output image width in pixels. Height follows from
// the layout's aspect ratio. Default is 800.
func WithWidth(px float64) SVGOption { return func(r *svgRenderer) { r.width = px } }

// WithFill sets the circle fill color. Default is a translucent blue.
func WithFill(color string) SVGOption { return func(r *svgRenderer) { r.fill = color } }

// WithLabels draws the circle index at each center.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithMask greys out circles whose mask entry is false, visualizing a
// selection result on top of the full configuration.
func WithMask(mask []bool) SVGOption { return func(r *svgRenderer) { r.mask = mask } }

// RenderSVG renders circles as a standalone SVG image. The viewport is
// fitted to the layout's bounding box with a small margin; an empty
// layout produces a fixed-size empty image.
func RenderSVG(circles []circle.Circle, opts ...SVGOption) []byte {
	r := svgRenderer{width: 800, fill: "#4a90d9", stroke: "#1c3d5a"}
	for _, opt := range opts {
		opt(&r)
	}

	xmin, ymin, w, h := viewBox(circles)
	scale := r.width / w
	height := h * scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.3f %.3f %.3f %.3f" width="%.0f" height="%.0f">`+"\n",
		xmin, ymin, w, h, r.width, height)

	strokeWidth := w / r.width // one output pixel in layout units

	for i, c := range circles {
		fill, opacity := r.fill, "0.6"
		if r.mask != nil && i < len(r.mask) && !r.mask[i] {
			fill, opacity = "#bbbbbb", "0.25"
		}
		fmt.Fprintf(&buf, `  <circle cx="%.5f" cy="%.5f" r="%.5f" fill="%s" fill-opacity="%s" stroke="%s" stroke-width="%.5f"/>`+"\n",
			c.X, c.Y, c.Radius, fill, opacity, r.stroke, strokeWidth)
	}

	if r.labels {
		for i, c := range circles {
			fmt.Fprintf(&buf, `  <text x="%.5f" y="%.5f" font-size="%.5f" text-anchor="middle" dominant-baseline="central">%d</text>`+"\n",
				c.X, c.Y, c.Radius*0.8, i)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// viewBox returns the origin and size of the layout's bounding box,
// padded by 5% on each side.
func viewBox(circles []circle.Circle) (xmin, ymin, w, h float64) {
	if len(circles) == 0 {
		return 0, 0, 100, 100
	}

	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	for _, c := range circles {
		xmin = math.Min(xmin, c.X-c.Radius)
		xmax = math.Max(xmax, c.X+c.Radius)
		ymin = math.Min(ymin, c.Y-c.Radius)
		ymax = math.Max(ymax, c.Y+c.Radius)
	}

	w = xmax - xmin
	h = ymax - ymin
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	pad := 0.05 * math.Max(w, h)
	return xmin - pad, ymin - pad, w + 2*pad, h + 2*pad
}
