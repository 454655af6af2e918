package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts a tangency graph to Graphviz DOT format. Internal
// circles (those with a neighbor list) are drawn filled; external circles
// appear with their fixed radius in the label. The resulting DOT string
// can be rendered with [GraphSVG] or [GraphPNG].
func ToDOT(internal map[int][]int, external map[int]float64) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  node [shape=circle, fontsize=12];\n")
	buf.WriteString("\n")

	for _, id := range slices.Sorted(maps.Keys(internal)) {
		fmt.Fprintf(&buf, "  %d [style=filled, fillcolor=lightblue];\n", id)
	}
	for _, id := range slices.Sorted(maps.Keys(external)) {
		fmt.Fprintf(&buf, "  %d [label=\"%d\\nr=%.3g\"];\n", id, id, external[id])
	}

	buf.WriteString("\n")
	seen := make(map[[2]int]bool)
	for _, id := range slices.Sorted(maps.Keys(internal)) {
		for _, nbr := range internal[id] {
			key := [2]int{min(id, nbr), max(id, nbr)}
			if seen[key] {
				continue
			}
			seen[key] = true
			fmt.Fprintf(&buf, "  %d -- %d;\n", key[0], key[1])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// GraphSVG renders a DOT graph to SVG using Graphviz.
func GraphSVG(dot string) ([]byte, error) {
	return renderGraph(dot, graphviz.SVG)
}

// GraphPNG renders a DOT graph to PNG using Graphviz.
func GraphPNG(dot string) ([]byte, error) {
	return renderGraph(dot, graphviz.PNG)
}

func renderGraph(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
