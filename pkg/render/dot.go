// Package render turns follows graphs into node-link diagrams.
//
// Graphs are first converted to Graphviz DOT with [ToDOT], then rasterized
// with [RenderSVG]. Communities can be grouped into clusters and trend
// setters highlighted:
//
//	dot := render.ToDOT(g, render.Options{
//	    Communities:  communities,
//	    TrendSetters: setters,
//	})
//	svg, err := render.RenderSVG(dot)
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/trendspot/pkg/digraph"
	"github.com/matzehuels/trendspot/pkg/rank"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Communities groups vertices into Graphviz clusters. Vertices not
	// covered by any community are drawn at the top level.
	Communities [][]int

	// TrendSetters are drawn with a filled accent color.
	TrendSetters rank.Set
}

// ToDOT converts a follows graph to Graphviz DOT format.
// Edges point from follower to followed account.
func ToDOT(g *digraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph follows {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	clustered := make(map[int]bool)
	for i, members := range opts.Communities {
		if len(members) < 2 {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=\"community %d\";\n", i)
		buf.WriteString("    color=grey;\n")
		for _, id := range members {
			fmt.Fprintf(&buf, "    %s;\n", nodeLine(id, opts.TrendSetters))
			clustered[id] = true
		}
		buf.WriteString("  }\n")
	}

	for _, id := range g.VertexIDs() {
		if !clustered[id] {
			fmt.Fprintf(&buf, "  %s;\n", nodeLine(id, opts.TrendSetters))
		}
	}

	buf.WriteString("\n")
	for _, id := range g.VertexIDs() {
		for _, to := range g.Following(id) {
			fmt.Fprintf(&buf, "  %d -> %d;\n", id, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLine(id int, setters rank.Set) string {
	if setters.Contains(id) {
		return fmt.Sprintf("%d [fillcolor=gold, penwidth=2]", id)
	}
	return strconv.Itoa(id)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
