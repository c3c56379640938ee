package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/relay"
)

// Options configures diagram generation.
type Options struct {
	// Path highlights consecutive hops of a relay path.
	Path []city.Coord

	// Order appends each tower's selection index to its label.
	Order bool
}

// ToDOT converts a range graph to Graphviz DOT source.
func ToDOT(g *relay.RangeGraph, opts Options) string {
	onPath := make(map[city.Coord]bool, len(opts.Path))
	hops := make(map[[2]city.Coord]bool, len(opts.Path))
	for i, c := range opts.Path {
		onPath[c] = true
		if i > 0 {
			hops[[2]city.Coord{opts.Path[i-1], c}] = true
			hops[[2]city.Coord{c, opts.Path[i-1]}] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", fmt.Sprintf("radius %d", g.Radius()))
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#4a90d9\", fontcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [color=\"#9aa5b1\"];\n")
	buf.WriteString("\n")

	for i, t := range g.Nodes() {
		label := fmt.Sprintf("%d,%d", t.Row, t.Col)
		if opts.Order {
			label = fmt.Sprintf("#%d\n%s", i, label)
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if onPath[t] {
			attrs = append(attrs, "fillcolor=\"#d64545\"", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(t), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attr := ""
		if hops[e] {
			attr = " [color=\"#d64545\", penwidth=3]"
		}
		fmt.Fprintf(&buf, "  %q -- %q%s;\n", nodeID(e[0]), nodeID(e[1]), attr)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(c city.Coord) string {
	return fmt.Sprintf("t%d_%d", c.Row, c.Col)
}

// RenderSVG lays out DOT source with Graphviz and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

// normalizeViewBox rewrites the root element so the SVG scales from a
// 0-origin viewBox with matching width and height.
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
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
