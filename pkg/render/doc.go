// Package render groups the output renderers for planning results.
//
// # Overview
//
// Rendering never changes a plan; every renderer reads a finished grid,
// tower list and path:
//
//   - [term]: the grid as text for terminals, with optional lipgloss colors
//   - [cityplot]: the city map as PNG or SVG, drawn with gonum/plot
//   - [nodelink]: the tower range graph as DOT source or SVG via Graphviz
//
// # Usage
//
//	txt := term.Render(grid, term.Options{Path: path})
//	png, err := cityplot.Render(grid, path, cityplot.Options{Format: cityplot.FormatPNG})
//	dot := nodelink.ToDOT(rangeGraph, nodelink.Options{Path: path})
//
// [term]: github.com/matzehuels/signaltower/pkg/render/term
// [cityplot]: github.com/matzehuels/signaltower/pkg/render/cityplot
// [nodelink]: github.com/matzehuels/signaltower/pkg/render/nodelink
package render
