// Package nodelink draws the tower range graph as a node-link diagram.
//
// Every tower becomes a node labelled with its coordinate and every pair of
// towers in relay range becomes an undirected edge. Edges and nodes on the
// relay path are highlighted.
//
//	dot := nodelink.ToDOT(graph, nodelink.Options{Path: path})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] only builds DOT source, which can be saved and processed with
// external Graphviz tools. [RenderSVG] lays it out in-process with
// [github.com/goccy/go-graphviz].
package nodelink
