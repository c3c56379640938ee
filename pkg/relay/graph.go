package relay

import (
	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/errors"
)

// InRange reports whether towers a and b can relay to each other under the
// bounding-box rule |Δrow| <= 2R+1 and |Δcol| <= 2R+1.
func InRange(a, b city.Coord, radius int) bool {
	reach := 2*radius + 1
	return abs(a.Row-b.Row) <= reach && abs(a.Col-b.Col) <= reach
}

// RangeGraph is the undirected tower adjacency graph used for path search.
// It is immutable once built.
type RangeGraph struct {
	radius int
	nodes  []city.Coord
	index  map[city.Coord]int
	adj    [][]int
}

// NewRangeGraph links every pair of distinct towers that are [InRange].
// Repeated coordinates in towers collapse to their first occurrence.
// Neighbor lists follow the order of towers.
func NewRangeGraph(radius int, towers []city.Coord) (*RangeGraph, error) {
	if err := errors.ValidateRadius(radius); err != nil {
		return nil, err
	}
	g := &RangeGraph{
		radius: radius,
		nodes:  make([]city.Coord, 0, len(towers)),
		index:  make(map[city.Coord]int, len(towers)),
	}
	for _, t := range towers {
		if _, dup := g.index[t]; dup {
			continue
		}
		g.index[t] = len(g.nodes)
		g.nodes = append(g.nodes, t)
	}

	g.adj = make([][]int, len(g.nodes))
	for i, a := range g.nodes {
		for j, b := range g.nodes {
			if i != j && InRange(a, b, radius) {
				g.adj[i] = append(g.adj[i], j)
			}
		}
	}
	return g, nil
}

// Radius returns the tower radius the graph was built with.
func (g *RangeGraph) Radius() int { return g.radius }

// Nodes returns the towers in input order, without duplicates.
func (g *RangeGraph) Nodes() []city.Coord {
	out := make([]city.Coord, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Has reports whether t is a node of the graph.
func (g *RangeGraph) Has(t city.Coord) bool {
	_, ok := g.index[t]
	return ok
}

// Neighbors returns the towers in range of t, in input order.
// Returns INVALID_ARGUMENT if t is not a node.
func (g *RangeGraph) Neighbors(t city.Coord) ([]city.Coord, error) {
	i, ok := g.index[t]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "tower %s not in graph", t)
	}
	out := make([]city.Coord, len(g.adj[i]))
	for k, j := range g.adj[i] {
		out[k] = g.nodes[j]
	}
	return out, nil
}

// EdgeCount returns the number of undirected edges.
func (g *RangeGraph) EdgeCount() int {
	n := 0
	for _, nbrs := range g.adj {
		n += len(nbrs)
	}
	return n / 2
}

// Edges returns every undirected edge once, with the endpoint that appears
// first in the tower list on the left.
func (g *RangeGraph) Edges() [][2]city.Coord {
	out := make([][2]city.Coord, 0, g.EdgeCount())
	for i, nbrs := range g.adj {
		for _, j := range nbrs {
			if i < j {
				out = append(out, [2]city.Coord{g.nodes[i], g.nodes[j]})
			}
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
