package relay

import (
	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/errors"
)

// FindPath returns the hop-minimal tower sequence from start to end,
// both inclusive, over the range graph of towers.
//
// The path is empty (non-nil, length 0) when end cannot be reached from
// start, and [start] when start == end. Returns INVALID_ARGUMENT when start
// or end is not in towers and INVALID_CONFIGURATION for a negative radius.
func FindPath(radius int, towers []city.Coord, start, end city.Coord) ([]city.Coord, error) {
	g, err := NewRangeGraph(radius, towers)
	if err != nil {
		return nil, err
	}
	return g.Path(start, end)
}

// Path runs a targeted BFS from start and reconstructs the route to end.
func (g *RangeGraph) Path(start, end city.Coord) ([]city.Coord, error) {
	for _, t := range []city.Coord{start, end} {
		if !g.Has(t) {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "tower %s not among the %d towers", t, len(g.nodes))
		}
	}
	res, err := g.BFS(start, WithTarget(end))
	if err != nil {
		return nil, err
	}
	path, _ := res.PathTo(end)
	return path, nil
}

// HopDistance returns the number of relay hops between start and end, and
// whether end is reachable at all.
func HopDistance(radius int, towers []city.Coord, start, end city.Coord) (int, bool, error) {
	path, err := FindPath(radius, towers, start, end)
	if err != nil {
		return 0, false, err
	}
	if len(path) == 0 {
		return 0, false, nil
	}
	return len(path) - 1, true, nil
}
