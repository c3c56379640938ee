package coverage

import (
	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/errors"
)

// Tower is the coordinate of a selected tower.
type Tower = city.Coord

// Optimize selects towers with [Select] and then marks each of them on g,
// in selection order, with [city.Grid.MarkTowerAndCoverage].
// The returned slice is in selection order.
//
// Returns INVALID_CONFIGURATION for a negative radius; g is not modified in
// that case. A grid without Blocked cells yields an empty result and is left
// unchanged.
func Optimize(g *city.Grid, radius int, opts ...Option) ([]Tower, error) {
	towers, err := Select(g, radius, opts...)
	if err != nil {
		return nil, err
	}
	for _, t := range towers {
		if err := g.MarkTowerAndCoverage(t, radius); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "mark tower %s", t)
		}
	}
	return towers, nil
}

// Select runs the greedy search and returns the chosen towers without
// modifying g.
func Select(g *city.Grid, radius int, opts ...Option) ([]Tower, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "grid is nil")
	}
	if err := errors.ValidateRadius(radius); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	candidates := g.Coords(city.Blocked)
	s := newSearch(g, radius)
	towers := make([]Tower, 0)

	// Every round covers at least one new cell, so there are at most
	// rows*cols rounds.
	for round := 1; round <= g.Size(); round++ {
		best, gain := s.best(candidates)
		if gain == 0 {
			break
		}
		towers = append(towers, best)
		s.cover(best)
		o.OnSelect(round, best, gain)
	}
	return towers, nil
}

// search holds the transient coverage map for one Select call.
type search struct {
	grid    *city.Grid
	radius  int
	cols    int
	covered []bool
}

func newSearch(g *city.Grid, radius int) *search {
	return &search{
		grid:    g,
		radius:  radius,
		cols:    g.Cols(),
		covered: make([]bool, g.Size()),
	}
}

// best returns the first candidate, in row-major order, with the largest gain.
// Candidates must already be sorted row-major.
func (s *search) best(candidates []Tower) (Tower, int) {
	var best Tower
	bestGain := 0
	for _, c := range candidates {
		if gain := s.gain(c); gain > bestGain {
			best, bestGain = c, gain
		}
	}
	return best, bestGain
}

// gain counts uncovered cells in the window of c, blocked cells included.
func (s *search) gain(c Tower) int {
	r0, r1, c0, c1 := s.grid.Window(c, s.radius)
	n := 0
	for r := r0; r < r1; r++ {
		row := s.covered[r*s.cols : (r+1)*s.cols]
		for col := c0; col < c1; col++ {
			if !row[col] {
				n++
			}
		}
	}
	return n
}

// cover marks the whole window of c as covered.
func (s *search) cover(c Tower) {
	r0, r1, c0, c1 := s.grid.Window(c, s.radius)
	for r := r0; r < r1; r++ {
		row := s.covered[r*s.cols : (r+1)*s.cols]
		for col := c0; col < c1; col++ {
			row[col] = true
		}
	}
}
