package city

import (
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/signaltower/pkg/errors"
)

// Grid is a rows×cols matrix of cell states.
//
// A Grid is not safe for concurrent mutation; it is owned by whoever created
// it and handed to the optimizer by pointer.
type Grid struct {
	rows, cols int
	cells      []CellState
}

// New returns a rows×cols grid with every cell Empty.
// Returns INVALID_CONFIGURATION if either dimension is not positive.
func New(rows, cols int) (*Grid, error) {
	if err := errors.ValidateDimensions(rows, cols); err != nil {
		return nil, err
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]CellState, rows*cols),
	}, nil
}

// Generate creates a rows×cols grid and blocks floor(rows*cols*fraction) cells
// sampled from rng. All parameters are validated before the grid is allocated.
func Generate(rows, cols int, fraction float64, rng *rand.Rand) (*Grid, error) {
	if err := errors.ValidateFraction(fraction); err != nil {
		return nil, err
	}
	g, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if err := g.PopulateBlocked(fraction, rng); err != nil {
		return nil, err
	}
	return g, nil
}

// BlockedTarget returns floor(rows*cols*fraction), the number of cells that
// PopulateBlocked will block.
func BlockedTarget(rows, cols int, fraction float64) int {
	return int(float64(rows*cols) * fraction)
}

// PopulateBlocked turns floor(rows*cols*fraction) Empty cells into Blocked.
//
// It repeatedly samples a uniform coordinate from rng; an Empty cell becomes
// Blocked and decrements the remaining count, any other cell is resampled.
// The call fails with INVALID_CONFIGURATION, without touching the grid, when
// fraction is outside [0, 1) or when the grid does not have enough Empty
// cells left to satisfy the request.
func (g *Grid) PopulateBlocked(fraction float64, rng *rand.Rand) error {
	if err := errors.ValidateFraction(fraction); err != nil {
		return err
	}
	if rng == nil {
		return errors.New(errors.ErrCodeInvalidConfiguration, "random source is nil")
	}
	remaining := BlockedTarget(g.rows, g.cols, fraction)
	if free := g.Count(Empty); remaining > free {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"cannot block %d cells, only %d empty cells left", remaining, free)
	}

	for remaining > 0 {
		i := g.index(rng.IntN(g.rows), rng.IntN(g.cols))
		if g.cells[i] == Empty {
			g.cells[i] = Blocked
			remaining--
		}
	}
	return nil
}

// SetBlocked marks c as Blocked. It is meant for building fixed layouts;
// random cities use PopulateBlocked.
func (g *Grid) SetBlocked(c Coord) error {
	if !g.InBounds(c) {
		return errors.New(errors.ErrCodeInvalidArgument, "coordinate %s outside %dx%d grid", c, g.rows, g.cols)
	}
	g.cells[g.index(c.Row, c.Col)] = Blocked
	return nil
}

// MarkTowerAndCoverage places a tower at c and marks its coverage window.
//
// The center cell becomes Tower. Every other cell of the clipped window that
// is neither Blocked nor Tower becomes Signal. Calling it twice with the same
// arguments leaves the grid as one call would.
func (g *Grid) MarkTowerAndCoverage(c Coord, radius int) error {
	if !g.InBounds(c) {
		return errors.New(errors.ErrCodeInvalidArgument, "tower %s outside %dx%d grid", c, g.rows, g.cols)
	}
	if err := errors.ValidateRadius(radius); err != nil {
		return err
	}

	r0, r1, c0, c1 := g.Window(c, radius)
	for r := r0; r < r1; r++ {
		for col := c0; col < c1; col++ {
			i := g.index(r, col)
			switch {
			case r == c.Row && col == c.Col:
				g.cells[i] = Tower
			case g.cells[i] != Blocked && g.cells[i] != Tower:
				g.cells[i] = Signal
			}
		}
	}
	return nil
}

// Window returns the half-open bounds [r0,r1)×[c0,c1) of the coverage window
// of radius around c, clipped to the grid.
func (g *Grid) Window(c Coord, radius int) (r0, r1, c0, c1 int) {
	r0 = max(0, c.Row-radius)
	r1 = min(g.rows, c.Row+radius+1)
	c0 = max(0, c.Col-radius)
	c1 = min(g.cols, c.Col+radius+1)
	return r0, r1, c0, c1
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns rows*cols.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the state of c. It panics if c is out of bounds, like a slice index.
func (g *Grid) At(c Coord) CellState {
	if !g.InBounds(c) {
		panic("city: coordinate " + c.String() + " out of bounds")
	}
	return g.cells[g.index(c.Row, c.Col)]
}

// Count returns how many cells are in state s.
func (g *Grid) Count(s CellState) int {
	n := 0
	for _, cell := range g.cells {
		if cell == s {
			n++
		}
	}
	return n
}

// Coords returns every coordinate in state s, in row-major order.
func (g *Grid) Coords(s CellState) []Coord {
	var out []Coord
	for i, cell := range g.cells {
		if cell == s {
			out = append(out, g.coordinate(i))
		}
	}
	return out
}

// Cells returns a copy of the cell matrix indexed [row][col].
func (g *Grid) Cells() [][]CellState {
	out := make([][]CellState, g.rows)
	for r := range out {
		out[r] = make([]CellState, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]CellState, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Equal reports whether g and o have the same dimensions and cell states.
func (g *Grid) Equal(o *Grid) bool {
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid in text notation, one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows)
	for _, row := range g.rowStrings() {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse builds a grid from text notation, one string per row.
// Returns INVALID_INPUT for ragged rows or unknown runes.
func Parse(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "grid must have at least one row")
	}
	width := len([]rune(rows[0]))
	g, err := New(len(rows), width)
	if err != nil {
		return nil, err
	}
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, errors.New(errors.ErrCodeInvalidInput, "row %d has %d cells, want %d", r, len(runes), width)
		}
		for c, ch := range runes {
			s, ok := stateFromRune(ch)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "row %d col %d: unknown cell %q", r, c, ch)
			}
			g.cells[g.index(r, c)] = s
		}
	}
	return g, nil
}

func (g *Grid) rowStrings() []string {
	out := make([]string, g.rows)
	buf := make([]rune, g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			buf[c] = g.cells[g.index(r, c)].Rune()
		}
		out[r] = string(buf)
	}
	return out
}

// index maps (row, col) to the row-major offset.
func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

// coordinate converts a row-major offset back to a Coord.
func (g *Grid) coordinate(i int) Coord {
	return Coord{Row: i / g.cols, Col: i % g.cols}
}
