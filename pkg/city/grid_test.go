package city

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/signaltower/pkg/errors"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestNewRejectsNonPositiveDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-3, 4}} {
		_, err := New(dims[0], dims[1])
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration), "New(%d, %d) = %v", dims[0], dims[1], err)
	}
}

func TestNewIsEmpty(t *testing.T) {
	g, err := New(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 12, g.Count(Empty))
}

func TestPopulateBlockedCount(t *testing.T) {
	tests := []struct {
		rows, cols int
		fraction   float64
	}{
		{1, 1, 0},
		{4, 4, 0.125},
		{10, 10, 0.29},
		{22, 30, 0.3},
		{7, 13, 0.99},
		{50, 50, 0.5},
	}

	for _, tt := range tests {
		g, err := Generate(tt.rows, tt.cols, tt.fraction, seeded(7))
		require.NoError(t, err)

		want := int(float64(tt.rows*tt.cols) * tt.fraction)
		assert.Equal(t, want, g.Count(Blocked), "%dx%d @ %v", tt.rows, tt.cols, tt.fraction)
		assert.Equal(t, g.Size()-want, g.Count(Empty), "only Empty and Blocked may appear")
	}
}

func TestPopulateBlockedIsSeedDeterministic(t *testing.T) {
	a, err := Generate(22, 30, 0.3, seeded(42))
	require.NoError(t, err)
	b, err := Generate(22, 30, 0.3, seeded(42))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := Generate(22, 30, 0.3, seeded(43))
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestPopulateBlockedRejectsBeforeMutation(t *testing.T) {
	g, err := New(4, 4)
	require.NoError(t, err)

	for _, f := range []float64{1, 1.2, -0.5} {
		err := g.PopulateBlocked(f, seeded(1))
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration), "fraction %v: %v", f, err)
	}
	assert.Equal(t, 16, g.Count(Empty))

	err = g.PopulateBlocked(0.5, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
}

func TestPopulateBlockedNotEnoughEmptyCells(t *testing.T) {
	g, err := Parse(
		"###",
		"##.",
	)
	require.NoError(t, err)

	// floor(6*0.5) = 3 but only one Empty cell is left.
	err = g.PopulateBlocked(0.5, seeded(1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
	assert.Equal(t, 1, g.Count(Empty))
}

func TestMarkTowerAndCoverage(t *testing.T) {
	g, err := Parse(
		".....",
		".#...",
		"..#..",
		".....",
		"....#",
	)
	require.NoError(t, err)

	require.NoError(t, g.MarkTowerAndCoverage(C(2, 2), 1))
	assert.Equal(t, ""+
		".....\n"+
		".#++.\n"+
		".+T+.\n"+
		".+++.\n"+
		"....#\n", g.String())
}

func TestMarkTowerAndCoverageClipsAtEdges(t *testing.T) {
	g, err := Parse(
		"#...",
		"....",
		"....",
		"...#",
	)
	require.NoError(t, err)

	require.NoError(t, g.MarkTowerAndCoverage(C(0, 0), 2))
	assert.Equal(t, ""+
		"T++.\n"+
		"+++.\n"+
		"+++.\n"+
		"...#\n", g.String())
}

func TestMarkTowerAndCoverageKeepsTowers(t *testing.T) {
	g, err := Parse(
		"#.#",
		"...",
	)
	require.NoError(t, err)

	require.NoError(t, g.MarkTowerAndCoverage(C(0, 0), 2))
	require.NoError(t, g.MarkTowerAndCoverage(C(0, 2), 2))
	assert.Equal(t, Tower, g.At(C(0, 0)))
	assert.Equal(t, Tower, g.At(C(0, 2)))
	assert.Equal(t, 4, g.Count(Signal))
}

func TestMarkTowerAndCoverageIdempotent(t *testing.T) {
	g, err := Generate(12, 9, 0.3, seeded(3))
	require.NoError(t, err)
	tower := g.Coords(Blocked)[0]

	once := g.Clone()
	require.NoError(t, once.MarkTowerAndCoverage(tower, 2))
	twice := g.Clone()
	require.NoError(t, twice.MarkTowerAndCoverage(tower, 2))
	require.NoError(t, twice.MarkTowerAndCoverage(tower, 2))

	assert.True(t, once.Equal(twice))
}

func TestMarkTowerAndCoverageValidation(t *testing.T) {
	g, err := New(3, 3)
	require.NoError(t, err)

	err = g.MarkTowerAndCoverage(C(3, 0), 1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))

	err = g.MarkTowerAndCoverage(C(1, 1), -1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))

	assert.Equal(t, 9, g.Count(Empty), "failed calls must not mutate")
}

func TestWindow(t *testing.T) {
	g, err := New(5, 8)
	require.NoError(t, err)

	tests := []struct {
		c              Coord
		radius         int
		r0, r1, c0, c1 int
	}{
		{C(2, 2), 0, 2, 3, 2, 3},
		{C(2, 2), 1, 1, 4, 1, 4},
		{C(0, 0), 3, 0, 4, 0, 4},
		{C(4, 7), 2, 2, 5, 5, 8},
		{C(2, 4), 10, 0, 5, 0, 8},
	}
	for _, tt := range tests {
		r0, r1, c0, c1 := g.Window(tt.c, tt.radius)
		assert.Equal(t, [4]int{tt.r0, tt.r1, tt.c0, tt.c1}, [4]int{r0, r1, c0, c1}, "Window(%s, %d)", tt.c, tt.radius)
	}
}

func TestCellsIsACopy(t *testing.T) {
	g, err := Parse("#.", "..")
	require.NoError(t, err)

	cells := g.Cells()
	cells[0][0] = Tower
	assert.Equal(t, Blocked, g.At(C(0, 0)))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("..", "...")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = Parse("..", ".x")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = Parse()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
}

func TestGridJSON(t *testing.T) {
	g, err := Parse(
		"#.+",
		"T..",
	)
	require.NoError(t, err)

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":2,"cols":3,"cells":["#.+","T.."]}`, string(data))

	var back Grid
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, g.Equal(&back))

	assert.Error(t, json.Unmarshal([]byte(`{"rows":3,"cols":3,"cells":["..."]}`), &back))
}

func TestCoordJSON(t *testing.T) {
	data, err := json.Marshal([]Coord{C(1, 2), C(0, 7)})
	require.NoError(t, err)
	assert.Equal(t, `[[1,2],[0,7]]`, string(data))

	var c Coord
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &c))
}

func TestCellStateNames(t *testing.T) {
	for _, s := range States {
		data, err := json.Marshal(s)
		require.NoError(t, err)
		var back CellState
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, s, back)
	}
	assert.Equal(t, "CellState(9)", CellState(9).String())
}
