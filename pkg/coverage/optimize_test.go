package coverage

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/errors"
)

func mustParse(t *testing.T, rows ...string) *city.Grid {
	t.Helper()
	g, err := city.Parse(rows...)
	require.NoError(t, err)
	return g
}

func TestOptimizeCorners(t *testing.T) {
	g := mustParse(t,
		"#...",
		"....",
		"....",
		"...#",
	)

	var gains []int
	towers, err := Optimize(g, 1, WithOnSelect(func(step int, _ Tower, gain int) {
		assert.Equal(t, len(gains)+1, step)
		gains = append(gains, gain)
	}))
	require.NoError(t, err)

	if diff := cmp.Diff([]Tower{city.C(0, 0), city.C(3, 3)}, towers); diff != "" {
		t.Errorf("towers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{4, 4}, gains)
	assert.Equal(t, ""+
		"T+..\n"+
		"++..\n"+
		"..++\n"+
		"..+T\n", g.String())
}

func TestSelectTieBreaksRowMajor(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		radius int
		want   []Tower
	}{
		{
			name:   "equal ends",
			rows:   []string{"#...#"},
			radius: 1,
			want:   []Tower{city.C(0, 0), city.C(0, 4)},
		},
		{
			name:   "radius zero",
			rows:   []string{"##"},
			radius: 0,
			want:   []Tower{city.C(0, 0), city.C(0, 1)},
		},
		{
			name:   "larger gain beats scan order",
			rows:   []string{"..#", "#..", "..."},
			radius: 1,
			want:   []Tower{city.C(1, 0), city.C(0, 2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			towers, err := Select(mustParse(t, tt.rows...), tt.radius)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, towers); diff != "" {
				t.Errorf("towers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectCountsBlockedCellsTowardGain(t *testing.T) {
	// (0,2) wins the first round with gain 3 because the blocked cells at
	// columns 2 and 3 count as uncovered.
	g := mustParse(t, "#.###.")

	towers, err := Optimize(g, 1)
	require.NoError(t, err)

	if diff := cmp.Diff([]Tower{city.C(0, 2), city.C(0, 4), city.C(0, 0)}, towers); diff != "" {
		t.Errorf("towers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "T+T#T+\n", g.String())
}

func TestSelectDoesNotMutate(t *testing.T) {
	g, err := city.Generate(15, 20, 0.3, rand.New(rand.NewPCG(5, 5)))
	require.NoError(t, err)
	before := g.Clone()

	_, err = Select(g, 2)
	require.NoError(t, err)
	assert.True(t, before.Equal(g))
}

func TestOptimizeNoBlockedCells(t *testing.T) {
	g := mustParse(t, "...", "...")
	towers, err := Optimize(g, 3)
	require.NoError(t, err)
	assert.Empty(t, towers)
	assert.NotNil(t, towers)
	assert.Equal(t, 6, g.Count(city.Empty))
}

func TestOptimizeRejectsNegativeRadius(t *testing.T) {
	g := mustParse(t, "#..", "...")
	_, err := Optimize(g, -1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
	assert.Equal(t, 1, g.Count(city.Blocked))
	assert.Equal(t, 0, g.Count(city.Tower))

	_, err = Select(nil, 1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
}

// TestOptimizeInvariants checks the placement properties on random cities.
func TestOptimizeInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 12; seed++ {
		for _, radius := range []int{0, 1, 2, 5} {
			original, err := city.Generate(11+int(seed), 17, 0.3, rand.New(rand.NewPCG(seed, seed)))
			require.NoError(t, err)
			g := original.Clone()

			var rounds int
			towers, err := Optimize(g, radius, WithOnSelect(func(int, Tower, int) { rounds++ }))
			require.NoError(t, err)
			assert.LessOrEqual(t, rounds, g.Size(), "loop bound")

			seen := make(map[Tower]bool)
			for _, tw := range towers {
				assert.Equal(t, city.Blocked, original.At(tw), "tower %s not on a blocked cell", tw)
				assert.False(t, seen[tw], "duplicate tower %s", tw)
				seen[tw] = true
				assert.Equal(t, city.Tower, g.At(tw))
			}

			// Every non-blocked cell in a tower window carries a signal.
			for _, tw := range towers {
				r0, r1, c0, c1 := g.Window(tw, radius)
				for r := r0; r < r1; r++ {
					for c := c0; c < c1; c++ {
						s := g.At(city.C(r, c))
						assert.Contains(t, []city.CellState{city.Signal, city.Tower, city.Blocked}, s)
					}
				}
			}

			// Termination: no blocked cell is left with an uncovered window cell.
			covered := make(map[city.Coord]bool)
			for _, tw := range towers {
				r0, r1, c0, c1 := g.Window(tw, radius)
				for r := r0; r < r1; r++ {
					for c := c0; c < c1; c++ {
						covered[city.C(r, c)] = true
					}
				}
			}
			for _, b := range original.Coords(city.Blocked) {
				r0, r1, c0, c1 := g.Window(b, radius)
				for r := r0; r < r1; r++ {
					for c := c0; c < c1; c++ {
						assert.True(t, covered[city.C(r, c)], "seed %d radius %d: %s reachable from %s but uncovered", seed, radius, city.C(r, c), b)
					}
				}
			}

			// Determinism on an unmutated snapshot.
			again, err := Select(original, radius)
			require.NoError(t, err)
			if diff := cmp.Diff(towers, again); diff != "" {
				t.Errorf("seed %d radius %d: Select not deterministic (-first +second):\n%s", seed, radius, diff)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	g := mustParse(t,
		"#...",
		"....",
		"....",
		"...#",
	)
	_, err := Optimize(g, 1)
	require.NoError(t, err)

	s := Summarize(g)
	assert.Equal(t, Summary{Cells: 16, Blocked: 0, Signal: 6, Towers: 2, Empty: 8, Ratio: 6.0 / 14.0}, s)
}
