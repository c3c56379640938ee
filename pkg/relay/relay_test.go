package relay

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/errors"
)

func TestInRange(t *testing.T) {
	tests := []struct {
		a, b   city.Coord
		radius int
		want   bool
	}{
		{city.C(0, 0), city.C(3, 3), 1, true},
		{city.C(0, 0), city.C(3, 3), 0, false},
		{city.C(0, 0), city.C(1, 1), 0, true},
		{city.C(0, 0), city.C(4, 0), 1, false},
		{city.C(5, 5), city.C(0, 10), 2, true},
		{city.C(5, 5), city.C(5, 5), 0, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InRange(tt.a, tt.b, tt.radius), "InRange(%s, %s, %d)", tt.a, tt.b, tt.radius)
		assert.Equal(t, tt.want, InRange(tt.b, tt.a, tt.radius), "symmetry")
	}
}

func TestFindPathCorners(t *testing.T) {
	towers := []city.Coord{city.C(0, 0), city.C(3, 3)}

	path, err := FindPath(1, towers, city.C(0, 0), city.C(3, 3))
	require.NoError(t, err)
	assert.Equal(t, []city.Coord{city.C(0, 0), city.C(3, 3)}, path)

	path, err = FindPath(0, towers, city.C(0, 0), city.C(3, 3))
	require.NoError(t, err)
	assert.NotNil(t, path)
	assert.Empty(t, path)
}

func TestFindPathSameTower(t *testing.T) {
	towers := []city.Coord{city.C(2, 2), city.C(9, 9)}
	for _, tw := range towers {
		path, err := FindPath(0, towers, tw, tw)
		require.NoError(t, err)
		assert.Equal(t, []city.Coord{tw}, path)
	}
}

func TestFindPathUnknownEndpoint(t *testing.T) {
	towers := []city.Coord{city.C(0, 0), city.C(1, 1)}

	_, err := FindPath(1, towers, city.C(5, 5), city.C(1, 1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))

	_, err = FindPath(1, towers, city.C(0, 0), city.C(5, 5))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))

	_, err = FindPath(1, nil, city.C(0, 0), city.C(0, 0))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))

	_, err = FindPath(-1, towers, city.C(0, 0), city.C(1, 1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
}

func TestFindPathChain(t *testing.T) {
	towers := []city.Coord{city.C(0, 9), city.C(0, 0), city.C(0, 6), city.C(0, 3)}

	path, err := FindPath(1, towers, city.C(0, 0), city.C(0, 9))
	require.NoError(t, err)
	want := []city.Coord{city.C(0, 0), city.C(0, 3), city.C(0, 6), city.C(0, 9)}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}

	hops, ok, err := HopDistance(1, towers, city.C(0, 9), city.C(0, 0))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, hops)
}

func TestFindPathFollowsInputOrder(t *testing.T) {
	a, b, c, d := city.C(1, 1), city.C(0, 2), city.C(2, 2), city.C(1, 3)

	path, err := FindPath(0, []city.Coord{a, b, c, d}, a, d)
	require.NoError(t, err)
	assert.Equal(t, []city.Coord{a, b, d}, path)

	path, err = FindPath(0, []city.Coord{a, c, b, d}, a, d)
	require.NoError(t, err)
	assert.Equal(t, []city.Coord{a, c, d}, path)
}

func TestRangeGraphNeighbors(t *testing.T) {
	a, b, c, d := city.C(1, 1), city.C(0, 2), city.C(2, 2), city.C(1, 3)
	g, err := NewRangeGraph(0, []city.Coord{d, a, b, a, c})
	require.NoError(t, err)

	assert.Equal(t, []city.Coord{d, a, b, c}, g.Nodes())
	assert.Equal(t, 4, g.EdgeCount())

	nbrs, err := g.Neighbors(a)
	require.NoError(t, err)
	assert.Equal(t, []city.Coord{b, c}, nbrs)

	nbrs, err = g.Neighbors(d)
	require.NoError(t, err)
	assert.Equal(t, []city.Coord{b, c}, nbrs)

	assert.Equal(t, [][2]city.Coord{{d, b}, {d, c}, {a, b}, {a, c}}, g.Edges())

	_, err = g.Neighbors(city.C(7, 7))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
}

func TestBFSDepthAndOrder(t *testing.T) {
	towers := []city.Coord{city.C(0, 0), city.C(0, 3), city.C(0, 6), city.C(3, 0), city.C(20, 20)}
	g, err := NewRangeGraph(1, towers)
	require.NoError(t, err)

	var dequeued []city.Coord
	res, err := g.BFS(city.C(0, 0), WithOnDequeue(func(t city.Coord, _ int) {
		dequeued = append(dequeued, t)
	}))
	require.NoError(t, err)

	assert.Equal(t, []city.Coord{city.C(0, 0), city.C(0, 3), city.C(3, 0), city.C(0, 6)}, res.Order)
	assert.Equal(t, res.Order, dequeued)
	assert.Equal(t, map[city.Coord]int{
		city.C(0, 0): 0,
		city.C(0, 3): 1,
		city.C(3, 0): 1,
		city.C(0, 6): 2,
	}, res.Depth)
	assert.False(t, res.Reached(city.C(20, 20)))

	path, ok := res.PathTo(city.C(20, 20))
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestBFSStopsAtTarget(t *testing.T) {
	towers := []city.Coord{city.C(0, 0), city.C(0, 3), city.C(0, 6), city.C(0, 9)}
	g, err := NewRangeGraph(1, towers)
	require.NoError(t, err)

	res, err := g.BFS(city.C(0, 0), WithTarget(city.C(0, 3)))
	require.NoError(t, err)
	assert.Equal(t, []city.Coord{city.C(0, 0), city.C(0, 3)}, res.Order)

	_, err = g.BFS(city.C(1, 1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
}

// TestFindPathProperties checks path shape against BFS depths on random tower sets.
func TestFindPathProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 11))
	for trial := 0; trial < 40; trial++ {
		radius := rng.IntN(3)
		seen := make(map[city.Coord]bool)
		var towers []city.Coord
		for len(towers) < 12 {
			c := city.C(rng.IntN(30), rng.IntN(30))
			if !seen[c] {
				seen[c] = true
				towers = append(towers, c)
			}
		}
		g, err := NewRangeGraph(radius, towers)
		require.NoError(t, err)

		start := towers[0]
		res, err := g.BFS(start)
		require.NoError(t, err)

		for _, end := range towers {
			path, err := FindPath(radius, towers, start, end)
			require.NoError(t, err)

			depth, reached := res.Depth[end]
			if !reached {
				assert.Empty(t, path, "trial %d: %s -> %s should be unreachable", trial, start, end)
				continue
			}
			require.Len(t, path, depth+1, "trial %d: %s -> %s", trial, start, end)
			assert.Equal(t, start, path[0])
			assert.Equal(t, end, path[len(path)-1])
			for i := 1; i < len(path); i++ {
				assert.True(t, InRange(path[i-1], path[i], radius), "hop %s -> %s out of range", path[i-1], path[i])
			}
		}
	}
}
