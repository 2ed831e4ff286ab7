// SPDX-License-Identifier: MIT

package dijkstra_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KerryPearn/routino-gm-scenarios/core"
	"github.com/KerryPearn/routino-gm-scenarios/dijkstra"
	"github.com/KerryPearn/routino-gm-scenarios/errkind"
)

// diamond: 1→2 (2), 1→3 (1), 3→2 (1), 2→4 (3), 3→4 (5), 5 isolated.
func diamond(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithDirected(true))
	for _, e := range []struct {
		from, to int64
		w        float64
	}{{1, 2, 2}, {1, 3, 1}, {3, 2, 1}, {2, 4, 3}, {3, 4, 5}} {
		_, err := g.AddEdge(e.from, e.to, e.w)
		require.NoError(t, err)
	}
	require.NoError(t, g.AddVertex(5))

	return g
}

func TestDijkstraValidation(t *testing.T) {
	t.Parallel()

	g := diamond(t)
	_, err := dijkstra.Dijkstra(g)
	require.ErrorIs(t, err, dijkstra.ErrNoSource)
	require.ErrorIs(t, err, errkind.ErrConfiguration)

	_, err = dijkstra.Dijkstra(nil, dijkstra.Source(1))
	require.ErrorIs(t, err, dijkstra.ErrNilGraph)

	_, err = dijkstra.Dijkstra(g, dijkstra.Source(42))
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)
	require.ErrorIs(t, err, errkind.ErrData)

	_, err = dijkstra.Dijkstra(g, dijkstra.Source(1), dijkstra.WithTargets(4, 42))
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)

	require.Panics(t, func() { dijkstra.WithMaxDistance(-1) })
	require.Panics(t, func() { dijkstra.WithMaxDistance(math.NaN()) })
}

func TestDijkstraDistancesAndPath(t *testing.T) {
	t.Parallel()

	res, err := dijkstra.Dijkstra(diamond(t), dijkstra.Source(1), dijkstra.WithReturnPath())
	require.NoError(t, err)

	want := map[int64]float64{1: 0, 2: 2, 3: 1, 4: 5, 5: math.Inf(1)}
	for id, d := range want {
		got, err := res.Dist(id)
		require.NoError(t, err)
		require.Equal(t, d, got, "vertex %d", id)
	}
	require.True(t, res.Reached(4))
	require.False(t, res.Reached(5))

	path, err := res.Path(4)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 4}, path)

	path, err = res.Path(1)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, path)

	_, err = res.Path(5)
	require.ErrorIs(t, err, dijkstra.ErrNoPath)
	_, err = res.Dist(42)
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)
}

func TestDijkstraPathNotTracked(t *testing.T) {
	t.Parallel()

	res, err := dijkstra.Dijkstra(diamond(t), dijkstra.Source(1))
	require.NoError(t, err)
	_, err = res.Path(4)
	require.ErrorIs(t, err, dijkstra.ErrPathNotTracked)
}

func TestDijkstraUndirected(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	_, _ = g.AddEdge(1, 2, 1)
	_, _ = g.AddEdge(2, 3, 2)
	res, err := dijkstra.Dijkstra(g, dijkstra.Source(3))
	require.NoError(t, err)
	d, _ := res.Dist(1)
	require.Equal(t, 3.0, d)
}

func TestDijkstraMaxDistance(t *testing.T) {
	t.Parallel()

	res, err := dijkstra.Dijkstra(diamond(t), dijkstra.Source(1), dijkstra.WithMaxDistance(2))
	require.NoError(t, err)
	d, _ := res.Dist(2)
	require.Equal(t, 2.0, d)
	d, _ = res.Dist(4)
	require.True(t, math.IsInf(d, 1))
}

func TestDijkstraTargetsStopEarly(t *testing.T) {
	t.Parallel()

	res, err := dijkstra.Dijkstra(diamond(t), dijkstra.Source(1), dijkstra.WithTargets(3))
	require.NoError(t, err)
	d, _ := res.Dist(3)
	require.Equal(t, 1.0, d)
	require.False(t, res.Reached(4), "search stops once 3 is settled")
}

// TestDijkstraMatchesFloydWarshall checks random graphs against an O(V³)
// all-pairs reference.
func TestDijkstraMatchesFloydWarshall(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	const n = 25
	g := core.NewGraph(core.WithDirected(true), core.WithMultiEdges())
	ref := make([][]float64, n)
	for i := range ref {
		ref[i] = make([]float64, n)
		for j := range ref[i] {
			ref[i][j] = math.Inf(1)
		}
		ref[i][i] = 0
		require.NoError(t, g.AddVertex(int64(i)))
	}
	for k := 0; k < 120; k++ {
		u, v := rng.Intn(n), rng.Intn(n)
		if u == v {
			continue
		}
		w := float64(rng.Intn(20))
		_, err := g.AddEdge(int64(u), int64(v), w)
		require.NoError(t, err)
		ref[u][v] = math.Min(ref[u][v], w)
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				ref[i][j] = math.Min(ref[i][j], ref[i][k]+ref[k][j])
			}
		}
	}

	for s := 0; s < n; s++ {
		res, err := dijkstra.Dijkstra(g, dijkstra.Source(int64(s)))
		require.NoError(t, err)
		for v := 0; v < n; v++ {
			d, err := res.Dist(int64(v))
			require.NoError(t, err)
			require.Equal(t, ref[s][v], d, "%d→%d", s, v)
		}
	}
}

func BenchmarkDijkstraGrid(b *testing.B) {
	const side = 100
	g := core.NewGraph()
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			id := int64(r*side + c)
			if c+1 < side {
				_, _ = g.AddEdge(id, id+1, 1)
			}
			if r+1 < side {
				_, _ = g.AddEdge(id, id+side, 1)
			}
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dijkstra.Dijkstra(g, dijkstra.Source(0)); err != nil {
			b.Fatal(err)
		}
	}
}
