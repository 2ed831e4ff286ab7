// SPDX-License-Identifier: MIT

package scenario_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/KerryPearn/routino-gm-scenarios/matrix"
	"github.com/KerryPearn/routino-gm-scenarios/scenario"
	"github.com/KerryPearn/routino-gm-scenarios/travel"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// newMatrix builds a travel matrix with generated identifiers.
func newMatrix(t testing.TB, rows [][]float64, activity []float64) *travel.Matrix {
	t.Helper()
	n, m := len(rows), len(rows[0])
	var data []float64
	for _, r := range rows {
		data = append(data, r...)
	}
	costs, err := matrix.NewDenseFrom(n, m, data, matrix.WithAllowNaN())
	require.NoError(t, err)
	points := make([]string, n)
	for i := range points {
		points[i] = "P" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	locations := make([]string, m)
	for j := range locations {
		locations[j] = "L" + string(rune('A'+j))
	}
	tm, err := travel.New(points, locations, costs, activity)
	require.NoError(t, err)

	return tm
}

// randomMatrix draws integer costs in [0,60) with ~10% unreachable pairs.
func randomMatrix(t testing.TB, rng *rand.Rand, n, m int) *travel.Matrix {
	t.Helper()
	rows := make([][]float64, n)
	activity := make([]float64, n)
	for i := range rows {
		rows[i] = make([]float64, m)
		for j := range rows[i] {
			if rng.Intn(10) == 0 {
				rows[i][j] = nan
				continue
			}
			rows[i][j] = float64(rng.Intn(60))
		}
		activity[i] = float64(rng.Intn(20))
	}

	return newMatrix(t, rows, activity)
}

// evaluate runs Evaluate + Aggregate for one member set.
func evaluate(t testing.TB, tm *travel.Matrix, threshold float64, members ...int) (*scenario.Assignment, *scenario.Statistics) {
	t.Helper()
	s, err := scenario.New(0, members, tm.NumLocations())
	require.NoError(t, err)
	a := scenario.NewAssignment(tm.NumPoints())
	require.NoError(t, scenario.NewEvaluator(tm).Evaluate(s, a))
	ag, err := scenario.NewAggregator(tm, threshold)
	require.NoError(t, err)
	var st scenario.Statistics
	require.NoError(t, ag.Aggregate(s, a, &st))

	return a, &st
}
