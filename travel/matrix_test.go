// SPDX-License-Identifier: MIT

package travel_test

import (
	"math"
	"testing"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"github.com/KerryPearn/routino-gm-scenarios/matrix"
	"github.com/KerryPearn/routino-gm-scenarios/travel"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// costs builds a raw cost matrix accepting NaN and ±Inf.
func costs(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	var data []float64
	for _, r := range rows {
		data = append(data, r...)
	}
	d, err := matrix.NewDenseFrom(len(rows), len(rows[0]), data, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)

	return d
}

func TestNewValid(t *testing.T) {
	t.Parallel()

	tm, err := travel.New(
		[]string{"P1", "P2", "P3"},
		[]string{"A", "B"},
		costs(t, [][]float64{{10, 20}, {30, math.Inf(1)}, {nan, nan}}),
		[]float64{5, 3, 1},
	)
	require.NoError(t, err)
	require.Equal(t, 3, tm.NumPoints())
	require.Equal(t, 2, tm.NumLocations())
	require.Equal(t, []string{"A", "B"}, tm.Locations())
	require.True(t, math.IsNaN(tm.Cost(1, 1)), "+Inf is unreachable")
	require.Equal(t, 3, tm.Unreachable())
	require.Equal(t, 9.0, tm.TotalActivity())
	require.Equal(t, 3.0, tm.Activity(1))

	i, ok := tm.PointIndex("P2")
	require.True(t, ok)
	require.Equal(t, 1, i)
	j, ok := tm.LocationIndex("B")
	require.True(t, ok)
	require.Equal(t, 1, j)

	c, arg := tm.RowMin(0)
	require.Equal(t, 10.0, c)
	require.Equal(t, 0, arg)
	c, arg = tm.RowMin(1)
	require.Equal(t, 30.0, c)
	require.Equal(t, 0, arg)
	c, arg = tm.RowMin(2)
	require.True(t, math.IsNaN(c))
	require.Equal(t, -1, arg)
}

func TestRowMinTieBreaksOnFirstColumn(t *testing.T) {
	t.Parallel()

	tm, err := travel.New([]string{"P"}, []string{"A", "B", "C"},
		costs(t, [][]float64{{nan, 4, 4}}), []float64{1})
	require.NoError(t, err)
	c, arg := tm.RowMin(0)
	require.Equal(t, 4.0, c)
	require.Equal(t, 1, arg)
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	ok2x2 := costs(t, [][]float64{{1, 2}, {3, 4}})
	cases := []struct {
		name      string
		points    []string
		locations []string
		costs     matrix.Matrix
		activity  []float64
		want      error
		kind      error
	}{
		{"no locations", []string{"P"}, nil, ok2x2, []float64{1}, travel.ErrNoLocations, errkind.ErrConfiguration},
		{"no points", nil, []string{"A"}, ok2x2, nil, travel.ErrNoPoints, errkind.ErrData},
		{"duplicate point", []string{"P", "P"}, []string{"A", "B"}, ok2x2, []float64{1, 1}, travel.ErrDuplicateID, errkind.ErrData},
		{"duplicate location", []string{"P", "Q"}, []string{"A", "A"}, ok2x2, []float64{1, 1}, travel.ErrDuplicateID, errkind.ErrData},
		{"shape", []string{"P"}, []string{"A", "B"}, ok2x2, []float64{1}, travel.ErrShape, errkind.ErrData},
		{"nil costs", []string{"P"}, []string{"A"}, nil, []float64{1}, travel.ErrShape, errkind.ErrData},
		{"activity len", []string{"P", "Q"}, []string{"A", "B"}, ok2x2, []float64{1}, travel.ErrShape, errkind.ErrData},
		{"nil activity", []string{"P", "Q"}, []string{"A", "B"}, ok2x2, nil, travel.ErrShape, errkind.ErrData},
		{"negative activity", []string{"P", "Q"}, []string{"A", "B"}, ok2x2, []float64{1, -1}, travel.ErrBadActivity, errkind.ErrData},
		{"NaN activity", []string{"P", "Q"}, []string{"A", "B"}, ok2x2, []float64{nan, 1}, travel.ErrBadActivity, errkind.ErrData},
		{"negative cost", []string{"P"}, []string{"A"}, costs(t, [][]float64{{-1}}), []float64{1}, travel.ErrBadCost, errkind.ErrData},
		{"-Inf cost", []string{"P"}, []string{"A"}, costs(t, [][]float64{{math.Inf(-1)}}), []float64{1}, travel.ErrBadCost, errkind.ErrData},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := travel.New(tc.points, tc.locations, tc.costs, tc.activity)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestNewCopiesInputs(t *testing.T) {
	t.Parallel()

	points := []string{"P"}
	activity := []float64{2}
	raw := costs(t, [][]float64{{7}})
	tm, err := travel.New(points, []string{"A"}, raw, activity)
	require.NoError(t, err)

	points[0] = "X"
	activity[0] = 99
	require.NoError(t, raw.Set(0, 0, 1))
	require.Equal(t, "P", tm.Points()[0])
	require.Equal(t, 2.0, tm.Activity(0))
	require.Equal(t, 7.0, tm.Cost(0, 0))
}

func TestJoin(t *testing.T) {
	t.Parallel()

	ct := travel.CostTable{
		Points:    []string{"P1", "P2", "P3"},
		Locations: []string{"A", "B"},
		Costs:     costs(t, [][]float64{{10, 20}, {30, 15}, {1, 1}}),
	}
	tm, err := travel.Join(ct, []travel.Weight{
		{Point: "P2", Activity: 3},
		{Point: "P1", Activity: 5},
		{Point: "ZZ", Activity: 8},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"P1", "P2"}, tm.Points(), "cost table order is kept")
	require.Equal(t, []float64{30, 15}, tm.Row(1))
	require.Equal(t, 5.0, tm.Activity(0))

	_, err = travel.Join(ct, []travel.Weight{{Point: "nope", Activity: 1}})
	require.ErrorIs(t, err, travel.ErrEmptyJoin)

	_, err = travel.Join(ct, []travel.Weight{{Point: "P1", Activity: 1}, {Point: "P1", Activity: 2}})
	require.ErrorIs(t, err, travel.ErrDuplicateID)

	dup := ct
	dup.Points = []string{"P1", "P1", "P3"}
	_, err = travel.Join(dup, []travel.Weight{{Point: "P1", Activity: 1}})
	require.ErrorIs(t, err, travel.ErrDuplicateID)
}
