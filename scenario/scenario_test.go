// SPDX-License-Identifier: MIT

package scenario_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"github.com/KerryPearn/routino-gm-scenarios/scenario"
	"github.com/stretchr/testify/require"
)

func TestScenarioLoad(t *testing.T) {
	t.Parallel()

	s, err := scenario.New(3, []int{0, 2}, 4)
	require.NoError(t, err)
	require.Equal(t, 3, s.ID)
	require.Equal(t, 4, s.Universe())
	require.Equal(t, 2, s.Size())
	require.True(t, s.IsOpen(2))
	require.False(t, s.IsOpen(1))
	require.Equal(t, []int{0, 2}, s.Open.BitIndices())

	require.NoError(t, s.Load(4, []int{1}))
	require.Equal(t, []int{1}, s.Open.BitIndices(), "previous members are cleared")
	require.Equal(t, 4, s.ID)

	for _, bad := range [][]int{nil, {1, 1}, {2, 0}, {4}, {-1}} {
		err := s.Load(9, bad)
		require.ErrorIs(t, err, scenario.ErrBadScenario, "%v", bad)
		require.ErrorIs(t, err, errkind.ErrConfiguration)
	}
	require.Equal(t, 4, s.ID, "unchanged on error")
	require.Equal(t, []int{1}, s.Members)
}

// TestWorkedExample is the two-location example: P1 (A=10, B=20, w=5),
// P2 (A=30, B=15, w=3), threshold 25.
func TestWorkedExample(t *testing.T) {
	t.Parallel()

	tm := newMatrix(t, [][]float64{{10, 20}, {30, 15}}, []float64{5, 3})

	a, st := evaluate(t, tm, 25, 0)
	require.Equal(t, []float64{10, 30}, a.Cost)
	require.Equal(t, []int{0, 0}, a.Nearest)
	require.Equal(t, 20.0, st.Median.Float())
	require.Equal(t, 30.0, st.Max.Float())
	require.Equal(t, 5.0, st.ActivityWithin.Float())
	require.True(t, st.Locations[0].Open)
	require.False(t, st.Locations[1].Open)
	require.False(t, st.Locations[1].Median.IsDefined())
	require.False(t, st.Locations[1].Activity.IsDefined())

	_, st = evaluate(t, tm, 25, 1)
	require.Equal(t, 17.5, st.Median.Float())
	require.Equal(t, 20.0, st.Max.Float())
	require.Equal(t, 8.0, st.ActivityWithin.Float())

	a, st = evaluate(t, tm, 25, 0, 1)
	require.Equal(t, []int{0, 1}, a.Nearest)
	require.Equal(t, 12.5, st.Median.Float())
	require.Equal(t, 15.0, st.Max.Float())
	require.Equal(t, 8.0, st.ActivityWithin.Float())
	require.Equal(t, 5.0, st.Locations[0].Activity.Float())
	require.Equal(t, 5.0, st.Locations[0].ActivityWithin.Float())
	require.Equal(t, 3.0, st.Locations[1].Activity.Float())
	require.Equal(t, 3.0, st.Locations[1].ActivityWithin.Float())
	require.Equal(t, 10.0, st.Locations[0].Median.Float())
	require.InDelta(t, 14.75, st.P95.Float(), 1e-12)
}

func TestTieBreakAndUnreachable(t *testing.T) {
	t.Parallel()

	tm := newMatrix(t, [][]float64{
		{7, 7, 7},
		{nan, 5, 5},
		{nan, nan, 1},
		{nan, nan, nan},
	}, []float64{1, 1, 1, 1})

	a, st := evaluate(t, tm, 30, 0, 1, 2)
	require.Equal(t, []int{0, 1, 2, scenario.NoLocation}, a.Nearest)
	require.True(t, math.IsNaN(a.Cost[3]))
	require.Equal(t, 3, st.Reachable)
	require.Equal(t, 3.0, st.ActivityWithin.Float(), "unreachable point contributes 0")
	require.Equal(t, 5.0, st.Median.Float())

	// Only location 0 open: the point set it cannot reach is unassigned.
	a, st = evaluate(t, tm, 30, 0)
	require.Equal(t, []int{0, scenario.NoLocation, scenario.NoLocation, scenario.NoLocation}, a.Nearest)
	require.Equal(t, 1, st.Reachable)
	require.Equal(t, 7.0, st.Max.Float())
}

func TestAllUnreachableScenario(t *testing.T) {
	t.Parallel()

	tm := newMatrix(t, [][]float64{{nan, 1}, {nan, 2}}, []float64{1, 1})
	_, st := evaluate(t, tm, 30, 0)
	require.Zero(t, st.Reachable)
	require.False(t, st.Median.IsDefined())
	require.False(t, st.Max.IsDefined())
	require.False(t, st.P95.IsDefined())
	require.True(t, st.ActivityWithin.IsDefined())
	require.Equal(t, 0.0, st.ActivityWithin.Float())

	loc := st.Locations[0]
	require.True(t, loc.Open, "open but nothing assigned")
	require.Zero(t, loc.Assigned)
	require.False(t, loc.Median.IsDefined())
	require.False(t, loc.Activity.IsDefined())
}

func TestOpenLocationWithoutAssignedPoints(t *testing.T) {
	t.Parallel()

	tm := newMatrix(t, [][]float64{{1, 9}, {2, 9}}, []float64{4, 6})
	_, st := evaluate(t, tm, 30, 0, 1)
	require.True(t, st.Locations[1].Open)
	require.Zero(t, st.Locations[1].Assigned)
	require.False(t, st.Locations[1].ActivityWithin.IsDefined())
	require.Equal(t, 10.0, st.Locations[0].Activity.Float())
}

func TestActivitySumsPerLocation(t *testing.T) {
	t.Parallel()

	tm := newMatrix(t, [][]float64{{40, 5}, {50, 60}, {35, 70}}, []float64{1.5, 2.25, 0.25})
	_, st := evaluate(t, tm, 30, 0, 1)

	far := st.Locations[0]
	require.Equal(t, 2, far.Assigned)
	require.Equal(t, 2.5, far.Activity.Float())
	require.True(t, far.ActivityWithin.IsDefined(), "assigned but nothing covered is 0, not undefined")
	require.Equal(t, 0.0, far.ActivityWithin.Float())
	require.Equal(t, 50.0, far.Max.Float())

	near := st.Locations[1]
	require.Equal(t, 1.5, near.Activity.Float())
	require.Equal(t, 1.5, near.ActivityWithin.Float())
	require.Equal(t, 1.5, st.ActivityWithin.Float())
}

func TestThresholdIsStrict(t *testing.T) {
	t.Parallel()

	tm := newMatrix(t, [][]float64{{30}, {29.999}}, []float64{1, 2})
	_, st := evaluate(t, tm, 30, 0)
	require.Equal(t, 2.0, st.ActivityWithin.Float())
}

func TestBadThreshold(t *testing.T) {
	t.Parallel()

	tm := newMatrix(t, [][]float64{{1}}, []float64{1})
	for _, thr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := scenario.NewAggregator(tm, thr)
		require.ErrorIs(t, err, scenario.ErrBadThreshold)
		require.ErrorIs(t, err, errkind.ErrConfiguration)
	}
}

func TestUniverseMismatch(t *testing.T) {
	t.Parallel()

	tm := newMatrix(t, [][]float64{{1, 2}}, []float64{1})
	s, err := scenario.New(0, []int{0}, 3)
	require.NoError(t, err)
	err = scenario.NewEvaluator(tm).Evaluate(s, scenario.NewAssignment(1))
	require.ErrorIs(t, err, scenario.ErrUniverseMismatch)
}

// TestCoverageLaw: the system activity within threshold is partitioned
// exactly by the per-location values.
func TestCoverageLaw(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	tm := randomMatrix(t, rng, 40, 6)
	for mask := 1; mask < 1<<6; mask++ {
		var members []int
		for j := 0; j < 6; j++ {
			if mask&(1<<j) != 0 {
				members = append(members, j)
			}
		}
		_, st := evaluate(t, tm, 30, members...)
		var sum float64
		for _, loc := range st.Locations {
			if x, ok := loc.ActivityWithin.Get(); ok {
				sum += x
			}
		}
		require.InDelta(t, st.ActivityWithin.Float(), sum, 1e-9, "members %v", members)
	}
}

// TestMonotonicity: opening more locations never increases a point's cost.
func TestMonotonicity(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	tm := randomMatrix(t, rng, 30, 5)
	sub, _ := evaluate(t, tm, 30, 1, 3)
	sup, _ := evaluate(t, tm, 30, 0, 1, 3, 4)
	for i := range sub.Cost {
		if math.IsNaN(sub.Cost[i]) {
			continue
		}
		require.False(t, math.IsNaN(sup.Cost[i]), "point %d became unreachable", i)
		require.LessOrEqual(t, sup.Cost[i], sub.Cost[i])
	}
}

// TestFullOpenEqualsRowMin: with every location open the assignment is the
// row minimum and its first argmin.
func TestFullOpenEqualsRowMin(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	tm := randomMatrix(t, rng, 50, 7)
	a, _ := evaluate(t, tm, 30, 0, 1, 2, 3, 4, 5, 6)
	for i := 0; i < tm.NumPoints(); i++ {
		c, arg := tm.RowMin(i)
		require.Equal(t, arg, a.Nearest[i])
		if arg == scenario.NoLocation {
			require.True(t, math.IsNaN(a.Cost[i]))
			continue
		}
		require.Equal(t, c, a.Cost[i])
	}
}

func BenchmarkEvaluateAggregate(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	tm := randomMatrix(b, rng, 2000, 12)
	s, _ := scenario.New(0, []int{0, 3, 5, 8, 11}, 12)
	ev := scenario.NewEvaluator(tm)
	ag, _ := scenario.NewAggregator(tm, scenario.DefaultThreshold)
	a := scenario.NewAssignment(tm.NumPoints())
	var st scenario.Statistics
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ev.Evaluate(s, a)
		_ = ag.Aggregate(s, a, &st)
	}
}
