// SPDX-License-Identifier: MIT

package table_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"github.com/KerryPearn/routino-gm-scenarios/scenario"
	"github.com/KerryPearn/routino-gm-scenarios/stats"
	"github.com/KerryPearn/routino-gm-scenarios/table"
	"github.com/stretchr/testify/require"
)

func TestHeaderOrder(t *testing.T) {
	t.Parallel()

	l, err := table.NewLayout(2, 30)
	require.NoError(t, err)
	require.Equal(t, 16, l.Cols())
	require.Equal(t, []string{
		"median_travel", "max_travel", "95pctl_travel", "activity_within_30",
		"location_0", "location_1",
		"median_0", "median_1",
		"max_0", "max_1",
		"95pctl_0", "95pctl_1",
		"activity_0", "activity_1",
		"activity_within_threshold_0", "activity_within_threshold_1",
	}, l.Header())

	l, err = table.NewLayout(1, 2.5)
	require.NoError(t, err)
	require.Equal(t, "activity_within_2.5", l.Header()[3])

	_, err = table.NewLayout(0, 30)
	require.ErrorIs(t, err, errkind.ErrConfiguration)
}

func TestIndexAndKeyOfAreInverse(t *testing.T) {
	t.Parallel()

	l, err := table.NewLayout(5, 30)
	require.NoError(t, err)
	for col := 0; col < l.Cols(); col++ {
		key, err := l.KeyOf(col)
		require.NoError(t, err)
		back, err := l.Index(key)
		require.NoError(t, err)
		require.Equal(t, col, back)
		if !key.Metric.IsSystem() {
			require.Equal(t, fmt.Sprintf("%s_%d", key.Metric, key.Location), l.Header()[col])
		}
	}

	j, err := l.Index(table.Key{Metric: table.LocationMax, Location: 3})
	require.NoError(t, err)
	require.Equal(t, "max_3", l.Header()[j])

	_, err = l.Index(table.Key{Metric: table.LocationMax, Location: 5})
	require.ErrorIs(t, err, table.ErrUnknownKey)
	_, err = l.Index(table.Key{Metric: table.Metric(42)})
	require.ErrorIs(t, err, table.ErrUnknownKey)
	_, err = l.KeyOf(l.Cols())
	require.ErrorIs(t, err, table.ErrUnknownKey)
}

// statsFor builds Statistics with location 0 open and location 1 closed.
func statsFor(id int) *scenario.Statistics {
	return &scenario.Statistics{
		ScenarioID:     id,
		Median:         stats.Defined(float64(id)),
		Max:            stats.Defined(30),
		P95:            stats.Defined(29),
		ActivityWithin: stats.Defined(5),
		Locations: []scenario.LocationStats{
			{Open: true, Assigned: 2, Median: stats.Defined(20), Max: stats.Defined(30), P95: stats.Defined(29),
				Activity: stats.Defined(8), ActivityWithin: stats.Defined(5)},
			{Open: false},
		},
	}
}

func TestBuilderPutAndFinalize(t *testing.T) {
	t.Parallel()

	l, _ := table.NewLayout(2, 25)
	b, err := table.NewBuilder(l, 3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for id := 0; id < 3; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = b.Put(statsFor(id))
		}(id)
	}
	wg.Wait()

	tbl, err := b.Finalize()
	require.NoError(t, err)
	require.True(t, tbl.Complete())
	require.Equal(t, 3, tbl.Rows())
	require.Equal(t, "scen_2", tbl.RowLabel(2))

	v, err := tbl.Value(2, table.Key{Metric: table.SystemMedian})
	require.NoError(t, err)
	require.Equal(t, 2.0, v.Float())

	v, err = tbl.Value(0, table.Key{Metric: table.LocationOpen, Location: 1})
	require.NoError(t, err)
	require.Equal(t, 0.0, v.Float(), "closed is 0, not undefined")

	v, err = tbl.Value(0, table.Key{Metric: table.LocationMedian, Location: 1})
	require.NoError(t, err)
	require.False(t, v.IsDefined())

	x, err := tbl.At(1, 12) // activity_0
	require.NoError(t, err)
	require.Equal(t, 8.0, x)

	open, err := tbl.OpenSet(1)
	require.NoError(t, err)
	require.Equal(t, []int{0}, open)

	_, err = tbl.At(3, 0)
	require.ErrorIs(t, err, table.ErrRowOutOfRange)
	_, err = tbl.At(0, 16)
	require.ErrorIs(t, err, table.ErrUnknownKey)
}

func TestBuilderErrors(t *testing.T) {
	t.Parallel()

	l, _ := table.NewLayout(2, 30)
	_, err := table.NewBuilder(l, 0)
	require.ErrorIs(t, err, table.ErrRowOutOfRange)

	b, err := table.NewBuilder(l, 2)
	require.NoError(t, err)
	require.ErrorIs(t, b.Put(statsFor(2)), table.ErrRowOutOfRange)
	require.ErrorIs(t, b.Put(statsFor(-1)), table.ErrRowOutOfRange)

	bad := statsFor(0)
	bad.Locations = bad.Locations[:1]
	require.ErrorIs(t, b.Put(bad), table.ErrUnknownKey)

	require.NoError(t, b.Put(statsFor(1)))
	require.ErrorIs(t, b.Put(statsFor(1)), table.ErrDuplicateRow)

	_, err = b.Finalize()
	require.ErrorIs(t, err, table.ErrIncomplete)
	require.Contains(t, err.Error(), "scen_0")

	partial := b.FinalizePartial()
	require.False(t, partial.Complete())
	require.Equal(t, 1, partial.WrittenRows())
	require.False(t, partial.Written(0))
	require.True(t, partial.Written(1))
	x, err := partial.At(0, 0)
	require.NoError(t, err)
	require.True(t, math.IsNaN(x), "unwritten rows are NaN")
}
