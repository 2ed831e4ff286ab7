// SPDX-License-Identifier: MIT

package table

import (
	"fmt"

	"github.com/KerryPearn/routino-gm-scenarios/matrix"
	"github.com/KerryPearn/routino-gm-scenarios/scenario"
	"github.com/KerryPearn/routino-gm-scenarios/stats"
)

// Builder accumulates one row per scenario into a pre-sized table.
type Builder struct {
	layout  *Layout
	data    *matrix.Dense
	written []bool
}

// NewBuilder allocates a rows × layout.Cols() table filled with NaN.
//
// Errors: ErrRowOutOfRange if rows ≤ 0.
// Complexity: O(rows·cols) time and memory.
func NewBuilder(layout *Layout, rows int) (*Builder, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("NewBuilder(rows=%d): %w", rows, ErrRowOutOfRange)
	}
	data, err := matrix.NewDense(rows, layout.Cols(), matrix.WithAllowNaN())
	if err != nil {
		return nil, err
	}
	if err = data.Fill(nan); err != nil {
		return nil, err
	}

	return &Builder{layout: layout, data: data, written: make([]bool, rows)}, nil
}

// Layout returns the column layout.
func (b *Builder) Layout() *Layout { return b.layout }

// Rows returns the number of pre-allocated rows.
func (b *Builder) Rows() int { return len(b.written) }

// Put writes the row of st.ScenarioID.
//
// Put is safe for concurrent use by writers with distinct scenario ids.
//
// Errors:
//   - ErrRowOutOfRange for an id outside the table.
//   - ErrUnknownKey when st has a different number of locations.
//   - ErrDuplicateRow when the row was already written.
//
// Complexity: O(M).
func (b *Builder) Put(st *scenario.Statistics) error {
	row := st.ScenarioID
	if row < 0 || row >= len(b.written) {
		return fmt.Errorf("Put(scen_%d) with %d rows: %w", row, len(b.written), ErrRowOutOfRange)
	}
	if len(st.Locations) != b.layout.m {
		return fmt.Errorf("Put(scen_%d): %d locations, layout has %d: %w", row, len(st.Locations), b.layout.m, ErrUnknownKey)
	}
	if b.written[row] {
		return fmt.Errorf("Put(scen_%d): %w", row, ErrDuplicateRow)
	}

	l := b.layout
	cells := [systemMetrics]stats.Value{st.Median, st.Max, st.P95, st.ActivityWithin}
	for k, v := range cells {
		if err := b.data.Set(row, k, v.Float()); err != nil {
			return err
		}
	}
	for j := range st.Locations {
		loc := &st.Locations[j]
		open := 0.0
		if loc.Open {
			open = 1
		}
		values := [locationMetrics]float64{
			open,
			loc.Median.Float(),
			loc.Max.Float(),
			loc.P95.Float(),
			loc.Activity.Float(),
			loc.ActivityWithin.Float(),
		}
		for k, v := range values {
			if err := b.data.Set(row, l.mustIndex(LocationOpen+Metric(k), j), v); err != nil {
				return err
			}
		}
	}
	b.written[row] = true

	return nil
}

// Finalize returns the immutable Table once every row is written.
//
// Errors: ErrIncomplete naming the first missing row.
func (b *Builder) Finalize() (*Table, error) {
	t := b.FinalizePartial()
	if !t.Complete() {
		for i, ok := range b.written {
			if !ok {
				return nil, fmt.Errorf("scen_%d and %d more rows missing: %w", i, t.Rows()-t.WrittenRows()-1, ErrIncomplete)
			}
		}
	}

	return t, nil
}

// FinalizePartial returns the Table as it stands. Rows never written hold
// NaN and report Written(i) == false; Complete() tells whether all rows are
// present.
func (b *Builder) FinalizePartial() *Table {
	n := 0
	for _, ok := range b.written {
		if ok {
			n++
		}
	}

	return &Table{layout: b.layout, data: b.data, written: b.written, writtenRows: n}
}
