// SPDX-License-Identifier: MIT

package table

import (
	"fmt"
	"math"

	"github.com/KerryPearn/routino-gm-scenarios/matrix"
	"github.com/KerryPearn/routino-gm-scenarios/stats"
)

var nan = math.NaN()

// Table is a finalized, read-only result table.
type Table struct {
	layout      *Layout
	data        *matrix.Dense
	written     []bool
	writtenRows int
}

// Layout returns the column layout.
func (t *Table) Layout() *Layout { return t.layout }

// Rows returns the number of rows (scenarios).
func (t *Table) Rows() int { return len(t.written) }

// Cols returns the number of columns.
func (t *Table) Cols() int { return t.layout.Cols() }

// Header returns the column names.
func (t *Table) Header() []string { return t.layout.Header() }

// RowLabel returns "scen_<i>".
func (t *Table) RowLabel(i int) string { return RowLabel(i) }

// Complete reports whether every row was written.
func (t *Table) Complete() bool { return t.writtenRows == len(t.written) }

// WrittenRows returns the number of rows written.
func (t *Table) WrittenRows() int { return t.writtenRows }

// Written reports whether row i was written.
func (t *Table) Written(i int) bool { return i >= 0 && i < len(t.written) && t.written[i] }

// Row returns row i without copying. Read-only.
//
// Errors: ErrRowOutOfRange.
func (t *Table) Row(i int) ([]float64, error) {
	if i < 0 || i >= len(t.written) {
		return nil, fmt.Errorf("Row(%d): %w", i, ErrRowOutOfRange)
	}

	return t.data.RowView(i)
}

// At returns the cell (i, j); NaN for undefined statistics.
//
// Errors: ErrRowOutOfRange, ErrUnknownKey.
func (t *Table) At(i, j int) (float64, error) {
	row, err := t.Row(i)
	if err != nil {
		return 0, err
	}
	if j < 0 || j >= len(row) {
		return 0, fmt.Errorf("At(%d,%d): %w", i, j, ErrUnknownKey)
	}

	return row[j], nil
}

// Value returns the statistic of row i addressed by key.
//
// Errors: ErrRowOutOfRange, ErrUnknownKey.
func (t *Table) Value(i int, key Key) (stats.Value, error) {
	j, err := t.layout.Index(key)
	if err != nil {
		return stats.Undefined, err
	}
	x, err := t.At(i, j)
	if err != nil {
		return stats.Undefined, err
	}

	return stats.FromFloat(x), nil
}

// OpenSet returns the open location indices of row i.
func (t *Table) OpenSet(i int) ([]int, error) {
	row, err := t.Row(i)
	if err != nil {
		return nil, err
	}
	var open []int
	for j := 0; j < t.layout.m; j++ {
		if row[t.layout.mustIndex(LocationOpen, j)] == 1 {
			open = append(open, j)
		}
	}

	return open, nil
}
