// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (NaN/Inf rejection, NaN-as-missing) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) init; At/Set: O(1); RowView: O(1); SetRow: O(c); CountNaN: O(r*c).

package matrix

import (
	"fmt"
	"math"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"      // method tag used in error wrappers
	ctxSet     = "Set"     // method tag used in error wrappers
	ctxRow     = "Row"     // method tag used in error wrappers
	ctxSetRow  = "SetRow"  // method tag used in error wrappers
	ctxFill    = "Fill"    // method tag used in error wrappers
	ctxNewFrom = "NewFrom" // ctor tag for NewDenseFrom
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Keeps the sentinel reachable via errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - policy is the numeric guard applied on every write.
type Dense struct {
	r, c   int       // row and column counts (>0)
	data   []float64 // contiguous row-major storage (len == r*c)
	policy Options   // numeric guard for writes
}

// Compile-time assertion for interface conformance.
var _ Matrix = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and resolve the numeric policy.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:      rows,
		c:      cols,
		data:   make([]float64, rows*cols),
		policy: gatherOptions(opts...),
	}, nil
}

// NewDenseFrom builds an r×c matrix from a row-major slice, copying it.
// Every value is checked against the numeric policy; the first violation is
// reported with its coordinates.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch (len(data) != rows*cols), ErrNaNInf.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("Dense.%s: len=%d want %d: %w", ctxNewFrom, len(data), rows*cols, ErrDimensionMismatch)
	}
	var k int
	for k = range data {
		if m.policy.rejects(data[k]) {
			return nil, denseErrorf(ctxNewFrom, k/cols, k%cols, ErrNaNInf)
		}
	}
	copy(m.data, data)

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range; returns a wrapped sentinel.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf when the policy rejects v.
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.policy.rejects(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// RowView returns a no-copy slice aliasing row i of the underlying buffer.
// Callers MUST treat it as read-only: writes through it bypass the numeric
// policy. Intended for hot read loops (per-scenario nearest search).
// Complexity: O(1).
func (m *Dense) RowView(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	base := i * m.c

	return m.data[base : base+m.c : base+m.c], nil
}

// SetRow overwrites row i with vals (len(vals) must equal Cols()).
// The row is validated first and written only when every value passes the
// policy, so a failed SetRow never leaves a half-written row.
//
// Errors:
//   - ErrOutOfRange, ErrDimensionMismatch, ErrNaNInf.
//
// Complexity: O(c).
func (m *Dense) SetRow(i int, vals []float64) error {
	if i < 0 || i >= m.r {
		return denseErrorf(ctxSetRow, i, 0, ErrOutOfRange)
	}
	if len(vals) != m.c {
		return fmt.Errorf("Dense.%s(%d): len=%d want %d: %w", ctxSetRow, i, len(vals), m.c, ErrDimensionMismatch)
	}
	var j int
	for j = 0; j < m.c; j++ {
		if m.policy.rejects(vals[j]) {
			return denseErrorf(ctxSetRow, i, j, ErrNaNInf)
		}
	}
	copy(m.data[i*m.c:(i+1)*m.c], vals)

	return nil
}

// Fill sets every element to v (subject to the numeric policy).
// Complexity: O(r*c).
func (m *Dense) Fill(v float64) error {
	if m.policy.rejects(v) {
		return denseErrorf(ctxFill, 0, 0, ErrNaNInf)
	}
	for k := range m.data {
		m.data[k] = v
	}

	return nil
}

// CountNaN returns the number of NaN cells (missing values).
// Complexity: O(r*c).
func (m *Dense) CountNaN() int {
	n := 0
	for _, v := range m.data {
		if math.IsNaN(v) {
			n++
		}
	}

	return n
}
