// SPDX-License-Identifier: MIT

// Package travel holds the immutable travel-cost matrix: N demand points ×
// M candidate locations, plus one activity weight per demand point.
//
// Unreachable pairs are stored as NaN. Every other cost is finite and ≥ 0.
// +Inf in the input is treated as unreachable and normalized to NaN; −Inf,
// negative costs, NaN or negative activity are data errors.
//
// A Matrix is validated once at construction and never mutated afterwards,
// so any number of goroutines may read it concurrently.
//
// Join builds a Matrix from a cost table and a separate list of activity
// weights keyed by demand point, keeping only points present in both (inner
// join) in the cost table's row order.
package travel
