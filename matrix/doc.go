// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric storage shared by the travel-cost
// matrix and the scenario result table.
//
// The package provides:
//
//   - Dense: a row-major float64 buffer with safe At/Set accessors that
//     return sentinel errors instead of panicking.
//   - A per-instance numeric policy: by default NaN and ±Inf are rejected on
//     Set; WithAllowNaN keeps NaN legal as a "missing/undefined" marker while
//     still rejecting ±Inf, and WithNoValidateNaNInf disables the guard.
//   - No-copy row access (RowView) for hot read-only loops and bulk row
//     writes (SetRow) for writers that own a row.
//
// Concurrency:
//
//	Dense holds no locks. Concurrent readers are safe. Concurrent writers are
//	safe only when they touch disjoint rows, which is how the scenario table
//	is filled (one row per scenario id).
package matrix
