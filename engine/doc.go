// SPDX-License-Identifier: MIT

// Package engine runs every scenario of a travel matrix through the
// evaluator and aggregator and collects the results into one table.
//
// Control flow:
//
//  1. Validate the configuration and the matrix before any scenario runs.
//  2. Size the id space (subset.Enumerator) and check the resource guard:
//     Count × Cols cells must not exceed MaxCells.
//  3. Pre-size the result table (one row per scenario id).
//  4. Split ids into chunks. Workers claim chunks from a shared counter, seek
//     their own enumerator to the chunk start and write each scenario into
//     its pre-indexed row. Writers never share a row, so no lock guards the
//     table.
//  5. Finalize the table.
//
// Early termination:
//
//	Cancelling ctx stops the workers between scenarios. Run then returns the
//	partially filled table (Complete() == false) together with an error
//	wrapping table.ErrIncomplete and the context's cause.
//
// Determinism:
//
//	Each cell depends only on its scenario, so the table is identical for any
//	worker count or chunk size.
package engine
