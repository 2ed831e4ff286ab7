// SPDX-License-Identifier: MIT

// Package stats provides the order statistics used to summarize travel costs.
//
// Every statistic is returned as a Value, a tri-state number that is either a
// defined float64 or Undefined. A statistic over an empty sample is Undefined
// and is never coerced to 0, so "no data" stays distinguishable from a real
// zero cost downstream (in the result table Undefined becomes NaN). Quantile
// also returns ErrEmptySample, a numeric-kind error; Summarize folds it back
// into Undefined statistics.
//
// Quantiles use linear interpolation between closest ranks (the common
// "type 7" definition): for a sorted sample x[0..n-1] and q in [0,1],
//
//	h = (n-1)·q,  Q(q) = x[⌊h⌋] + (h-⌊h⌋)·(x[⌊h⌋+1] - x[⌊h⌋])
//
// so the median of {10, 30} is 20 and the 95th percentile of {10, 20, 30} is 29.
package stats
