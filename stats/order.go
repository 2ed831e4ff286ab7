// SPDX-License-Identifier: MIT

package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"gonum.org/v1/gonum/floats"
)

// Sentinel errors.
var (
	// ErrBadQuantile is returned for q outside [0,1] or NaN.
	ErrBadQuantile = errkind.Configuration("stats: quantile must be within [0,1]")

	// ErrEmptySample is returned by Quantile for an empty sample, alongside
	// Undefined.
	ErrEmptySample = errkind.Numeric("stats: statistic over an empty sample")
)

// P95 is the quantile level reported as "95pctl".
const P95 = 0.95

// Quantile returns the linear-interpolation quantile of an ascending sample.
// The caller guarantees sorted order; NaN entries must be removed beforehand.
//
// Errors:
//   - ErrBadQuantile when q is not within [0,1].
//   - ErrEmptySample for an empty sample; the Value is Undefined.
//
// Complexity: O(1).
func Quantile(sorted []float64, q float64) (Value, error) {
	if math.IsNaN(q) || q < 0 || q > 1 {
		return Undefined, fmt.Errorf("Quantile(%g): %w", q, ErrBadQuantile)
	}
	n := len(sorted)
	if n == 0 {
		return Undefined, fmt.Errorf("Quantile(%g) of 0 values: %w", q, ErrEmptySample)
	}
	if n == 1 {
		return Defined(sorted[0]), nil
	}

	h := float64(n-1) * q
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return Defined(sorted[n-1]), nil
	}
	frac := h - float64(lo)
	if frac == 0 {
		return Defined(sorted[lo]), nil
	}

	return Defined(sorted[lo] + frac*(sorted[lo+1]-sorted[lo])), nil
}

// Median is Quantile(sorted, 0.5).
func Median(sorted []float64) Value {
	v, _ := Quantile(sorted, 0.5)

	return v
}

// Max returns the largest element of a sample in any order, or Undefined.
func Max(sample []float64) Value {
	if len(sample) == 0 {
		return Undefined
	}

	return Defined(floats.Max(sample))
}

// Sum returns the total of a sample in any order, or Undefined when empty.
func Sum(sample []float64) Value {
	if len(sample) == 0 {
		return Undefined
	}

	return Defined(floats.Sum(sample))
}

// Total returns the sum of a sample; 0 when empty.
func Total(sample []float64) float64 { return floats.Sum(sample) }

// Summary holds the three order statistics reported per group of travel costs.
type Summary struct {
	Median Value
	Max    Value
	P95    Value
}

// Summarize sorts sample in place and returns its median, max and 95th
// percentile. NaN entries must not be present. An empty sample yields an
// all-Undefined Summary.
//
// Complexity: O(n log n) for the sort.
func Summarize(sample []float64) Summary {
	sort.Float64s(sample)
	p95, err := Quantile(sample, P95)
	if errors.Is(err, ErrEmptySample) {
		return Summary{}
	}

	return Summary{
		Median: Median(sample),
		Max:    Max(sample),
		P95:    p95,
	}
}
