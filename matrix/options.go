// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal).
//
// Numeric policy:
//   - validateNaNInf controls whether Set()/ingestion rejects NaN/±Inf at all.
//   - allowNaN is a narrow exception for NaN as "missing" (unreachable travel,
//     undefined statistic). Under validation ±Inf remains rejected even when
//     allowNaN=true.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultAllowNaN permits NaN as the "missing value" marker.
	//
	// IMPORTANT:
	//   - This is NOT a "dirty-data" mode: ±Inf is still rejected while
	//     validation is on.
	DefaultAllowNaN = false
)

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
	allowNaN       bool // DefaultAllowNaN
}

// WithValidateNaNInf turns the finite-value guard on.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf turns the finite-value guard off entirely.
// Use only for controlled ingestion where every value is already checked.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithAllowNaN keeps validation on but accepts NaN as a missing-value marker.
func WithAllowNaN() Option {
	return func(o *Options) { o.allowNaN = true }
}

// WithDisallowNaN restores the default: NaN is rejected under validation.
func WithDisallowNaN() Option {
	return func(o *Options) { o.allowNaN = false }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		validateNaNInf: DefaultValidateNaNInf,
		allowNaN:       DefaultAllowNaN,
	}
}

// gatherOptions applies opts over the defaults in order.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// rejects reports whether the policy rejects v.
// Complexity: O(1).
func (o Options) rejects(v float64) bool {
	if !o.validateNaNInf {
		return false
	}
	if math.IsNaN(v) {
		return !o.allowNaN
	}

	return math.IsInf(v, 0)
}
