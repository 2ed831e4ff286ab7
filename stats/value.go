// SPDX-License-Identifier: MIT

package stats

import (
	"math"
	"strconv"
)

// Value is a tri-state statistic: either a defined number or Undefined.
// The zero Value is Undefined.
type Value struct {
	x       float64
	defined bool
}

// Undefined is the explicit "no data" value.
var Undefined = Value{}

// Defined wraps x. A NaN x yields Undefined.
func Defined(x float64) Value {
	if math.IsNaN(x) {
		return Undefined
	}

	return Value{x: x, defined: true}
}

// FromFloat maps NaN to Undefined and anything else to Defined(x).
func FromFloat(x float64) Value { return Defined(x) }

// IsDefined reports whether v carries a number.
func (v Value) IsDefined() bool { return v.defined }

// Float returns the number, or NaN when v is Undefined.
func (v Value) Float() float64 {
	if !v.defined {
		return math.NaN()
	}

	return v.x
}

// Get returns the number and whether it is defined.
func (v Value) Get() (float64, bool) { return v.x, v.defined }

// String renders the number in shortest form, or "undefined".
func (v Value) String() string {
	if !v.defined {
		return "undefined"
	}

	return strconv.FormatFloat(v.x, 'g', -1, 64)
}
