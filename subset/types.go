// SPDX-License-Identifier: MIT

package subset

import (
	"math"
	"math/bits"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
)

// Sentinel errors returned by the enumerator.
var (
	// ErrEmptyUniverse indicates M ≤ 0: there is nothing to enumerate.
	ErrEmptyUniverse = errkind.Configuration("subset: empty location universe")

	// ErrBadSize indicates size limits outside 1..M or min > max.
	ErrBadSize = errkind.Configuration("subset: subset size limits must satisfy 1 <= min <= max <= M")

	// ErrTooManySubsets indicates the id space cannot be represented.
	ErrTooManySubsets = errkind.ResourceLimit("subset: too many subsets; impose a maximum subset size")

	// ErrOutOfRange indicates an id outside [0, Count()].
	ErrOutOfRange = errkind.Configuration("subset: id out of range")

	// ErrBadMembers indicates a member set that is not strictly increasing
	// within the universe, or whose size is outside the enumerated sizes.
	ErrBadMembers = errkind.Configuration("subset: members must be strictly increasing indices within the universe")
)

// Options configures an Enumerator.
//
// MinSize – smallest subset size generated (≥ 1). Default 1.
// MaxSize – largest subset size generated (≤ M). Default 0 meaning M.
type Options struct {
	MinSize int
	MaxSize int
}

// Option represents a functional option for configuring an Enumerator.
type Option func(*Options)

// WithMinSize sets the smallest subset size. Panics if k < 1.
func WithMinSize(k int) Option {
	if k < 1 {
		panic(ErrBadSize.Error())
	}

	return func(o *Options) { o.MinSize = k }
}

// WithMaxSize sets the largest subset size. Panics if k < 1.
// A k larger than M is rejected by NewEnumerator with ErrBadSize.
func WithMaxSize(k int) Option {
	if k < 1 {
		panic(ErrBadSize.Error())
	}

	return func(o *Options) { o.MaxSize = k }
}

// DefaultOptions returns MinSize 1 and MaxSize 0 (all sizes).
func DefaultOptions() Options {
	return Options{MinSize: 1}
}

// choose returns C(n,k), 0 outside the triangle and math.MaxUint64 when the
// value does not fit in uint64.
//
// Complexity: O(min(k, n-k)).
func choose(n, k int) uint64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	c := uint64(1)
	for i := 1; i <= k; i++ {
		// c == C(n-k+i-1, i-1), so c*(n-k+i) is divisible by i.
		hi, lo := bits.Mul64(c, uint64(n-k+i))
		if hi >= uint64(i) {
			return math.MaxUint64
		}
		c, _ = bits.Div64(hi, lo, uint64(i))
	}

	return c
}
