// SPDX-License-Identifier: MIT

package subset

import (
	"fmt"
	"iter"
	"math"
)

// Enumerator yields subsets of {0..M-1} in size-then-lexicographic order.
// An Enumerator is not safe for concurrent use; give each worker its own and
// position it with Seek.
type Enumerator struct {
	m, minK, maxK int

	// offset[k-minK] is the id of the first subset of size k;
	// offset[len-1] == count.
	offset []int
	count  int

	next int   // id returned by the next call to Next
	comb []int // members of subset `next` (len == its size), valid when next < count
	out  []int // members handed to the caller by Next
}

// NewEnumerator builds an Enumerator over a universe of m items positioned at id 0.
//
// Errors:
//   - ErrEmptyUniverse if m ≤ 0.
//   - ErrBadSize for size limits outside 1..m or min > max.
//   - ErrTooManySubsets when the number of subsets within the size limits
//     exceeds math.MaxInt64.
//
// Complexity: O(max²).
func NewEnumerator(m int, opts ...Option) (*Enumerator, error) {
	if m <= 0 {
		return nil, ErrEmptyUniverse
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxSize == 0 {
		o.MaxSize = m
	}
	if o.MinSize > o.MaxSize || o.MaxSize > m {
		return nil, fmt.Errorf("NewEnumerator(m=%d, min=%d, max=%d): %w", m, o.MinSize, o.MaxSize, ErrBadSize)
	}
	e := &Enumerator{m: m, minK: o.MinSize, maxK: o.MaxSize}
	e.offset = make([]int, e.maxK-e.minK+2)
	var total uint64
	for k := e.minK; k <= e.maxK; k++ {
		e.offset[k-e.minK] = int(total)
		c := choose(m, k)
		if c > math.MaxInt64-total {
			return nil, fmt.Errorf("NewEnumerator(m=%d, min=%d, max=%d): %w", m, e.minK, e.maxK, ErrTooManySubsets)
		}
		total += c
	}
	e.count = int(total)
	e.offset[len(e.offset)-1] = e.count
	e.comb = make([]int, 0, e.maxK)
	e.out = make([]int, 0, e.maxK)
	e.Reset()

	return e, nil
}

// Count returns the total number of subsets the Enumerator generates.
func (e *Enumerator) Count() int { return e.count }

// Universe returns M.
func (e *Enumerator) Universe() int { return e.m }

// MinSize returns the smallest generated subset size.
func (e *Enumerator) MinSize() int { return e.minK }

// MaxSize returns the largest generated subset size.
func (e *Enumerator) MaxSize() int { return e.maxK }

// Reset repositions the Enumerator at id 0.
func (e *Enumerator) Reset() {
	e.next = 0
	e.firstOfSize(e.minK)
}

// Seek positions the Enumerator so the next call to Next returns id.
// Seek(Count()) is legal and leaves the Enumerator exhausted.
//
// Errors: ErrOutOfRange when id < 0 or id > Count().
// Complexity: O(M·k).
func (e *Enumerator) Seek(id int) error {
	if id < 0 || id > e.count {
		return fmt.Errorf("Seek(%d) with Count()=%d: %w", id, e.count, ErrOutOfRange)
	}
	e.next = id
	if id < e.count {
		e.comb = e.unrankInto(e.comb[:0], id)
	}

	return nil
}

// Next returns the next subset's id and members and advances the cursor.
// ok is false once every subset was generated.
//
// The members slice is owned by the Enumerator and is overwritten by the next
// call to Next, Seek or Reset; copy it to retain it.
//
// Complexity: O(k) worst case per call, O(1) amortized within a size.
func (e *Enumerator) Next() (id int, members []int, ok bool) {
	if e.next >= e.count {
		return e.count, nil, false
	}
	id = e.next
	e.out = append(e.out[:0], e.comb...)
	e.next++
	if e.next < e.count {
		e.advance()
	}

	return id, e.out, true
}

// All iterates over the remaining subsets from the current position.
// Members follow the same ownership rule as Next.
func (e *Enumerator) All() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		for {
			id, members, ok := e.Next()
			if !ok || !yield(id, members) {
				return
			}
		}
	}
}

// Unrank returns a fresh slice holding the members of subset id.
//
// Errors: ErrOutOfRange when id is not within [0, Count()).
func (e *Enumerator) Unrank(id int) ([]int, error) {
	if id < 0 || id >= e.count {
		return nil, fmt.Errorf("Unrank(%d) with Count()=%d: %w", id, e.count, ErrOutOfRange)
	}

	return e.unrankInto(make([]int, 0, e.maxK), id), nil
}

// Rank returns the id of the given member set.
//
// Errors: ErrBadMembers unless members is strictly increasing within
// [0, M) and its size is within the enumerated sizes.
//
// Complexity: O(M·k).
func (e *Enumerator) Rank(members []int) (int, error) {
	k := len(members)
	if k < e.minK || k > e.maxK {
		return 0, fmt.Errorf("Rank(size=%d): %w", k, ErrBadMembers)
	}
	prev := -1
	for _, c := range members {
		if c <= prev || c >= e.m {
			return 0, fmt.Errorf("Rank(%v): %w", members, ErrBadMembers)
		}
		prev = c
	}

	var r uint64
	prev = -1
	for i, c := range members {
		// Every combination whose i-th member is in (prev, c) precedes this one.
		for x := prev + 1; x < c; x++ {
			r += choose(e.m-x-1, k-i-1)
		}
		prev = c
	}

	return e.offset[k-e.minK] + int(r), nil
}

// firstOfSize loads {0, 1, ..., k-1} into comb.
func (e *Enumerator) firstOfSize(k int) {
	e.comb = e.comb[:k]
	for i := range e.comb {
		e.comb[i] = i
	}
}

// advance moves comb to its lexicographic successor, or to the first subset
// of the next size.
func (e *Enumerator) advance() {
	k := len(e.comb)
	i := k - 1
	for i >= 0 && e.comb[i] == e.m-k+i {
		i--
	}
	if i < 0 {
		e.firstOfSize(k + 1)
		return
	}
	e.comb[i]++
	for j := i + 1; j < k; j++ {
		e.comb[j] = e.comb[j-1] + 1
	}
}

// unrankInto writes the members of id (0 ≤ id < count) into dst.
func (e *Enumerator) unrankInto(dst []int, id int) []int {
	k := e.minK
	for e.offset[k-e.minK+1] <= id {
		k++
	}
	r := uint64(id - e.offset[k-e.minK])

	dst = dst[:0]
	c := 0
	for i := 0; i < k; i++ {
		for {
			block := choose(e.m-c-1, k-i-1) // combinations with member i == c
			if r < block {
				break
			}
			r -= block
			c++
		}
		dst = append(dst, c)
		c++
	}

	return dst
}
