// SPDX-License-Identifier: MIT

// Package subset enumerates the non-empty subsets of an ordered universe of
// M items (candidate locations), each subset being one scenario.
//
// Order:
//
//	Subsets are grouped by increasing size; within a size they appear in
//	lexicographic order of their sorted member indices. For M = 3:
//
//	  id 0: {0}     id 3: {0,1}   id 6: {0,1,2}
//	  id 1: {1}     id 4: {0,2}
//	  id 2: {2}     id 5: {1,2}
//
//	Ids increase by one per generated subset, starting at 0, so an id is both
//	the generation index and the row of the scenario in the result table.
//
// Size limits:
//
//	WithMinSize / WithMaxSize restrict the sizes generated. With the defaults
//	(1..M) Count() = 2^M − 1. For large M a maximum size keeps the run
//	tractable: Count() = Σ C(M,k) for k ≤ max.
//
// Ranking:
//
//	Rank and Unrank map between ids and member sets in O(M·k) arithmetic using
//	overflow-checked binomials (combinatorial number system). Seek positions
//	an Enumerator at any id, which lets a worker pool give each worker its own
//	disjoint id range without coordinating on a shared cursor.
//
// Complexity:
//
//	– Next:   O(k) amortized, no allocation (the returned slice is reused).
//	– Seek:   O(M·k).
//	– Memory: O(M) per Enumerator.
//
// Errors (sentinel):
//
//	– ErrEmptyUniverse   M ≤ 0.
//	– ErrBadSize         size limits outside 1..M or min > max.
//	– ErrTooManySubsets  the id space does not fit in a signed 64-bit int.
//	– ErrOutOfRange      Seek/Unrank with an id outside [0, Count()].
//	– ErrBadMembers      Rank with unsorted, duplicate or out-of-universe members.
package subset
