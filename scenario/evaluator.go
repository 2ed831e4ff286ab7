// SPDX-License-Identifier: MIT

package scenario

import (
	"fmt"
	"math"

	"github.com/KerryPearn/routino-gm-scenarios/travel"
)

// NoLocation marks a point whose open locations are all unreachable.
const NoLocation = -1

// Assignment is the per-point result of evaluating one scenario:
// Cost[i] is the minimum cost of point i (NaN if unreachable) and
// Nearest[i] the location attaining it (NoLocation if unreachable).
type Assignment struct {
	Cost    []float64
	Nearest []int
}

// NewAssignment allocates an Assignment for n points.
func NewAssignment(n int) *Assignment {
	return &Assignment{Cost: make([]float64, n), Nearest: make([]int, n)}
}

// resize makes a hold exactly n points, reusing its backing arrays.
func (a *Assignment) resize(n int) {
	if cap(a.Cost) < n {
		a.Cost = make([]float64, n)
		a.Nearest = make([]int, n)
	}
	a.Cost = a.Cost[:n]
	a.Nearest = a.Nearest[:n]
}

// Evaluator computes Assignments against one travel matrix.
type Evaluator struct {
	tm *travel.Matrix
}

// NewEvaluator returns an Evaluator reading tm.
func NewEvaluator(tm *travel.Matrix) *Evaluator {
	return &Evaluator{tm: tm}
}

// Evaluate fills out with the nearest open location of every demand point.
//
// Implementation:
//   - Stage 1: check the scenario universe against the matrix.
//   - Stage 2: per point, scan the open locations in universe order keeping
//     the first strict minimum; NaN never replaces a real cost.
//
// Errors:
//   - ErrUniverseMismatch.
//
// Complexity: O(N·k) for k open locations, no allocation once out is sized.
func (ev *Evaluator) Evaluate(s *Scenario, out *Assignment) error {
	if s.Universe() != ev.tm.NumLocations() {
		return fmt.Errorf("scenario %d: M=%d, matrix M=%d: %w", s.ID, s.Universe(), ev.tm.NumLocations(), ErrUniverseMismatch)
	}
	n := ev.tm.NumPoints()
	out.resize(n)

	var (
		best float64
		arg  int
		c    float64
		row  []float64
	)
	for i := 0; i < n; i++ {
		row = ev.tm.Row(i)
		best, arg = math.NaN(), NoLocation
		for _, j := range s.Members {
			c = row[j]
			if math.IsNaN(c) {
				continue
			}
			if arg == NoLocation || c < best {
				best, arg = c, j
			}
		}
		out.Cost[i] = best
		out.Nearest[i] = arg
	}

	return nil
}
