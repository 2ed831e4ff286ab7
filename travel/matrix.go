// SPDX-License-Identifier: MIT

package travel

import (
	"fmt"
	"math"

	"github.com/KerryPearn/routino-gm-scenarios/matrix"
)

// Matrix is the validated, read-only travel-cost matrix.
type Matrix struct {
	points    []string
	locations []string
	costs     *matrix.Dense // N×M, NaN = unreachable
	activity  []float64

	pointIndex    map[string]int
	locationIndex map[string]int
}

// New validates its inputs and returns a Matrix owning copies of them.
//
// Implementation:
//   - Stage 1: identifiers (non-empty universes, no duplicates).
//   - Stage 2: shapes of costs and activity against the identifiers.
//   - Stage 3: value checks row by row, normalizing +Inf to NaN.
//
// Errors:
//   - ErrNoLocations, ErrNoPoints, ErrDuplicateID, ErrShape, ErrBadCost, ErrBadActivity.
//
// Complexity: O(N·M).
func New(points, locations []string, costs matrix.Matrix, activity []float64) (*Matrix, error) {
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	locationIndex, err := indexIDs("location", locations)
	if err != nil {
		return nil, err
	}
	pointIndex, err := indexIDs("point", points)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateShape(costs, len(points), len(locations)); err != nil {
		return nil, fmt.Errorf("costs: %v: %w", err, ErrShape)
	}
	if err = matrix.ValidateVecLen(activity, len(points)); err != nil {
		return nil, fmt.Errorf("activity len=%d want %d: %v: %w", len(activity), len(points), err, ErrShape)
	}

	n, m := len(points), len(locations)
	dense, err := matrix.NewDense(n, m, matrix.WithAllowNaN())
	if err != nil {
		return nil, err
	}
	row := make([]float64, m)
	for i := 0; i < n; i++ {
		a := activity[i]
		if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
			return nil, fmt.Errorf("point %q: activity %g: %w", points[i], a, ErrBadActivity)
		}
		for j := 0; j < m; j++ {
			c, _ := costs.At(i, j)
			switch {
			case math.IsNaN(c), math.IsInf(c, 1):
				c = math.NaN()
			case c < 0 || math.IsInf(c, -1):
				return nil, fmt.Errorf("point %q, location %q: cost %g: %w", points[i], locations[j], c, ErrBadCost)
			}
			row[j] = c
		}
		if err = dense.SetRow(i, row); err != nil {
			return nil, err
		}
	}

	return &Matrix{
		points:        append([]string(nil), points...),
		locations:     append([]string(nil), locations...),
		costs:         dense,
		activity:      append([]float64(nil), activity...),
		pointIndex:    pointIndex,
		locationIndex: locationIndex,
	}, nil
}

// indexIDs maps each id to its position, rejecting duplicates.
func indexIDs(kind string, ids []string) (map[string]int, error) {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		if prev, dup := idx[id]; dup {
			return nil, fmt.Errorf("%s %q at %d and %d: %w", kind, id, prev, i, ErrDuplicateID)
		}
		idx[id] = i
	}

	return idx, nil
}

// NumPoints returns N.
func (tm *Matrix) NumPoints() int { return len(tm.points) }

// NumLocations returns M.
func (tm *Matrix) NumLocations() int { return len(tm.locations) }

// Points returns the demand point identifiers in row order. Read-only.
func (tm *Matrix) Points() []string { return tm.points }

// Locations returns the location universe in column order. Read-only.
func (tm *Matrix) Locations() []string { return tm.locations }

// PointIndex returns the row of a demand point.
func (tm *Matrix) PointIndex(id string) (int, bool) {
	i, ok := tm.pointIndex[id]
	return i, ok
}

// LocationIndex returns the column of a location.
func (tm *Matrix) LocationIndex(id string) (int, bool) {
	j, ok := tm.locationIndex[id]
	return j, ok
}

// Row returns the costs of point i to every location without copying.
// The slice must not be modified. Panics if i is out of range.
func (tm *Matrix) Row(i int) []float64 {
	r, err := tm.costs.RowView(i)
	if err != nil {
		panic(err)
	}

	return r
}

// Cost returns the cost from point i to location j (NaN = unreachable).
// Panics if i or j is out of range.
func (tm *Matrix) Cost(i, j int) float64 { return tm.Row(i)[j] }

// Activity returns the activity weight of point i.
func (tm *Matrix) Activity(i int) float64 { return tm.activity[i] }

// TotalActivity returns Σ activity over all points.
func (tm *Matrix) TotalActivity() float64 {
	var s float64
	for _, a := range tm.activity {
		s += a
	}

	return s
}

// RowMin returns the minimum cost of point i over all locations and the first
// column attaining it, or (NaN, -1) when every location is unreachable.
// Complexity: O(M).
func (tm *Matrix) RowMin(i int) (float64, int) {
	best, arg := math.NaN(), -1
	for j, c := range tm.Row(i) {
		if math.IsNaN(c) {
			continue
		}
		if arg < 0 || c < best {
			best, arg = c, j
		}
	}

	return best, arg
}

// Unreachable returns the number of unreachable point-location pairs.
func (tm *Matrix) Unreachable() int { return tm.costs.CountNaN() }
