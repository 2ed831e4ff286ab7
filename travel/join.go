// SPDX-License-Identifier: MIT

package travel

import (
	"fmt"

	"github.com/KerryPearn/routino-gm-scenarios/matrix"
)

// CostTable is a raw travel-cost table as read from storage, before it is
// joined with activity weights.
type CostTable struct {
	Points    []string      // row identifiers (demand points)
	Locations []string      // column identifiers (location universe)
	Costs     matrix.Matrix // len(Points)×len(Locations); NaN = unreachable
}

// Weight is the activity attached to one demand point.
type Weight struct {
	Point    string
	Activity float64
}

// Join keeps the demand points present both in ct and in weights, in ct's
// row order, and builds a validated Matrix from them.
//
// Errors:
//   - ErrDuplicateID for repeated weight identifiers.
//   - ErrEmptyJoin when no point is shared.
//   - any error of New.
//
// Complexity: O(N·M + W).
func Join(ct CostTable, weights []Weight) (*Matrix, error) {
	if len(ct.Locations) == 0 {
		return nil, ErrNoLocations
	}
	if err := matrix.ValidateShape(ct.Costs, len(ct.Points), len(ct.Locations)); err != nil {
		return nil, fmt.Errorf("cost table: %v: %w", err, ErrShape)
	}
	byPoint := make(map[string]float64, len(weights))
	for _, w := range weights {
		if _, dup := byPoint[w.Point]; dup {
			return nil, fmt.Errorf("activity for point %q: %w", w.Point, ErrDuplicateID)
		}
		byPoint[w.Point] = w.Activity
	}

	m := len(ct.Locations)
	var (
		points   []string
		activity []float64
		data     []float64
	)
	for i, id := range ct.Points {
		a, ok := byPoint[id]
		if !ok {
			continue
		}
		points = append(points, id)
		activity = append(activity, a)
		for j := 0; j < m; j++ {
			c, _ := ct.Costs.At(i, j)
			data = append(data, c)
		}
	}
	if len(points) == 0 {
		return nil, ErrEmptyJoin
	}
	costs, err := matrix.NewDenseFrom(len(points), m, data, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}

	return New(points, ct.Locations, costs, activity)
}
