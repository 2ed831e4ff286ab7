// SPDX-License-Identifier: MIT

package scenario

import (
	"fmt"
	"math"

	"github.com/KerryPearn/routino-gm-scenarios/stats"
	"github.com/KerryPearn/routino-gm-scenarios/travel"
)

// DefaultThreshold is the default coverage threshold, in travel cost units.
const DefaultThreshold = 30.0

// LocationStats are the per-location figures of one scenario.
// For closed locations, and for open locations with no assigned point, every
// Value is stats.Undefined.
type LocationStats struct {
	Open           bool
	Assigned       int // number of demand points assigned
	Median         stats.Value
	Max            stats.Value
	P95            stats.Value
	Activity       stats.Value
	ActivityWithin stats.Value
}

// Statistics are the aggregated figures of one scenario.
type Statistics struct {
	ScenarioID     int
	Reachable      int // points with a defined cost
	Median         stats.Value
	Max            stats.Value
	P95            stats.Value
	ActivityWithin stats.Value // always defined; unreachable points contribute 0
	Locations      []LocationStats
}

// Aggregator turns Assignments into Statistics for a fixed threshold.
type Aggregator struct {
	tm        *travel.Matrix
	threshold float64

	system  []float64   // scratch: defined costs of all points
	covered []float64   // scratch: activity of points within the threshold
	groups  [][]float64 // scratch: defined costs per nearest location
	weights [][]float64 // scratch: activity per nearest location
	within  [][]float64 // scratch: activity within threshold per nearest location
}

// NewAggregator returns an Aggregator over tm.
//
// Errors: ErrBadThreshold unless threshold is finite and > 0.
func NewAggregator(tm *travel.Matrix, threshold float64) (*Aggregator, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	return &Aggregator{
		tm:        tm,
		threshold: threshold,
		system:    make([]float64, 0, tm.NumPoints()),
		covered:   make([]float64, 0, tm.NumPoints()),
		groups:    make([][]float64, tm.NumLocations()),
		weights:   make([][]float64, tm.NumLocations()),
		within:    make([][]float64, tm.NumLocations()),
	}, nil
}

// ValidateThreshold returns ErrBadThreshold unless threshold is finite and > 0.
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold <= 0 {
		return fmt.Errorf("threshold %g: %w", threshold, ErrBadThreshold)
	}

	return nil
}

// Threshold returns the coverage threshold.
func (ag *Aggregator) Threshold() float64 { return ag.threshold }

// Aggregate computes the Statistics of scenario s from its Assignment a.
//
// Implementation:
//   - Stage 1: one pass over points grouping defined costs and activity
//     weights by nearest location.
//   - Stage 2: order statistics and activity sums per non-empty group.
//
// Errors:
//   - ErrUniverseMismatch when s or a do not match the matrix.
//
// Complexity: O(N log N) per scenario, dominated by sorting.
func (ag *Aggregator) Aggregate(s *Scenario, a *Assignment, out *Statistics) error {
	n, m := ag.tm.NumPoints(), ag.tm.NumLocations()
	if s.Universe() != m || len(a.Cost) != n || len(a.Nearest) != n {
		return fmt.Errorf("scenario %d: %w", s.ID, ErrUniverseMismatch)
	}
	if cap(out.Locations) < m {
		out.Locations = make([]LocationStats, m)
	}
	out.Locations = out.Locations[:m]

	ag.system, ag.covered = ag.system[:0], ag.covered[:0]
	for j := range ag.groups {
		ag.groups[j] = ag.groups[j][:0]
		ag.weights[j] = ag.weights[j][:0]
		ag.within[j] = ag.within[j][:0]
	}

	for i := 0; i < n; i++ {
		c, j := a.Cost[i], a.Nearest[i]
		if j == NoLocation || math.IsNaN(c) {
			continue
		}
		w := ag.tm.Activity(i)
		ag.system = append(ag.system, c)
		ag.groups[j] = append(ag.groups[j], c)
		ag.weights[j] = append(ag.weights[j], w)
		if c < ag.threshold {
			ag.within[j] = append(ag.within[j], w)
			ag.covered = append(ag.covered, w)
		}
	}

	sys := stats.Summarize(ag.system)
	out.ScenarioID = s.ID
	out.Reachable = len(ag.system)
	out.Median, out.Max, out.P95 = sys.Median, sys.Max, sys.P95
	out.ActivityWithin = stats.Defined(stats.Total(ag.covered))

	for j := 0; j < m; j++ {
		ls := LocationStats{Open: s.IsOpen(j), Assigned: len(ag.groups[j])}
		if ls.Open && ls.Assigned > 0 {
			g := stats.Summarize(ag.groups[j])
			ls.Median, ls.Max, ls.P95 = g.Median, g.Max, g.P95
			ls.Activity = stats.Sum(ag.weights[j])
			ls.ActivityWithin = stats.Defined(stats.Total(ag.within[j]))
		}
		out.Locations[j] = ls
	}

	return nil
}
