// SPDX-License-Identifier: MIT

package table

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
)

// Sentinel errors.
var (
	// ErrNoLocations indicates a layout over an empty universe.
	ErrNoLocations = errkind.Configuration("table: empty location universe")

	// ErrUnknownKey indicates a Key outside the layout.
	ErrUnknownKey = errkind.Configuration("table: unknown column key")

	// ErrRowOutOfRange indicates a row index outside the table.
	ErrRowOutOfRange = errkind.Configuration("table: row out of range")

	// ErrDuplicateRow indicates a second write of the same row.
	ErrDuplicateRow = errors.New("table: row written twice")

	// ErrIncomplete indicates a table with rows never written.
	ErrIncomplete = errors.New("table: incomplete table")
)

// Metric identifies one statistic of the result table.
type Metric int

// Metrics in column order. The first four are system-wide; the others are
// repeated once per location.
const (
	SystemMedian Metric = iota
	SystemMax
	SystemP95
	SystemActivityWithin
	LocationOpen
	LocationMedian
	LocationMax
	LocationP95
	LocationActivity
	LocationActivityWithin
)

// systemMetrics is the number of system-wide columns.
const systemMetrics = 4

// locationMetrics is the number of per-location column blocks.
const locationMetrics = 6

// locationPrefix holds the header prefix of each per-location block.
var locationPrefix = [locationMetrics]string{
	"location_", "median_", "max_", "95pctl_", "activity_", "activity_within_threshold_",
}

// IsSystem reports whether the metric is a system-wide one.
func (m Metric) IsSystem() bool { return m >= SystemMedian && m <= SystemActivityWithin }

// Key addresses one column. Location is ignored for system metrics.
type Key struct {
	Metric   Metric
	Location int
}

// Layout is the fixed column layout for M locations and a threshold.
type Layout struct {
	m         int
	threshold float64
	header    []string
}

// NewLayout returns the column layout for m locations.
//
// Errors: ErrNoLocations if m ≤ 0.
func NewLayout(m int, threshold float64) (*Layout, error) {
	if m <= 0 {
		return nil, ErrNoLocations
	}
	l := &Layout{m: m, threshold: threshold}
	l.header = make([]string, 0, l.Cols())
	l.header = append(l.header,
		"median_travel",
		"max_travel",
		"95pctl_travel",
		"activity_within_"+FormatThreshold(threshold),
	)
	for _, prefix := range locationPrefix {
		for j := 0; j < m; j++ {
			l.header = append(l.header, prefix+strconv.Itoa(j))
		}
	}

	return l, nil
}

// FormatThreshold renders a threshold the way it appears in the header:
// shortest decimal form, so 30 → "30" and 2.5 → "2.5".
func FormatThreshold(threshold float64) string {
	return strconv.FormatFloat(threshold, 'f', -1, 64)
}

// Locations returns M.
func (l *Layout) Locations() int { return l.m }

// Threshold returns the coverage threshold named in the header.
func (l *Layout) Threshold() float64 { return l.threshold }

// Cols returns 4 + 6·M.
func (l *Layout) Cols() int { return systemMetrics + locationMetrics*l.m }

// Header returns the column names. Read-only.
func (l *Layout) Header() []string { return l.header }

// Index returns the column of key.
//
// Errors: ErrUnknownKey for an unknown metric or a location outside [0, M).
// Complexity: O(1).
func (l *Layout) Index(key Key) (int, error) {
	switch {
	case key.Metric.IsSystem():
		return int(key.Metric), nil
	case key.Metric >= LocationOpen && key.Metric <= LocationActivityWithin:
		if key.Location < 0 || key.Location >= l.m {
			return 0, fmt.Errorf("Index(%v): location %d with M=%d: %w", key.Metric, key.Location, l.m, ErrUnknownKey)
		}
		block := int(key.Metric - LocationOpen)
		return systemMetrics + block*l.m + key.Location, nil
	default:
		return 0, fmt.Errorf("Index(metric=%d): %w", key.Metric, ErrUnknownKey)
	}
}

// mustIndex is Index for keys built internally from valid metrics.
func (l *Layout) mustIndex(metric Metric, location int) int {
	if metric.IsSystem() {
		return int(metric)
	}

	return systemMetrics + int(metric-LocationOpen)*l.m + location
}

// KeyOf is the inverse of Index.
//
// Errors: ErrUnknownKey for a column outside [0, Cols()).
func (l *Layout) KeyOf(col int) (Key, error) {
	switch {
	case col < 0 || col >= l.Cols():
		return Key{}, fmt.Errorf("KeyOf(%d): %w", col, ErrUnknownKey)
	case col < systemMetrics:
		return Key{Metric: Metric(col)}, nil
	default:
		off := col - systemMetrics
		return Key{Metric: LocationOpen + Metric(off/l.m), Location: off % l.m}, nil
	}
}

// RowLabel returns "scen_<i>".
func RowLabel(i int) string { return "scen_" + strconv.Itoa(i) }

// String names the metric like its header prefix.
func (m Metric) String() string {
	switch m {
	case SystemMedian:
		return "median_travel"
	case SystemMax:
		return "max_travel"
	case SystemP95:
		return "95pctl_travel"
	case SystemActivityWithin:
		return "activity_within"
	}
	if m >= LocationOpen && m <= LocationActivityWithin {
		p := locationPrefix[m-LocationOpen]
		return p[:len(p)-1]
	}

	return "metric(" + strconv.Itoa(int(m)) + ")"
}
