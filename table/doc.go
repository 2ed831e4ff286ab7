// SPDX-License-Identifier: MIT

// Package table lays out and accumulates the scenario result table.
//
// Layout (M locations, 4 + 6·M columns):
//
//	median_travel, max_travel, 95pctl_travel, activity_within_<threshold>,
//	location_0 … location_{M-1},
//	median_0 … median_{M-1},
//	max_0 … max_{M-1},
//	95pctl_0 … 95pctl_{M-1},
//	activity_0 … activity_{M-1},
//	activity_within_threshold_0 … activity_within_threshold_{M-1}
//
// Column positions are addressed by a structured Key{Metric, Location} rather
// than by header strings.
//
// Row i holds scenario id i and is labelled "scen_<i>"; row order is the
// generation order of the scenarios. Undefined statistics are stored as NaN.
//
// A Builder pre-allocates every row up front. Writers filling distinct rows
// may run concurrently without locking; Finalize must run after all writers
// are done (e.g. after sync.WaitGroup.Wait).
package table
