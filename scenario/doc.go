// SPDX-License-Identifier: MIT

// Package scenario evaluates one scenario (a set of open locations) against
// the travel matrix and aggregates the result into per-scenario statistics.
//
// Evaluation:
//
//	For every demand point the Evaluator picks the open location with the
//	lowest travel cost. NaN (unreachable) ranks above every real cost, so a
//	reachable location always wins over an unreachable one. Ties go to the
//	first location in universe order. A point with every open location
//	unreachable gets cost NaN and nearest location -1.
//
// Aggregation:
//
//	The Aggregator turns an Assignment into Statistics:
//	  – system median, max and 95th percentile of the defined costs;
//	  – system activity within threshold (cost < threshold, strict);
//	  – per location: open flag and, over the points assigned to it, median,
//	    max, 95th percentile, activity and activity within threshold.
//	Closed locations, and open locations with no assigned point, report
//	stats.Undefined; Open tells the two apart.
//
// Concurrency:
//
//	Evaluator and Aggregator keep per-instance scratch buffers and must not
//	be shared between goroutines; create one of each per worker. The travel
//	matrix they read is shared read-only.
package scenario
