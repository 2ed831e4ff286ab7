// SPDX-License-Identifier: MIT

// Package gmscenarios evaluates every subset of candidate service locations
// against a demand-weighted travel-cost matrix and reports, per subset, how
// far the demand has to travel and how much of it falls within a threshold.
//
// Layout:
//
//	errkind/   – error kinds shared by every package (configuration, data, numeric, resource limit)
//	matrix/    – row-major Dense storage with a NaN-as-missing numeric policy
//	stats/     – median, linear-interpolation quantiles, max and sums with an undefined state
//	subset/    – non-empty subsets of the location universe in canonical order
//	travel/    – the joined travel matrix: points × locations plus activity weights
//	scenario/  – nearest-open-location assignment and per-scenario statistics
//	table/     – the wide result table and its column layout
//	engine/    – parallel, cancellable evaluation of all scenarios
//	dataio/    – CSV (optionally gzipped) and GeoJSON input/output
//	core/      – thread-safe road graph with a compact CSR snapshot
//	dijkstra/  – single-source shortest paths over core graphs
//	network/   – travel-cost matrices from a road network (Dijkstra or contraction hierarchies)
//
// The gmscenarios command in cmd/gmscenarios wires these into the run and
// matrix subcommands.
package gmscenarios
