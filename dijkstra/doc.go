// SPDX-License-Identifier: MIT

// Package dijkstra computes single-source shortest paths on a core.Graph
// with non-negative edge weights.
//
// Overview:
//
//   - Runs on the graph's Compact snapshot, so repeated searches from many
//     sources share one read-only layout and can run concurrently.
//   - Lazy decrease-key min-heap: stale heap entries are skipped when popped.
//   - Distances are float64; unreachable vertices report +Inf.
//
// Options:
//
//	– Source(id)          required, the starting vertex label.
//	– WithReturnPath()    keep predecessors so Path can rebuild routes.
//	– WithMaxDistance(x)  do not settle vertices farther than x.
//	– WithTargets(ids...) stop once every target is settled.
//
// Only settled vertices have final distances; with WithMaxDistance or
// WithTargets the search may stop early and every unsettled vertex
// reports +Inf.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
package dijkstra
