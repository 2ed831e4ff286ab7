// SPDX-License-Identifier: MIT

// Package core provides the thread-safe road graph that travel costs are
// computed on.
//
// Vertices are identified by int64 labels, as produced by osm2ch and
// similar road-network converters. Edges carry a non-negative, finite
// float64 weight (metres, seconds, minutes: the unit is the caller's).
//
// Configuration options (GraphOption):
//
//	– WithDirected(bool)  default orientation of new edges (default undirected).
//	– WithMultiEdges()    allow parallel edges between the same endpoints.
//	– WithLoops()         allow self-loops.
//
// Methods:
//
//	// Vertex lifecycle
//	AddVertex(id int64) error                 // O(1), idempotent
//	HasVertex(id int64) bool                  // O(1)
//	Vertices() []int64                        // O(V log V), ascending
//
//	// Edge lifecycle
//	AddEdge(from, to int64, w float64, opts ...EdgeOption) (int, error) // O(1)†
//	HasEdge(from, to int64) bool              // O(deg(from))
//	Edges() []Edge                            // O(E), insertion order
//
//	// Query
//	Neighbors(id int64) ([]Edge, error)       // O(deg), insertion order
//	Degree(id int64) (in, out int, err error) // O(deg)
//	Stats() GraphStats                        // O(1)
//
//	// Read-only snapshot for path searches
//	Compact() *Compact                        // O(V+E), cached until next mutation
//
// † amortized; AddEdge auto-adds missing endpoints.
//
// Concurrency:
//   - One sync.RWMutex guards the catalog; readers never block each other.
//   - A Compact snapshot is immutable and safe to share across goroutines
//     without locking.
//
// Errors:
//
//	ErrVertexNotFound      – missing vertex
//	ErrBadWeight           – negative, NaN or infinite weight
//	ErrLoopNotAllowed      – self-loop when loops are disabled
//	ErrMultiEdgeNotAllowed – parallel edge when multi-edges are disabled
package core
