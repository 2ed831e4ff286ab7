// SPDX-License-Identifier: MIT

package core

import (
	"sync"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
)

// Sentinel errors for core graph operations. All of them describe bad
// network data and are of kind errkind.ErrData.
var (
	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errkind.Data("core: vertex not found")

	// ErrBadWeight indicates a negative, NaN or infinite edge weight.
	ErrBadWeight = errkind.Data("core: edge weight must be finite and >= 0")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errkind.Data("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errkind.Data("core: multi-edges not allowed")
)

// Edge is one road segment between two labelled vertices.
type Edge struct {
	// ID is the insertion index of the edge, starting at 0.
	ID int

	// From is the source vertex label.
	From int64

	// To is the destination vertex label.
	To int64

	// Weight is the traversal cost.
	Weight float64

	// Directed reports a one-way edge; undirected edges are traversable
	// both ways.
	Directed bool
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected sets the default directedness of new edges.
func WithDirected(defaultDirected bool) GraphOption {
	return func(g *Graph) { g.directed = defaultDirected }
}

// WithMultiEdges permits parallel edges between the same vertices.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// WithLoops permits self-loops.
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// EdgeOption configures an individual edge when added.
type EdgeOption func(*Edge)

// WithEdgeDirected overrides the graph's default directedness for one edge.
func WithEdgeDirected(directed bool) EdgeOption {
	return func(e *Edge) { e.Directed = directed }
}

// Graph is the in-memory road graph.
//
// Vertices are stored densely: index maps a label to its position in
// labels and adjacency. adjacency[i] lists the IDs of edges incident to
// vertex i (outgoing for directed edges, both endpoints for undirected).
type Graph struct {
	mu sync.RWMutex

	directed   bool // default directedness
	allowMulti bool // allow parallel edges
	allowLoops bool // allow self-loops

	index     map[int64]int // label → dense index
	labels    []int64       // dense index → label
	edges     []Edge        // edge ID → Edge
	adjacency [][]int       // dense index → incident edge IDs
	inDegree  []int         // dense index → directed in-degree

	compact *Compact // cached snapshot, nil after any mutation
}

// GraphStats is a snapshot of graph size and configuration.
type GraphStats struct {
	Vertices   int
	Edges      int
	Directed   bool
	MultiEdges bool
	Loops      bool
}

// NewGraph creates an empty Graph. By default the graph is undirected,
// without loops or multi-edges.
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{index: make(map[int64]int)}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Directed reports the default directedness of new edges.
func (g *Graph) Directed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.directed
}

// Stats returns the current vertex and edge counts with the configuration flags.
// Complexity: O(1).
func (g *Graph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return GraphStats{
		Vertices:   len(g.labels),
		Edges:      len(g.edges),
		Directed:   g.directed,
		MultiEdges: g.allowMulti,
		Loops:      g.allowLoops,
	}
}
