// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"math"
	"slices"
)

// AddEdge connects from→to with weight w and returns the new edge ID.
// Missing endpoints are added. Undirected edges are listed under both
// endpoints; a self-loop is listed once.
//
// Errors:
//   - ErrBadWeight for negative, NaN or infinite w.
//   - ErrLoopNotAllowed, ErrMultiEdgeNotAllowed per graph configuration.
//
// Complexity: O(1) amortized, O(deg(from)) when multi-edges are disabled.
func (g *Graph) AddEdge(from, to int64, w float64, opts ...EdgeOption) (int, error) {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("AddEdge(%d→%d, %v): %w", from, to, w, ErrBadWeight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if from == to && !g.allowLoops {
		return 0, fmt.Errorf("AddEdge(%d→%d): %w", from, to, ErrLoopNotAllowed)
	}

	e := Edge{From: from, To: to, Weight: w, Directed: g.directed}
	for _, opt := range opts {
		opt(&e)
	}
	if !g.allowMulti && g.hasEdgeLocked(from, to) {
		return 0, fmt.Errorf("AddEdge(%d→%d): %w", from, to, ErrMultiEdgeNotAllowed)
	}

	fi := g.ensureVertex(from)
	ti := g.ensureVertex(to)
	e.ID = len(g.edges)
	g.edges = append(g.edges, e)
	g.adjacency[fi] = append(g.adjacency[fi], e.ID)
	switch {
	case e.Directed:
		g.inDegree[ti]++
	case fi != ti:
		g.adjacency[ti] = append(g.adjacency[ti], e.ID)
	}
	g.compact = nil

	return e.ID, nil
}

// HasEdge reports whether from→to is traversable through a single edge.
// Complexity: O(deg(from)).
func (g *Graph) HasEdge(from, to int64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.hasEdgeLocked(from, to)
}

func (g *Graph) hasEdgeLocked(from, to int64) bool {
	i, ok := g.index[from]
	if !ok {
		return false
	}
	for _, eid := range g.adjacency[i] {
		if other, ok := g.edges[eid].traverse(from); ok && other == to {
			return true
		}
	}

	return false
}

// traverse returns the endpoint reached from v along e, if e leaves v.
func (e *Edge) traverse(v int64) (int64, bool) {
	switch {
	case e.From == v:
		return e.To, true
	case !e.Directed && e.To == v:
		return e.From, true
	default:
		return 0, false
	}
}

// Edges returns a copy of all edges in insertion (ID) order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return slices.Clone(g.edges)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}
