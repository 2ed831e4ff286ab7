// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"slices"
)

// AddVertex inserts a vertex if missing (idempotent).
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureVertex(id)

	return nil
}

// ensureVertex returns the dense index of id, registering it when missing.
// Caller must hold the write lock.
func (g *Graph) ensureVertex(id int64) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	i := len(g.labels)
	g.index[id] = i
	g.labels = append(g.labels, id)
	g.adjacency = append(g.adjacency, nil)
	g.inDegree = append(g.inDegree, 0)
	g.compact = nil

	return i
}

// HasVertex reports whether id is present.
// Complexity: O(1).
func (g *Graph) HasVertex(id int64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.index[id]

	return ok
}

// Vertices returns all vertex labels in ascending order.
// Complexity: O(V log V).
func (g *Graph) Vertices() []int64 {
	g.mu.RLock()
	out := slices.Clone(g.labels)
	g.mu.RUnlock()
	slices.Sort(out)

	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.labels)
}

// Degree returns the in- and out-degree of id. An undirected edge counts
// once in each; a self-loop counts once in each.
//
// Errors: ErrVertexNotFound.
// Complexity: O(deg(id)).
func (g *Graph) Degree(id int64) (in, out int, err error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i, ok := g.index[id]
	if !ok {
		return 0, 0, fmt.Errorf("Degree(%d): %w", id, ErrVertexNotFound)
	}
	for _, eid := range g.adjacency[i] {
		out++
		if !g.edges[eid].Directed {
			in++
		}
	}

	return in + g.inDegree[i], out, nil
}
