// SPDX-License-Identifier: MIT

package core

import "fmt"

// Neighbors returns the edges leaving id, in insertion order. Undirected
// edges are returned with From == id so callers can read e.To directly.
//
// Errors: ErrVertexNotFound.
// Complexity: O(deg(id)).
func (g *Graph) Neighbors(id int64) ([]Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("Neighbors(%d): %w", id, ErrVertexNotFound)
	}
	out := make([]Edge, 0, len(g.adjacency[i]))
	for _, eid := range g.adjacency[i] {
		e := g.edges[eid]
		if e.To == id && e.From != id {
			e.From, e.To = e.To, e.From
		}
		out = append(out, e)
	}

	return out, nil
}
