// SPDX-License-Identifier: MIT

package core

import "fmt"

// Compact is an immutable compressed-sparse-row snapshot of a Graph, laid
// out for path searches: the arcs leaving dense vertex i are
// Heads[Offsets[i]:Offsets[i+1]] with matching Weights. Undirected edges
// become two arcs.
//
// A Compact never changes; share it freely across goroutines.
type Compact struct {
	Labels  []int64   // dense index → vertex label
	Offsets []int     // len(Labels)+1 arc offsets
	Heads   []int32   // arc → dense head vertex
	Weights []float64 // arc → weight

	index map[int64]int
}

// Compact returns the snapshot of g, building it on first use after a
// mutation.
// Complexity: O(V+E) to build, O(1) when cached.
func (g *Graph) Compact() *Compact {
	g.mu.RLock()
	c := g.compact
	g.mu.RUnlock()
	if c != nil {
		return c
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.compact == nil {
		g.compact = g.buildCompact()
	}

	return g.compact
}

// buildCompact lays out the arcs of every vertex in adjacency order.
// Caller must hold the write lock.
func (g *Graph) buildCompact() *Compact {
	n := len(g.labels)
	c := &Compact{
		Labels:  append([]int64(nil), g.labels...),
		Offsets: make([]int, n+1),
		index:   make(map[int64]int, n),
	}
	for i, id := range g.labels {
		c.index[id] = i
	}
	for i := 0; i < n; i++ {
		c.Offsets[i+1] = c.Offsets[i] + len(g.adjacency[i])
	}
	c.Heads = make([]int32, c.Offsets[n])
	c.Weights = make([]float64, c.Offsets[n])
	for i, id := range g.labels {
		k := c.Offsets[i]
		for _, eid := range g.adjacency[i] {
			e := &g.edges[eid]
			head, _ := e.traverse(id)
			c.Heads[k] = int32(g.index[head])
			c.Weights[k] = e.Weight
			k++
		}
	}

	return c
}

// Len returns the number of vertices.
func (c *Compact) Len() int { return len(c.Labels) }

// Index returns the dense index of a vertex label.
//
// Errors: ErrVertexNotFound.
func (c *Compact) Index(id int64) (int, error) {
	i, ok := c.index[id]
	if !ok {
		return 0, fmt.Errorf("vertex %d: %w", id, ErrVertexNotFound)
	}

	return i, nil
}
