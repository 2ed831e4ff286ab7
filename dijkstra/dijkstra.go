// SPDX-License-Identifier: MIT

package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/KerryPearn/routino-gm-scenarios/core"
)

// Result holds the distances of one search.
type Result struct {
	c       *core.Compact
	source  int
	dist    []float64
	prev    []int32 // -1 for the source and unreached vertices; nil unless tracked
	settled []bool
}

// Dijkstra runs a search from Options.Source over g.
//
// Preconditions, validated in order:
//  1. Source is set (ErrNoSource).
//  2. g is non-nil (ErrNilGraph).
//  3. Source and every target exist (ErrVertexNotFound).
//
// Negative weights cannot occur: core.Graph rejects them on insertion.
//
// Complexity: O((V + E) log V) time, O(V + E) space.
func Dijkstra(g *core.Graph, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.hasSource {
		return nil, ErrNoSource
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	c := g.Compact()
	src, err := c.Index(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("source %d: %w", cfg.Source, ErrVertexNotFound)
	}
	targets := make(map[int]struct{}, len(cfg.Targets))
	for _, id := range cfg.Targets {
		i, err := c.Index(id)
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", id, ErrVertexNotFound)
		}
		targets[i] = struct{}{}
	}

	n := c.Len()
	r := &runner{
		c:       c,
		cfg:     cfg,
		targets: targets,
		res: &Result{
			c:       c,
			source:  src,
			dist:    make([]float64, n),
			settled: make([]bool, n),
		},
	}
	if cfg.ReturnPath {
		r.res.prev = make([]int32, n)
	}
	r.init(src)
	r.process()

	return r.res, nil
}

// runner holds the mutable state of one search.
type runner struct {
	c       *core.Compact
	cfg     Options
	targets map[int]struct{} // dense indices still to settle; nil map means none
	res     *Result
	pq      nodePQ
}

func (r *runner) init(src int) {
	inf := math.Inf(1)
	for i := range r.res.dist {
		r.res.dist[i] = inf
	}
	for i := range r.res.prev {
		r.res.prev[i] = -1
	}
	r.res.dist[src] = 0
	heap.Push(&r.pq, nodeItem{idx: int32(src), dist: 0})
}

// process settles vertices in distance order until the heap drains, the
// distance cap is passed or every target is settled.
func (r *runner) process() {
	wantTargets := len(r.targets) > 0
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(nodeItem)
		u := int(item.idx)
		if r.res.settled[u] || item.dist > r.res.dist[u] {
			continue
		}
		if item.dist > r.cfg.MaxDistance {
			break
		}
		r.res.settled[u] = true
		if wantTargets {
			delete(r.targets, u)
			if len(r.targets) == 0 {
				return
			}
		}
		r.relax(u, item.dist)
	}
}

// relax improves the tentative distance of every head reachable from u.
func (r *runner) relax(u int, du float64) {
	c := r.c
	for k := c.Offsets[u]; k < c.Offsets[u+1]; k++ {
		v := c.Heads[k]
		nd := du + c.Weights[k]
		if nd > r.cfg.MaxDistance || nd >= r.res.dist[v] {
			continue
		}
		r.res.dist[v] = nd
		if r.res.prev != nil {
			r.res.prev[v] = int32(u)
		}
		heap.Push(&r.pq, nodeItem{idx: v, dist: nd})
	}
}

// Dist returns the shortest distance to id, +Inf when it was not settled.
//
// Errors: ErrVertexNotFound.
func (res *Result) Dist(id int64) (float64, error) {
	i, err := res.c.Index(id)
	if err != nil {
		return 0, fmt.Errorf("Dist(%d): %w", id, ErrVertexNotFound)
	}
	if !res.settled[i] {
		return math.Inf(1), nil
	}

	return res.dist[i], nil
}

// Reached reports whether id was settled.
func (res *Result) Reached(id int64) bool {
	i, err := res.c.Index(id)

	return err == nil && res.settled[i]
}

// Path returns the vertex labels of one shortest path from the source to id.
//
// Errors: ErrPathNotTracked, ErrVertexNotFound, ErrNoPath.
// Complexity: O(path length).
func (res *Result) Path(id int64) ([]int64, error) {
	if res.prev == nil {
		return nil, ErrPathNotTracked
	}
	i, err := res.c.Index(id)
	if err != nil {
		return nil, fmt.Errorf("Path(%d): %w", id, ErrVertexNotFound)
	}
	if !res.settled[i] {
		return nil, fmt.Errorf("Path(%d): %w", id, ErrNoPath)
	}
	var rev []int64
	for v := int32(i); v >= 0; v = res.prev[v] {
		rev = append(rev, res.c.Labels[v])
	}
	out := make([]int64, len(rev))
	for k := range rev {
		out[k] = rev[len(rev)-1-k]
	}

	return out, nil
}

// nodeItem is a heap entry: a dense vertex and a tentative distance.
type nodeItem struct {
	idx  int32
	dist float64
}

// nodePQ is a min-heap of nodeItem ordered by dist. Ties break on the
// lower vertex index so runs are deterministic.
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].idx < pq[j].idx
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
