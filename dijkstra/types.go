// SPDX-License-Identifier: MIT

package dijkstra

import (
	"errors"
	"math"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
)

// Sentinel errors.
var (
	// ErrNoSource indicates Dijkstra was called without Source.
	ErrNoSource = errkind.Configuration("dijkstra: source vertex not set")

	// ErrNilGraph indicates a nil *core.Graph.
	ErrNilGraph = errkind.Configuration("dijkstra: graph is nil")

	// ErrVertexNotFound indicates the source or a queried vertex is not in the graph.
	ErrVertexNotFound = errkind.Data("dijkstra: vertex not found in graph")

	// ErrBadMaxDistance indicates a negative or NaN MaxDistance.
	ErrBadMaxDistance = errkind.Configuration("dijkstra: MaxDistance must be non-negative")

	// ErrNoPath indicates the queried vertex was not reached.
	ErrNoPath = errors.New("dijkstra: no path")

	// ErrPathNotTracked indicates Path was called without WithReturnPath.
	ErrPathNotTracked = errors.New("dijkstra: predecessors not tracked")
)

// Options configures a search.
type Options struct {
	Source      int64   // starting vertex label
	ReturnPath  bool    // keep predecessors
	MaxDistance float64 // settle nothing farther than this (default +Inf)
	Targets     []int64 // stop once all are settled (default: explore everything)

	hasSource bool
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting vertex.
func Source(id int64) Option {
	return func(o *Options) {
		o.Source = id
		o.hasSource = true
	}
}

// WithReturnPath keeps the predecessor of every settled vertex.
func WithReturnPath() Option {
	return func(o *Options) { o.ReturnPath = true }
}

// WithMaxDistance caps the explored distance. Panics on negative or NaN.
func WithMaxDistance(max float64) Option {
	if max < 0 || math.IsNaN(max) {
		panic(ErrBadMaxDistance.Error())
	}
	return func(o *Options) { o.MaxDistance = max }
}

// WithTargets stops the search once every listed vertex is settled.
// Unknown labels are reported by Dijkstra as ErrVertexNotFound.
func WithTargets(ids ...int64) Option {
	cp := append([]int64(nil), ids...)
	return func(o *Options) { o.Targets = cp }
}

// DefaultOptions returns the defaults: no source, no predecessors, no cap,
// no targets.
func DefaultOptions() Options {
	return Options{MaxDistance: math.Inf(1)}
}
