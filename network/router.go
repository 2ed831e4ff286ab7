// SPDX-License-Identifier: MIT

package network

import (
	"context"
	"fmt"
	"time"

	"github.com/KerryPearn/routino-gm-scenarios/dataio"
	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"github.com/KerryPearn/routino-gm-scenarios/internal/logging"
	"github.com/KerryPearn/routino-gm-scenarios/travel"
)

// Sentinel errors.
var (
	// ErrNoSites indicates an empty origin or destination list.
	ErrNoSites = errkind.Configuration("network: no origin or destination sites")

	// ErrDuplicateSite indicates a repeated site id within origins or destinations.
	ErrDuplicateSite = errkind.Data("network: duplicate site id")

	// ErrUnknownVertex indicates a site mapped to a vertex absent from the network.
	ErrUnknownVertex = errkind.Data("network: site vertex not in road network")

	// ErrNoEdges indicates an empty edge list.
	ErrNoEdges = errkind.Data("network: road network has no edges")

	// ErrBadWorkers indicates a negative worker count.
	ErrBadWorkers = errkind.Configuration("network: workers must be >= 0")
)

// Router computes origin × destination travel costs.
type Router interface {
	// Name identifies the router in logs and metrics.
	Name() string

	// Route returns a cost table with origins as points and destinations
	// as locations, both in the given order. Unreachable pairs are NaN.
	Route(ctx context.Context, origins, destinations []dataio.Site) (travel.CostTable, error)
}

// Recorder receives the wall time of each table build.
type Recorder interface {
	MatrixBuilt(router string, elapsed time.Duration)
}

// Options configures routers.
type Options struct {
	Workers  int // DijkstraRouter goroutines; 0 means GOMAXPROCS
	Logger   logging.Logger
	Recorder Recorder
}

// Option represents a functional option for configuring routers.
type Option func(*Options)

// DefaultOptions returns the defaults: automatic workers, no logging, no metrics.
func DefaultOptions() Options {
	return Options{Logger: logging.Noop(), Recorder: noopRecorder{}}
}

// WithWorkers sets the DijkstraRouter worker count. Panics on negative n.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(ErrBadWorkers.Error())
	}
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger; nil keeps the current one.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRecorder sets the build-time recorder; nil keeps the current one.
func WithRecorder(r Recorder) Option {
	return func(o *Options) {
		if r != nil {
			o.Recorder = r
		}
	}
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

type noopRecorder struct{}

func (noopRecorder) MatrixBuilt(string, time.Duration) {}

// validateSites rejects empty and duplicated site lists and sites whose
// vertex fails has.
func validateSites(origins, destinations []dataio.Site, has func(int64) bool) error {
	if len(origins) == 0 || len(destinations) == 0 {
		return fmt.Errorf("%d origins, %d destinations: %w", len(origins), len(destinations), ErrNoSites)
	}
	for _, group := range []struct {
		kind  string
		sites []dataio.Site
	}{{"origin", origins}, {"destination", destinations}} {
		seen := make(map[string]struct{}, len(group.sites))
		for _, s := range group.sites {
			if _, dup := seen[s.ID]; dup {
				return fmt.Errorf("%s %q: %w", group.kind, s.ID, ErrDuplicateSite)
			}
			seen[s.ID] = struct{}{}
			if !has(s.Vertex) {
				return fmt.Errorf("%s %q vertex %d: %w", group.kind, s.ID, s.Vertex, ErrUnknownVertex)
			}
		}
	}

	return nil
}

func siteIDs(sites []dataio.Site) []string {
	out := make([]string, len(sites))
	for i, s := range sites {
		out[i] = s.ID
	}

	return out
}
