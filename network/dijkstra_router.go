// SPDX-License-Identifier: MIT

package network

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KerryPearn/routino-gm-scenarios/core"
	"github.com/KerryPearn/routino-gm-scenarios/dataio"
	"github.com/KerryPearn/routino-gm-scenarios/dijkstra"
	"github.com/KerryPearn/routino-gm-scenarios/internal/logging"
	"github.com/KerryPearn/routino-gm-scenarios/matrix"
	"github.com/KerryPearn/routino-gm-scenarios/travel"
)

// RouterDijkstra is the DijkstraRouter name.
const RouterDijkstra = "dijkstra"

// DijkstraRouter runs one bounded Dijkstra search per origin.
type DijkstraRouter struct {
	g    *core.Graph
	opts Options
}

var _ Router = (*DijkstraRouter)(nil)

// NewDijkstraRouter wraps g.
func NewDijkstraRouter(g *core.Graph, opts ...Option) *DijkstraRouter {
	return &DijkstraRouter{g: g, opts: gatherOptions(opts...)}
}

// Name returns RouterDijkstra.
func (r *DijkstraRouter) Name() string { return RouterDijkstra }

// Route computes the table row by row; each search stops once every
// destination vertex is settled. Rows are claimed from an atomic counter
// by a fixed pool of workers, so the result does not depend on the worker
// count.
//
// Errors: ErrNoSites, ErrDuplicateSite, ErrUnknownVertex, ctx's cause when
// cancelled.
func (r *DijkstraRouter) Route(ctx context.Context, origins, destinations []dataio.Site) (travel.CostTable, error) {
	started := time.Now()
	if err := validateSites(origins, destinations, r.g.HasVertex); err != nil {
		return travel.CostTable{}, err
	}
	costs, err := matrix.NewDense(len(origins), len(destinations), matrix.WithAllowNaN())
	if err != nil {
		return travel.CostTable{}, err
	}
	targets := make([]int64, len(destinations))
	for j, d := range destinations {
		targets[j] = d.Vertex
	}

	workers := r.opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(origins))

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	var (
		next atomic.Int64
		wg   sync.WaitGroup
		once sync.Once
	)
	fail := func(err error) { once.Do(func() { cancel(err) }) }
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			row := make([]float64, len(destinations))
			for {
				i := int(next.Add(1) - 1)
				if i >= len(origins) || ctx.Err() != nil {
					return
				}
				if err := r.routeRow(origins[i], targets, row); err != nil {
					fail(err)
					return
				}
				if err := costs.SetRow(i, row); err != nil {
					fail(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if ctx.Err() != nil {
		return travel.CostTable{}, fmt.Errorf("route %d origins: %w", len(origins), context.Cause(ctx))
	}

	elapsed := time.Since(started)
	r.opts.Recorder.MatrixBuilt(RouterDijkstra, elapsed)
	r.opts.Logger.Info(ctx, "travel matrix built",
		logging.String("router", RouterDijkstra),
		logging.Int("origins", len(origins)),
		logging.Int("destinations", len(destinations)),
		logging.Int("workers", workers),
		logging.Duration("elapsed", elapsed),
	)

	return travel.CostTable{Points: siteIDs(origins), Locations: siteIDs(destinations), Costs: costs}, nil
}

// routeRow fills row with the costs from origin to every target.
func (r *DijkstraRouter) routeRow(origin dataio.Site, targets []int64, row []float64) error {
	res, err := dijkstra.Dijkstra(r.g, dijkstra.Source(origin.Vertex), dijkstra.WithTargets(targets...))
	if err != nil {
		return fmt.Errorf("origin %q: %w", origin.ID, err)
	}
	for j, v := range targets {
		d, err := res.Dist(v)
		if err != nil {
			return fmt.Errorf("origin %q: %w", origin.ID, err)
		}
		if math.IsInf(d, 1) {
			d = math.NaN()
		}
		row[j] = d
	}

	return nil
}
