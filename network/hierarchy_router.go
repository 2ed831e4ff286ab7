// SPDX-License-Identifier: MIT

package network

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"

	"github.com/KerryPearn/routino-gm-scenarios/dataio"
	"github.com/KerryPearn/routino-gm-scenarios/internal/logging"
	"github.com/KerryPearn/routino-gm-scenarios/matrix"
	"github.com/KerryPearn/routino-gm-scenarios/travel"
)

// RouterHierarchy is the HierarchyRouter name.
const RouterHierarchy = "ch"

// HierarchyRouter answers point-to-point queries on a contraction hierarchy.
// Queries run sequentially: ch.Graph makes no concurrency guarantees.
type HierarchyRouter struct {
	g        *ch.Graph
	vertices map[int64]struct{}
	opts     Options
}

var _ Router = (*HierarchyRouter)(nil)

// NewHierarchyRouter builds and contracts a hierarchy over edges.
//
// Errors: ErrNoEdges, dataio.ErrBadValue for a negative or non-finite
// weight, wrapped ch errors.
// Complexity: dominated by contraction, roughly O(V log V) on road networks.
func NewHierarchyRouter(edges []dataio.Edge, opts ...Option) (*HierarchyRouter, error) {
	if len(edges) == 0 {
		return nil, ErrNoEdges
	}
	o := gatherOptions(opts...)
	started := time.Now()
	r := &HierarchyRouter{g: &ch.Graph{}, vertices: make(map[int64]struct{}), opts: o}
	for i, e := range edges {
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, errors.Wrapf(dataio.ErrBadValue, "edge #%d weight %v", i, e.Weight)
		}
		if err := r.g.CreateVertex(e.From); err != nil {
			return nil, errors.Wrap(err, "Can not create source vertex")
		}
		if err := r.g.CreateVertex(e.To); err != nil {
			return nil, errors.Wrap(err, "Can not create target vertex")
		}
		if err := r.g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, errors.Wrap(err, "Can not wrap source and target vertices as edge")
		}
		r.vertices[e.From] = struct{}{}
		r.vertices[e.To] = struct{}{}
	}
	r.g.PrepareContractionHierarchies()
	o.Logger.Info(context.Background(), "contraction hierarchy prepared",
		logging.Int("vertices", len(r.vertices)),
		logging.Int("edges", len(edges)),
		logging.Duration("elapsed", time.Since(started)),
	)

	return r, nil
}

// Name returns RouterHierarchy.
func (r *HierarchyRouter) Name() string { return RouterHierarchy }

func (r *HierarchyRouter) hasVertex(id int64) bool {
	_, ok := r.vertices[id]
	return ok
}

// Route queries every origin × destination pair; ch reports "no path" as a
// negative cost, stored as NaN.
//
// Errors: ErrNoSites, ErrDuplicateSite, ErrUnknownVertex, ctx's cause when
// cancelled.
func (r *HierarchyRouter) Route(ctx context.Context, origins, destinations []dataio.Site) (travel.CostTable, error) {
	started := time.Now()
	if err := validateSites(origins, destinations, r.hasVertex); err != nil {
		return travel.CostTable{}, err
	}
	costs, err := matrix.NewDense(len(origins), len(destinations), matrix.WithAllowNaN())
	if err != nil {
		return travel.CostTable{}, err
	}
	row := make([]float64, len(destinations))
	for i, o := range origins {
		if ctx.Err() != nil {
			return travel.CostTable{}, fmt.Errorf("route origin %q: %w", o.ID, context.Cause(ctx))
		}
		for j, d := range destinations {
			row[j] = r.cost(o.Vertex, d.Vertex)
		}
		if err := costs.SetRow(i, row); err != nil {
			return travel.CostTable{}, err
		}
	}

	elapsed := time.Since(started)
	r.opts.Recorder.MatrixBuilt(RouterHierarchy, elapsed)
	r.opts.Logger.Info(ctx, "travel matrix built",
		logging.String("router", RouterHierarchy),
		logging.Int("origins", len(origins)),
		logging.Int("destinations", len(destinations)),
		logging.Duration("elapsed", elapsed),
	)

	return travel.CostTable{Points: siteIDs(origins), Locations: siteIDs(destinations), Costs: costs}, nil
}

func (r *HierarchyRouter) cost(from, to int64) float64 {
	if from == to {
		return 0
	}
	c, _ := r.g.ShortestPath(from, to)
	if c < 0 {
		return math.NaN()
	}

	return c
}
