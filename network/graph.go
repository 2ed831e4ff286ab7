// SPDX-License-Identifier: MIT

package network

import (
	"github.com/pkg/errors"

	"github.com/KerryPearn/routino-gm-scenarios/core"
	"github.com/KerryPearn/routino-gm-scenarios/dataio"
)

// BuildGraph loads osm2ch edges into a directed core.Graph. Parallel edges
// and self-loops are kept; searches pick the cheapest automatically.
//
// Errors: ErrNoEdges, core.ErrBadWeight.
// Complexity: O(E).
func BuildGraph(edges []dataio.Edge) (*core.Graph, error) {
	if len(edges) == 0 {
		return nil, ErrNoEdges
	}
	g := core.NewGraph(core.WithDirected(true), core.WithMultiEdges(), core.WithLoops())
	for i, e := range edges {
		if _, err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, errors.Wrapf(err, "Can not add edge #%d", i)
		}
	}

	return g, nil
}
