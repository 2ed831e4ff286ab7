// SPDX-License-Identifier: MIT

// Package network turns a road network into a travel-cost table.
//
// A Router computes the cost of the cheapest route from every origin site
// (demand point) to every destination site (candidate location). Two
// routers are provided:
//
//   - DijkstraRouter: one single-source search per origin on a core.Graph,
//     origins spread over a worker pool.
//   - HierarchyRouter: point-to-point queries on a contraction hierarchy
//     (github.com/LdDl/ch), the preprocessing osm2ch pairs its edge files
//     with. Slower to build, faster per query on large networks.
//
// Both produce identical tables for the same network: unreachable pairs
// are NaN, and a site routed to itself costs 0.
package network
