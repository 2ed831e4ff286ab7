// SPDX-License-Identifier: MIT

// Package dataio reads and writes the files around a scenario run.
//
// Inputs:
//   - travel-cost table: a key column of demand point ids followed by one
//     column per candidate location (ReadCostTable);
//   - activity weights: key column plus an activity column (ReadWeights);
//   - road network edges in the ';'-separated layout produced by osm2ch
//     (ReadEdges), the id→vertex site mapping (ReadSites) and site
//     coordinates (ReadCoordinates).
//
// Outputs:
//   - the result table with a leading unnamed index column of scen_<i>
//     labels (WriteTable);
//   - a travel-cost table built from a road network (WriteCostTable);
//   - a GeoJSON FeatureCollection of one scenario's locations
//     (WriteScenarioGeoJSON).
//
// Paths ending in ".gz" are transparently (de)compressed by Open and Create.
//
// Every malformed input is reported as an errkind.ErrData error naming the
// offending line and column; I/O failures are wrapped with their context.
package dataio
