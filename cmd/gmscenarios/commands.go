// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/KerryPearn/routino-gm-scenarios/dataio"
	"github.com/KerryPearn/routino-gm-scenarios/engine"
	"github.com/KerryPearn/routino-gm-scenarios/internal/logging"
	"github.com/KerryPearn/routino-gm-scenarios/network"
	"github.com/KerryPearn/routino-gm-scenarios/subset"
	"github.com/KerryPearn/routino-gm-scenarios/table"
	"github.com/KerryPearn/routino-gm-scenarios/travel"
)

// runScenarios loads the inputs, runs the engine and writes the result
// table. An interrupted run still writes the rows evaluated so far.
func runScenarios(ctx context.Context, a *app, cfg RunConfig) error {
	ioOpts := []dataio.Option{
		dataio.WithKeyColumn(cfg.KeyColumn),
		dataio.WithActivityColumn(cfg.ActivityColumn),
		dataio.WithNaNRep(cfg.NaNRep),
	}
	if cfg.AllRows {
		ioOpts = append(ioOpts, dataio.WithAllRows())
	}

	var ct travel.CostTable
	err := readFile(cfg.MatrixPath, func(r io.Reader) (err error) {
		ct, err = dataio.ReadCostTable(r, ioOpts...)
		return err
	})
	if err != nil {
		return err
	}
	var weights []travel.Weight
	err = readFile(cfg.ActivityPath, func(r io.Reader) (err error) {
		weights, err = dataio.ReadWeights(r, ioOpts...)
		return err
	})
	if err != nil {
		return err
	}
	tm, err := travel.Join(ct, weights)
	if err != nil {
		return err
	}
	var coords map[string]dataio.Coord
	if cfg.GeoJSONPath != "" {
		if coords, err = prepareGeoJSON(cfg, tm); err != nil {
			return err
		}
	}
	a.log.Info(ctx, "inputs loaded",
		logging.String("matrix", cfg.MatrixPath),
		logging.Int("points", tm.NumPoints()),
		logging.Int("locations", tm.NumLocations()),
		logging.Int("dropped_points", len(ct.Points)-tm.NumPoints()),
		logging.Int("unreachable_pairs", tm.Unreachable()),
	)

	tbl, runErr := engine.Run(ctx, tm,
		engine.WithThreshold(cfg.Threshold),
		engine.WithWorkers(cfg.Workers),
		engine.WithChunkSize(cfg.ChunkSize),
		engine.WithMinSize(cfg.MinSize),
		engine.WithMaxSize(cfg.MaxSize),
		engine.WithMaxCells(cfg.MaxCells),
		engine.WithLogger(a.log),
		engine.WithRecorder(a.collector),
		engine.WithTracer(a.tracer),
	)
	if tbl == nil {
		return runErr
	}
	if err := writeFile(cfg.OutPath, func(w io.Writer) error { return dataio.WriteTable(w, tbl, ioOpts...) }); err != nil {
		return err
	}
	a.log.Info(ctx, "results written",
		logging.String("out", cfg.OutPath),
		logging.Int("rows", tbl.WrittenRows()),
		logging.Int("cols", tbl.Cols()),
	)
	if runErr != nil {
		return runErr
	}
	if cfg.GeoJSONPath != "" {
		return exportGeoJSON(ctx, a, cfg, tm, tbl, coords)
	}

	return nil
}

// prepareGeoJSON loads the coordinates and checks the export request before
// any scenario is evaluated.
func prepareGeoJSON(cfg RunConfig, tm *travel.Matrix) (map[string]dataio.Coord, error) {
	var coords map[string]dataio.Coord
	err := readFile(cfg.CoordsPath, func(r io.Reader) (err error) {
		coords, err = dataio.ReadCoordinates(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err = dataio.CheckCoordinates(tm.Locations(), coords); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.CoordsPath, err)
	}

	enumOpts := []subset.Option{subset.WithMinSize(cfg.MinSize)}
	if cfg.MaxSize > 0 {
		enumOpts = append(enumOpts, subset.WithMaxSize(cfg.MaxSize))
	}
	// Size errors are left to engine.Run, which reports them with a remedy.
	if en, err := subset.NewEnumerator(tm.NumLocations(), enumOpts...); err == nil && cfg.GeoJSONScenario >= en.Count() {
		return nil, invalid("-geojson-scenario %d must be below the scenario count %d", cfg.GeoJSONScenario, en.Count())
	}

	return coords, nil
}

func exportGeoJSON(ctx context.Context, a *app, cfg RunConfig, tm *travel.Matrix, tbl *table.Table, coords map[string]dataio.Coord) error {
	err := writeFile(cfg.GeoJSONPath, func(w io.Writer) error {
		return dataio.WriteScenarioGeoJSON(w, tbl, cfg.GeoJSONScenario, tm.Locations(), coords)
	})
	if err != nil {
		return err
	}
	a.log.Info(ctx, "scenario exported",
		logging.String("geojson", cfg.GeoJSONPath),
		logging.String("scenario", table.RowLabel(cfg.GeoJSONScenario)),
	)

	return nil
}

// buildMatrix routes every origin to every destination over the road
// network and writes the travel-cost table.
func buildMatrix(ctx context.Context, a *app, cfg MatrixConfig) error {
	var edges []dataio.Edge
	err := readFile(cfg.EdgesPath, func(r io.Reader) (err error) {
		edges, err = dataio.ReadEdges(r)
		return err
	})
	if err != nil {
		return err
	}
	var origins, destinations []dataio.Site
	err = readFile(cfg.OriginsPath, func(r io.Reader) (err error) {
		origins, err = dataio.ReadSites(r)
		return err
	})
	if err != nil {
		return err
	}
	err = readFile(cfg.DestinationsPath, func(r io.Reader) (err error) {
		destinations, err = dataio.ReadSites(r)
		return err
	})
	if err != nil {
		return err
	}

	router, err := newRouter(cfg, edges, a)
	if err != nil {
		return err
	}
	ct, err := router.Route(ctx, origins, destinations)
	if err != nil {
		return err
	}

	return writeFile(cfg.OutPath, func(w io.Writer) error {
		return dataio.WriteCostTable(w, ct, dataio.WithKeyColumn(cfg.KeyColumn), dataio.WithNaNRep(cfg.NaNRep))
	})
}

func newRouter(cfg MatrixConfig, edges []dataio.Edge, a *app) (network.Router, error) {
	opts := []network.Option{
		network.WithWorkers(cfg.Workers),
		network.WithLogger(a.log),
		network.WithRecorder(a.collector),
	}
	switch cfg.Router {
	case network.RouterHierarchy:
		return network.NewHierarchyRouter(edges, opts...)
	default:
		g, err := network.BuildGraph(edges)
		if err != nil {
			return nil, err
		}
		return network.NewDijkstraRouter(g, opts...), nil
	}
}

// readFile opens path (gunzipping .gz) and hands it to read.
func readFile(path string, read func(io.Reader) error) error {
	r, err := dataio.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err != nil {
		return err
	}
	defer r.Close()
	if err := read(r); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// writeFile creates path (gzipping .gz) and hands it to write; close
// errors are reported since they flush compressed output.
func writeFile(path string, write func(io.Writer) error) (err error) {
	w, err := dataio.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(w); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}
