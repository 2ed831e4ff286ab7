// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/KerryPearn/routino-gm-scenarios/dataio"
	"github.com/KerryPearn/routino-gm-scenarios/engine"
	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"github.com/KerryPearn/routino-gm-scenarios/network"
	"github.com/KerryPearn/routino-gm-scenarios/scenario"
)

// ErrInvalidConfig indicates bad command-line flags.
var ErrInvalidConfig = errkind.Configuration("gmscenarios: invalid configuration")

// RunConfig holds the flags of the run command.
type RunConfig struct {
	MatrixPath     string
	ActivityPath   string
	OutPath        string
	KeyColumn      string
	ActivityColumn string
	NaNRep         string
	AllRows        bool

	Threshold float64
	Workers   int
	ChunkSize int
	MinSize   int
	MaxSize   int
	MaxCells  int

	CoordsPath      string
	GeoJSONPath     string
	GeoJSONScenario int

	MetricsAddr string
}

// Validate reports the first invalid field as an ErrInvalidConfig.
func (c RunConfig) Validate() error {
	switch {
	case c.MatrixPath == "":
		return invalid("-matrix is required")
	case c.ActivityPath == "":
		return invalid("-activity is required")
	case c.OutPath == "":
		return invalid("-out is required")
	case c.KeyColumn == "" || c.ActivityColumn == "":
		return invalid("-key and -activity-col must not be empty")
	case !(c.Threshold > 0) || math.IsInf(c.Threshold, 0):
		return invalid("-threshold %v must be a positive number", c.Threshold)
	case c.Workers < 0:
		return invalid("-workers %d must be >= 0", c.Workers)
	case c.ChunkSize < 0:
		return invalid("-chunk %d must be >= 0", c.ChunkSize)
	case c.MinSize < 1:
		return invalid("-min-size %d must be >= 1", c.MinSize)
	case c.MaxSize < 0 || (c.MaxSize > 0 && c.MaxSize < c.MinSize):
		return invalid("-max-size %d must be 0 or >= -min-size %d", c.MaxSize, c.MinSize)
	case c.MaxCells <= 0:
		return invalid("-max-cells %d must be > 0", c.MaxCells)
	case c.GeoJSONPath != "" && c.CoordsPath == "":
		return invalid("-geojson requires -coords")
	case c.GeoJSONScenario < 0:
		return invalid("-geojson-scenario %d must be >= 0", c.GeoJSONScenario)
	}

	return nil
}

// MatrixConfig holds the flags of the matrix command.
type MatrixConfig struct {
	EdgesPath        string
	OriginsPath      string
	DestinationsPath string
	OutPath          string
	Router           string
	Workers          int
	KeyColumn        string
	NaNRep           string

	MetricsAddr string
}

// Validate reports the first invalid field as an ErrInvalidConfig.
func (c MatrixConfig) Validate() error {
	switch {
	case c.EdgesPath == "":
		return invalid("-edges is required")
	case c.OriginsPath == "" || c.DestinationsPath == "":
		return invalid("-origins and -destinations are required")
	case c.OutPath == "":
		return invalid("-out is required")
	case c.Router != network.RouterDijkstra && c.Router != network.RouterHierarchy:
		return invalid("-router %q must be %q or %q", c.Router, network.RouterDijkstra, network.RouterHierarchy)
	case c.Workers < 0:
		return invalid("-workers %d must be >= 0", c.Workers)
	case c.KeyColumn == "":
		return invalid("-key must not be empty")
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
}

// parseRunFlags parses and validates the run command line.
func parseRunFlags(args []string, output io.Writer) (RunConfig, error) {
	var c RunConfig
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.MatrixPath, "matrix", "", "travel-cost CSV (key column + one column per location); .gz accepted")
	fs.StringVar(&c.ActivityPath, "activity", "", "activity CSV (key column + activity column); .gz accepted")
	fs.StringVar(&c.OutPath, "out", "gm_scenario_results.csv", "result table CSV; .gz compresses")
	fs.StringVar(&c.KeyColumn, "key", dataio.DefaultKeyColumn, "demand point id column in both inputs")
	fs.StringVar(&c.ActivityColumn, "activity-col", dataio.DefaultActivityColumn, "activity column of the activity CSV")
	fs.StringVar(&c.NaNRep, "na-rep", "", "text written for undefined statistics")
	fs.BoolVar(&c.AllRows, "all-rows", false, "on interrupt, also write rows that were not evaluated")
	fs.Float64Var(&c.Threshold, "threshold", scenario.DefaultThreshold, "coverage threshold; costs strictly below it count as covered")
	fs.IntVar(&c.Workers, "workers", 0, "scenario workers (0 = GOMAXPROCS)")
	fs.IntVar(&c.ChunkSize, "chunk", 0, "scenario ids claimed per worker step (0 = automatic)")
	fs.IntVar(&c.MinSize, "min-size", 1, "smallest number of open locations per scenario")
	fs.IntVar(&c.MaxSize, "max-size", 0, "largest number of open locations per scenario (0 = all)")
	fs.IntVar(&c.MaxCells, "max-cells", engine.DefaultMaxCells, "upper bound on result table cells")
	fs.StringVar(&c.CoordsPath, "coords", "", "location coordinates CSV (id,lon,lat) for -geojson")
	fs.StringVar(&c.GeoJSONPath, "geojson", "", "write one scenario's locations as GeoJSON to this path")
	fs.IntVar(&c.GeoJSONScenario, "geojson-scenario", 0, "row index of the scenario exported by -geojson")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", "", "HTTP address for Prometheus /metrics (empty = disabled)")
	if err := fs.Parse(args); err != nil {
		return c, flagError(err)
	}

	return c, c.Validate()
}

// parseMatrixFlags parses and validates the matrix command line.
func parseMatrixFlags(args []string, output io.Writer) (MatrixConfig, error) {
	var c MatrixConfig
	fs := flag.NewFlagSet("matrix", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.EdgesPath, "edges", "", "osm2ch edge CSV (from_vertex_id;to_vertex_id;weight;...); .gz accepted")
	fs.StringVar(&c.OriginsPath, "origins", "", "demand point sites CSV (id,vertex)")
	fs.StringVar(&c.DestinationsPath, "destinations", "", "candidate location sites CSV (id,vertex)")
	fs.StringVar(&c.OutPath, "out", "travel_matrix.csv", "travel-cost CSV; .gz compresses")
	fs.StringVar(&c.Router, "router", network.RouterDijkstra, "routing engine: dijkstra or ch")
	fs.IntVar(&c.Workers, "workers", 0, "dijkstra workers (0 = GOMAXPROCS)")
	fs.StringVar(&c.KeyColumn, "key", dataio.DefaultKeyColumn, "name of the demand point id column written")
	fs.StringVar(&c.NaNRep, "na-rep", "", "text written for unreachable pairs")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", "", "HTTP address for Prometheus /metrics (empty = disabled)")
	if err := fs.Parse(args); err != nil {
		return c, flagError(err)
	}

	return c, c.Validate()
}

func flagError(err error) error {
	if err == flag.ErrHelp {
		return err
	}

	return fmt.Errorf("%v: %w", err, ErrInvalidConfig)
}
