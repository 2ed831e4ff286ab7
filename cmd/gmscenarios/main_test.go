// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KerryPearn/routino-gm-scenarios/dataio"
	"github.com/KerryPearn/routino-gm-scenarios/engine"
	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"github.com/KerryPearn/routino-gm-scenarios/internal/logging"
)

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		w, err := dataio.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	return dir
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	r, err := dataio.Open(path)
	require.NoError(t, err)
	defer r.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	return buf.String()
}

func validRun() RunConfig {
	return RunConfig{
		MatrixPath:     "m.csv",
		ActivityPath:   "a.csv",
		OutPath:        "o.csv",
		KeyColumn:      dataio.DefaultKeyColumn,
		ActivityColumn: dataio.DefaultActivityColumn,
		Threshold:      30,
		MinSize:        1,
		MaxCells:       engine.DefaultMaxCells,
	}
}

func TestRunConfigValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validRun().Validate())

	cases := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"no matrix", func(c *RunConfig) { c.MatrixPath = "" }},
		{"no activity", func(c *RunConfig) { c.ActivityPath = "" }},
		{"zero threshold", func(c *RunConfig) { c.Threshold = 0 }},
		{"negative threshold", func(c *RunConfig) { c.Threshold = -5 }},
		{"negative workers", func(c *RunConfig) { c.Workers = -1 }},
		{"negative chunk", func(c *RunConfig) { c.ChunkSize = -1 }},
		{"zero min size", func(c *RunConfig) { c.MinSize = 0 }},
		{"max below min", func(c *RunConfig) { c.MinSize, c.MaxSize = 3, 2 }},
		{"zero max cells", func(c *RunConfig) { c.MaxCells = 0 }},
		{"geojson without coords", func(c *RunConfig) { c.GeoJSONPath = "s.geojson" }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := validRun()
			tc.mutate(&c)
			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.ErrorIs(t, err, errkind.ErrConfiguration)
		})
	}
}

func TestMatrixConfigValidate(t *testing.T) {
	t.Parallel()

	c := MatrixConfig{EdgesPath: "e", OriginsPath: "o", DestinationsPath: "d", OutPath: "x", Router: "ch", KeyColumn: "k"}
	require.NoError(t, c.Validate())
	c.Router = "astar"
	require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
}

func TestParseRunFlags(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	c, err := parseRunFlags([]string{"-matrix", "m.csv", "-activity", "a.csv", "-threshold", "12.5", "-max-size", "2"}, &out)
	require.NoError(t, err)
	require.Equal(t, 12.5, c.Threshold)
	require.Equal(t, 2, c.MaxSize)
	require.Equal(t, "from_postcode", c.KeyColumn)

	_, err = parseRunFlags([]string{"-threshold", "abc"}, &out)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = parseRunFlags([]string{"-h"}, &out)
	require.ErrorIs(t, err, flag.ErrHelp)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{flag.ErrHelp, exitOK},
		{fmt.Errorf("x: %w", ErrInvalidConfig), exitConfiguration},
		{fmt.Errorf("x: %w", dataio.ErrBadValue), exitData},
		{fmt.Errorf("x: %w", engine.ErrTooLarge), exitResourceLimit},
		{errors.New("disk full"), exitFailure},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, exitCode(tc.err), "%v", tc.err)
	}
}

const (
	matrixCSV   = "from_postcode,A,B\nP1,10,20\nP2,30,15\n"
	activityCSV = "from_postcode,activity\nP1,5\nP2,3\n"
)

func TestRealMainRun(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"costs.csv.gz": matrixCSV,
		"activity.csv": activityCSV,
		"coords.csv":   "id,lon,lat\nA,-1.5,53.8\nB,-1.6,53.9\n",
	})
	out := filepath.Join(dir, "results.csv")
	geo := filepath.Join(dir, "scen_2.geojson")

	var stderr bytes.Buffer
	code := realMain(context.Background(), []string{"run",
		"-matrix", filepath.Join(dir, "costs.csv.gz"),
		"-activity", filepath.Join(dir, "activity.csv"),
		"-out", out,
		"-threshold", "25",
		"-workers", "2",
		"-coords", filepath.Join(dir, "coords.csv"),
		"-geojson", geo,
		"-geojson-scenario", "2",
	}, &stderr, logging.Noop())
	require.Equal(t, exitOK, code, stderr.String())

	lines := strings.Split(readOutput(t, out), "\n")
	require.True(t, strings.HasPrefix(lines[0], ",median_travel,max_travel,95pctl_travel,activity_within_25,location_0"))
	require.Equal(t, "scen_0,20,30,29,5,1,0,20,,30,,29,,8,,5,", lines[1])
	require.Equal(t, "scen_2,12.5,15,14.75,8,1,1,10,15,10,15,10,15,5,3,5,3", lines[3])

	require.Contains(t, readOutput(t, geo), `"scenario":"scen_2"`)
}

func TestRealMainExitCodes(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"costs.csv":    matrixCSV,
		"bad.csv":      "from_postcode,A,B\nP1,10,far\n",
		"activity.csv": activityCSV,
	})
	run := func(args ...string) int {
		return realMain(context.Background(), args, &bytes.Buffer{}, logging.Noop())
	}

	require.Equal(t, exitConfiguration, run())
	require.Equal(t, exitConfiguration, run("frobnicate"))
	require.Equal(t, exitOK, run("run", "-h"))
	require.Equal(t, exitConfiguration, run("run", "-activity", "a.csv"))
	require.Equal(t, exitConfiguration, run("run",
		"-matrix", filepath.Join(dir, "missing.csv"),
		"-activity", filepath.Join(dir, "activity.csv"),
		"-out", filepath.Join(dir, "o.csv")))
	require.Equal(t, exitData, run("run",
		"-matrix", filepath.Join(dir, "bad.csv"),
		"-activity", filepath.Join(dir, "activity.csv"),
		"-out", filepath.Join(dir, "o.csv")))
	require.Equal(t, exitResourceLimit, run("run",
		"-matrix", filepath.Join(dir, "costs.csv"),
		"-activity", filepath.Join(dir, "activity.csv"),
		"-out", filepath.Join(dir, "o.csv"),
		"-max-cells", "20"))
}

func TestRealMainChecksGeoJSONExportBeforeRunning(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"costs.csv":    matrixCSV,
		"activity.csv": activityCSV,
		"coords.csv":   "id,lon,lat\nA,-1.5,53.8\nB,-1.6,53.9\n",
		"partial.csv":  "id,lon,lat\nA,-1.5,53.8\n",
	})
	run := func(coords, scenario string) (int, string) {
		out := filepath.Join(dir, "out-"+coords+"-"+scenario+".csv")
		code := realMain(context.Background(), []string{"run",
			"-matrix", filepath.Join(dir, "costs.csv"),
			"-activity", filepath.Join(dir, "activity.csv"),
			"-out", out,
			"-coords", filepath.Join(dir, coords),
			"-geojson", filepath.Join(dir, "s.geojson"),
			"-geojson-scenario", scenario,
		}, &bytes.Buffer{}, logging.Noop())

		return code, out
	}

	// Two locations give three scenarios, so row 3 does not exist.
	code, out := run("coords.csv", "3")
	require.Equal(t, exitConfiguration, code)
	_, err := os.Stat(out)
	require.ErrorIs(t, err, os.ErrNotExist, "nothing is evaluated or written")

	code, out = run("partial.csv", "0")
	require.Equal(t, exitData, code)
	_, err = os.Stat(out)
	require.ErrorIs(t, err, os.ErrNotExist)

	code, out = run("coords.csv", "2")
	require.Equal(t, exitOK, code)
	_, err = os.Stat(out)
	require.NoError(t, err)
}

func TestRealMainInterruptedWritesPartialTable(t *testing.T) {
	dir := writeInputs(t, map[string]string{"costs.csv": matrixCSV, "activity.csv": activityCSV})
	out := filepath.Join(dir, "partial.csv")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := realMain(ctx, []string{"run",
		"-matrix", filepath.Join(dir, "costs.csv"),
		"-activity", filepath.Join(dir, "activity.csv"),
		"-out", out,
		"-all-rows",
	}, &bytes.Buffer{}, logging.Noop())
	require.Equal(t, exitFailure, code)

	lines := strings.Split(strings.TrimSuffix(readOutput(t, out), "\n"), "\n")
	require.Len(t, lines, 4, "header plus every row, unevaluated ones empty")
}

func TestRealMainMatrix(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"edges.csv":  "from_vertex_id;to_vertex_id;weight;geom\n1;2;10;x\n2;1;10;x\n2;3;5;x\n3;2;5;x\n",
		"points.csv": "id,vertex\nP1,1\nP2,3\n",
		"sites.csv":  "id,vertex\nA,2\nB,3\n",
	})
	for _, router := range []string{"dijkstra", "ch"} {
		out := filepath.Join(dir, router+".csv")
		code := realMain(context.Background(), []string{"matrix",
			"-edges", filepath.Join(dir, "edges.csv"),
			"-origins", filepath.Join(dir, "points.csv"),
			"-destinations", filepath.Join(dir, "sites.csv"),
			"-router", router,
			"-out", out,
		}, &bytes.Buffer{}, logging.Noop())
		require.Equal(t, exitOK, code, router)
		require.Equal(t, "from_postcode,A,B\nP1,10,15\nP2,5,0\n", readOutput(t, out), router)
	}

	code := realMain(context.Background(), []string{"matrix",
		"-edges", filepath.Join(dir, "edges.csv"),
		"-origins", filepath.Join(dir, "points.csv"),
		"-destinations", filepath.Join(dir, "points.csv"),
		"-out", filepath.Join(dir, "x.csv"),
		"-router", "dijkstra",
	}, &bytes.Buffer{}, logging.Noop())
	require.Equal(t, exitOK, code)

	_, err := os.Stat(filepath.Join(dir, "x.csv"))
	require.NoError(t, err)
}
