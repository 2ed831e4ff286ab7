// SPDX-License-Identifier: MIT

package dataio

import (
	"io"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"github.com/KerryPearn/routino-gm-scenarios/table"
)

// ErrMissingCoordinate indicates a location without a coordinate.
var ErrMissingCoordinate = errkind.Data("dataio: location has no coordinate")

// Feature property names.
const (
	PropID             = "id"
	PropScenario       = "scenario"
	PropOpen           = "open"
	PropMedian         = "median"
	PropMax            = "max"
	PropP95            = "p95"
	PropActivity       = "activity"
	PropActivityWithin = "activity_within"
)

// CheckCoordinates returns ErrMissingCoordinate for the first location
// without an entry in coords.
func CheckCoordinates(locations []string, coords map[string]Coord) error {
	for _, id := range locations {
		if _, ok := coords[id]; !ok {
			return errors.Wrapf(ErrMissingCoordinate, "location %q", id)
		}
	}

	return nil
}

// BuildScenarioGeoJSON returns one Point feature per location of row i of
// tbl, with its open flag and per-location statistics. Undefined statistics
// are null. locations must be in universe order.
//
// Errors: ErrMissingCoordinate, table.ErrRowOutOfRange, table.ErrIncomplete
// for an unwritten row.
func BuildScenarioGeoJSON(tbl *table.Table, i int, locations []string, coords map[string]Coord) (*geojson.FeatureCollection, error) {
	if !tbl.Written(i) {
		if i < 0 || i >= tbl.Rows() {
			return nil, errors.Wrapf(table.ErrRowOutOfRange, "row %d", i)
		}
		return nil, errors.Wrapf(table.ErrIncomplete, "%s was not evaluated", tbl.RowLabel(i))
	}
	if err := CheckCoordinates(locations, coords); err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	for j, id := range locations {
		c := coords[id]
		f := geojson.NewPointFeature([]float64{c.Lon, c.Lat})
		f.SetProperty(PropID, id)
		f.SetProperty(PropScenario, tbl.RowLabel(i))
		open, err := tbl.Value(i, table.Key{Metric: table.LocationOpen, Location: j})
		if err != nil {
			return nil, err
		}
		f.SetProperty(PropOpen, open.Float() == 1)
		for _, p := range []struct {
			name   string
			metric table.Metric
		}{
			{PropMedian, table.LocationMedian},
			{PropMax, table.LocationMax},
			{PropP95, table.LocationP95},
			{PropActivity, table.LocationActivity},
			{PropActivityWithin, table.LocationActivityWithin},
		} {
			v, err := tbl.Value(i, table.Key{Metric: p.metric, Location: j})
			if err != nil {
				return nil, err
			}
			if x, ok := v.Get(); ok {
				f.SetProperty(p.name, x)
			} else {
				f.SetProperty(p.name, nil)
			}
		}
		fc.AddFeature(f)
	}

	return fc, nil
}

// WriteScenarioGeoJSON writes BuildScenarioGeoJSON's collection to w.
func WriteScenarioGeoJSON(w io.Writer, tbl *table.Table, i int, locations []string, coords map[string]Coord) error {
	fc, err := BuildScenarioGeoJSON(tbl, i, locations, coords)
	if err != nil {
		return err
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't convert scenario to geojson format")
	}
	_, err = w.Write(b)

	return errors.Wrap(err, "Can't write geojson")
}
