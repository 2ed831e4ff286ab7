// SPDX-License-Identifier: MIT

package dataio

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// Edge is one directed road segment of an osm2ch edge file.
type Edge struct {
	From   int64
	To     int64
	Weight float64
}

// Site ties an external id (demand point or location) to a road vertex.
type Site struct {
	ID     string
	Vertex int64
}

// Coord is a WGS84 position.
type Coord struct {
	Lon float64
	Lat float64
}

// Column names of the network inputs.
const (
	ColFromVertex = "from_vertex_id"
	ColToVertex   = "to_vertex_id"
	ColWeight     = "weight"
	ColID         = "id"
	ColVertex     = "vertex"
	ColLon        = "lon"
	ColLat        = "lat"
)

// ReadEdges reads an osm2ch edge file (';'-separated, header
// from_vertex_id;to_vertex_id;weight;...). Extra columns such as geom or
// osm_way_from are ignored.
//
// Errors: ErrEmptyInput, ErrMissingColumn, ErrBadValue (also for negative
// or non-finite weights).
func ReadEdges(r io.Reader) ([]Edge, error) {
	cr := newReader(r, EdgeComma)
	cr.LazyQuotes = true // geom cells carry GeoJSON with embedded quotes
	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	cols, err := columnsOf(header, ColFromVertex, ColToVertex, ColWeight)
	if err != nil {
		return nil, err
	}

	var out []Edge
	for {
		rec, err := readRecord(cr)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var e Edge
		if e.From, err = parseInt(cr, rec, cols[0], ColFromVertex); err != nil {
			return nil, err
		}
		if e.To, err = parseInt(cr, rec, cols[1], ColToVertex); err != nil {
			return nil, err
		}
		if e.Weight, err = parseFloat(cr, rec, cols[2], ColWeight); err != nil {
			return nil, err
		}
		if e.Weight < 0 || math.IsInf(e.Weight, 0) || math.IsNaN(e.Weight) {
			line, _ := cr.FieldPos(cols[2])
			return nil, errors.Wrapf(ErrBadValue, "line %d: edge weight %v", line, e.Weight)
		}
		out = append(out, e)
	}
}

// ReadSites reads an id,vertex mapping.
//
// Errors: ErrEmptyInput, ErrMissingColumn, ErrBadValue.
func ReadSites(r io.Reader, opts ...Option) ([]Site, error) {
	o := gatherOptions(opts...)
	cr := newReader(r, o.Comma)
	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	cols, err := columnsOf(header, ColID, ColVertex)
	if err != nil {
		return nil, err
	}

	var out []Site
	for {
		rec, err := readRecord(cr)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := parseInt(cr, rec, cols[1], ColVertex)
		if err != nil {
			return nil, err
		}
		out = append(out, Site{ID: rec[cols[0]], Vertex: v})
	}
}

// ReadCoordinates reads an id,lon,lat table keyed by id.
//
// Errors: ErrEmptyInput, ErrMissingColumn, ErrBadValue (also for a repeated id).
func ReadCoordinates(r io.Reader, opts ...Option) (map[string]Coord, error) {
	o := gatherOptions(opts...)
	cr := newReader(r, o.Comma)
	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	cols, err := columnsOf(header, ColID, ColLon, ColLat)
	if err != nil {
		return nil, err
	}

	out := make(map[string]Coord)
	for {
		rec, err := readRecord(cr)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var c Coord
		if c.Lon, err = parseFloat(cr, rec, cols[1], ColLon); err != nil {
			return nil, err
		}
		if c.Lat, err = parseFloat(cr, rec, cols[2], ColLat); err != nil {
			return nil, err
		}
		id := rec[cols[0]]
		if _, dup := out[id]; dup {
			line, _ := cr.FieldPos(cols[0])
			return nil, errors.Wrapf(ErrBadValue, "line %d: repeated id %q", line, id)
		}
		out[id] = c
	}
}

func columnsOf(header []string, names ...string) ([]int, error) {
	cols := make([]int, len(names))
	for i, name := range names {
		c, err := columnIndex(header, name)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}

	return cols, nil
}
