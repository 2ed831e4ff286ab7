// SPDX-License-Identifier: MIT

package dataio

import (
	"encoding/csv"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/KerryPearn/routino-gm-scenarios/matrix"
	"github.com/KerryPearn/routino-gm-scenarios/travel"
)

// ReadCostTable reads a travel-cost table. The key column (DefaultKeyColumn
// unless overridden) holds demand point ids; every other column is a
// candidate location, in header order. NA tokens become NaN (unreachable).
//
// Errors: ErrEmptyInput, ErrMissingColumn, ErrDuplicateColumn, ErrBadValue;
// travel.ErrNoLocations when the header holds only the key column and
// travel.ErrNoPoints when no row follows it.
func ReadCostTable(r io.Reader, opts ...Option) (travel.CostTable, error) {
	o := gatherOptions(opts...)
	cr := newReader(r, o.Comma)
	header, err := readHeader(cr)
	if err != nil {
		return travel.CostTable{}, err
	}
	key, err := columnIndex(header, o.KeyColumn)
	if err != nil {
		return travel.CostTable{}, err
	}
	ct := travel.CostTable{Locations: make([]string, 0, len(header)-1)}
	for i, h := range header {
		if i != key {
			ct.Locations = append(ct.Locations, h)
		}
	}
	if len(ct.Locations) == 0 {
		return travel.CostTable{}, errors.Wrapf(travel.ErrNoLocations, "header %q has only the key column", header)
	}

	var data []float64
	for {
		rec, err := readRecord(cr)
		if err == io.EOF {
			break
		}
		if err != nil {
			return travel.CostTable{}, err
		}
		ct.Points = append(ct.Points, rec[key])
		for i := range rec {
			if i == key {
				continue
			}
			v, err := parseCost(cr, rec, i, header[i], o)
			if err != nil {
				return travel.CostTable{}, err
			}
			data = append(data, v)
		}
	}
	if len(ct.Points) == 0 {
		return travel.CostTable{}, errors.Wrap(travel.ErrNoPoints, "cost table")
	}
	ct.Costs, err = matrix.NewDenseFrom(len(ct.Points), len(ct.Locations), data, matrix.WithNoValidateNaNInf())
	if err != nil {
		return travel.CostTable{}, err
	}

	return ct, nil
}

func parseCost(cr *csv.Reader, rec []string, col int, name string, o Options) (float64, error) {
	if o.isNA(rec[col]) {
		return math.NaN(), nil
	}

	return parseFloat(cr, rec, col, name)
}

// WriteCostTable writes ct in the layout ReadCostTable accepts, with NaN
// cells rendered as the NaN representation.
func WriteCostTable(w io.Writer, ct travel.CostTable, opts ...Option) error {
	o := gatherOptions(opts...)
	if err := matrix.ValidateShape(ct.Costs, len(ct.Points), len(ct.Locations)); err != nil {
		return errors.Wrap(err, "cost table")
	}
	cw := csv.NewWriter(w)
	cw.Comma = o.Comma
	rec := make([]string, 0, len(ct.Locations)+1)
	rec = append(rec, o.KeyColumn)
	rec = append(rec, ct.Locations...)
	if err := cw.Write(rec); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for i, id := range ct.Points {
		rec = append(rec[:0], id)
		for j := range ct.Locations {
			v, err := ct.Costs.At(i, j)
			if err != nil {
				return err
			}
			rec = append(rec, formatFloat(v, o.NaNRep))
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "Can't write row %d", i)
		}
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "Can't flush cost table")
}
