// SPDX-License-Identifier: MIT

package dataio

import (
	"io"

	"github.com/KerryPearn/routino-gm-scenarios/travel"
)

// ReadWeights reads the activity table: the key column and the activity
// column; other columns are ignored. Row order is preserved.
//
// Errors: ErrEmptyInput, ErrMissingColumn, ErrDuplicateColumn, ErrBadValue.
func ReadWeights(r io.Reader, opts ...Option) ([]travel.Weight, error) {
	o := gatherOptions(opts...)
	cr := newReader(r, o.Comma)
	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	key, err := columnIndex(header, o.KeyColumn)
	if err != nil {
		return nil, err
	}
	act, err := columnIndex(header, o.ActivityColumn)
	if err != nil {
		return nil, err
	}

	var out []travel.Weight
	for {
		rec, err := readRecord(cr)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := parseFloat(cr, rec, act, o.ActivityColumn)
		if err != nil {
			return nil, err
		}
		out = append(out, travel.Weight{Point: rec[key], Activity: v})
	}
}
