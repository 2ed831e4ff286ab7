// SPDX-License-Identifier: MIT

package dataio

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/KerryPearn/routino-gm-scenarios/table"
)

// WriteTable writes the result table: a header whose first cell is empty,
// then one line per scenario starting with its scen_<i> label. Values use
// the shortest exact decimal form; undefined values are written as the NaN
// representation ("" by default). Unwritten rows of a partial table are
// skipped unless WithAllRows is given.
func WriteTable(w io.Writer, tbl *table.Table, opts ...Option) error {
	o := gatherOptions(opts...)
	cw := csv.NewWriter(w)
	cw.Comma = o.Comma

	rec := make([]string, 0, tbl.Cols()+1)
	rec = append(rec, "")
	rec = append(rec, tbl.Header()...)
	if err := cw.Write(rec); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for i := 0; i < tbl.Rows(); i++ {
		if o.WrittenOnly && !tbl.Written(i) {
			continue
		}
		row, err := tbl.Row(i)
		if err != nil {
			return err
		}
		rec = append(rec[:0], tbl.RowLabel(i))
		for _, v := range row {
			rec = append(rec, formatFloat(v, o.NaNRep))
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "Can't write %s", tbl.RowLabel(i))
		}
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "Can't flush result table")
}
